package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapp_backend/internal/email"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

func registerReq(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		UserName: username,
		Name:     "Test " + username,
		Email:    username + "@example.com",
		Password: "correct-horse",
	}
}

// registerVerified runs the full signup and email confirmation so the
// account can log in.
func registerVerified(t *testing.T, env *testEnv, svc AuthService, username string) *dto.AuthResponse {
	t.Helper()

	_, err := svc.Register(registerReq(username))
	require.NoError(t, err)

	user, err := env.userRepo.FindByEmail(username + "@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(user.VerificationToken))

	session, err := svc.Login(&dto.LoginRequest{
		Email: username + "@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	return session
}

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)
	mailer := email.NewMockProvider()
	svc := NewAuthService(env.userRepo, mailer)

	t.Run("creates the account and sends a verification mail", func(t *testing.T) {
		created, err := svc.Register(registerReq("alice"))
		require.NoError(t, err)
		assert.Equal(t, "alice", created.UserName)
		assert.False(t, created.IsVerified)

		assert.Equal(t, "alice@example.com", mailer.LastTo())
	})

	t.Run("password is never stored in the clear", func(t *testing.T) {
		user, err := env.userRepo.FindByEmail("alice@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "correct-horse", user.PasswordHash)
		assert.NotEmpty(t, user.VerificationToken)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		req := registerReq("alice2")
		req.Email = "alice@example.com"
		_, err := svc.Register(req)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		req := registerReq("alice")
		req.Email = "fresh@example.com"
		_, err := svc.Register(req)
		require.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, email.NewMockProvider())

	_, err := svc.Register(registerReq("alice"))
	require.NoError(t, err)

	t.Run("unconfirmed accounts cannot log in", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
	})

	t.Run("valid credentials after confirmation", func(t *testing.T) {
		user, err := env.userRepo.FindByEmail("alice@example.com")
		require.NoError(t, err)
		require.NoError(t, svc.VerifyEmail(user.VerificationToken))

		resp, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, badPass := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
		_, badEmail := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
		require.Error(t, badPass)
		require.Error(t, badEmail)
		assert.Equal(t, badPass.Error(), badEmail.Error())
	})
}

func TestAuthService_Refresh(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, email.NewMockProvider())

	session := registerVerified(t, env, svc, "alice")

	t.Run("rotation: a refresh token is single use", func(t *testing.T) {
		refreshed, err := svc.Refresh(&dto.RefreshTokenRequest{RefreshToken: session.RefreshToken})
		require.NoError(t, err)
		assert.NotEqual(t, session.RefreshToken, refreshed.RefreshToken)

		_, err = svc.Refresh(&dto.RefreshTokenRequest{RefreshToken: session.RefreshToken})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)
	})

	t.Run("garbage tokens are unauthorized", func(t *testing.T) {
		_, err := svc.Refresh(&dto.RefreshTokenRequest{RefreshToken: "not-a-token"})
		require.Error(t, err)
	})

	t.Run("logout revokes the token and is idempotent", func(t *testing.T) {
		loggedIn, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: loggedIn.RefreshToken}))
		require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: loggedIn.RefreshToken}))

		_, err = svc.Refresh(&dto.RefreshTokenRequest{RefreshToken: loggedIn.RefreshToken})
		require.Error(t, err)
	})
}

func TestAuthService_EmailVerification(t *testing.T) {
	env := newTestEnv(t)
	mailer := email.NewMockProvider()
	svc := NewAuthService(env.userRepo, mailer)

	_, err := svc.Register(registerReq("alice"))
	require.NoError(t, err)

	user, err := env.userRepo.FindByEmail("alice@example.com")
	require.NoError(t, err)

	t.Run("valid token verifies and sends a welcome mail", func(t *testing.T) {
		require.NoError(t, svc.VerifyEmail(user.VerificationToken))

		verified, err := env.userRepo.FindByEmail("alice@example.com")
		require.NoError(t, err)
		assert.True(t, verified.IsVerified)
		assert.Empty(t, verified.VerificationToken)
		assert.Equal(t, "alice@example.com", mailer.LastTo())
	})

	t.Run("bogus token is rejected", func(t *testing.T) {
		err := svc.VerifyEmail("bogus")
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	env := newTestEnv(t)
	mailer := email.NewMockProvider()
	svc := NewAuthService(env.userRepo, mailer)

	registerVerified(t, env, svc, "alice")

	t.Run("unknown address is silently accepted", func(t *testing.T) {
		sent := len(mailer.Sent)
		require.NoError(t, svc.RequestPasswordReset("nobody@example.com"))
		assert.Len(t, mailer.Sent, sent)
	})

	t.Run("full reset flow", func(t *testing.T) {
		require.NoError(t, svc.RequestPasswordReset("alice@example.com"))

		user, err := env.userRepo.FindByEmail("alice@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, user.ResetToken)

		require.NoError(t, svc.ConfirmPasswordReset(&dto.PasswordResetConfirm{
			Token:       user.ResetToken,
			NewPassword: "battery-staple",
		}))

		// Old password no longer works, the new one does.
		_, err = svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
		require.Error(t, err)
		_, err = svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "battery-staple"})
		require.NoError(t, err)
	})

	t.Run("reset token is single use", func(t *testing.T) {
		user, err := env.userRepo.FindByEmail("alice@example.com")
		require.NoError(t, err)
		assert.Empty(t, user.ResetToken)

		err = svc.ConfirmPasswordReset(&dto.PasswordResetConfirm{Token: "stale", NewPassword: "whatever-else"})
		require.Error(t, err)
	})

	t.Run("reset revokes open sessions", func(t *testing.T) {
		session, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "battery-staple"})
		require.NoError(t, err)

		require.NoError(t, svc.RequestPasswordReset("alice@example.com"))
		user, err := env.userRepo.FindByEmail("alice@example.com")
		require.NoError(t, err)

		require.NoError(t, svc.ConfirmPasswordReset(&dto.PasswordResetConfirm{
			Token:       user.ResetToken,
			NewPassword: "yet-another-pass",
		}))

		_, err = svc.Refresh(&dto.RefreshTokenRequest{RefreshToken: session.RefreshToken})
		require.Error(t, err)
	})
}
