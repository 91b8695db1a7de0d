package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"blogapp_backend/internal/auth"
	"blogapp_backend/internal/email"
	"blogapp_backend/internal/logger"
	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

const (
	refreshTokenTTL = 30 * 24 * time.Hour
	resetTokenTTL   = time.Hour
)

type AuthService interface {
	// Register creates the account and sends a verification mail. No
	// session is issued: the account cannot log in until the address is
	// confirmed.
	Register(req *dto.RegisterRequest) (*dto.UserDTO, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(req *dto.RefreshTokenRequest) (*dto.AuthResponse, error)
	Logout(req *dto.LogoutRequest) error

	VerifyEmail(token string) error
	RequestPasswordReset(emailAddr string) error
	ConfirmPasswordReset(req *dto.PasswordResetConfirm) error
}

type authService struct {
	userRepo repositories.UserRepository
	mailer   email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, mailer email.Provider) AuthService {
	return &authService{userRepo: userRepo, mailer: mailer}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.UserDTO, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		UserName:          req.UserName,
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              models.UserRoleUser,
		VerificationToken: randomToken(),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Registration succeeds even when the relay is down. The user can
	// request a fresh verification mail later.
	if err := s.mailer.SendVerificationEmail(user.Email, user.Name, user.VerificationToken); err != nil {
		logger.WithError(err).Warn("failed to send verification email", "user_id", user.ID)
	}

	out := dto.UserToDTO(user)
	return &out, nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}
	if !user.IsVerified {
		return nil, apperrors.NewForbiddenError("Please confirm your email before logging in")
	}

	return s.issueTokens(user)
}

func (s *authService) Refresh(req *dto.RefreshTokenRequest) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
		}
		return nil, apperrors.InternalError(err)
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(stored.Token)
		return nil, apperrors.NewUnauthorizedError("Refresh token expired")
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}

	// Rotate: the presented token is single use.
	if err := s.userRepo.DeleteRefreshToken(stored.Token); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.issueTokens(user)
}

func (s *authService) Logout(req *dto.LogoutRequest) error {
	if err := s.userRepo.DeleteRefreshToken(req.RefreshToken); err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) VerifyEmail(token string) error {
	user, err := s.userRepo.FindByVerificationToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewBadRequestError("Invalid verification token")
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.VerifyUser(user.ID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
		logger.WithError(err).Warn("failed to send welcome email", "user_id", user.ID)
	}
	return nil
}

func (s *authService) RequestPasswordReset(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Do not reveal whether the address is registered.
			return nil
		}
		return apperrors.InternalError(err)
	}

	exp := time.Now().Add(resetTokenTTL)
	user.ResetToken = randomToken()
	user.ResetTokenExp = &exp
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, user.Name, user.ResetToken); err != nil {
		logger.WithError(err).Warn("failed to send password reset email", "user_id", user.ID)
	}
	return nil
}

func (s *authService) ConfirmPasswordReset(req *dto.PasswordResetConfirm) error {
	user, err := s.userRepo.FindByResetToken(req.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewBadRequestError("Invalid or expired reset token")
		}
		return apperrors.InternalError(err)
	}
	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.NewBadRequestError("Invalid or expired reset token")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExp = nil
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	// A password change invalidates every open session.
	return s.revokeSessions(user.ID)
}

func (s *authService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     randomToken(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		User:         dto.UserToDTO(user),
	}, nil
}

func (s *authService) revokeSessions(userID string) error {
	if err := s.userRepo.DeleteUserRefreshTokens(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func randomToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process cannot do anything useful.
		logger.Fatal("crypto/rand unavailable", "error", err)
	}
	return hex.EncodeToString(buf)
}
