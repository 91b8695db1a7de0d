package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapp_backend/internal/models"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

func TestUserService_GetProfile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.userRepo, env.postRepo, env.commentRepo, env.followRepo)

	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")

	post := createActivePost(t, env, alice, "alices-post")
	postSvc := newPostService(env)
	_, err := postSvc.Create(alice.ID, false, createPostReq("alices-draft"))
	require.NoError(t, err)

	commentSvc := NewCommentService(env.commentRepo, env.postRepo, env.userRepo, env.notificationSvc)
	_, err = commentSvc.Create(post.ID, alice.ID, &dto.CreateCommentRequest{Text: "my own two cents"})
	require.NoError(t, err)

	require.NoError(t, env.followRepo.Create(bob.ID, alice.ID))

	t.Run("shows active posts and counters", func(t *testing.T) {
		profile, err := svc.GetProfile("alice", "")
		require.NoError(t, err)
		assert.Equal(t, "alice", profile.User.UserName)
		require.Len(t, profile.Posts, 1)
		assert.Equal(t, "alices-post", profile.Posts[0].Url)
		assert.EqualValues(t, 1, profile.FollowerCount)
		assert.Zero(t, profile.FollowingCount)
		assert.False(t, profile.IsFollowing)
		assert.False(t, profile.IsOwnProfile)
	})

	t.Run("shows the user's comments with the commented post", func(t *testing.T) {
		profile, err := svc.GetProfile("alice", "")
		require.NoError(t, err)
		require.Len(t, profile.Comments, 1)
		assert.Equal(t, "my own two cents", profile.Comments[0].Text)
		assert.Equal(t, "alices-post", profile.Comments[0].PostUrl)
		assert.Equal(t, post.Title, profile.Comments[0].PostTitle)
	})

	t.Run("follow state for a logged-in viewer", func(t *testing.T) {
		profile, err := svc.GetProfile("alice", bob.ID)
		require.NoError(t, err)
		assert.True(t, profile.IsFollowing)
		assert.False(t, profile.IsOwnProfile)
	})

	t.Run("own profile", func(t *testing.T) {
		profile, err := svc.GetProfile("alice", alice.ID)
		require.NoError(t, err)
		assert.True(t, profile.IsOwnProfile)
		assert.False(t, profile.IsFollowing)
	})

	t.Run("unknown username is a 404", func(t *testing.T) {
		_, err := svc.GetProfile("ghost", "")
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	})
}

func TestUserService_EditProfile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.userRepo, env.postRepo, env.commentRepo, env.followRepo)
	alice := createTestUser(t, env.db, "alice")

	updated, err := svc.EditProfile(alice.ID, &dto.EditProfileRequest{Name: "Alice Cooper"})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)

	t.Run("empty image leaves the old one in place", func(t *testing.T) {
		require.NoError(t, env.db.Model(alice).Update("image", "avatar/old.png").Error)

		updated, err := svc.EditProfile(alice.ID, &dto.EditProfileRequest{Name: "Alice"})
		require.NoError(t, err)
		assert.Equal(t, "avatar/old.png", updated.Image)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	userSvc := NewUserService(env.userRepo, env.postRepo, env.commentRepo, env.followRepo)

	authSvc := newTestAuthService(env)
	session := registerVerified(t, env, authSvc, "alice")

	t.Run("wrong current password is rejected", func(t *testing.T) {
		err := userSvc.ChangePassword(session.User.ID, &dto.ChangePasswordRequest{
			CurrentPassword: "wrong", NewPassword: "battery-staple",
		})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	})

	t.Run("change revokes open sessions", func(t *testing.T) {
		require.NoError(t, userSvc.ChangePassword(session.User.ID, &dto.ChangePasswordRequest{
			CurrentPassword: "correct-horse", NewPassword: "battery-staple",
		}))

		_, err := authSvc.Refresh(&dto.RefreshTokenRequest{RefreshToken: session.RefreshToken})
		require.Error(t, err)

		_, err = authSvc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "battery-staple"})
		require.NoError(t, err)
	})
}

func TestUserService_Admin(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.userRepo, env.postRepo, env.commentRepo, env.followRepo)

	admin := createTestUser(t, env.db, "admin")
	alice := createTestUser(t, env.db, "alice")

	t.Run("list users", func(t *testing.T) {
		users, pagination, err := svc.ListUsers(1, 10)
		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.EqualValues(t, 2, pagination.TotalItems)
	})

	t.Run("promote a user", func(t *testing.T) {
		require.NoError(t, svc.UpdateRole(admin.ID, alice.ID, models.UserRoleAdmin))

		promoted, err := env.userRepo.FindByID(alice.ID)
		require.NoError(t, err)
		assert.Equal(t, models.UserRoleAdmin, promoted.Role)
	})

	t.Run("changing your own role is rejected", func(t *testing.T) {
		err := svc.UpdateRole(admin.ID, admin.ID, models.UserRoleUser)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	})
}
