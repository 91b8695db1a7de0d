package services

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapp_backend/internal/models"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

func newPostService(env *testEnv) PostService {
	return NewPostService(env.postRepo, env.userRepo, env.commentRepo, env.notificationSvc)
}

func createPostReq(slug string) *dto.CreatePostRequest {
	return &dto.CreatePostRequest{
		Title:       "Title for " + slug,
		Description: "Description",
		Content:     "Some content",
		Url:         slug,
	}
}

func TestPostService_Create(t *testing.T) {
	env := newTestEnv(t)
	svc := newPostService(env)

	author := createTestUser(t, env.db, "alice")
	admin := createTestUser(t, env.db, "admin")

	t.Run("regular users start inactive even when asking to publish", func(t *testing.T) {
		req := createPostReq("my-first-post")
		req.IsActive = true
		post, err := svc.Create(author.ID, false, req)
		require.NoError(t, err)
		assert.False(t, post.IsActive)
	})

	t.Run("admins publish directly", func(t *testing.T) {
		req := createPostReq("admin-post")
		req.IsActive = true
		post, err := svc.Create(admin.ID, true, req)
		require.NoError(t, err)
		assert.True(t, post.IsActive)
	})

	t.Run("taken slug is rejected", func(t *testing.T) {
		_, err := svc.Create(author.ID, false, createPostReq("my-first-post"))
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
	})
}

func TestPostService_SubmissionFanOut(t *testing.T) {
	env := newTestEnv(t)
	svc := newPostService(env)

	author := createTestUser(t, env.db, "alice")
	admin1 := createTestUser(t, env.db, "admin1")
	admin2 := createTestUser(t, env.db, "admin2")
	require.NoError(t, env.db.Model(admin1).Update("role", models.UserRoleAdmin).Error)
	require.NoError(t, env.db.Model(admin2).Update("role", models.UserRoleAdmin).Error)

	t.Run("every admin gets one notification", func(t *testing.T) {
		post, err := svc.Create(author.ID, false, createPostReq("fresh-post"))
		require.NoError(t, err)

		for _, admin := range []string{admin1.ID, admin2.ID} {
			notifications := env.notificationsFor(t, admin)
			require.Len(t, notifications, 1)
			assert.Equal(t, NotificationTypePostSubmitted, notifications[0].Type)
			assert.Contains(t, notifications[0].Message, post.Title)
			assert.Contains(t, notifications[0].Message, author.Name)
		}
		assert.Empty(t, env.notificationsFor(t, author.ID))
	})

	t.Run("an admin author is not notified about their own post", func(t *testing.T) {
		_, err := svc.Create(admin1.ID, true, createPostReq("admins-own-post"))
		require.NoError(t, err)

		assert.Len(t, env.notificationsFor(t, admin1.ID), 1)
		assert.Len(t, env.notificationsFor(t, admin2.ID), 2)
	})
}

func TestPostService_Approve(t *testing.T) {
	env := newTestEnv(t)
	svc := newPostService(env)

	author := createTestUser(t, env.db, "alice")
	moderator := createTestUser(t, env.db, "moderator")
	post, err := svc.Create(author.ID, false, createPostReq("pending-post"))
	require.NoError(t, err)

	t.Run("activates and notifies the author", func(t *testing.T) {
		require.NoError(t, svc.Approve(post.ID, moderator.ID))

		detail, err := svc.GetBySlug("pending-post", "")
		require.NoError(t, err)
		assert.True(t, detail.IsActive)

		notifications := env.notificationsFor(t, author.ID)
		require.Len(t, notifications, 1)
		assert.Equal(t, NotificationTypePostApproved, notifications[0].Type)
		assert.Equal(t,
			fmt.Sprintf("Your post %q has been approved and published by an admin.", post.Title),
			notifications[0].Message)
		assert.Equal(t, "/posts/details/pending-post", notifications[0].LinkUrl)
	})

	t.Run("approving an already published post fails", func(t *testing.T) {
		err := svc.Approve(post.ID, moderator.ID)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)

		// And does not notify again.
		assert.Len(t, env.notificationsFor(t, author.ID), 1)
	})

	t.Run("an admin approving their own post is not notified", func(t *testing.T) {
		own, err := svc.Create(moderator.ID, false, createPostReq("moderators-post"))
		require.NoError(t, err)
		before := len(env.notificationsFor(t, moderator.ID))

		require.NoError(t, svc.Approve(own.ID, moderator.ID))

		detail, err := svc.GetBySlug("moderators-post", "")
		require.NoError(t, err)
		assert.True(t, detail.IsActive)
		assert.Len(t, env.notificationsFor(t, moderator.ID), before)
	})
}

func TestPostService_Edit(t *testing.T) {
	env := newTestEnv(t)
	svc := newPostService(env)

	author := createTestUser(t, env.db, "alice")
	admin := createTestUser(t, env.db, "admin")
	other := createTestUser(t, env.db, "mallory")

	post, err := svc.Create(author.ID, false, createPostReq("editable-post"))
	require.NoError(t, err)

	editReq := func() *dto.EditPostRequest {
		return &dto.EditPostRequest{
			Title:       "Edited title",
			Description: "Edited description",
			Content:     "Edited content",
			Url:         "editable-post",
		}
	}

	t.Run("strangers cannot edit", func(t *testing.T) {
		_, err := svc.Edit(post.ID, other.ID, false, editReq())
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
	})

	t.Run("admin activating someone else's post notifies the author", func(t *testing.T) {
		req := editReq()
		req.IsActive = true
		_, err := svc.Edit(post.ID, admin.ID, true, req)
		require.NoError(t, err)

		notifications := env.notificationsFor(t, author.ID)
		require.Len(t, notifications, 1)
		assert.Equal(t, NotificationTypePostApproved, notifications[0].Type)
	})

	t.Run("author edit sends the post back for approval", func(t *testing.T) {
		req := editReq()
		req.IsActive = true
		updated, err := svc.Edit(post.ID, author.ID, false, req)
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
	})
}

func TestPostService_Likes(t *testing.T) {
	env := newTestEnv(t)
	svc := newPostService(env)

	author := createTestUser(t, env.db, "alice")
	fan := createTestUser(t, env.db, "bob")

	post, err := svc.Create(author.ID, false, createPostReq("likable-post"))
	require.NoError(t, err)

	t.Run("like counts and notifies the author", func(t *testing.T) {
		resp, err := svc.Like(post.ID, fan.ID)
		require.NoError(t, err)
		assert.True(t, resp.Liked)
		assert.EqualValues(t, 1, resp.LikeCount)

		notifications := env.notificationsFor(t, author.ID)
		require.Len(t, notifications, 1)
		assert.Equal(t, NotificationTypeNewLike, notifications[0].Type)
	})

	t.Run("double like is a conflict", func(t *testing.T) {
		_, err := svc.Like(post.ID, fan.ID)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
	})

	t.Run("liking your own post is allowed but silent", func(t *testing.T) {
		before := len(env.notificationsFor(t, author.ID))
		resp, err := svc.Like(post.ID, author.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, resp.LikeCount)
		assert.Len(t, env.notificationsFor(t, author.ID), before)
	})

	t.Run("unlike", func(t *testing.T) {
		resp, err := svc.Unlike(post.ID, fan.ID)
		require.NoError(t, err)
		assert.False(t, resp.Liked)
		assert.EqualValues(t, 1, resp.LikeCount)
	})

	t.Run("unliking without a like is a 404", func(t *testing.T) {
		_, err := svc.Unlike(post.ID, fan.ID)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	})
}

func TestPostService_Listings(t *testing.T) {
	env := newTestEnv(t)
	svc := newPostService(env)

	author := createTestUser(t, env.db, "alice")

	for i := 0; i < 6; i++ {
		req := createPostReq(fmt.Sprintf("post-%d", i))
		req.IsActive = true
		_, err := svc.Create(author.ID, true, req)
		require.NoError(t, err)
	}
	_, err := svc.Create(author.ID, false, createPostReq("hidden-draft"))
	require.NoError(t, err)

	t.Run("public feed pages by four and hides drafts", func(t *testing.T) {
		page1, err := svc.ListActive(dto.ListPostsQuery{Page: 1})
		require.NoError(t, err)
		assert.Len(t, page1.Posts, 4)
		assert.EqualValues(t, 6, page1.Pagination.TotalItems)
		assert.Equal(t, 2, page1.Pagination.TotalPages)

		page2, err := svc.ListActive(dto.ListPostsQuery{Page: 2})
		require.NoError(t, err)
		assert.Len(t, page2.Posts, 2)
	})

	t.Run("drafts are invisible on the public detail route", func(t *testing.T) {
		_, err := svc.GetBySlug("hidden-draft", "")
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	})

	t.Run("my posts include drafts and page by six", func(t *testing.T) {
		mine, err := svc.ListMine(author.ID, false, dto.MyPostsQuery{Page: 1})
		require.NoError(t, err)
		assert.Len(t, mine.Posts, 6)
		assert.EqualValues(t, 7, mine.Pagination.TotalItems)
	})

	t.Run("status filter", func(t *testing.T) {
		drafts, err := svc.ListMine(author.ID, false, dto.MyPostsQuery{Status: "inactive", Page: 1})
		require.NoError(t, err)
		require.Len(t, drafts.Posts, 1)
		assert.Equal(t, "hidden-draft", drafts.Posts[0].Url)
	})
}
