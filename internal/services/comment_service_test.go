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

func createActivePost(t *testing.T, env *testEnv, author *models.User, slug string) *dto.PostSummary {
	t.Helper()

	postSvc := newPostService(env)
	req := createPostReq(slug)
	req.IsActive = true
	post, err := postSvc.Create(author.ID, true, req)
	require.NoError(t, err)
	return post
}

func TestCommentService_Create(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCommentService(env.commentRepo, env.postRepo, env.userRepo, env.notificationSvc)

	author := createTestUser(t, env.db, "alice")
	commenter := createTestUser(t, env.db, "bob")
	replier := createTestUser(t, env.db, "carol")

	post := createActivePost(t, env, author, "discussion-post")

	var topLevel *dto.CommentDTO

	t.Run("comment notifies the post author", func(t *testing.T) {
		var err error
		topLevel, err = svc.Create(post.ID, commenter.ID, &dto.CreateCommentRequest{Text: "nice post"})
		require.NoError(t, err)
		assert.Equal(t, "nice post", topLevel.Text)
		assert.Equal(t, "bob", topLevel.Author.UserName)

		notifications := env.notificationsFor(t, author.ID)
		require.Len(t, notifications, 1)
		assert.Equal(t, NotificationTypeNewComment, notifications[0].Type)
	})

	t.Run("reply notifies the parent's author, not the post author", func(t *testing.T) {
		_, err := svc.Create(post.ID, replier.ID, &dto.CreateCommentRequest{
			Text: "agreed", ParentID: topLevel.ID,
		})
		require.NoError(t, err)

		assert.Len(t, env.notificationsFor(t, author.ID), 1)
		replyNotifs := env.notificationsFor(t, commenter.ID)
		require.Len(t, replyNotifs, 1)
		assert.Equal(t, NotificationTypeNewReply, replyNotifs[0].Type)
	})

	t.Run("replying to a reply attaches to the top-level comment", func(t *testing.T) {
		comments, err := svc.ListByPost(post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		require.Len(t, comments[0].Replies, 1)

		replyID := comments[0].Replies[0].ID
		_, err = svc.Create(post.ID, author.ID, &dto.CreateCommentRequest{
			Text: "thanks both", ParentID: replyID,
		})
		require.NoError(t, err)

		comments, err = svc.ListByPost(post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Len(t, comments[0].Replies, 2)
	})

	t.Run("nobody is notified about their own activity", func(t *testing.T) {
		before := len(env.notificationsFor(t, author.ID))
		_, err := svc.Create(post.ID, author.ID, &dto.CreateCommentRequest{Text: "a note on my own post"})
		require.NoError(t, err)
		assert.Len(t, env.notificationsFor(t, author.ID), before)
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		_, err := svc.Create(post.ID, commenter.ID, &dto.CreateCommentRequest{Text: "   "})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("parent from another post is rejected", func(t *testing.T) {
		otherPost := createActivePost(t, env, author, "another-post")
		_, err := svc.Create(otherPost.ID, commenter.ID, &dto.CreateCommentRequest{
			Text: "hi", ParentID: topLevel.ID,
		})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	})

	t.Run("unpublished posts cannot be commented on", func(t *testing.T) {
		postSvc := newPostService(env)
		draft, err := postSvc.Create(author.ID, false, createPostReq("draft-post"))
		require.NoError(t, err)

		_, err = svc.Create(draft.ID, commenter.ID, &dto.CreateCommentRequest{Text: "too early"})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	})
}

func TestCommentService_Delete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCommentService(env.commentRepo, env.postRepo, env.userRepo, env.notificationSvc)

	postAuthor := createTestUser(t, env.db, "alice")
	commenter := createTestUser(t, env.db, "bob")
	stranger := createTestUser(t, env.db, "mallory")

	post := createActivePost(t, env, postAuthor, "moderated-post")

	newComment := func(t *testing.T) string {
		comment, err := svc.Create(post.ID, commenter.ID, &dto.CreateCommentRequest{Text: "a comment"})
		require.NoError(t, err)
		return comment.ID
	}

	t.Run("strangers cannot delete", func(t *testing.T) {
		id := newComment(t)
		err := svc.Delete(id, stranger.ID, false)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)

		// The comment survived the failed attempt.
		require.NoError(t, svc.Delete(id, commenter.ID, false))
	})

	t.Run("the comment author can delete", func(t *testing.T) {
		id := newComment(t)
		require.NoError(t, svc.Delete(id, commenter.ID, false))
	})

	t.Run("the post author can moderate comments", func(t *testing.T) {
		id := newComment(t)
		require.NoError(t, svc.Delete(id, postAuthor.ID, false))
	})

	t.Run("admins can delete anything", func(t *testing.T) {
		id := newComment(t)
		require.NoError(t, svc.Delete(id, stranger.ID, true))
	})

	t.Run("deleted comments disappear from the listing", func(t *testing.T) {
		comments, err := svc.ListByPost(post.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
