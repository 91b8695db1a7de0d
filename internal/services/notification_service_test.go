package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

func TestNotificationService_Notify(t *testing.T) {
	env := newTestEnv(t)
	svc := env.notificationSvc
	user := createTestUser(t, env.db, "alice")

	t.Run("stores a notification with its payload", func(t *testing.T) {
		svc.Notify(user.ID, NotificationTypeNewLike, "somebody liked your post", "/posts/details/hello",
			map[string]interface{}{"post_id": "abc"})

		notifications := env.notificationsFor(t, user.ID)
		require.Len(t, notifications, 1)
		assert.Equal(t, NotificationTypeNewLike, notifications[0].Type)
		assert.Equal(t, "somebody liked your post", notifications[0].Message)
		assert.Equal(t, "/posts/details/hello", notifications[0].LinkUrl)
		assert.False(t, notifications[0].IsRead)
		assert.JSONEq(t, `{"post_id":"abc"}`, string(notifications[0].Data))
	})

	t.Run("empty recipient, message or link is a silent no-op", func(t *testing.T) {
		svc.Notify("", NotificationTypeNewLike, "msg", "/link", nil)
		svc.Notify(user.ID, NotificationTypeNewLike, "", "/link", nil)
		svc.Notify(user.ID, NotificationTypeNewLike, "msg", "", nil)

		assert.Len(t, env.notificationsFor(t, user.ID), 1)
		assert.Zero(t, svc.FailureCount())
	})
}

func TestNotificationService_NotifyMany(t *testing.T) {
	env := newTestEnv(t)
	svc := env.notificationSvc

	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")

	svc.NotifyMany([]string{alice.ID, "", bob.ID}, NotificationTypePostApproved,
		"Your post has been approved", "/posts/details/hello", nil)

	assert.Len(t, env.notificationsFor(t, alice.ID), 1)
	assert.Len(t, env.notificationsFor(t, bob.ID), 1)

	t.Run("empty recipient list is a no-op", func(t *testing.T) {
		svc.NotifyMany(nil, NotificationTypePostApproved, "msg", "/link", nil)
		svc.NotifyMany([]string{""}, NotificationTypePostApproved, "msg", "/link", nil)
		assert.Len(t, env.notificationsFor(t, alice.ID), 1)
	})
}

func TestNotificationService_ReadTracking(t *testing.T) {
	env := newTestEnv(t)
	svc := env.notificationSvc

	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")

	svc.Notify(alice.ID, NotificationTypeNewFollower, "bob started following you", "/profile/bob", nil)
	svc.Notify(alice.ID, NotificationTypeNewLike, "bob liked your post", "/posts/details/hello", nil)
	svc.Notify(bob.ID, NotificationTypeNewMessage, "New message from alice", "/messages/x", nil)

	t.Run("unread count", func(t *testing.T) {
		count, err := svc.GetUnreadCount(alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("mark one as read", func(t *testing.T) {
		notifications := env.notificationsFor(t, alice.ID)
		require.NotEmpty(t, notifications)

		require.NoError(t, svc.MarkAsRead(alice.ID, notifications[0].ID))

		count, err := svc.GetUnreadCount(alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("cannot read someone else's notification", func(t *testing.T) {
		bobNotifications := env.notificationsFor(t, bob.ID)
		require.NotEmpty(t, bobNotifications)

		err := svc.MarkAsRead(alice.ID, bobNotifications[0].ID)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)

		count, err := svc.GetUnreadCount(bob.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("mark all as read", func(t *testing.T) {
		updated, err := svc.MarkAllAsRead(alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, updated)

		count, err := svc.GetUnreadCount(alice.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestNotificationService_Listing(t *testing.T) {
	env := newTestEnv(t)
	svc := env.notificationSvc
	alice := createTestUser(t, env.db, "alice")

	for i := 0; i < 7; i++ {
		svc.Notify(alice.ID, NotificationTypeNewLike, "somebody liked your post", "/posts/details/hello", nil)
	}
	svc.Notify(alice.ID, NotificationTypeNewFollower, "bob started following you", "/profile/bob", nil)

	t.Run("paging", func(t *testing.T) {
		resp, err := svc.GetUserNotifications(alice.ID, dto.ListNotificationsQuery{Page: 1, PageSize: 5})
		require.NoError(t, err)
		assert.Len(t, resp.Notifications, 5)
		assert.EqualValues(t, 8, resp.Pagination.TotalItems)
		assert.EqualValues(t, 8, resp.UnreadCount)
	})

	t.Run("type filter", func(t *testing.T) {
		resp, err := svc.GetUserNotifications(alice.ID, dto.ListNotificationsQuery{
			Type: NotificationTypeNewFollower, Page: 1, PageSize: 20,
		})
		require.NoError(t, err)
		require.Len(t, resp.Notifications, 1)
		assert.Equal(t, NotificationTypeNewFollower, resp.Notifications[0].Type)
	})

	t.Run("recent caps at five", func(t *testing.T) {
		recent, err := svc.GetRecent(alice.ID)
		require.NoError(t, err)
		assert.Len(t, recent, 5)
	})
}
