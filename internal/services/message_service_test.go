package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

func TestConversationID(t *testing.T) {
	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, ConversationID("a", "b"), ConversationID("b", "a"))
	})

	t.Run("lexicographic order", func(t *testing.T) {
		assert.Equal(t, "abc_xyz", ConversationID("xyz", "abc"))
		assert.Equal(t, "abc_xyz", ConversationID("abc", "xyz"))
	})

	t.Run("distinct pairs get distinct ids", func(t *testing.T) {
		assert.NotEqual(t, ConversationID("a", "b"), ConversationID("a", "c"))
	})
}

func TestMessageService_Send(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMessageService(env.messageRepo, env.userRepo, env.followRepo, env.notificationSvc)

	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")

	t.Run("stores message with derived conversation id", func(t *testing.T) {
		msg, err := svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverUsername: bob.UserName, Content: "hello"})
		require.NoError(t, err)
		assert.Equal(t, ConversationID(alice.ID, bob.ID), msg.ConversationID)
		assert.Equal(t, "hello", msg.Content)
		assert.True(t, msg.IsMine)
		assert.False(t, msg.IsRead)
	})

	t.Run("either direction lands in the same conversation", func(t *testing.T) {
		reply, err := svc.Send(bob.ID, &dto.SendMessageRequest{ReceiverUsername: alice.UserName, Content: "hi back"})
		require.NoError(t, err)
		assert.Equal(t, ConversationID(alice.ID, bob.ID), reply.ConversationID)
	})

	t.Run("rejects messaging yourself", func(t *testing.T) {
		_, err := svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverUsername: alice.UserName, Content: "note"})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		_, err := svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverUsername: bob.UserName, Content: "   "})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("rejects an unknown receiver username", func(t *testing.T) {
		_, err := svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverUsername: "ghost", Content: "hi"})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	})

	t.Run("notifies the receiver", func(t *testing.T) {
		notifications := env.notificationsFor(t, bob.ID)
		require.NotEmpty(t, notifications)
		assert.Equal(t, NotificationTypeNewMessage, notifications[0].Type)
		assert.Contains(t, notifications[0].Message, alice.Name)
	})
}

func TestMessageService_GetConversation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMessageService(env.messageRepo, env.userRepo, env.followRepo, env.notificationSvc)

	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")
	carol := createTestUser(t, env.db, "carol")

	_, err := svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverUsername: bob.UserName, Content: "one"})
	require.NoError(t, err)
	_, err = svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverUsername: bob.UserName, Content: "two"})
	require.NoError(t, err)
	_, err = svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverUsername: carol.UserName, Content: "other thread"})
	require.NoError(t, err)

	t.Run("returns messages in order and marks them read", func(t *testing.T) {
		conv, err := svc.GetConversation(bob.ID, alice.ID)
		require.NoError(t, err)
		require.Len(t, conv.Messages, 2)
		assert.Equal(t, "one", conv.Messages[0].Content)
		assert.Equal(t, "two", conv.Messages[1].Content)
		for _, m := range conv.Messages {
			assert.True(t, m.IsRead)
			assert.False(t, m.IsMine)
		}

		unread, err := svc.GetUnreadCount(bob.ID)
		require.NoError(t, err)
		assert.Zero(t, unread)
	})

	t.Run("reading one thread leaves others unread", func(t *testing.T) {
		unread, err := svc.GetUnreadCount(carol.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, unread)
	})

	t.Run("sender's own messages stay untouched by receiver reads", func(t *testing.T) {
		// Alice sent everything, nothing is addressed to her yet.
		unread, err := svc.GetUnreadCount(alice.ID)
		require.NoError(t, err)
		assert.Zero(t, unread)
	})

	t.Run("repeated reads are harmless", func(t *testing.T) {
		_, err := svc.GetConversation(bob.ID, alice.ID)
		require.NoError(t, err)
		unread, err := svc.GetUnreadCount(bob.ID)
		require.NoError(t, err)
		assert.Zero(t, unread)
	})

	t.Run("rejects a conversation with yourself", func(t *testing.T) {
		_, err := svc.GetConversation(alice.ID, alice.ID)
		require.Error(t, err)
	})
}

func TestMessageService_GetInbox(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMessageService(env.messageRepo, env.userRepo, env.followRepo, env.notificationSvc)

	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")
	carol := createTestUser(t, env.db, "carol")
	dave := createTestUser(t, env.db, "dave")

	// alice <-> bob mutual follow; alice -> carol one-way.
	require.NoError(t, env.followRepo.Create(alice.ID, bob.ID))
	require.NoError(t, env.followRepo.Create(bob.ID, alice.ID))
	require.NoError(t, env.followRepo.Create(alice.ID, carol.ID))

	_, err := svc.Send(bob.ID, &dto.SendMessageRequest{ReceiverUsername: alice.UserName, Content: "first"})
	require.NoError(t, err)
	_, err = svc.Send(bob.ID, &dto.SendMessageRequest{ReceiverUsername: alice.UserName, Content: "second"})
	require.NoError(t, err)
	_, err = svc.Send(dave.ID, &dto.SendMessageRequest{ReceiverUsername: alice.UserName, Content: "hello from dave"})
	require.NoError(t, err)

	inbox, err := svc.GetInbox(alice.ID)
	require.NoError(t, err)

	t.Run("one row per conversation with the latest message", func(t *testing.T) {
		require.Len(t, inbox.Conversations, 2)

		byPeer := map[string]dto.ConversationDTO{}
		for _, conv := range inbox.Conversations {
			byPeer[conv.Peer.UserName] = conv
		}
		require.Contains(t, byPeer, "bob")
		require.Contains(t, byPeer, "dave")
		assert.Equal(t, "second", byPeer["bob"].LastMessage.Content)
		assert.EqualValues(t, 2, byPeer["bob"].UnreadCount)
		assert.EqualValues(t, 1, byPeer["dave"].UnreadCount)
	})

	t.Run("contacts are mutual follows only", func(t *testing.T) {
		require.Len(t, inbox.Contacts, 1)
		assert.Equal(t, "bob", inbox.Contacts[0].UserName)
	})

	t.Run("total unread sums all conversations", func(t *testing.T) {
		assert.EqualValues(t, 3, inbox.TotalUnread)
	})

	t.Run("empty inbox for a user with no messages", func(t *testing.T) {
		empty, err := svc.GetInbox(carol.ID)
		require.NoError(t, err)
		assert.Empty(t, empty.Conversations)
		assert.Zero(t, empty.TotalUnread)
	})
}
