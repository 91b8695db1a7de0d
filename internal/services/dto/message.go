package dto

import (
	"time"

	"blogapp_backend/internal/models"
)

// ---------------- Requests ----------------

type SendMessageRequest struct {
	ReceiverUsername string `json:"receiver_username" validate:"required,max=60"`
	Content          string `json:"content" validate:"required,max=4000"`
}

// ---------------- Responses ----------------

type MessageDTO struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sent_at"`
	IsRead         bool      `json:"is_read"`
	SenderID       string    `json:"sender_id"`
	ReceiverID     string    `json:"receiver_id"`
	// True when the requesting user wrote this message. Lets clients
	// align bubbles without comparing ids themselves.
	IsMine bool `json:"is_mine"`
}

// ConversationDTO is one inbox row: the peer, the latest message and how
// many messages the requesting user has not read yet.
type ConversationDTO struct {
	ConversationID string     `json:"conversation_id"`
	Peer           ContactDTO `json:"peer"`
	LastMessage    MessageDTO `json:"last_message"`
	UnreadCount    int64      `json:"unread_count"`
}

type InboxResponse struct {
	Conversations []ConversationDTO `json:"conversations"`
	// Mutual follows the user can start a new conversation with.
	Contacts    []ContactDTO `json:"contacts"`
	TotalUnread int64        `json:"total_unread"`
}

type ConversationResponse struct {
	ConversationID string       `json:"conversation_id"`
	Peer           ContactDTO   `json:"peer"`
	Messages       []MessageDTO `json:"messages"`
}

func MessageToDTO(message *models.Message, viewerID string) MessageDTO {
	return MessageDTO{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		Content:        message.Content,
		SentAt:         message.SentAt,
		IsRead:         message.IsRead,
		SenderID:       message.SenderID,
		ReceiverID:     message.ReceiverID,
		IsMine:         message.SenderID == viewerID,
	}
}

func UserToContact(user *models.User) ContactDTO {
	return ContactDTO{
		ID:       user.ID,
		UserName: user.UserName,
		Name:     user.Name,
		Image:    user.Image,
	}
}
