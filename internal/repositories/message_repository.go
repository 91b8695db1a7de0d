package repositories

import (
	"errors"
	"time"

	"blogapp_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

// ConversationSummary is one row of the inbox view: the newest message of a
// conversation plus the unread count for the requesting user.
type ConversationSummary struct {
	ConversationID string
	LastMessage    models.Message
	UnreadCount    int64
}

type MessageRepository interface {
	Create(message *models.Message) error
	FindByID(id string) (*models.Message, error)

	// FindByConversation returns all messages of a conversation in
	// chronological order with sender and receiver preloaded.
	FindByConversation(conversationID string) ([]models.Message, error)

	// FindConversationIDs lists the distinct conversation ids touching
	// the given user, newest activity first.
	FindConversationIDs(userID string) ([]string, error)

	// FindLatestInConversation returns the most recent message of a
	// conversation, or ErrMessageNotFound for an empty one.
	FindLatestInConversation(conversationID string) (*models.Message, error)

	// MarkConversationRead marks the unread messages addressed to the
	// given user within a conversation. Messages the user sent are never
	// touched. Returns the number of rows updated.
	MarkConversationRead(conversationID, receiverID string) (int64, error)

	CountUnread(receiverID string) (int64, error)
	CountUnreadInConversation(conversationID, receiverID string) (int64, error)
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(message *models.Message) error {
	if message.SentAt.IsZero() {
		message.SentAt = time.Now().UTC()
	}
	return r.db.Create(message).Error
}

func (r *MessageRepositoryImpl) FindByID(id string) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Sender").Preload("Receiver").First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepositoryImpl) FindByConversation(conversationID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Preload("Sender").
		Preload("Receiver").
		Where("conversation_id = ?", conversationID).
		Order("sent_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) FindConversationIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Message{}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Group("conversation_id").
		Order("MAX(sent_at) DESC").
		Pluck("conversation_id", &ids).Error
	return ids, err
}

func (r *MessageRepositoryImpl) FindLatestInConversation(conversationID string) (*models.Message, error) {
	var message models.Message
	err := r.db.
		Preload("Sender").
		Preload("Receiver").
		Where("conversation_id = ?", conversationID).
		Order("sent_at DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepositoryImpl) MarkConversationRead(conversationID, receiverID string) (int64, error) {
	result := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, receiverID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *MessageRepositoryImpl) CountUnread(receiverID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) CountUnreadInConversation(conversationID, receiverID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, receiverID, false).
		Count(&count).Error
	return count, err
}
