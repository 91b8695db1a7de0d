package models

import "time"

// Message is one direct message. Immutable after creation except IsRead,
// which flips to true when the receiver opens the conversation.
type Message struct {
	BaseModel
	Content string    `gorm:"type:text;not null" json:"content"`
	SentAt  time.Time `gorm:"index" json:"sent_at"`
	IsRead  bool      `gorm:"default:false" json:"is_read"`

	SenderID   string `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID string `gorm:"type:uuid;not null;index" json:"receiver_id"`
	// ConversationID is derived from the participant pair, never stored
	// as its own entity. All messages between two users share one value.
	ConversationID string `gorm:"size:80;not null;index" json:"conversation_id"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
