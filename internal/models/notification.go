package models

import (
	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    string         `gorm:"size:40;not null" json:"type"` // "new_comment", "new_reply", "new_like", "new_follower", "post_approved", "post_submitted", "new_message"
	Message string         `gorm:"not null" json:"message"`
	LinkUrl string         `gorm:"size:255" json:"link_url"`
	Data    datatypes.JSON `json:"data,omitempty"` // {"post_id": "...", "actor_id": "..."}
	IsRead  bool           `gorm:"default:false;index" json:"is_read"`
}

func (Notification) TableName() string {
	return "notifications"
}
