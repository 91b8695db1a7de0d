package models

import "time"

type Comment struct {
	BaseModel
	Text        string    `gorm:"type:text;not null" json:"text"`
	IsDeleted   bool      `gorm:"default:false" json:"is_deleted"`
	PublishedOn time.Time `json:"published_on"`
	PostID      string    `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	// ParentID is set on replies and points at the parent comment.
	ParentID *string `gorm:"type:uuid;index" json:"parent_id,omitempty"`

	User    *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post    *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
