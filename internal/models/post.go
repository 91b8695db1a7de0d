package models

import "time"

type Post struct {
	BaseModel
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"size:500" json:"description"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Url         string    `gorm:"size:255;uniqueIndex;not null" json:"url"`
	Image       string    `gorm:"size:255;default:'default.jpg'" json:"image"`
	IsActive    bool      `gorm:"default:false;index" json:"is_active"`
	PublishedOn time.Time `gorm:"index" json:"published_on"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`

	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Likes    []Like    `gorm:"foreignKey:PostID" json:"-"`
	Tags     []Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

type Like struct {
	PostID    string    `gorm:"type:uuid;primaryKey" json:"post_id"`
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
