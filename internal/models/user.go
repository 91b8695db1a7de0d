package models

import "time"

type User struct {
	BaseModel
	UserName          string     `gorm:"size:60;uniqueIndex;not null" json:"username"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	Name              string     `gorm:"size:255" json:"name"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Image             string     `gorm:"size:255;default:'default-avatar.jpg'" json:"image"`
	Role              UserRole   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsVerified        bool       `gorm:"default:false" json:"is_verified"`
	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExp     *time.Time `json:"-"`

	// Relations
	Posts         []Post         `gorm:"foreignKey:UserID" json:"-"`
	Comments      []Comment      `gorm:"foreignKey:UserID" json:"-"`
	Likes         []Like         `gorm:"foreignKey:UserID" json:"-"`
	Notifications []Notification `gorm:"foreignKey:UserID" json:"-"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
