package dto

import (
	"time"

	"blogapp_backend/internal/models"
)

// ---------------- Requests ----------------

type RegisterRequest struct {
	UserName string `json:"username" validate:"required,min=3,max=30,is-slug"`
	Name     string `json:"name" validate:"required,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ---------------- Responses ----------------

type AuthResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

type UserDTO struct {
	ID         string          `json:"id"`
	UserName   string          `json:"username"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Image      string          `json:"image"`
	Role       models.UserRole `json:"role"`
	IsVerified bool            `json:"is_verified"`
	CreatedAt  time.Time       `json:"created_at"`
}

func UserToDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		UserName:   user.UserName,
		Name:       user.Name,
		Email:      user.Email,
		Image:      user.Image,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}
