package dto

import (
	"encoding/json"
	"time"

	"blogapp_backend/internal/models"
)

// ---------------- Requests ----------------

type ListNotificationsQuery struct {
	Type       string `form:"type"`
	UnreadOnly bool   `form:"unread_only"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// ---------------- Responses ----------------

type NotificationDTO struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	LinkUrl   string                 `json:"link_url"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationDTO `json:"notifications"`
	UnreadCount   int64             `json:"unread_count"`
	Pagination    Pagination        `json:"pagination"`
}

func NotificationToDTO(notification *models.Notification) NotificationDTO {
	out := NotificationDTO{
		ID:        notification.ID,
		Type:      notification.Type,
		Message:   notification.Message,
		LinkUrl:   notification.LinkUrl,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
	if len(notification.Data) > 0 {
		// Malformed payloads are skipped rather than failing the listing.
		_ = json.Unmarshal(notification.Data, &out.Data)
	}
	return out
}

func NotificationsToDTOs(notifications []models.Notification) []NotificationDTO {
	out := make([]NotificationDTO, 0, len(notifications))
	for i := range notifications {
		out = append(out, NotificationToDTO(&notifications[i]))
	}
	return out
}
