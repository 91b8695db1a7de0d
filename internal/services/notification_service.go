package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"blogapp_backend/internal/logger"
	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

// NotificationPusher delivers a freshly stored notification to a connected
// client, if any. Implemented by the websocket hub.
type NotificationPusher interface {
	PushNotification(userID string, notification dto.NotificationDTO)
}

const (
	NotificationTypeNewComment    = "new_comment"
	NotificationTypeNewReply      = "new_reply"
	NotificationTypeNewLike       = "new_like"
	NotificationTypeNewFollower   = "new_follower"
	NotificationTypePostApproved  = "post_approved"
	NotificationTypePostSubmitted = "post_submitted"
	NotificationTypeNewMessage    = "new_message"
)

type NotificationService interface {
	// Notify stores a notification for a user. Empty userID, message or
	// linkUrl makes it a silent no-op: callers fire and forget.
	Notify(userID, notificationType, message, linkUrl string, data map[string]interface{})

	// NotifyMany fans the same notification out to a set of users in one
	// batch. Failures are logged and counted, never surfaced to callers.
	NotifyMany(userIDs []string, notificationType, message, linkUrl string, data map[string]interface{})

	GetUserNotifications(userID string, query dto.ListNotificationsQuery) (*dto.NotificationListResponse, error)
	GetRecent(userID string) ([]dto.NotificationDTO, error)
	GetUnreadCount(userID string) (int64, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) (int64, error)
	CleanOldNotifications(olderThanDays int) (int64, error)

	// FailureCount reports how many notification writes have failed since
	// startup. Exposed on the admin surface.
	FailureCount() int64

	SetPusher(pusher NotificationPusher)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	pusher           NotificationPusher
	failures         atomic.Int64
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) SetPusher(pusher NotificationPusher) {
	s.pusher = pusher
}

func (s *notificationService) Notify(userID, notificationType, message, linkUrl string, data map[string]interface{}) {
	if userID == "" || message == "" || linkUrl == "" {
		return
	}

	notification := models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Message: message,
		LinkUrl: linkUrl,
	}
	if len(data) > 0 {
		if raw, err := json.Marshal(data); err == nil {
			notification.Data = raw
		}
	}

	if err := s.notificationRepo.Create(&notification); err != nil {
		s.failures.Add(1)
		logger.WithError(err).Error("failed to store notification",
			"user_id", userID, "type", notificationType)
		return
	}

	s.push(userID, &notification)
}

func (s *notificationService) NotifyMany(userIDs []string, notificationType, message, linkUrl string, data map[string]interface{}) {
	if message == "" || linkUrl == "" {
		return
	}

	var raw []byte
	if len(data) > 0 {
		raw, _ = json.Marshal(data)
	}

	notifications := make([]models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		if userID == "" {
			continue
		}
		notifications = append(notifications, models.Notification{
			UserID:  userID,
			Type:    notificationType,
			Message: message,
			LinkUrl: linkUrl,
			Data:    raw,
		})
	}
	if len(notifications) == 0 {
		return
	}

	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		s.failures.Add(int64(len(notifications)))
		logger.WithError(err).Error("failed to fan out notifications",
			"type", notificationType, "recipients", len(notifications))
		return
	}

	for i := range notifications {
		s.push(notifications[i].UserID, &notifications[i])
	}
}

func (s *notificationService) push(userID string, notification *models.Notification) {
	if s.pusher == nil {
		return
	}
	s.pusher.PushNotification(userID, dto.NotificationToDTO(notification))
}

func (s *notificationService) GetUserNotifications(userID string, query dto.ListNotificationsQuery) (*dto.NotificationListResponse, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 20
	}

	notifications, total, err := s.notificationRepo.FindByCriteria(repositories.NotificationCriteria{
		UserID:     userID,
		Type:       query.Type,
		UnreadOnly: query.UnreadOnly,
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.NotificationListResponse{
		Notifications: dto.NotificationsToDTOs(notifications),
		UnreadCount:   unread,
		Pagination:    dto.NewPagination(query.Page, query.PageSize, total),
	}, nil
}

func (s *notificationService) GetRecent(userID string) ([]dto.NotificationDTO, error) {
	notifications, err := s.notificationRepo.FindRecent(userID, 5)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NotificationsToDTOs(notifications), nil
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	if err := s.notificationRepo.MarkAsRead(notificationID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(userID string) (int64, error) {
	updated, err := s.notificationRepo.MarkAllAsRead(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return updated, nil
}

func (s *notificationService) CleanOldNotifications(olderThanDays int) (int64, error) {
	if olderThanDays < 1 {
		olderThanDays = 30
	}
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	removed, err := s.notificationRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return removed, nil
}

func (s *notificationService) FailureCount() int64 {
	return s.failures.Load()
}

// ---------------- Factory helpers ----------------

func FollowerNotification(followerName, followerUserName string) (message, linkUrl string) {
	return fmt.Sprintf("%s started following you", followerName),
		fmt.Sprintf("/profile/%s", followerUserName)
}

func PostSubmittedNotification(authorName, postTitle, postUrl string) (message, linkUrl string) {
	return fmt.Sprintf("%s submitted a new post %q for review", authorName, postTitle),
		fmt.Sprintf("/posts/details/%s", postUrl)
}

func PostApprovedNotification(postTitle, postUrl string) (message, linkUrl string) {
	return fmt.Sprintf("Your post %q has been approved and published by an admin.", postTitle),
		fmt.Sprintf("/posts/details/%s", postUrl)
}

func CommentNotification(commenterName, postTitle, postUrl string) (message, linkUrl string) {
	return fmt.Sprintf("%s commented on your post %q", commenterName, postTitle),
		fmt.Sprintf("/posts/details/%s", postUrl)
}

func ReplyNotification(replierName, postUrl string) (message, linkUrl string) {
	return fmt.Sprintf("%s replied to your comment", replierName),
		fmt.Sprintf("/posts/details/%s", postUrl)
}

func LikeNotification(likerName, postTitle, postUrl string) (message, linkUrl string) {
	return fmt.Sprintf("%s liked your post %q", likerName, postTitle),
		fmt.Sprintf("/posts/details/%s", postUrl)
}

func MessageNotification(senderName, conversationID string) (message, linkUrl string) {
	return fmt.Sprintf("New message from %s", senderName),
		fmt.Sprintf("/messages/%s", conversationID)
}
