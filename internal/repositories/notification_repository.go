package repositories

import (
	"errors"
	"time"

	"blogapp_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationCriteria filters the notification listing.
type NotificationCriteria struct {
	UserID     string
	Type       string
	UnreadOnly bool
	Page       int
	PageSize   int
}

type NotificationRepository interface {
	Create(notification *models.Notification) error
	// CreateBatch inserts a set of notifications in one transaction. Used
	// by fan-out paths so a partial failure rolls back the whole batch.
	CreateBatch(notifications []models.Notification) error

	FindByID(id string) (*models.Notification, error)
	FindByCriteria(criteria NotificationCriteria) ([]models.Notification, int64, error)
	FindRecent(userID string, limit int) ([]models.Notification, error)

	CountUnread(userID string) (int64, error)

	// MarkAsRead marks a single notification read, scoped to its owner so
	// a user cannot touch someone else's notification.
	MarkAsRead(notificationID, userID string) error
	MarkAllAsRead(userID string) (int64, error)

	// DeleteOlderThan removes read notifications created before the
	// cutoff. Returns the number of rows removed.
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) CreateBatch(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&notifications).Error
	})
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindByCriteria(criteria NotificationCriteria) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	query := r.db.Model(&models.Notification{}).Where("user_id = ?", criteria.UserID)
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}
	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Limit(criteria.PageSize).
		Offset((criteria.Page - 1) * criteria.PageSize).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepositoryImpl) FindRecent(userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(notificationID, userID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Delete(&models.Notification{}, "is_read = ? AND created_at < ?", true, cutoff)
	return result.RowsAffected, result.Error
}
