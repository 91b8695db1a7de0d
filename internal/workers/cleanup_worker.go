package workers

import (
	"context"
	"time"

	"blogapp_backend/internal/logger"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services"
)

const (
	cleanupInterval        = 6 * time.Hour
	notificationRetainDays = 30
)

// CleanupWorker prunes expired refresh tokens and old read notifications
// in the background.
type CleanupWorker struct {
	userRepo        repositories.UserRepository
	notificationSvc services.NotificationService
}

func NewCleanupWorker(userRepo repositories.UserRepository, notificationSvc services.NotificationService) *CleanupWorker {
	return &CleanupWorker{
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

func (w *CleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup worker stopped")
			return
		case <-ticker.C:
			if err := w.userRepo.CleanExpiredRefreshTokens(); err != nil {
				logger.WithError(err).Error("failed to clean expired refresh tokens")
			}
			removed, err := w.notificationSvc.CleanOldNotifications(notificationRetainDays)
			if err != nil {
				logger.WithError(err).Error("failed to clean old notifications")
			} else if removed > 0 {
				logger.Info("Removed old notifications", "count", removed)
			}
		}
	}
}
