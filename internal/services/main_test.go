package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"blogapp_backend/internal/email"
	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database keeps every pooled connection on the
	// same in-memory instance, isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Tag{},
		&models.Follow{},
		&models.Message{},
		&models.Notification{},
		&models.Collection{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		UserName:     username,
		Name:         "Test " + username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         models.UserRoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type testEnv struct {
	db              *gorm.DB
	userRepo        repositories.UserRepository
	postRepo        repositories.PostRepository
	commentRepo     repositories.CommentRepository
	followRepo      repositories.FollowRepository
	messageRepo     repositories.MessageRepository
	notifRepo       repositories.NotificationRepository
	notificationSvc NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	notifRepo := repositories.NewNotificationRepository(db)
	return &testEnv{
		db:              db,
		userRepo:        repositories.NewUserRepository(db),
		postRepo:        repositories.NewPostRepository(db),
		commentRepo:     repositories.NewCommentRepository(db),
		followRepo:      repositories.NewFollowRepository(db),
		messageRepo:     repositories.NewMessageRepository(db),
		notifRepo:       notifRepo,
		notificationSvc: NewNotificationService(notifRepo),
	}
}

func newTestAuthService(env *testEnv) AuthService {
	return NewAuthService(env.userRepo, email.NewMockProvider())
}

func (e *testEnv) notificationsFor(t *testing.T, userID string) []models.Notification {
	t.Helper()

	var notifications []models.Notification
	require.NoError(t, e.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&notifications).Error)
	return notifications
}
