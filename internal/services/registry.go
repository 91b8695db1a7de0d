package services

import (
	"gorm.io/gorm"

	"blogapp_backend/internal/config"
	"blogapp_backend/internal/email"
	"blogapp_backend/internal/imageprocessor"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/storage"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	PostService         PostService
	CommentService      CommentService
	TagService          TagService
	FollowService       FollowService
	MessageService      MessageService
	NotificationService NotificationService
	CollectionService   CollectionService
	UploadService       UploadService
	EmailProvider       email.Provider
}

// NewServiceContainer wires repositories into services over a shared db
// handle.
func NewServiceContainer(db *gorm.DB, cfg *config.Config, mailer email.Provider, store storage.Storage) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	collectionRepo := repositories.NewCollectionRepository(db)

	notificationSvc := NewNotificationService(notificationRepo)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, mailer),
		UserService:         NewUserService(userRepo, postRepo, commentRepo, followRepo),
		PostService:         NewPostService(postRepo, userRepo, commentRepo, notificationSvc),
		CommentService:      NewCommentService(commentRepo, postRepo, userRepo, notificationSvc),
		TagService:          NewTagService(tagRepo),
		FollowService:       NewFollowService(followRepo, userRepo, notificationSvc),
		MessageService:      NewMessageService(messageRepo, userRepo, followRepo, notificationSvc),
		NotificationService: notificationSvc,
		CollectionService:   NewCollectionService(collectionRepo, postRepo),
		UploadService:       NewUploadService(store, imageprocessor.NewProcessor(85), cfg),
		EmailProvider:       mailer,
	}
}
