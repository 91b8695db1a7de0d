package handlers

import (
	"blogapp_backend/internal/services"
	"blogapp_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler of the application.
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Post         *PostHandler
	Tag          *TagHandler
	Message      *MessageHandler
	Notification *NotificationHandler
	Collection   *CollectionHandler
	Upload       *UploadHandler
	Admin        *AdminHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, container.AuthService),
		User:         NewUserHandler(base, container.UserService, container.FollowService),
		Post:         NewPostHandler(base, container.PostService, container.CommentService),
		Tag:          NewTagHandler(base, container.TagService),
		Message:      NewMessageHandler(base, container.MessageService),
		Notification: NewNotificationHandler(base, container.NotificationService),
		Collection:   NewCollectionHandler(base, container.CollectionService),
		Upload:       NewUploadHandler(base, container.UploadService),
		Admin: NewAdminHandler(base, container.PostService,
			container.UserService, container.NotificationService),
	}
}
