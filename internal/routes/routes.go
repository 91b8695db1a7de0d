package routes

import (
	"github.com/gin-gonic/gin"

	"blogapp_backend/internal/handlers"
	"blogapp_backend/internal/logger"
	"blogapp_backend/internal/middleware"
	"blogapp_backend/internal/models"
	"blogapp_backend/ws"
)

// RegisterRoutes mounts every HTTP and WebSocket route.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
) {
	api := ginRouter.Group("/api/v1")

	// Public surface. Optional auth so viewer-specific flags (liked,
	// following) appear for logged-in visitors.
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		appHandlers.Auth.RegisterRoutes(public)
		appHandlers.User.RegisterPublicRoutes(public)
		appHandlers.Post.RegisterPublicRoutes(public)
		appHandlers.Tag.RegisterPublicRoutes(public)
		appHandlers.Collection.RegisterPublicRoutes(public)
	}

	// Authenticated surface.
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		appHandlers.User.RegisterProtectedRoutes(protected)
		appHandlers.Post.RegisterProtectedRoutes(protected)
		appHandlers.Tag.RegisterProtectedRoutes(protected)
		appHandlers.Collection.RegisterProtectedRoutes(protected)
		appHandlers.Message.RegisterRoutes(protected)
		appHandlers.Notification.RegisterRoutes(protected)
		appHandlers.Upload.RegisterRoutes(protected)
	}

	// Admin surface.
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		appHandlers.Admin.RegisterRoutes(admin)
		appHandlers.Tag.RegisterAdminRoutes(admin)
	}

	wsGroup := ginRouter.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware())
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
	logger.Info("WebSocket route /ws registered")
}
