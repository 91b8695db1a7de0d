package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapp_backend/internal/models"
	"blogapp_backend/internal/services"
	"blogapp_backend/internal/services/dto"
)

// AdminHandler hosts the moderation surface: post approval, user
// management and housekeeping.
type AdminHandler struct {
	*BaseHandler
	postService         services.PostService
	userService         services.UserService
	notificationService services.NotificationService
}

func NewAdminHandler(
	base *BaseHandler,
	postService services.PostService,
	userService services.UserService,
	notificationService services.NotificationService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:         base,
		postService:         postService,
		userService:         userService,
		notificationService: notificationService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.PUT("/posts/:id/approve", h.ApprovePost)
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id/role", h.UpdateRole)
		admin.GET("/stats/notifications", h.NotificationStats)
		admin.DELETE("/notifications/old", h.CleanOldNotifications)
	}
}

// ApprovePost godoc
// @Summary Publish a pending post
// @Tags admin
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /admin/posts/{id}/approve [put]
func (h *AdminHandler) ApprovePost(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.postService.Approve(c.Param("id"), adminID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post approved"})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	users, pagination, err := h.userService.ListUsers(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "pagination": pagination})
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.UpdateRole(adminID, c.Param("id"), models.UserRole(req.Role)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// NotificationStats exposes the fan-out failure counter.
func (h *AdminHandler) NotificationStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"delivery_failures": h.notificationService.FailureCount()})
}

func (h *AdminHandler) CleanOldNotifications(c *gin.Context) {
	days := ParseQueryInt(c, "days", 30)

	removed, err := h.notificationService.CleanOldNotifications(days)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
