package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapp_backend/internal/middleware"
	"blogapp_backend/internal/services"
	"blogapp_backend/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	userService   services.UserService
	followService services.FollowService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, followService services.FollowService) *UserHandler {
	return &UserHandler{
		BaseHandler:   base,
		userService:   userService,
		followService: followService,
	}
}

func (h *UserHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/profile/:username", h.GetProfile)
	r.GET("/users/:username/followers", h.GetFollowers)
	r.GET("/users/:username/following", h.GetFollowing)
}

func (h *UserHandler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.PUT("/profile", h.EditProfile)
	r.PUT("/profile/password", h.ChangePassword)
	r.POST("/users/:username/follow", h.Follow)
	r.DELETE("/users/:username/follow", h.Unfollow)
	r.GET("/contacts", h.GetContacts)
}

// GetProfile godoc
// @Summary Public profile of a user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.ProfileResponse
// @Router /profile/{username} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	viewerID := middleware.GetUserID(c)

	resp, err := h.userService.GetProfile(c.Param("username"), viewerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) EditProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EditProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.EditProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// Follow godoc
// @Summary Follow a user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.FollowResponse
// @Security BearerAuth
// @Router /users/{username}/follow [post]
func (h *UserHandler) Follow(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.followService.Follow(userID, c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.followService.Unfollow(userID, c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetFollowers(c *gin.Context) {
	resp, err := h.followService.GetFollowers(c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetFollowing(c *gin.Context) {
	resp, err := h.followService.GetFollowing(c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetContacts lists the caller's mutual follows.
func (h *UserHandler) GetContacts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	contacts, err := h.followService.GetContacts(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "total": len(contacts)})
}
