package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapp_backend/internal/services"
	"blogapp_backend/pkg/apperrors"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{BaseHandler: base, uploadService: uploadService}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	uploads := r.Group("/uploads")
	{
		uploads.POST("/avatar", h.UploadAvatar)
		uploads.POST("/cover", h.UploadCover)
	}
}

// UploadAvatar godoc
// @Summary Upload a profile image
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} map[string]string
// @Security BearerAuth
// @Router /uploads/avatar [post]
func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	h.upload(c, services.UploadKindAvatar)
}

func (h *UploadHandler) UploadCover(c *gin.Context) {
	h.upload(c, services.UploadKindCover)
}

func (h *UploadHandler) upload(c *gin.Context, kind services.UploadKind) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing file field"))
		return
	}

	url, err := h.uploadService.UploadImage(c.Request.Context(), userID, kind, header)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
