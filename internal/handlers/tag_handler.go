package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapp_backend/internal/services"
	"blogapp_backend/internal/services/dto"
)

type TagHandler struct {
	*BaseHandler
	tagService services.TagService
}

func NewTagHandler(base *BaseHandler, tagService services.TagService) *TagHandler {
	return &TagHandler{BaseHandler: base, tagService: tagService}
}

func (h *TagHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/tags", h.List)
	r.GET("/tags/all", h.ListAll)
	r.GET("/tags/:slug", h.GetBySlug)
}

func (h *TagHandler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/tags", h.Create)
}

func (h *TagHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.DELETE("/tags/:id", h.Delete)
}

// List godoc
// @Summary Tags with their published post counts
// @Tags tags
// @Produce json
// @Param page query int false "Page"
// @Success 200 {object} dto.TagListResponse
// @Router /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	var query dto.ListTagsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.tagService.List(query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAll returns every tag without pagination, for pickers.
func (h *TagHandler) ListAll(c *gin.Context) {
	tags, err := h.tagService.ListAll()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *TagHandler) GetBySlug(c *gin.Context) {
	tag, err := h.tagService.GetBySlug(c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTagRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	tag, err := h.tagService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.tagService.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
}
