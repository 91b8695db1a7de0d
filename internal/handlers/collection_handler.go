package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapp_backend/internal/middleware"
	"blogapp_backend/internal/services"
	"blogapp_backend/internal/services/dto"
)

type CollectionHandler struct {
	*BaseHandler
	collectionService services.CollectionService
}

func NewCollectionHandler(base *BaseHandler, collectionService services.CollectionService) *CollectionHandler {
	return &CollectionHandler{BaseHandler: base, collectionService: collectionService}
}

func (h *CollectionHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/collections", h.List)
	r.GET("/collections/:id", h.Get)
}

func (h *CollectionHandler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/collections/mine", h.ListMine)
	r.POST("/collections", h.Create)
	r.PUT("/collections/:id", h.Edit)
	r.DELETE("/collections/:id", h.Delete)
	r.POST("/collections/:id/posts", h.AddPost)
	r.DELETE("/collections/:id/posts/:postId", h.RemovePost)
}

// List godoc
// @Summary Open collections
// @Tags collections
// @Produce json
// @Param sort query string false "newest, popular or updated"
// @Param page query int false "Page"
// @Success 200 {object} dto.CollectionListResponse
// @Router /collections [get]
func (h *CollectionHandler) List(c *gin.Context) {
	var query dto.ListCollectionsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.collectionService.ListOpen(query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CollectionHandler) Get(c *gin.Context) {
	viewerID := middleware.GetUserID(c)

	resp, err := h.collectionService.Get(c.Param("id"), viewerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CollectionHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	collections, err := h.collectionService.ListMine(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

func (h *CollectionHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCollectionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.collectionService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CollectionHandler) Edit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EditCollectionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.collectionService.Edit(c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CollectionHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.collectionService.Delete(c.Param("id"), userID, middleware.IsAdmin(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted"})
}

func (h *CollectionHandler) AddPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CollectionPostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.collectionService.AddPost(c.Param("id"), userID, req.PostID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post added to collection"})
}

func (h *CollectionHandler) RemovePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.collectionService.RemovePost(c.Param("id"), userID, c.Param("postId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post removed from collection"})
}
