package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapp_backend/internal/middleware"
	"blogapp_backend/internal/services"
	"blogapp_backend/internal/services/dto"
)

type PostHandler struct {
	*BaseHandler
	postService    services.PostService
	commentService services.CommentService
}

func NewPostHandler(base *BaseHandler, postService services.PostService, commentService services.CommentService) *PostHandler {
	return &PostHandler{
		BaseHandler:    base,
		postService:    postService,
		commentService: commentService,
	}
}

func (h *PostHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/posts", h.List)
	r.GET("/posts/details/:slug", h.GetBySlug)
	r.GET("/posts/:id/comments", h.ListComments)
}

func (h *PostHandler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/posts/mine", h.ListMine)
	r.GET("/posts/:id/edit", h.GetForEdit)
	r.POST("/posts", h.Create)
	r.PUT("/posts/:id", h.Edit)
	r.DELETE("/posts/:id", h.Delete)

	r.POST("/posts/:id/like", h.Like)
	r.DELETE("/posts/:id/like", h.Unlike)

	r.POST("/posts/:id/comments", h.CreateComment)
	r.DELETE("/comments/:id", h.DeleteComment)
}

// List godoc
// @Summary Published posts, optionally filtered by tag
// @Tags posts
// @Produce json
// @Param tag query string false "Tag slug"
// @Param page query int false "Page"
// @Success 200 {object} dto.PostListResponse
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	var query dto.ListPostsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.postService.ListActive(query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.MyPostsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.postService.ListMine(userID, middleware.IsAdmin(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetBySlug godoc
// @Summary Detail view of a published post
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} dto.PostDetail
// @Router /posts/details/{slug} [get]
func (h *PostHandler) GetBySlug(c *gin.Context) {
	viewerID := middleware.GetUserID(c)

	resp, err := h.postService.GetBySlug(c.Param("slug"), viewerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) GetForEdit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.postService.GetForEdit(c.Param("id"), userID, middleware.IsAdmin(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.postService.Create(userID, middleware.IsAdmin(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PostHandler) Edit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EditPostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.postService.Edit(c.Param("id"), userID, middleware.IsAdmin(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(c.Param("id"), userID, middleware.IsAdmin(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *PostHandler) Like(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.postService.Like(c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.postService.Unlike(c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	comments, err := h.commentService.ListByPost(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.commentService.Create(c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Param("id"), userID, middleware.IsAdmin(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
