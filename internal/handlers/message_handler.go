package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapp_backend/internal/services"
	"blogapp_backend/internal/services/dto"
)

type MessageHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(base *BaseHandler, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{BaseHandler: base, messageService: messageService}
}

func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages")
	{
		messages.GET("", h.GetInbox)
		messages.POST("", h.Send)
		messages.GET("/unread-count", h.GetUnreadCount)
		messages.GET("/with/:userId", h.GetConversation)
	}
}

// GetInbox godoc
// @Summary Conversations and contacts of the current user
// @Tags messages
// @Produce json
// @Success 200 {object} dto.InboxResponse
// @Security BearerAuth
// @Router /messages [get]
func (h *MessageHandler) GetInbox(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.messageService.GetInbox(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Send godoc
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.MessageDTO
// @Security BearerAuth
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.messageService.Send(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetConversation loads the thread with another user and marks it read.
func (h *MessageHandler) GetConversation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.messageService.GetConversation(userID, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MessageHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.messageService.GetUnreadCount(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}
