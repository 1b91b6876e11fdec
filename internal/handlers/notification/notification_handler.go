// internal/handlers/notification/notification_handler.go
package notification

import (
	"net/http"

	"backoffice-service/internal/domain/message"
	"backoffice-service/internal/middleware"
	"backoffice-service/internal/pkg/response"
	messagesUsecase "backoffice-service/internal/service/messages"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	messageService *messagesUsecase.Service
	logger         *zap.Logger
}

func NewNotificationHandler(messageService *messagesUsecase.Service, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		messageService: messageService,
		logger:         logger,
	}
}

// Unread returns the caller's unread notifications
func (h *NotificationHandler) Unread(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	unread, err := h.messageService.Unread(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	count, err := h.messageService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "notifications retrieved", gin.H{
		"notifications": unread,
		"unreadCount":   count,
	})
}

// Push stores a notification for a user and mirrors it to their open
// connections
func (h *NotificationHandler) Push(c *gin.Context) {
	var req message.PushInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	m, err := h.messageService.Push(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.logger.Info("notification pushed", zap.Int64("message_id", m.ID), zap.Int64("user_id", m.UserID))
	response.Success(c, http.StatusCreated, "notification pushed", m)
}

type markAsReadRequest struct {
	MessageIDs []int64 `json:"messageIds"`
}

// MarkAsRead flags the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req markAsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	count, err := h.messageService.MarkAsRead(c.Request.Context(), userID, req.MessageIDs)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "notifications marked as read", gin.H{"unreadCount": count})
}
