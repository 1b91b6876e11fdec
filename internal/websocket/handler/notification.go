// internal/websocket/handler/notification.go
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"backoffice-service/internal/domain/message"
	wstypes "backoffice-service/internal/domain/ws"
	ws "backoffice-service/internal/websocket"
)

// NotificationHandler answers notification frames over the socket so
// clients can read and acknowledge without an HTTP round trip.
type NotificationHandler struct {
	messages message.Repository
}

func NewNotificationHandler(messages message.Repository) *NotificationHandler {
	return &NotificationHandler{messages: messages}
}

// SupportedEvents returns events this handler supports
func (h *NotificationHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{
		wstypes.EventTypeNotificationRead,
		wstypes.EventTypeNotificationReadAll,
		wstypes.EventTypeNotificationList,
		wstypes.EventTypeNotificationCount,
	}
}

// HandleMessage processes notification-related messages
func (h *NotificationHandler) HandleMessage(ctx context.Context, client *ws.Client, msg *wstypes.Message) error {
	switch msg.Type {
	case wstypes.EventTypeNotificationRead:
		return h.handleMarkAsRead(ctx, client, msg)

	case wstypes.EventTypeNotificationReadAll:
		return h.handleMarkAllAsRead(ctx, client, msg)

	case wstypes.EventTypeNotificationList:
		return h.handleListUnread(ctx, client, msg)

	case wstypes.EventTypeNotificationCount:
		return h.handleGetCount(ctx, client, msg)

	default:
		return fmt.Errorf("unsupported event type: %s", msg.Type)
	}
}

// handleMarkAsRead marks specific notifications as read
func (h *NotificationHandler) handleMarkAsRead(ctx context.Context, client *ws.Client, msg *wstypes.Message) error {
	var req struct {
		MessageIDs []int64 `json:"message_ids"`
	}

	if err := mapToStruct(msg.Data, &req); err != nil {
		client.SendError("invalid_request", "Invalid mark as read request", err.Error())
		return err
	}

	if err := h.messages.MarkAsRead(ctx, client.GetUserID(), req.MessageIDs); err != nil {
		client.SendError("mark_read_failed", "Failed to mark notifications as read", err.Error())
		return err
	}

	count, err := h.messages.UnreadCount(ctx, client.GetUserID())
	if err != nil {
		log.Printf("failed to get unread count: %v", err)
		count = 0
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeNotificationRead, map[string]interface{}{
		"message_ids":  req.MessageIDs,
		"success":      true,
		"unread_count": count,
	}))

	return nil
}

// handleMarkAllAsRead marks every unread notification as read
func (h *NotificationHandler) handleMarkAllAsRead(ctx context.Context, client *ws.Client, msg *wstypes.Message) error {
	unread, err := h.messages.ListUnread(ctx, client.GetUserID())
	if err != nil {
		client.SendError("mark_all_read_failed", "Failed to mark all as read", err.Error())
		return err
	}

	if len(unread) > 0 {
		ids := make([]int64, 0, len(unread))
		for _, m := range unread {
			ids = append(ids, m.ID)
		}
		if err := h.messages.MarkAsRead(ctx, client.GetUserID(), ids); err != nil {
			client.SendError("mark_all_read_failed", "Failed to mark all as read", err.Error())
			return err
		}
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeNotificationReadAll, map[string]interface{}{
		"success":      true,
		"unread_count": 0,
	}))

	return nil
}

// handleListUnread returns the unread notifications
func (h *NotificationHandler) handleListUnread(ctx context.Context, client *ws.Client, msg *wstypes.Message) error {
	unread, err := h.messages.ListUnread(ctx, client.GetUserID())
	if err != nil {
		client.SendError("list_failed", "Failed to get notifications", err.Error())
		return err
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeNotificationList, map[string]interface{}{
		"notifications": unread,
		"count":         len(unread),
	}))

	return nil
}

// handleGetCount returns unread notification count
func (h *NotificationHandler) handleGetCount(ctx context.Context, client *ws.Client, msg *wstypes.Message) error {
	count, err := h.messages.UnreadCount(ctx, client.GetUserID())
	if err != nil {
		client.SendError("count_failed", "Failed to get unread count", err.Error())
		return err
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeNotificationCount, map[string]interface{}{
		"unread_count": count,
	}))

	return nil
}

// Helper function to convert interface{} to struct
func mapToStruct(data interface{}, target interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, target)
}
