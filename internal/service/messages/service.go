// internal/service/messages/service.go
package messages

import (
	"context"
	"strings"

	"backoffice-service/internal/domain/message"
	xerrors "backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/websocket"

	"go.uber.org/zap"
)

// Service stores notifications and mirrors them to connected sockets.
type Service struct {
	messages message.Repository
	hub      *websocket.Hub
	logger   *zap.Logger
}

func NewService(messages message.Repository, hub *websocket.Hub, logger *zap.Logger) *Service {
	return &Service{messages: messages, hub: hub, logger: logger}
}

// Unread returns the recipient's unread notifications, newest first.
func (s *Service) Unread(ctx context.Context, userID int64) ([]message.Message, error) {
	return s.messages.ListUnread(ctx, userID)
}

// UnreadCount returns the recipient's badge count.
func (s *Service) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.messages.UnreadCount(ctx, userID)
}

// Push stores a notification and delivers it to the recipient's open
// connections. Delivery is best effort; the row is the source of truth.
func (s *Service) Push(ctx context.Context, input message.PushInput) (*message.Message, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	m := &message.Message{
		Title:   strings.TrimSpace(input.Title),
		Image:   strings.TrimSpace(input.Image),
		Message: strings.TrimSpace(input.Message),
		UserID:  input.UserID,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastNotification(m.UserID, m)
		s.pushCount(ctx, m.UserID)
	}
	return m, nil
}

// MarkAsRead flags the given notifications and refreshes the badge.
func (s *Service) MarkAsRead(ctx context.Context, userID int64, ids []int64) (int, error) {
	if len(ids) == 0 {
		return s.messages.UnreadCount(ctx, userID)
	}

	if err := s.messages.MarkAsRead(ctx, userID, ids); err != nil {
		return 0, err
	}

	count, err := s.messages.UnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if s.hub != nil {
		s.hub.BroadcastUnreadCount(userID, count)
	}
	return count, nil
}

func (s *Service) pushCount(ctx context.Context, userID int64) {
	count, err := s.messages.UnreadCount(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to refresh unread count", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	s.hub.BroadcastUnreadCount(userID, count)
}

func validate(input message.PushInput) error {
	fe := xerrors.NewFieldErrors()
	if strings.TrimSpace(input.Title) == "" {
		fe.Add("title", "title is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		fe.Add("message", "message is required")
	}
	if input.UserID <= 0 {
		fe.Add("userId", "a recipient is required")
	}
	return fe.ErrOrNil()
}
