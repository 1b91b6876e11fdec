package message

import "context"

// Repository is the storage port for notifications.
type Repository interface {
	Create(ctx context.Context, m *Message) error

	FindByID(ctx context.Context, id int64) (*Message, error)
	ListUnread(ctx context.Context, userID int64) ([]Message, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)

	MarkAsRead(ctx context.Context, userID int64, ids []int64) error
}
