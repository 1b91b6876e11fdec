// internal/repository/postgres/message_repo.go
package postgres

import (
	"context"
	"fmt"

	"backoffice-service/internal/domain/message"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, title, image, message, is_read, user_id, created_at, updated_at`

func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	query := `
		INSERT INTO messages (title, image, message, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, m.Title, m.Image, m.Message, m.UserID).
		Scan(&m.ID, &m.IsRead, &m.CreatedAt, &m.UpdatedAt)
	return mapError(err)
}

func (r *MessageRepository) FindByID(ctx context.Context, id int64) (*message.Message, error) {
	query := fmt.Sprintf(`SELECT %s FROM messages WHERE id = $1`, messageColumns)

	var m message.Message
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Title, &m.Image, &m.Message, &m.IsRead, &m.UserID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

func (r *MessageRepository) ListUnread(ctx context.Context, userID int64) ([]message.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM messages
		WHERE user_id = $1 AND is_read = false
		ORDER BY created_at DESC
	`, messageColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unread messages: %w", err)
	}
	defer rows.Close()

	messages := []message.Message{}
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.Title, &m.Image, &m.Message, &m.IsRead, &m.UserID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE user_id = $1 AND is_read = false`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

// MarkAsRead flips the flag for the caller's own messages only.
func (r *MessageRepository) MarkAsRead(ctx context.Context, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.db.Exec(ctx,
		`UPDATE messages SET is_read = true, updated_at = NOW() WHERE user_id = $1 AND id = ANY($2) AND is_read = false`,
		userID, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to mark messages as read: %w", err)
	}
	return nil
}
