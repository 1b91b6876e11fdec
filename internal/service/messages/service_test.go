package messages

import (
	"context"
	"errors"
	"testing"

	"backoffice-service/internal/domain/message"
	xerrors "backoffice-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type fakeMessages struct {
	message.Repository
	created *message.Message
	unread  []message.Message
	marked  []int64
}

func (f *fakeMessages) Create(ctx context.Context, m *message.Message) error {
	m.ID = 42
	f.created = m
	return nil
}

func (f *fakeMessages) ListUnread(ctx context.Context, userID int64) ([]message.Message, error) {
	return f.unread, nil
}

func (f *fakeMessages) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return len(f.unread), nil
}

func (f *fakeMessages) MarkAsRead(ctx context.Context, userID int64, ids []int64) error {
	f.marked = ids
	return nil
}

func TestPushStoresMessage(t *testing.T) {
	repo := &fakeMessages{}
	s := NewService(repo, nil, zap.NewNop())

	m, err := s.Push(context.Background(), message.PushInput{
		Title:   "  Order shipped ",
		Message: "Your order left the warehouse.",
		UserID:  7,
	})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if m.ID != 42 || m.Title != "Order shipped" || m.UserID != 7 {
		t.Errorf("stored = %+v", m)
	}
}

func TestPushValidation(t *testing.T) {
	s := NewService(&fakeMessages{}, nil, zap.NewNop())

	_, err := s.Push(context.Background(), message.PushInput{})

	var fe *xerrors.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("Push = %v, want field errors", err)
	}
	for _, field := range []string{"title", "message", "userId"} {
		if _, ok := fe.Fields[field]; !ok {
			t.Errorf("fields = %v, missing %s", fe.Fields, field)
		}
	}
}

func TestMarkAsRead(t *testing.T) {
	repo := &fakeMessages{unread: []message.Message{{ID: 1}, {ID: 2}}}
	s := NewService(repo, nil, zap.NewNop())

	count, err := s.MarkAsRead(context.Background(), 7, []int64{1})
	if err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	if len(repo.marked) != 1 || repo.marked[0] != 1 {
		t.Errorf("marked = %v", repo.marked)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestMarkAsReadEmptyIDs(t *testing.T) {
	repo := &fakeMessages{}
	s := NewService(repo, nil, zap.NewNop())

	if _, err := s.MarkAsRead(context.Background(), 7, nil); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	if repo.marked != nil {
		t.Error("empty id list reached the repository")
	}
}
