package users

import (
	"context"
	"errors"
	"testing"

	"backoffice-service/internal/domain/user"
	xerrors "backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/pkg/paging"

	"go.uber.org/zap"
)

type fakeUsers struct {
	user.Repository
	byID    map[int64]*user.User
	taken   map[string]bool
	deleted int64
}

func (f *fakeUsers) FindByID(ctx context.Context, id int64) (*user.User, error) {
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeUsers) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	return f.taken[email], nil
}

func (f *fakeUsers) SoftDelete(ctx context.Context, id int64) error {
	f.deleted = id
	return nil
}

func TestGetHidesSuperAdminRows(t *testing.T) {
	repo := &fakeUsers{byID: map[int64]*user.User{
		1: {ID: 1, Email: "root@example.com", IsSuperAdmin: true},
	}}
	s := NewService(repo, paging.DefaultConfig(), zap.NewNop())

	if _, err := s.Get(context.Background(), 1, false); !errors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("Get as regular actor = %v, want ErrNotFound", err)
	}

	u, err := s.Get(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("Get as super admin: %v", err)
	}
	if u.ID != 1 {
		t.Errorf("ID = %d, want 1", u.ID)
	}
}

func TestCreateSuperAdminGrantForbidden(t *testing.T) {
	repo := &fakeUsers{taken: map[string]bool{}}
	s := NewService(repo, paging.DefaultConfig(), zap.NewNop())

	_, err := s.Create(context.Background(), user.CreateInput{
		Name:         "Ada",
		Surname:      "Lovelace",
		Email:        "ada@example.com",
		Password:     "password1",
		IsSuperAdmin: true,
	}, false)

	if !errors.Is(err, xerrors.ErrForbidden) {
		t.Errorf("Create super grant as regular actor = %v, want ErrForbidden", err)
	}
}

func TestDeleteHiddenSuperAdmin(t *testing.T) {
	repo := &fakeUsers{byID: map[int64]*user.User{
		1: {ID: 1, IsSuperAdmin: true},
	}}
	s := NewService(repo, paging.DefaultConfig(), zap.NewNop())

	if err := s.Delete(context.Background(), 1, false); !errors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("Delete as regular actor = %v, want ErrNotFound", err)
	}
	if repo.deleted != 0 {
		t.Error("hidden super admin reached the repository delete")
	}
}
