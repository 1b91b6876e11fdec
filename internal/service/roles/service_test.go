package roles

import (
	"context"
	"errors"
	"testing"

	"backoffice-service/internal/domain/claims"
	"backoffice-service/internal/domain/role"
	"backoffice-service/internal/domain/user"
	xerrors "backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/pkg/paging"

	"go.uber.org/zap"
)

type fakeRoles struct {
	role.Repository
	byID    map[int64]*role.Role
	names   map[string]bool
	created *role.Role
	updated *role.Role
	deleted int64
}

func (f *fakeRoles) FindByID(ctx context.Context, id int64) (*role.Role, error) {
	if r, ok := f.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeRoles) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	return f.names[name], nil
}

func (f *fakeRoles) Create(ctx context.Context, r *role.Role) error {
	r.ID = 100
	f.created = r
	return nil
}

func (f *fakeRoles) Update(ctx context.Context, r *role.Role) error {
	f.updated = r
	return nil
}

func (f *fakeRoles) Delete(ctx context.Context, id int64) error {
	f.deleted = id
	return nil
}

type fakeUsers struct {
	user.Repository
	roleUsage map[int64]int
}

func (f *fakeUsers) CountWithRole(ctx context.Context, roleID int64) (int, error) {
	return f.roleUsage[roleID], nil
}

func newService(roles *fakeRoles, users *fakeUsers) *Service {
	if users == nil {
		users = &fakeUsers{}
	}
	return NewService(roles, users, claims.DefaultRegistry(), paging.DefaultConfig(), zap.NewNop())
}

func TestCreateSlugsName(t *testing.T) {
	repo := &fakeRoles{names: map[string]bool{}}
	s := newService(repo, nil)

	r, err := s.Create(context.Background(), role.CreateInput{
		Name:   "Content Editors",
		Claims: []string{"Products:Products"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.Name != "content-editors" {
		t.Errorf("Name = %q, want content-editors", r.Name)
	}
}

func TestCreateDuplicateName(t *testing.T) {
	repo := &fakeRoles{names: map[string]bool{"editors": true}}
	s := newService(repo, nil)

	_, err := s.Create(context.Background(), role.CreateInput{Name: "Editors"})
	if !errors.Is(err, xerrors.ErrConflict) {
		t.Errorf("Create duplicate = %v, want ErrConflict", err)
	}
}

func TestCreateUnknownClaim(t *testing.T) {
	repo := &fakeRoles{names: map[string]bool{}}
	s := newService(repo, nil)

	_, err := s.Create(context.Background(), role.CreateInput{
		Name:   "editors",
		Claims: []string{"Users:Manage"},
	})

	var fe *xerrors.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("Create = %v, want field errors", err)
	}
	if _, ok := fe.Fields["claims"]; !ok {
		t.Errorf("fields = %v, want claims entry", fe.Fields)
	}
}

func TestUpdateReservedRole(t *testing.T) {
	admin := &role.Role{ID: 1, Name: role.NameAdmin, Claims: []string{}}
	repo := &fakeRoles{byID: map[int64]*role.Role{1: admin}, names: map[string]bool{}}
	s := newService(repo, nil)

	// Renaming a reserved role is a conflict.
	newName := "administrators"
	_, err := s.Update(context.Background(), 1, role.UpdateInput{Name: &newName})
	if !errors.Is(err, xerrors.ErrConflict) {
		t.Errorf("rename reserved = %v, want ErrConflict", err)
	}

	// Editing its description is fine.
	desc := "All permissions"
	got, err := s.Update(context.Background(), 1, role.UpdateInput{Description: &desc})
	if err != nil {
		t.Fatalf("update description: %v", err)
	}
	if got.Description != desc || got.Name != role.NameAdmin {
		t.Errorf("updated = %+v", got)
	}
}

func TestDeleteReservedRole(t *testing.T) {
	repo := &fakeRoles{byID: map[int64]*role.Role{
		1: {ID: 1, Name: role.NameAdmin},
		2: {ID: 2, Name: role.NameCommon},
	}}
	s := newService(repo, nil)

	for _, id := range []int64{1, 2} {
		if err := s.Delete(context.Background(), id); !errors.Is(err, xerrors.ErrConflict) {
			t.Errorf("delete reserved role %d = %v, want ErrConflict", id, err)
		}
	}
	if repo.deleted != 0 {
		t.Error("reserved role reached the repository delete")
	}
}

func TestDeleteRoleInUse(t *testing.T) {
	repo := &fakeRoles{byID: map[int64]*role.Role{5: {ID: 5, Name: "editors"}}}
	users := &fakeUsers{roleUsage: map[int64]int{5: 3}}
	s := newService(repo, users)

	if err := s.Delete(context.Background(), 5); !errors.Is(err, xerrors.ErrConflict) {
		t.Errorf("delete role in use = %v, want ErrConflict", err)
	}
}

func TestDeleteUnusedRole(t *testing.T) {
	repo := &fakeRoles{byID: map[int64]*role.Role{5: {ID: 5, Name: "editors"}}}
	s := newService(repo, &fakeUsers{roleUsage: map[int64]int{}})

	if err := s.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if repo.deleted != 5 {
		t.Errorf("deleted id = %d, want 5", repo.deleted)
	}
}
