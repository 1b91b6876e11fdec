// internal/service/roles/service.go
package roles

import (
	"context"
	"errors"
	"strings"

	"backoffice-service/internal/domain/claims"
	"backoffice-service/internal/domain/role"
	"backoffice-service/internal/domain/user"
	xerrors "backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/pkg/paging"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service implements role administration. The reserved admin and
// common roles can be edited but never renamed or deleted.
type Service struct {
	roles     role.Repository
	users     user.Repository
	registry  *claims.Registry
	pagingCfg paging.Config
	logger    *zap.Logger
}

func NewService(roles role.Repository, users user.Repository, registry *claims.Registry, pagingCfg paging.Config, logger *zap.Logger) *Service {
	return &Service{roles: roles, users: users, registry: registry, pagingCfg: pagingCfg, logger: logger}
}

// List returns one page of roles matching the filters.
func (s *Service) List(ctx context.Context, f role.ListFilters) (*paging.Result, error) {
	total, err := s.roles.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	p := paging.Calculate(f.Page, f.PerPage, total, s.pagingCfg)
	list := []role.Role{}
	if p.CurrentPage > 0 {
		list, err = s.roles.List(ctx, f, p.Limit, p.Offset)
		if err != nil {
			return nil, err
		}
	}

	res := paging.NewResult(p, list)
	return &res, nil
}

// Dropdown returns the reduced projection for selects.
func (s *Service) Dropdown(ctx context.Context) ([]role.Option, error) {
	return s.roles.ListAll(ctx)
}

// Get loads one role.
func (s *Service) Get(ctx context.Context, id int64) (*role.Role, error) {
	return s.roles.FindByID(ctx, id)
}

// Create adds a role. The name is slugged so it is URL- and
// token-friendly; duplicates surface as Conflict.
func (s *Service) Create(ctx context.Context, input role.CreateInput) (*role.Role, error) {
	name := slug.Make(strings.TrimSpace(input.Name))

	if err := s.validate(name, input.Claims); err != nil {
		return nil, err
	}

	taken, err := s.roles.NameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, xerrors.ErrConflict
	}

	r := &role.Role{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Claims:      orEmpty(input.Claims),
	}
	if err := s.roles.Create(ctx, r); err != nil {
		if errors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil, xerrors.ErrConflict
		}
		return nil, err
	}
	return r, nil
}

// Update patches a role. Renaming a reserved role is a Conflict.
func (s *Service) Update(ctx context.Context, id int64, input role.UpdateInput) (*role.Role, error) {
	r, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := slug.Make(strings.TrimSpace(*input.Name))
		if name != r.Name && r.IsReserved() {
			return nil, xerrors.ErrConflict
		}
		if name != r.Name {
			taken, err := s.roles.NameTaken(ctx, name, r.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, xerrors.ErrConflict
			}
		}
		r.Name = name
	}
	if input.Description != nil {
		r.Description = strings.TrimSpace(*input.Description)
	}
	if input.Claims != nil {
		r.Claims = orEmpty(*input.Claims)
	}

	if err := s.validate(r.Name, r.Claims); err != nil {
		return nil, err
	}

	if err := s.roles.Update(ctx, r); err != nil {
		if errors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil, xerrors.ErrConflict
		}
		return nil, err
	}
	return r, nil
}

// Delete removes a role. Reserved roles and roles still assigned to
// users are Conflicts.
func (s *Service) Delete(ctx context.Context, id int64) error {
	r, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if r.IsReserved() {
		return xerrors.ErrConflict
	}

	inUse, err := s.users.CountWithRole(ctx, r.ID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return xerrors.ErrConflict
	}

	return s.roles.Delete(ctx, id)
}

func (s *Service) validate(name string, claimList []string) error {
	fe := xerrors.NewFieldErrors()
	if name == "" {
		fe.Add("name", "name is required")
	}
	for _, c := range claimList {
		if !s.registry.Contains(c) {
			fe.Add("claims", "unknown claim "+c)
			break
		}
	}
	return fe.ErrOrNil()
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
