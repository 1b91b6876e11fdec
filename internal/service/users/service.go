// internal/service/users/service.go
package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"backoffice-service/internal/domain/user"
	xerrors "backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/pkg/paging"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service implements user administration. Super admin rows are
// invisible to everyone but super admins, and only a super admin can
// mint another one.
type Service struct {
	users     user.Repository
	pagingCfg paging.Config
	logger    *zap.Logger
}

func NewService(users user.Repository, pagingCfg paging.Config, logger *zap.Logger) *Service {
	return &Service{users: users, pagingCfg: pagingCfg, logger: logger}
}

// List returns one page of users matching the filters.
func (s *Service) List(ctx context.Context, f user.ListFilters, actorIsSuperAdmin bool) (*paging.Result, error) {
	f.IncludeSuperAdmins = actorIsSuperAdmin

	total, err := s.users.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	p := paging.Calculate(f.Page, f.PerPage, total, s.pagingCfg)
	list := []user.User{}
	if p.CurrentPage > 0 {
		list, err = s.users.List(ctx, f, p.Limit, p.Offset)
		if err != nil {
			return nil, err
		}
	}

	res := paging.NewResult(p, list)
	return &res, nil
}

// Dropdown returns the reduced projection for selects.
func (s *Service) Dropdown(ctx context.Context, actorIsSuperAdmin bool) ([]user.Option, error) {
	return s.users.ListAll(ctx, actorIsSuperAdmin)
}

// Get loads one user. Super admin rows read as missing for everyone
// else, matching the listing behavior.
func (s *Service) Get(ctx context.Context, id int64, actorIsSuperAdmin bool) (*user.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.IsSuperAdmin && !actorIsSuperAdmin {
		return nil, xerrors.ErrNotFound
	}
	return u, nil
}

// Create adds a user from the admin UI.
func (s *Service) Create(ctx context.Context, input user.CreateInput, actorIsSuperAdmin bool) (*user.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := validateUserInput(input.Name, input.Surname, input.Email, &input.Password); err != nil {
		return nil, err
	}
	if input.IsSuperAdmin && !actorIsSuperAdmin {
		return nil, xerrors.ErrForbidden
	}

	taken, err := s.users.EmailTaken(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, xerrors.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to hash password")
	}

	u := &user.User{
		Name:         strings.TrimSpace(input.Name),
		Surname:      strings.TrimSpace(input.Surname),
		Email:        input.Email,
		Password:     string(hash),
		IsSuperAdmin: input.IsSuperAdmin,
		IsActivated:  input.IsActivated,
		RoleIDs:      orEmptyIDs(input.RoleIDs),
		Claims:       orEmptyStrings(input.Claims),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil, xerrors.ErrConflict
		}
		return nil, err
	}
	return u, nil
}

// Update patches a user. Nil input fields keep the stored value.
func (s *Service) Update(ctx context.Context, id int64, input user.UpdateInput, actorIsSuperAdmin bool) (*user.User, error) {
	u, err := s.Get(ctx, id, actorIsSuperAdmin)
	if err != nil {
		return nil, err
	}

	if input.IsSuperAdmin != nil && *input.IsSuperAdmin != u.IsSuperAdmin && !actorIsSuperAdmin {
		return nil, xerrors.ErrForbidden
	}

	if input.Name != nil {
		u.Name = strings.TrimSpace(*input.Name)
	}
	if input.Surname != nil {
		u.Surname = strings.TrimSpace(*input.Surname)
	}
	if input.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if err := validateUserInput(u.Name, u.Surname, u.Email, input.Password); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailTaken(ctx, u.Email, u.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, xerrors.ErrConflict
	}

	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, xerrors.Wrap(err, "failed to hash password")
		}
		u.Password = string(hash)
	}
	if input.IsSuperAdmin != nil {
		u.IsSuperAdmin = *input.IsSuperAdmin
	}
	if input.IsActivated != nil {
		u.IsActivated = *input.IsActivated
	}
	if input.RoleIDs != nil {
		u.RoleIDs = orEmptyIDs(*input.RoleIDs)
	}
	if input.Claims != nil {
		u.Claims = orEmptyStrings(*input.Claims)
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil, xerrors.ErrConflict
		}
		return nil, err
	}
	return u, nil
}

// Delete soft-deletes so the row can be restored later.
func (s *Service) Delete(ctx context.Context, id int64, actorIsSuperAdmin bool) error {
	if _, err := s.Get(ctx, id, actorIsSuperAdmin); err != nil {
		return err
	}
	return s.users.SoftDelete(ctx, id)
}

// Restore brings a soft-deleted user back.
func (s *Service) Restore(ctx context.Context, id int64) error {
	return s.users.Restore(ctx, id)
}

func validateUserInput(name, surname, emailAddr string, password *string) error {
	fe := xerrors.NewFieldErrors()
	if strings.TrimSpace(name) == "" {
		fe.Add("name", "name is required")
	}
	if strings.TrimSpace(surname) == "" {
		fe.Add("surname", "surname is required")
	}
	if _, err := mail.ParseAddress(emailAddr); err != nil {
		fe.Add("email", "a valid email is required")
	}
	if password != nil && len(*password) < 8 {
		fe.Add("password", "password must be at least 8 characters")
	}
	return fe.ErrOrNil()
}

func orEmptyIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func orEmptyStrings(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
