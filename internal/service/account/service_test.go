package account

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"backoffice-service/internal/domain/claims"
	"backoffice-service/internal/domain/role"
	"backoffice-service/internal/domain/user"
	xerrors "backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/pkg/jwt"
	"backoffice-service/internal/service/email"

	"go.uber.org/zap"
)

type fakeUsers struct {
	user.Repository
	byEmail    map[string]*user.User
	taken      map[string]bool
	created    *user.User
	newHash    string
	newRoleIDs []int64
}

func (f *fakeUsers) FindByEmail(ctx context.Context, emailAddr string) (*user.User, error) {
	if u, ok := f.byEmail[emailAddr]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeUsers) EmailTaken(ctx context.Context, emailAddr string, excludeID int64) (bool, error) {
	return f.taken[emailAddr], nil
}

func (f *fakeUsers) Create(ctx context.Context, u *user.User) error {
	u.ID = 10
	f.created = u
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id int64, hash string, roleIDs []int64) error {
	f.newHash = hash
	f.newRoleIDs = roleIDs
	return nil
}

type fakeRoles struct {
	role.Repository
	byName  map[string]*role.Role
	updated *role.Role
}

func (f *fakeRoles) FindByName(ctx context.Context, name string) (*role.Role, error) {
	if r, ok := f.byName[name]; ok {
		return r, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeRoles) Update(ctx context.Context, r *role.Role) error {
	f.updated = r
	return nil
}

type failingRoles struct {
	role.Repository
}

func (f *failingRoles) FindByName(ctx context.Context, name string) (*role.Role, error) {
	return nil, xerrors.ErrNotFound
}

func (f *failingRoles) Create(ctx context.Context, r *role.Role) error {
	return errors.New("insert failed")
}

func newService(users *fakeUsers, roles role.Repository) *Service {
	if roles == nil {
		roles = &fakeRoles{byName: map[string]*role.Role{
			role.NameCommon: {ID: 2, Name: role.NameCommon},
		}}
	}
	return NewService(
		users,
		roles,
		claims.DefaultRegistry(),
		jwt.NewManager(jwt.Config{Secret: "test-secret"}),
		nil,
		email.NewEmailSender("", "", "", "", "", false),
		nil,
		Config{},
		zap.NewNop(),
	)
}

func fieldErrors(t *testing.T, err error) *xerrors.FieldErrors {
	t.Helper()
	var fe *xerrors.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want field errors", err)
	}
	return fe
}

func TestLoginValidation(t *testing.T) {
	s := newService(&fakeUsers{}, nil)

	_, err := s.Login(context.Background(), "127.0.0.1", "", "", false)

	fe := fieldErrors(t, err)
	for _, field := range []string{"email", "password"} {
		if _, ok := fe.Fields[field]; !ok {
			t.Errorf("fields = %v, missing %s", fe.Fields, field)
		}
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	s := newService(&fakeUsers{taken: map[string]bool{}}, nil)

	_, err := s.Register(context.Background(), RegisterInput{
		Name:                 "Ada",
		Surname:              "Lovelace",
		Email:                "ada@example.com",
		Password:             "password1",
		PasswordConfirmation: "password2",
	})

	fe := fieldErrors(t, err)
	if _, ok := fe.Fields["passwordConfirmation"]; !ok {
		t.Errorf("fields = %v, want passwordConfirmation entry", fe.Fields)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &fakeUsers{taken: map[string]bool{"ada@example.com": true}}
	s := newService(users, nil)

	_, err := s.Register(context.Background(), RegisterInput{
		Name:                 "Ada",
		Surname:              "Lovelace",
		Email:                "Ada@Example.com",
		Password:             "password1",
		PasswordConfirmation: "password1",
	})

	fe := fieldErrors(t, err)
	if _, ok := fe.Fields["email"]; !ok {
		t.Errorf("fields = %v, want email entry", fe.Fields)
	}
}

func TestRegisterAssignsCommonRole(t *testing.T) {
	users := &fakeUsers{taken: map[string]bool{}}
	s := newService(users, nil)

	got, err := s.Register(context.Background(), RegisterInput{
		Name:                 "Ada",
		Surname:              "Lovelace",
		Email:                "ADA@Example.com ",
		Password:             "password1",
		PasswordConfirmation: "password1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if users.created == nil {
		t.Fatal("user never reached the repository")
	}
	if len(users.created.RoleIDs) != 1 || users.created.RoleIDs[0] != 2 {
		t.Errorf("RoleIDs = %v, want [2]", users.created.RoleIDs)
	}
	if !users.created.IsActivated {
		t.Error("account should activate immediately without activation mail")
	}
	if got.Email != "ada@example.com" {
		t.Errorf("Email = %q, want normalized lowercase", got.Email)
	}
}

func TestResetPasswordBadCode(t *testing.T) {
	expires := time.Now().Add(time.Hour)
	code := "goodcode"
	users := &fakeUsers{byEmail: map[string]*user.User{
		"ada@example.com": {ID: 1, Email: "ada@example.com", ResetCode: &code, ResetExpires: &expires},
	}}
	s := newService(users, nil)

	cases := []struct {
		name  string
		email string
		code  string
	}{
		{"unknown email", "nobody@example.com", "goodcode"},
		{"wrong code", "ada@example.com", "badcode"},
		{"empty code", "ada@example.com", ""},
	}
	for _, tc := range cases {
		err := s.ResetPassword(context.Background(), tc.email, tc.code, "password1", "password1")
		fe := fieldErrors(t, err)
		if _, ok := fe.Fields["code"]; !ok {
			t.Errorf("%s: fields = %v, want code entry", tc.name, fe.Fields)
		}
	}
}

func TestResetPasswordExpiredCode(t *testing.T) {
	expires := time.Now().Add(-time.Minute)
	code := "goodcode"
	users := &fakeUsers{byEmail: map[string]*user.User{
		"ada@example.com": {ID: 1, Email: "ada@example.com", ResetCode: &code, ResetExpires: &expires},
	}}
	s := newService(users, nil)

	err := s.ResetPassword(context.Background(), "ada@example.com", "goodcode", "password1", "password1")
	fe := fieldErrors(t, err)
	if _, ok := fe.Fields["code"]; !ok {
		t.Errorf("fields = %v, want code entry", fe.Fields)
	}
}

func TestEnsureSeedDataSurfacesRoleFailure(t *testing.T) {
	s := newService(&fakeUsers{}, &failingRoles{})

	if err := s.EnsureSeedData(context.Background(), "root@example.com", "password1", "Root", "Admin"); err == nil {
		t.Fatal("want error when role seeding fails")
	}
}

func TestEnsureSeedDataRefreshesAdminClaims(t *testing.T) {
	all := claims.DefaultRegistry().All()
	reordered := append(append([]string{}, all[1:]...), all[0])

	cases := []struct {
		name       string
		stored     []string
		wantUpdate bool
	}{
		{"reordered catalog left alone", reordered, false},
		{"missing claim refreshed", all[:len(all)-1], true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			roles := &fakeRoles{byName: map[string]*role.Role{
				role.NameAdmin:  {ID: 1, Name: role.NameAdmin, Claims: tc.stored},
				role.NameCommon: {ID: 2, Name: role.NameCommon, Claims: []string{}},
			}}
			users := &fakeUsers{byEmail: map[string]*user.User{
				"root@example.com": {ID: 1, IsSuperAdmin: true},
			}}
			s := newService(users, roles)

			if err := s.EnsureSeedData(context.Background(), "root@example.com", "password1", "", ""); err != nil {
				t.Fatalf("EnsureSeedData: %v", err)
			}

			if !tc.wantUpdate {
				if roles.updated != nil {
					t.Errorf("admin role rewritten, claims = %v", roles.updated.Claims)
				}
				return
			}
			if roles.updated == nil {
				t.Fatal("admin role never refreshed")
			}
			if !reflect.DeepEqual(roles.updated.Claims, all) {
				t.Errorf("refreshed claims = %v, want the full catalog", roles.updated.Claims)
			}
		})
	}
}

func TestResetPasswordFallsBackToCommonRole(t *testing.T) {
	expires := time.Now().Add(time.Hour)
	code := "goodcode"
	users := &fakeUsers{byEmail: map[string]*user.User{
		"ada@example.com": {ID: 1, Email: "ada@example.com", ResetCode: &code, ResetExpires: &expires, RoleIDs: []int64{}},
	}}
	s := newService(users, nil)

	if err := s.ResetPassword(context.Background(), "ada@example.com", "goodcode", "password1", "password1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if len(users.newRoleIDs) != 1 || users.newRoleIDs[0] != 2 {
		t.Errorf("roleIDs = %v, want common role fallback [2]", users.newRoleIDs)
	}
	if users.newHash == "" || users.newHash == "password1" {
		t.Errorf("hash = %q, want bcrypt hash", users.newHash)
	}
}
