// internal/service/account/service.go
package account

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"net/mail"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"backoffice-service/internal/domain/claims"
	"backoffice-service/internal/domain/role"
	"backoffice-service/internal/domain/user"
	xerrors "backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/pkg/jwt"
	"backoffice-service/internal/pkg/ratelimit"
	"backoffice-service/internal/service/email"
	"backoffice-service/internal/storage"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const resetCodeTTL = 24 * time.Hour

// Config tunes account behavior from the environment.
type Config struct {
	// ActivationEmail gates new registrations behind an email round trip.
	ActivationEmail bool
	// MaxUploadBytes caps profile photo uploads.
	MaxUploadBytes int64
	// AllowedPhotoTypes lists acceptable upload content types.
	AllowedPhotoTypes []string
}

// Service implements login, registration, password recovery and
// profile management.
type Service struct {
	users    user.Repository
	roles    role.Repository
	registry *claims.Registry
	tokens   *jwt.Manager
	limiter  *ratelimit.Limiter
	email    *email.EmailSender
	store    storage.Driver
	cfg      Config
	logger   *zap.Logger
}

func NewService(
	users user.Repository,
	roles role.Repository,
	registry *claims.Registry,
	tokens *jwt.Manager,
	limiter *ratelimit.Limiter,
	emailSender *email.EmailSender,
	store storage.Driver,
	cfg Config,
	logger *zap.Logger,
) *Service {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5 << 20
	}
	if len(cfg.AllowedPhotoTypes) == 0 {
		cfg.AllowedPhotoTypes = []string{"image/jpeg", "image/jpg", "image/png"}
	}
	return &Service{
		users:    users,
		roles:    roles,
		registry: registry,
		tokens:   tokens,
		limiter:  limiter,
		email:    emailSender,
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	User    user.TokenUser `json:"user"`
	Token   string         `json:"token"`
	Expires time.Time      `json:"expires"`
}

// RegisterInput carries a self-service registration.
type RegisterInput struct {
	Name                 string `json:"name"`
	Surname              string `json:"surname"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// ProfileInput carries a self-service profile edit.
type ProfileInput struct {
	Name     string  `json:"name"`
	Surname  string  `json:"surname"`
	Email    string  `json:"email"`
	Password *string `json:"password"`
}

func invalidCredentials() error {
	fe := xerrors.NewFieldErrors()
	fe.Add("email", "invalid email or password")
	return fe
}

// Login verifies credentials and issues a session token. Unknown
// emails and wrong passwords produce the same message so the endpoint
// does not reveal which accounts exist.
func (s *Service) Login(ctx context.Context, ip, emailAddr, password string, remember bool) (*LoginResult, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	fe := xerrors.NewFieldErrors()
	if emailAddr == "" {
		fe.Add("email", "email is required")
	}
	if password == "" {
		fe.Add("password", "password is required")
	}
	if err := fe.ErrOrNil(); err != nil {
		return nil, err
	}

	allowed, _, err := s.limiter.CheckLoginAttempt(ctx, ip, emailAddr)
	if err != nil {
		s.logger.Error("login rate limit check failed", zap.Error(err))
	} else if !allowed {
		return nil, xerrors.ErrRateLimited
	}

	u, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}

	if !u.IsActivated {
		fe := xerrors.NewFieldErrors()
		fe.Add("email", "account is not activated")
		return nil, fe
	}

	if err := s.limiter.ResetLoginAttempts(ctx, ip, emailAddr); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	token, issued, err := s.tokens.Issue(u, s.registry, remember, time.Now())
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:    u.Redact(),
		Token:   token,
		Expires: issued.ExpiresAt.Time,
	}, nil
}

// Register creates a self-service account on the common role.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*user.TokenUser, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	fe := xerrors.NewFieldErrors()
	if strings.TrimSpace(input.Name) == "" {
		fe.Add("name", "name is required")
	}
	if strings.TrimSpace(input.Surname) == "" {
		fe.Add("surname", "surname is required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		fe.Add("email", "a valid email is required")
	}
	if len(input.Password) < 8 {
		fe.Add("password", "password must be at least 8 characters")
	}
	if input.Password != input.PasswordConfirmation {
		fe.Add("passwordConfirmation", "passwords do not match")
	}
	if err := fe.ErrOrNil(); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailTaken(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		fe := xerrors.NewFieldErrors()
		fe.Add("email", "email is already registered")
		return nil, fe
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to hash password")
	}

	common, err := s.roles.FindByName(ctx, role.NameCommon)
	if err != nil {
		return nil, xerrors.Wrap(err, "common role missing")
	}

	u := &user.User{
		Name:        strings.TrimSpace(input.Name),
		Surname:     strings.TrimSpace(input.Surname),
		Email:       input.Email,
		Password:    string(hash),
		IsActivated: !s.cfg.ActivationEmail,
		RoleIDs:     []int64{common.ID},
		Claims:      []string{},
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, xerrors.ErrDuplicateEntry) {
			fe := xerrors.NewFieldErrors()
			fe.Add("email", "email is already registered")
			return nil, fe
		}
		return nil, err
	}

	if s.cfg.ActivationEmail {
		s.sendActivationPendingMail(u)
	} else {
		s.sendWelcomeMail(u)
	}

	redacted := u.Redact()
	return &redacted, nil
}

// ForgotPassword stores a one-time reset code and mails a link built
// from the caller's URL template. Unknown emails return success so the
// endpoint does not reveal which accounts exist.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr, urlTemplate string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if emailAddr == "" || urlTemplate == "" {
		fe := xerrors.NewFieldErrors()
		if emailAddr == "" {
			fe.Add("email", "email is required")
		}
		if urlTemplate == "" {
			fe.Add("url", "url is required")
		}
		return fe
	}

	allowed, err := s.limiter.CheckPasswordResetAttempt(ctx, emailAddr)
	if err != nil {
		s.logger.Error("password reset rate limit check failed", zap.Error(err))
	} else if !allowed {
		return xerrors.ErrRateLimited
	}

	u, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil
		}
		return err
	}

	sum := sha256.Sum256([]byte(ulid.Make().String() + emailAddr + time.Now().String()))
	code := hex.EncodeToString(sum[:])

	if err := s.users.SetResetCode(ctx, u.ID, code, time.Now().Add(resetCodeTTL)); err != nil {
		return err
	}

	link := strings.ReplaceAll(urlTemplate, "{code}", code)
	link = strings.ReplaceAll(link, "{email}", url.QueryEscape(emailAddr))
	s.sendResetMail(u, link)

	return nil
}

// ResetPassword consumes a reset code. Users stripped of every role
// fall back onto the common role so the account stays usable.
func (s *Service) ResetPassword(ctx context.Context, emailAddr, code, password, confirmation string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	fe := xerrors.NewFieldErrors()
	if len(password) < 8 {
		fe.Add("password", "password must be at least 8 characters")
	}
	if password != confirmation {
		fe.Add("passwordConfirmation", "passwords do not match")
	}
	if err := fe.ErrOrNil(); err != nil {
		return err
	}

	badCode := func() error {
		fe := xerrors.NewFieldErrors()
		fe.Add("code", "invalid or expired reset code")
		return fe
	}

	u, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return badCode()
		}
		return err
	}
	if u.ResetCode == nil || *u.ResetCode != code || code == "" {
		return badCode()
	}
	if u.ResetExpires == nil || time.Now().After(*u.ResetExpires) {
		return badCode()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return xerrors.Wrap(err, "failed to hash password")
	}

	roleIDs := u.RoleIDs
	if len(roleIDs) == 0 {
		common, err := s.roles.FindByName(ctx, role.NameCommon)
		if err != nil {
			return xerrors.Wrap(err, "common role missing")
		}
		roleIDs = []int64{common.ID}
	}

	return s.users.UpdatePassword(ctx, u.ID, string(hash), roleIDs)
}

// UpdateProfile edits the caller's own record. Roles, claims and the
// super admin flag are not reachable from here.
func (s *Service) UpdateProfile(ctx context.Context, u *user.User, input ProfileInput) (*user.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	fe := xerrors.NewFieldErrors()
	if strings.TrimSpace(input.Name) == "" {
		fe.Add("name", "name is required")
	}
	if strings.TrimSpace(input.Surname) == "" {
		fe.Add("surname", "surname is required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		fe.Add("email", "a valid email is required")
	}
	if input.Password != nil && len(*input.Password) < 8 {
		fe.Add("password", "password must be at least 8 characters")
	}
	if err := fe.ErrOrNil(); err != nil {
		return nil, err
	}

	if input.Email != u.Email {
		taken, err := s.users.EmailTaken(ctx, input.Email, u.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			fe := xerrors.NewFieldErrors()
			fe.Add("email", "email is already registered")
			return nil, fe
		}
	}

	u.Name = strings.TrimSpace(input.Name)
	u.Surname = strings.TrimSpace(input.Surname)
	u.Email = input.Email
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, xerrors.Wrap(err, "failed to hash password")
		}
		u.Password = string(hash)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UploadPhoto stores a new profile photo and removes the old one.
func (s *Service) UploadPhoto(ctx context.Context, u *user.User, header *multipart.FileHeader) (string, error) {
	fe := xerrors.NewFieldErrors()
	if header.Size > s.cfg.MaxUploadBytes {
		fe.Add("file", fmt.Sprintf("file exceeds the %d MB limit", s.cfg.MaxUploadBytes>>20))
	}
	contentType := header.Header.Get("Content-Type")
	if !s.photoTypeAllowed(contentType) {
		fe.Add("file", "only jpeg and png images are allowed")
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		fe.Add("file", "only jpeg and png images are allowed")
	}
	if err := fe.ErrOrNil(); err != nil {
		return "", err
	}

	file, err := header.Open()
	if err != nil {
		return "", xerrors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	path := fmt.Sprintf("avatars/%s%s", ulid.Make().String(), ext)
	storedPath, publicURL, err := s.store.Upload(ctx, file, path)
	if err != nil {
		return "", xerrors.Wrap(err, "failed to store photo")
	}

	oldPhoto := u.Photo
	if err := s.users.UpdatePhoto(ctx, u.ID, storedPath); err != nil {
		return "", err
	}
	u.Photo = storedPath

	if oldPhoto != "" {
		if err := s.store.Delete(ctx, oldPhoto); err != nil {
			s.logger.Warn("failed to delete old photo", zap.String("path", oldPhoto), zap.Error(err))
		}
	}

	return publicURL, nil
}

func (s *Service) photoTypeAllowed(contentType string) bool {
	for _, t := range s.cfg.AllowedPhotoTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

// EnsureSeedData creates the reserved roles and the super admin
// account on startup when they are missing. The admin role always
// carries the full claim catalog so new claims reach it on deploy.
func (s *Service) EnsureSeedData(ctx context.Context, superEmail, superPassword, superName, superSurname string) error {
	admin, err := s.ensureRole(ctx, role.NameAdmin, "Administrators", s.registry.All())
	if err != nil {
		return err
	}
	if _, err := s.ensureRole(ctx, role.NameCommon, "Common users", []string{}); err != nil {
		return err
	}

	if !sameClaimSet(admin.Claims, s.registry.All()) {
		admin.Claims = s.registry.All()
		if err := s.roles.Update(ctx, admin); err != nil {
			return xerrors.Wrap(err, "failed to refresh admin role claims")
		}
	}

	_, err = s.users.FindByEmail(ctx, superEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(superPassword), bcrypt.DefaultCost)
	if err != nil {
		return xerrors.Wrap(err, "failed to hash super admin password")
	}

	u := &user.User{
		Name:         superName,
		Surname:      superSurname,
		Email:        strings.ToLower(superEmail),
		Password:     string(hash),
		IsSuperAdmin: true,
		IsActivated:  true,
		RoleIDs:      []int64{},
		Claims:       []string{},
	}
	if err := s.users.Create(ctx, u); err != nil {
		return xerrors.Wrap(err, "failed to create super admin")
	}
	s.logger.Info("super admin created", zap.String("email", u.Email))
	return nil
}

// sameClaimSet compares claim lists ignoring order.
func sameClaimSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, c := range a {
		seen[c] = struct{}{}
	}
	for _, c := range b {
		if _, ok := seen[c]; !ok {
			return false
		}
	}
	return true
}

func (s *Service) ensureRole(ctx context.Context, name, description string, claimList []string) (*role.Role, error) {
	r, err := s.roles.FindByName(ctx, name)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	r = &role.Role{Name: name, Description: description, Claims: claimList}
	if err := s.roles.Create(ctx, r); err != nil {
		return nil, xerrors.Wrap(err, "failed to seed role "+name)
	}
	s.logger.Info("role seeded", zap.String("role", name))
	return r, nil
}
