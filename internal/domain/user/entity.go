package user

import (
	"time"

	"backoffice-service/internal/domain/role"
)

// User is a back-office account. Password holds the bcrypt hash and is
// never serialized. Roles is hydrated by the repository from RoleIDs.
type User struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Surname      string      `json:"surname"`
	Email        string      `json:"email"`
	Password     string      `json:"-"`
	Photo        string      `json:"photo"`
	IsSuperAdmin bool        `json:"isSuperAdmin"`
	IsActivated  bool        `json:"isActivated"`
	ResetCode    *string     `json:"-"`
	ResetExpires *time.Time  `json:"-"`
	RoleIDs      []int64     `json:"roleIds"`
	Claims       []string    `json:"claims"`
	Roles        []role.Role `json:"roles"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	DeletedAt    *time.Time  `json:"deletedAt,omitempty"`
}

// HasRole reports whether one of the hydrated roles carries the name.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// TokenUser is the redacted projection embedded in session tokens and
// login responses. Secrets, grants and lifecycle fields never leave
// the server.
type TokenUser struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Photo   string `json:"photo,omitempty"`
}

// Redact strips the user down to its token projection.
func (u *User) Redact() TokenUser {
	return TokenUser{
		ID:      u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
		Photo:   u.Photo,
	}
}
