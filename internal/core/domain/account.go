package domain

import (
	"errors"
	"time"
)

// Role grants access to role-gated routes.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrBadCredential   = errors.New("invalid credentials")
	ErrForbidden       = errors.New("access forbidden")
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account models a user who can sign in. Usernames are case-sensitive.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleChange records an administrative role edit.
type RoleChange struct {
	Username  string
	Role      Role
	ChangedBy string
	At        time.Time
}
