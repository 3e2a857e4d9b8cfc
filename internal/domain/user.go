package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username is already taken by another user")
	ErrEmailTaken    = errors.New("email is already taken by another user")
	ErrInvalidCode   = errors.New("invalid confirmation code")
	ErrForbidden     = errors.New("forbidden")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

// Staff roles may edit or delete content they do not own.
func (r Role) Staff() bool {
	return r == RoleModerator || r == RoleAdmin
}

type User struct {
	ID       string
	Username string
	Email    string
	Bio      string
	Role     Role

	// ConfirmationSeq is bumped on every signup for this user. Confirmation
	// codes are derived from it, so a bump invalidates all prior codes.
	ConfirmationSeq int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor identifies the authenticated caller of a request.
type Actor struct {
	ID       string
	Username string
	Role     Role
}
