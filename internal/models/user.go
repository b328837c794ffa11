package models

import "time"

type UserRole string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleUser      UserRole = "USER"
	UserRoleModerator UserRole = "MODERATOR"
)

type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      UserRole
	CreatedAt time.Time
}

// Session is a server-side login created by the intake service. This
// backend only reads it.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Valid reports whether the session is neither revoked nor expired at now.
func (s Session) Valid(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// SessionWithUser is a session joined with its owner. User is nil when the
// owning row no longer exists.
type SessionWithUser struct {
	Session Session
	User    *User
}

// Principal is the authenticated identity carried through a request.
type Principal struct {
	ID   string
	Role UserRole
}
