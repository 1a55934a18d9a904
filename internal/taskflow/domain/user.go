package domain

import "time"

// System roles. The first account ever created becomes an admin.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User statuses. Only active users can authenticate.
const (
	StatusActive  = "active"
	StatusInvited = "invited"
	StatusPending = "pending"
)

type User struct {
	ID           string
	Name         string
	Email        string // unique, stored lower-cased
	PasswordHash string // bcrypt digest, empty while invited
	Role         string
	Status       string
	BusinessID   string // primary business, may be empty

	// Set while the user is a pending invitee.
	InvitationToken     string // fingerprint of the invitation token
	InvitationExpiresAt *time.Time

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive reports whether the user may authenticate.
func (u User) IsActive() bool { return u.Status == StatusActive }

// Session is the optional audit row written on login. The signed cookie is
// the source of truth; this row only records that a token was issued.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
