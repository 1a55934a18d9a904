package domain

import "time"

// Invitation is created when a manager invites an email address. It is
// consumed exactly once, converting the invited user to active.
type Invitation struct {
	ID         string
	Email      string
	TokenHash  string
	BusinessID string
	Role       string
	InvitedBy  string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

func (i Invitation) Expired(now time.Time) bool { return !now.Before(i.ExpiresAt) }

// InvitationPreview is what an invitee sees before accepting.
type InvitationPreview struct {
	Email        string
	BusinessName string
	Role         string
	InviterName  string
	ExpiresAt    time.Time
}
