package domain

import "time"

// Plans a business can sign up for.
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Membership roles inside a business.
const (
	MemberOwner  = "owner"
	MemberAdmin  = "admin"
	MemberMember = "member"
)

type Business struct {
	ID        string
	Name      string
	Slug      string
	Plan      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BusinessUser links a user to a business. It is the authorization boundary:
// without a row a user cannot see anything the business owns.
type BusinessUser struct {
	BusinessID string
	UserID     string
	Role       string
	CreatedAt  time.Time
}

// CanManage reports whether the membership may perform role-gated actions.
func (m BusinessUser) CanManage() bool {
	return m.Role == MemberOwner || m.Role == MemberAdmin
}

// Member is a team listing entry.
type Member struct {
	UserID   string
	Name     string
	Email    string
	Status   string
	Role     string
	JoinedAt time.Time
}

// Membership is a business as seen by one of its members.
type Membership struct {
	Business Business
	Role     string
}
