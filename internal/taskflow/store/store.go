package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement it. Repositories hang off the root so a transaction can hand out
// the same set bound to its *sql.Tx, and so nobody starts a transaction from
// inside another one by accident.
type Store interface {
	Users() Users
	Sessions() Sessions
	Businesses() Businesses
	Members() Members
	Projects() Projects
	Tasks() Tasks
	TimeEntries() TimeEntries
	Invoices() Invoices
	TwoFactor() TwoFactor
	BackupCodes() BackupCodes
	Invitations() Invitations

	ApplyMigrations() error

	// HasTable reports whether the named table exists. Used at startup to
	// decide whether optional session persistence is available.
	HasTable(ctx context.Context, name string) (bool, error)

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction. It commits when fn returns nil
	// and rolls back otherwise. Inside fn, use the tx argument only.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively; emails are stored lower-cased.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user. A duplicate email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	CountUsers(ctx context.Context) (int, error)

	// ActivateUser sets name and password, flips status to active and clears
	// the pending invitation fields.
	ActivateUser(ctx context.Context, userID, name, passwordHash string) error

	// SetPendingInvitation points a still-invited user at a new invitation
	// fingerprint. It returns ErrNotFound for active users.
	SetPendingInvitation(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// SetPrimaryBusiness sets business_id when it is still empty.
	SetPrimaryBusiness(ctx context.Context, userID, businessID string) error

	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type Businesses interface {
	CreateBusiness(ctx context.Context, b domain.Business) error
	GetBusinessByID(ctx context.Context, id string) (domain.Business, error)
	GetBusinessBySlug(ctx context.Context, slug string) (domain.Business, error)

	// ListBusinesses returns every business, newest first.
	ListBusinesses(ctx context.Context) ([]domain.Business, error)

	// ListBusinessesForUser returns the businesses userID is a member of.
	ListBusinessesForUser(ctx context.Context, userID string) ([]domain.Membership, error)
}

type Members interface {
	// AddMember links a user to a business. An existing link yields ErrAlreadyExists.
	AddMember(ctx context.Context, m domain.BusinessUser) error
	GetMember(ctx context.Context, businessID, userID string) (domain.BusinessUser, error)
	ListMembers(ctx context.Context, businessID string) ([]domain.Member, error)
	UpdateMemberRole(ctx context.Context, businessID, userID, role string) error
	RemoveMember(ctx context.Context, businessID, userID string) error
}

type Projects interface {
	CreateProject(ctx context.Context, p domain.Project) error
	GetProject(ctx context.Context, id string) (domain.Project, error)
	ListProjects(ctx context.Context, businessID string) ([]domain.Project, error)
	UpdateProject(ctx context.Context, p domain.Project) error
	DeleteProject(ctx context.Context, id string) error
}

type Tasks interface {
	CreateTask(ctx context.Context, t domain.Task) error
	GetTask(ctx context.Context, id string) (domain.Task, error)
	ListTasks(ctx context.Context, projectID string) ([]domain.Task, error)
	UpdateTask(ctx context.Context, t domain.Task) error
	DeleteTask(ctx context.Context, id string) error
}

type TimeEntries interface {
	CreateTimeEntry(ctx context.Context, e domain.TimeEntry) error
	ListTimeEntries(ctx context.Context, projectID string) ([]domain.TimeEntry, error)
}

type Invoices interface {
	// CreateInvoice fails with ErrAlreadyExists when the number is taken
	// within the business.
	CreateInvoice(ctx context.Context, inv domain.Invoice) error
	ListInvoices(ctx context.Context, businessID string) ([]domain.Invoice, error)
}

type TwoFactor interface {
	GetSettings(ctx context.Context, userID string) (domain.TwoFactorSettings, error)

	// EnableSettings stores the sealed secret and marks 2FA enabled. It
	// returns false without writing when 2FA is already enabled, so two
	// concurrent enables cannot both succeed.
	EnableSettings(ctx context.Context, userID string, secret []byte, now time.Time) (bool, error)

	DisableSettings(ctx context.Context, userID string, now time.Time) error
}

type BackupCodes interface {
	CreateBackupCode(ctx context.Context, c domain.BackupCode) error
	DeleteAllBackupCodes(ctx context.Context, userID string) error

	// ConsumeBackupCode marks an unused code as used in a single conditional
	// update. It reports whether this call was the one that consumed it.
	ConsumeBackupCode(ctx context.Context, userID, codeHash string, now time.Time) (bool, error)

	CountUnusedBackupCodes(ctx context.Context, userID string) (int, error)
}

type Invitations interface {
	CreateInvitation(ctx context.Context, inv domain.Invitation) error
	GetInvitationByTokenHash(ctx context.Context, tokenHash string) (domain.Invitation, error)

	// DeleteInvitation returns ErrNotFound when no row was removed. Accept
	// relies on this to stay single-use under concurrency.
	DeleteInvitation(ctx context.Context, id string) error

	// DeleteInvitationsFor removes every invitation for email into businessID.
	DeleteInvitationsFor(ctx context.Context, email, businessID string) (int64, error)

	DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error)
}
