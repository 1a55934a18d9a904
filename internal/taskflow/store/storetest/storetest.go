// Package storetest is a conformance suite run against every store driver.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
	"github.com/aussiebroadwan/taskflow/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Factory returns a migrated, empty store. The suite closes nothing; the
// factory registers its own cleanup.
type Factory func(t *testing.T) store.Store

func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"Users", testUsers},
		{"Sessions", testSessions},
		{"BusinessesAndMembers", testBusinessesAndMembers},
		{"ProjectsTasksTime", testProjectsTasksTime},
		{"Invoices", testInvoices},
		{"TwoFactor", testTwoFactor},
		{"BackupCodes", testBackupCodes},
		{"Invitations", testInvitations},
		{"Transactions", testTransactions},
		{"HasTable", testHasTable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newStore(t))
		})
	}
}

// SeedUser inserts an active user with the given email.
func SeedUser(t *testing.T, s store.Store, email string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Name:         "User " + email,
		Email:        email,
		PasswordHash: "$2a$04$placeholder",
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

// SeedBusiness inserts a business owned by owner along with the owner link.
func SeedBusiness(t *testing.T, s store.Store, owner domain.User, slug string) domain.Business {
	t.Helper()
	ctx := context.Background()
	b := domain.Business{
		ID:      idx.New().String(),
		Name:    "Business " + slug,
		Slug:    slug,
		Plan:    domain.PlanFree,
		OwnerID: owner.ID,
	}
	require.NoError(t, s.Businesses().CreateBusiness(ctx, b))
	require.NoError(t, s.Members().AddMember(ctx, domain.BusinessUser{
		BusinessID: b.ID, UserID: owner.ID, Role: domain.MemberOwner,
	}))
	return b
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	users := s.Users()

	n, err := users.CountUsers(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	ann := SeedUser(t, s, "Ann@Example.com")

	got, err := users.GetUserByID(ctx, ann.ID)
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", got.Email)
	require.Equal(t, domain.StatusActive, got.Status)
	require.Nil(t, got.LastLoginAt)
	require.False(t, got.CreatedAt.IsZero())

	got, err = users.GetUserByEmail(ctx, "  ANN@example.COM ")
	require.NoError(t, err)
	require.Equal(t, ann.ID, got.ID)

	_, err = users.GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	dup := ann
	dup.ID = idx.New().String()
	require.ErrorIs(t, users.CreateUser(ctx, dup), store.ErrAlreadyExists)

	n, err = users.CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, users.UpdateLastLogin(ctx, ann.ID, at))
	got, err = users.GetUserByID(ctx, ann.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	require.True(t, at.Equal(*got.LastLoginAt))

	require.ErrorIs(t, users.UpdateLastLogin(ctx, "missing", at), store.ErrNotFound)

	expires := time.Now().UTC().Add(time.Hour)
	invited := domain.User{
		ID:                  idx.New().String(),
		Email:               "invitee@example.com",
		Role:                domain.RoleUser,
		Status:              domain.StatusInvited,
		InvitationToken:     "fingerprint",
		InvitationExpiresAt: &expires,
	}
	require.NoError(t, users.CreateUser(ctx, invited))

	later := expires.Add(time.Hour)
	require.NoError(t, users.SetPendingInvitation(ctx, invited.ID, "fingerprint-2", later))
	got, err = users.GetUserByID(ctx, invited.ID)
	require.NoError(t, err)
	require.Equal(t, "fingerprint-2", got.InvitationToken)
	require.NotNil(t, got.InvitationExpiresAt)
	require.WithinDuration(t, later, *got.InvitationExpiresAt, time.Second)

	require.NoError(t, users.ActivateUser(ctx, invited.ID, "Ivy", "hash"))

	got, err = users.GetUserByID(ctx, invited.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, got.Status)
	require.Equal(t, "Ivy", got.Name)
	require.Equal(t, "hash", got.PasswordHash)
	require.Empty(t, got.InvitationToken)
	require.Nil(t, got.InvitationExpiresAt)

	require.ErrorIs(t, users.ActivateUser(ctx, "missing", "x", "y"), store.ErrNotFound)
	require.ErrorIs(t, users.SetPendingInvitation(ctx, invited.ID, "fingerprint-3", later), store.ErrNotFound,
		"active users have no pending invitation")
}

func testSessions(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := SeedUser(t, s, "sess@example.com")
	now := time.Now().UTC()

	live := domain.Session{ID: idx.New().String(), UserID: u.ID, TokenHash: "live", ExpiresAt: now.Add(time.Hour)}
	dead := domain.Session{ID: idx.New().String(), UserID: u.ID, TokenHash: "dead", ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, s.Sessions().CreateSession(ctx, live))
	require.NoError(t, s.Sessions().CreateSession(ctx, dead))

	dup := live
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Sessions().CreateSession(ctx, dup), store.ErrAlreadyExists)

	n, err := s.Sessions().DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, s.Sessions().DeleteSessionByTokenHash(ctx, "live"))
	require.NoError(t, s.Sessions().DeleteSessionByTokenHash(ctx, "live"))

	n, err = s.Sessions().DeleteExpiredSessions(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	require.Zero(t, n)
}

func testBusinessesAndMembers(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := SeedUser(t, s, "owner@example.com")
	other := SeedUser(t, s, "other@example.com")

	acme := SeedBusiness(t, s, owner, "acme")
	globex := SeedBusiness(t, s, other, "globex")

	got, err := s.Businesses().GetBusinessBySlug(ctx, "acme")
	require.NoError(t, err)
	require.Equal(t, acme.ID, got.ID)
	require.Equal(t, owner.ID, got.OwnerID)

	_, err = s.Businesses().GetBusinessByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	clash := acme
	clash.ID = idx.New().String()
	require.ErrorIs(t, s.Businesses().CreateBusiness(ctx, clash), store.ErrAlreadyExists)

	all, err := s.Businesses().ListBusinesses(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, s.Users().SetPrimaryBusiness(ctx, owner.ID, acme.ID))
	require.NoError(t, s.Users().SetPrimaryBusiness(ctx, owner.ID, globex.ID))
	u, err := s.Users().GetUserByID(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, acme.ID, u.BusinessID)

	require.NoError(t, s.Members().AddMember(ctx, domain.BusinessUser{BusinessID: acme.ID, UserID: other.ID, Role: domain.MemberMember}))
	require.ErrorIs(t,
		s.Members().AddMember(ctx, domain.BusinessUser{BusinessID: acme.ID, UserID: other.ID, Role: domain.MemberAdmin}),
		store.ErrAlreadyExists)

	mine, err := s.Businesses().ListBusinessesForUser(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	roles := map[string]string{}
	for _, m := range mine {
		roles[m.Business.Slug] = m.Role
	}
	require.Equal(t, map[string]string{"acme": domain.MemberMember, "globex": domain.MemberOwner}, roles)

	members, err := s.Members().ListMembers(ctx, acme.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, "owner@example.com", members[0].Email)

	require.NoError(t, s.Members().UpdateMemberRole(ctx, acme.ID, other.ID, domain.MemberAdmin))
	m, err := s.Members().GetMember(ctx, acme.ID, other.ID)
	require.NoError(t, err)
	require.Equal(t, domain.MemberAdmin, m.Role)

	require.NoError(t, s.Members().RemoveMember(ctx, acme.ID, other.ID))
	_, err = s.Members().GetMember(ctx, acme.ID, other.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Members().RemoveMember(ctx, acme.ID, other.ID), store.ErrNotFound)
	require.ErrorIs(t, s.Members().UpdateMemberRole(ctx, acme.ID, other.ID, domain.MemberAdmin), store.ErrNotFound)
}

func testProjectsTasksTime(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := SeedUser(t, s, "pm@example.com")
	b := SeedBusiness(t, s, u, "pm")

	p := domain.Project{ID: idx.New().String(), BusinessID: b.ID, Name: "Launch", Status: domain.ProjectActive, CreatedBy: u.ID}
	require.NoError(t, s.Projects().CreateProject(ctx, p))

	p.Name = "Launch v2"
	p.Status = domain.ProjectArchived
	require.NoError(t, s.Projects().UpdateProject(ctx, p))

	got, err := s.Projects().GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Launch v2", got.Name)
	require.Equal(t, domain.ProjectArchived, got.Status)

	list, err := s.Projects().ListProjects(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	task := domain.Task{ID: idx.New().String(), ProjectID: p.ID, Title: "Write docs", Status: domain.TaskTodo, DueDate: &due, CreatedBy: u.ID}
	require.NoError(t, s.Tasks().CreateTask(ctx, task))

	task.Status = domain.TaskDone
	task.AssigneeID = u.ID
	require.NoError(t, s.Tasks().UpdateTask(ctx, task))

	gotTask, err := s.Tasks().GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskDone, gotTask.Status)
	require.Equal(t, u.ID, gotTask.AssigneeID)
	require.NotNil(t, gotTask.DueDate)
	require.True(t, due.Equal(*gotTask.DueDate))

	tasks, err := s.Tasks().ListTasks(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	entry := domain.TimeEntry{ID: idx.New().String(), ProjectID: p.ID, TaskID: task.ID, UserID: u.ID, Minutes: 90, Note: "pairing", SpentOn: due}
	require.NoError(t, s.TimeEntries().CreateTimeEntry(ctx, entry))
	entries, err := s.TimeEntries().ListTimeEntries(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 90, entries[0].Minutes)
	require.Equal(t, task.ID, entries[0].TaskID)

	require.NoError(t, s.Tasks().DeleteTask(ctx, task.ID))
	_, err = s.Tasks().GetTask(ctx, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Tasks().DeleteTask(ctx, task.ID), store.ErrNotFound)

	require.NoError(t, s.Projects().DeleteProject(ctx, p.ID))
	_, err = s.Projects().GetProject(ctx, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	entries, err = s.TimeEntries().ListTimeEntries(ctx, p.ID)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func testInvoices(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := SeedUser(t, s, "billing@example.com")
	b := SeedBusiness(t, s, u, "billing")

	inv := domain.Invoice{
		ID: idx.New().String(), BusinessID: b.ID, Number: "INV-001", ClientName: "Initech",
		AmountCents: 125000, Currency: "AUD", Status: domain.InvoiceDraft, IssuedAt: time.Now().UTC(),
	}
	require.NoError(t, s.Invoices().CreateInvoice(ctx, inv))

	again := inv
	again.ID = idx.New().String()
	require.ErrorIs(t, s.Invoices().CreateInvoice(ctx, again), store.ErrAlreadyExists)

	list, err := s.Invoices().ListInvoices(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.EqualValues(t, 125000, list[0].AmountCents)
	require.Nil(t, list[0].DueAt)
}

func testTwoFactor(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := SeedUser(t, s, "totp@example.com")
	now := time.Now().UTC()

	_, err := s.TwoFactor().GetSettings(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	changed, err := s.TwoFactor().EnableSettings(ctx, u.ID, []byte("sealed-1"), now)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = s.TwoFactor().EnableSettings(ctx, u.ID, []byte("sealed-2"), now)
	require.NoError(t, err)
	require.False(t, changed, "already enabled settings must not be overwritten")

	settings, err := s.TwoFactor().GetSettings(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, settings.Enabled)
	require.Equal(t, []byte("sealed-1"), settings.Secret)

	later := now.Add(time.Minute)
	require.NoError(t, s.TwoFactor().DisableSettings(ctx, u.ID, later))
	require.NoError(t, s.TwoFactor().DisableSettings(ctx, u.ID, later))

	settings, err = s.TwoFactor().GetSettings(ctx, u.ID)
	require.NoError(t, err, "disabling keeps the row")
	require.False(t, settings.Enabled)
	require.Equal(t, []byte("sealed-1"), settings.Secret)
	require.WithinDuration(t, later, settings.UpdatedAt, time.Second)

	// Re-enabling goes through the update branch and replaces the secret.
	changed, err = s.TwoFactor().EnableSettings(ctx, u.ID, []byte("sealed-3"), later)
	require.NoError(t, err)
	require.True(t, changed)

	settings, err = s.TwoFactor().GetSettings(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, settings.Enabled)
	require.Equal(t, []byte("sealed-3"), settings.Secret)
}

func testBackupCodes(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := SeedUser(t, s, "codes@example.com")
	now := time.Now().UTC()

	for _, h := range []string{"h1", "h2", "h3"} {
		require.NoError(t, s.BackupCodes().CreateBackupCode(ctx, domain.BackupCode{ID: idx.New().String(), UserID: u.ID, CodeHash: h}))
	}
	require.ErrorIs(t,
		s.BackupCodes().CreateBackupCode(ctx, domain.BackupCode{ID: idx.New().String(), UserID: u.ID, CodeHash: "h1"}),
		store.ErrAlreadyExists)

	n, err := s.BackupCodes().CountUnusedBackupCodes(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	ok, err := s.BackupCodes().ConsumeBackupCode(ctx, u.ID, "h2", now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.BackupCodes().ConsumeBackupCode(ctx, u.ID, "h2", now)
	require.NoError(t, err)
	require.False(t, ok, "a backup code is single use")

	ok, err = s.BackupCodes().ConsumeBackupCode(ctx, "someone-else", "h1", now)
	require.NoError(t, err)
	require.False(t, ok)

	n, err = s.BackupCodes().CountUnusedBackupCodes(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.NoError(t, s.BackupCodes().DeleteAllBackupCodes(ctx, u.ID))
	n, err = s.BackupCodes().CountUnusedBackupCodes(ctx, u.ID)
	require.NoError(t, err)
	require.Zero(t, n)
}

func testInvitations(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := SeedUser(t, s, "inviter@example.com")
	b := SeedBusiness(t, s, u, "inviting")
	now := time.Now().UTC()

	live := domain.Invitation{
		ID: idx.New().String(), Email: "new@example.com", TokenHash: "tok-live", BusinessID: b.ID,
		Role: domain.MemberMember, InvitedBy: u.ID, ExpiresAt: now.Add(24 * time.Hour),
	}
	stale := live
	stale.ID = idx.New().String()
	stale.TokenHash = "tok-stale"
	stale.ExpiresAt = now.Add(-time.Minute)
	require.NoError(t, s.Invitations().CreateInvitation(ctx, live))
	require.NoError(t, s.Invitations().CreateInvitation(ctx, stale))

	got, err := s.Invitations().GetInvitationByTokenHash(ctx, "tok-live")
	require.NoError(t, err)
	require.Equal(t, live.ID, got.ID)
	require.False(t, got.Expired(now))

	n, err := s.Invitations().DeleteExpiredInvitations(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, s.Invitations().DeleteInvitation(ctx, live.ID))
	require.ErrorIs(t, s.Invitations().DeleteInvitation(ctx, live.ID), store.ErrNotFound)

	_, err = s.Invitations().GetInvitationByTokenHash(ctx, "tok-live")
	require.ErrorIs(t, err, store.ErrNotFound)

	other := SeedBusiness(t, s, u, "elsewhere")
	for i, biz := range []string{b.ID, b.ID, other.ID} {
		inv := live
		inv.ID = idx.New().String()
		inv.TokenHash = fmt.Sprintf("tok-%d", i)
		inv.BusinessID = biz
		require.NoError(t, s.Invitations().CreateInvitation(ctx, inv))
	}
	n, err = s.Invitations().DeleteInvitationsFor(ctx, "new@example.com", b.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
	_, err = s.Invitations().GetInvitationByTokenHash(ctx, "tok-2")
	require.NoError(t, err, "invitations into other businesses survive")
}

func testTransactions(t *testing.T, s store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		SeedUser(t, tx, "rollback@example.com")
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByEmail(ctx, "rollback@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		SeedUser(t, tx, "commit@example.com")
		require.Error(t, tx.WithTx(ctx, func(store.Tx) error { return nil }))
		return nil
	})
	require.NoError(t, err)

	_, err = s.Users().GetUserByEmail(ctx, "commit@example.com")
	require.NoError(t, err)
}

func testHasTable(t *testing.T, s store.Store) {
	ctx := context.Background()
	ok, err := s.HasTable(ctx, "sessions")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.HasTable(ctx, "no_such_table")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Ping(ctx))
}
