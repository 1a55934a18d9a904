package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/stretchr/testify/require"
)

func TestAuthorizer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, biz := e.signup(t, "Ann", "ann@x.com")
	bob, _ := e.signup(t, "Bob", "bob@x.com")
	mel := e.join(t, ann.User, biz, "Mel", "mel@x.com", domain.MemberMember)

	m, err := e.authz.RequireMember(ctx, ann.User.ID, biz.ID)
	require.NoError(t, err)
	require.Equal(t, domain.MemberOwner, m.Role)

	_, err = e.authz.RequireMember(ctx, mel.ID, biz.ID)
	require.NoError(t, err)
	_, err = e.authz.RequireManager(ctx, mel.ID, biz.ID)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = e.authz.RequireMember(ctx, bob.User.ID, biz.ID)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = e.authz.RequireMember(ctx, ann.User.ID, "no-such-business")
	require.ErrorIs(t, err, ErrNotFound)

	_, _, err = e.authz.ProjectAccess(ctx, ann.User.ID, "no-such-project")
	require.ErrorIs(t, err, ErrNotFound)
	_, _, err = e.authz.TaskAccess(ctx, ann.User.ID, "no-such-task")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemovedMemberLosesAccess(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, biz := e.signup(t, "Ann", "ann@x.com")
	mel := e.join(t, ann.User, biz, "Mel", "mel@x.com", domain.MemberMember)

	p, err := e.projects.Create(ctx, ann.User.ID, biz.ID, "Website", "")
	require.NoError(t, err)

	_, err = e.projects.Get(ctx, mel.ID, p.ID)
	require.NoError(t, err)

	require.NoError(t, e.businesses.RemoveMember(ctx, ann.User.ID, biz.ID, mel.ID))

	_, err = e.projects.Get(ctx, mel.ID, p.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = e.projects.List(ctx, mel.ID, biz.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestBusinessMembers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, biz := e.signup(t, "Ann", "ann@x.com")
	bob, _ := e.signup(t, "Bob", "bob@x.com")
	mel := e.join(t, ann.User, biz, "Mel", "mel@x.com", domain.MemberMember)

	members, err := e.businesses.Members(ctx, mel.ID, biz.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, ann.User.ID, members[0].UserID)
	require.Equal(t, domain.MemberOwner, members[0].Role)

	_, err = e.businesses.Members(ctx, bob.User.ID, biz.ID)
	require.ErrorIs(t, err, ErrForbidden)

	mine, err := e.businesses.ListForUser(ctx, mel.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, biz.ID, mine[0].Business.ID)
	require.Equal(t, domain.MemberMember, mine[0].Role)

	all, err := e.businesses.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestMemberRoleChanges(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, biz := e.signup(t, "Ann", "ann@x.com")
	mel := e.join(t, ann.User, biz, "Mel", "mel@x.com", domain.MemberMember)
	ada := e.join(t, ann.User, biz, "Ada", "ada@x.com", domain.MemberMember)

	require.ErrorIs(t, e.businesses.UpdateMemberRole(ctx, mel.ID, biz.ID, ada.ID, domain.MemberAdmin), ErrForbidden)

	require.NoError(t, e.businesses.UpdateMemberRole(ctx, ann.User.ID, biz.ID, mel.ID, domain.MemberAdmin))
	m, err := e.authz.RequireManager(ctx, mel.ID, biz.ID)
	require.NoError(t, err)
	require.Equal(t, domain.MemberAdmin, m.Role)

	require.ErrorIs(t, e.businesses.UpdateMemberRole(ctx, mel.ID, biz.ID, ann.User.ID, domain.MemberMember), ErrOwnerImmutable)
	require.ErrorIs(t, e.businesses.RemoveMember(ctx, mel.ID, biz.ID, ann.User.ID), ErrOwnerImmutable)
	require.ErrorIs(t, e.businesses.UpdateMemberRole(ctx, ann.User.ID, biz.ID, mel.ID, domain.MemberOwner), ErrInvalidRole)
	require.ErrorIs(t, e.businesses.UpdateMemberRole(ctx, ann.User.ID, biz.ID, "ghost", domain.MemberMember), ErrNotFound)

	require.NoError(t, e.businesses.RemoveMember(ctx, mel.ID, biz.ID, ada.ID))
	require.ErrorIs(t, e.businesses.RemoveMember(ctx, mel.ID, biz.ID, ada.ID), ErrNotFound)
}

func TestProjects(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, biz := e.signup(t, "Ann", "ann@x.com")
	bob, _ := e.signup(t, "Bob", "bob@x.com")
	mel := e.join(t, ann.User, biz, "Mel", "mel@x.com", domain.MemberMember)

	p, err := e.projects.Create(ctx, mel.ID, biz.ID, "  Website  ", "Relaunch")
	require.NoError(t, err)
	require.Equal(t, "Website", p.Name)
	require.Equal(t, domain.ProjectActive, p.Status)

	_, err = e.projects.Create(ctx, bob.User.ID, biz.ID, "Intruder", "")
	require.ErrorIs(t, err, ErrForbidden)
	_, err = e.projects.Get(ctx, bob.User.ID, p.ID)
	require.ErrorIs(t, err, ErrForbidden)

	list, err := e.projects.List(ctx, ann.User.ID, biz.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	archived := domain.ProjectArchived
	name := "Website v2"
	updated, err := e.projects.Update(ctx, mel.ID, p.ID, ProjectPatch{Name: &name, Status: &archived})
	require.NoError(t, err)
	require.Equal(t, "Website v2", updated.Name)
	require.Equal(t, "Relaunch", updated.Description)
	require.Equal(t, domain.ProjectArchived, updated.Status)

	require.ErrorIs(t, e.projects.Delete(ctx, mel.ID, p.ID), ErrForbidden)
	require.NoError(t, e.projects.Delete(ctx, ann.User.ID, p.ID))
	_, err = e.projects.Get(ctx, ann.User.ID, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTasks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, biz := e.signup(t, "Ann", "ann@x.com")
	bob, _ := e.signup(t, "Bob", "bob@x.com")
	mel := e.join(t, ann.User, biz, "Mel", "mel@x.com", domain.MemberMember)

	p, err := e.projects.Create(ctx, ann.User.ID, biz.ID, "Website", "")
	require.NoError(t, err)

	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	task, err := e.tasks.Create(ctx, ann.User.ID, p.ID, TaskInput{Title: "Copy", AssigneeID: mel.ID, DueDate: &due})
	require.NoError(t, err)
	require.Equal(t, domain.TaskTodo, task.Status)

	_, err = e.tasks.Create(ctx, ann.User.ID, p.ID, TaskInput{Title: "Hire", AssigneeID: bob.User.ID})
	require.ErrorIs(t, err, ErrForbidden, "assignee must be a member")

	_, err = e.tasks.List(ctx, bob.User.ID, p.ID)
	require.ErrorIs(t, err, ErrForbidden)

	done := domain.TaskDone
	updated, err := e.tasks.Update(ctx, mel.ID, task.ID, TaskPatch{Status: &done, ClearDue: true})
	require.NoError(t, err)
	require.Equal(t, domain.TaskDone, updated.Status)
	require.Nil(t, updated.DueDate)
	require.Equal(t, mel.ID, updated.AssigneeID)

	outsider := bob.User.ID
	_, err = e.tasks.Update(ctx, mel.ID, task.ID, TaskPatch{AssigneeID: &outsider})
	require.ErrorIs(t, err, ErrForbidden)

	tasks, err := e.tasks.List(ctx, mel.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	require.ErrorIs(t, e.tasks.Delete(ctx, bob.User.ID, task.ID), ErrForbidden)
	require.NoError(t, e.tasks.Delete(ctx, mel.ID, task.ID))
	require.ErrorIs(t, e.tasks.Delete(ctx, mel.ID, task.ID), ErrNotFound)
}

func TestTimeEntries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, biz := e.signup(t, "Ann", "ann@x.com")

	p, err := e.projects.Create(ctx, ann.User.ID, biz.ID, "Website", "")
	require.NoError(t, err)
	other, err := e.projects.Create(ctx, ann.User.ID, biz.ID, "Other", "")
	require.NoError(t, err)
	task, err := e.tasks.Create(ctx, ann.User.ID, other.ID, TaskInput{Title: "Elsewhere"})
	require.NoError(t, err)

	entry, err := e.time.Log(ctx, ann.User.ID, p.ID, TimeInput{Minutes: 90, Note: "kickoff"})
	require.NoError(t, err)
	require.Equal(t, ann.User.ID, entry.UserID)
	require.False(t, entry.SpentOn.IsZero())

	_, err = e.time.Log(ctx, ann.User.ID, p.ID, TimeInput{TaskID: task.ID, Minutes: 10})
	require.ErrorIs(t, err, ErrNotFound, "task from another project")

	entries, err := e.time.List(ctx, ann.User.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 90, entries[0].Minutes)
}

func TestInvoices(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, biz := e.signup(t, "Ann", "ann@x.com")
	mel := e.join(t, ann.User, biz, "Mel", "mel@x.com", domain.MemberMember)

	in := InvoiceInput{Number: "INV-001", ClientName: "Globex", AmountCents: 125000, Currency: "aud"}
	inv, err := e.invoices.Create(ctx, ann.User.ID, biz.ID, in)
	require.NoError(t, err)
	require.Equal(t, "AUD", inv.Currency)
	require.Equal(t, domain.InvoiceDraft, inv.Status)

	_, err = e.invoices.Create(ctx, ann.User.ID, biz.ID, in)
	require.ErrorIs(t, err, ErrInvoiceExists)

	_, err = e.invoices.List(ctx, mel.ID, biz.ID)
	require.ErrorIs(t, err, ErrForbidden, "members cannot see invoices")
	_, err = e.invoices.Create(ctx, mel.ID, biz.ID, InvoiceInput{Number: "INV-002", Currency: "AUD"})
	require.ErrorIs(t, err, ErrForbidden)

	list, err := e.invoices.List(ctx, ann.User.ID, biz.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, int64(125000), list[0].AmountCents)
}
