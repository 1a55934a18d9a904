package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
)

// Authorizer answers "may this user touch that resource" from the
// business_users table on every call. Nothing is cached, so a removed
// member loses access on their next request.
//
// A resource that does not exist is ErrNotFound; one that exists in a
// business the user is not part of is ErrForbidden.
type Authorizer struct {
	Store store.Store
}

// RequireMember returns the user's membership in businessID.
func (a *Authorizer) RequireMember(ctx context.Context, userID, businessID string) (domain.BusinessUser, error) {
	if _, err := a.Store.Businesses().GetBusinessByID(ctx, businessID); err != nil {
		return domain.BusinessUser{}, notFound(err)
	}
	m, err := a.Store.Members().GetMember(ctx, businessID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.BusinessUser{}, ErrForbidden
	}
	return m, err
}

// RequireManager is RequireMember restricted to owners and admins.
func (a *Authorizer) RequireManager(ctx context.Context, userID, businessID string) (domain.BusinessUser, error) {
	m, err := a.RequireMember(ctx, userID, businessID)
	if err != nil {
		return domain.BusinessUser{}, err
	}
	if !m.CanManage() {
		return domain.BusinessUser{}, ErrForbidden
	}
	return m, nil
}

// ProjectAccess loads a project and checks the user belongs to its business.
func (a *Authorizer) ProjectAccess(ctx context.Context, userID, projectID string) (domain.Project, domain.BusinessUser, error) {
	p, err := a.Store.Projects().GetProject(ctx, projectID)
	if err != nil {
		return domain.Project{}, domain.BusinessUser{}, notFound(err)
	}
	m, err := a.RequireMember(ctx, userID, p.BusinessID)
	if err != nil {
		return domain.Project{}, domain.BusinessUser{}, err
	}
	return p, m, nil
}

// TaskAccess loads a task and checks access through its project.
func (a *Authorizer) TaskAccess(ctx context.Context, userID, taskID string) (domain.Task, domain.Project, error) {
	t, err := a.Store.Tasks().GetTask(ctx, taskID)
	if err != nil {
		return domain.Task{}, domain.Project{}, notFound(err)
	}
	p, _, err := a.ProjectAccess(ctx, userID, t.ProjectID)
	if err != nil {
		return domain.Task{}, domain.Project{}, err
	}
	return t, p, nil
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
