package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
	"github.com/aussiebroadwan/taskflow/pkg/idx"
)

// ProjectService, TaskService, TimeService and InvoiceService are thin:
// they authorize through the Authorizer and hand off to the store.

type ProjectService struct {
	Store store.Store
	Authz *Authorizer
}

type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *string
}

func (s *ProjectService) List(ctx context.Context, userID, businessID string) ([]domain.Project, error) {
	if _, err := s.Authz.RequireMember(ctx, userID, businessID); err != nil {
		return nil, err
	}
	return s.Store.Projects().ListProjects(ctx, businessID)
}

func (s *ProjectService) Create(ctx context.Context, userID, businessID, name, description string) (domain.Project, error) {
	if _, err := s.Authz.RequireMember(ctx, userID, businessID); err != nil {
		return domain.Project{}, err
	}
	now := time.Now().UTC()
	p := domain.Project{
		ID:          idx.New().String(),
		BusinessID:  businessID,
		Name:        strings.TrimSpace(name),
		Description: description,
		Status:      domain.ProjectActive,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Projects().CreateProject(ctx, p); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (domain.Project, error) {
	p, _, err := s.Authz.ProjectAccess(ctx, userID, projectID)
	return p, err
}

func (s *ProjectService) Update(ctx context.Context, userID, projectID string, patch ProjectPatch) (domain.Project, error) {
	p, _, err := s.Authz.ProjectAccess(ctx, userID, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if err := s.Store.Projects().UpdateProject(ctx, p); err != nil {
		return domain.Project{}, notFound(err)
	}
	return s.Store.Projects().GetProject(ctx, p.ID)
}

// Delete is restricted to owners and admins of the project's business.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	_, m, err := s.Authz.ProjectAccess(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if !m.CanManage() {
		return ErrForbidden
	}
	return notFound(s.Store.Projects().DeleteProject(ctx, projectID))
}

type TaskService struct {
	Store store.Store
	Authz *Authorizer
}

type TaskInput struct {
	Title       string
	Description string
	AssigneeID  string
	DueDate     *time.Time
}

type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	AssigneeID  *string
	DueDate     *time.Time
	ClearDue    bool
}

func (s *TaskService) List(ctx context.Context, userID, projectID string) ([]domain.Task, error) {
	if _, _, err := s.Authz.ProjectAccess(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.Store.Tasks().ListTasks(ctx, projectID)
}

func (s *TaskService) Create(ctx context.Context, userID, projectID string, in TaskInput) (domain.Task, error) {
	p, _, err := s.Authz.ProjectAccess(ctx, userID, projectID)
	if err != nil {
		return domain.Task{}, err
	}
	if err := s.checkAssignee(ctx, p.BusinessID, in.AssigneeID); err != nil {
		return domain.Task{}, err
	}
	now := time.Now().UTC()
	t := domain.Task{
		ID:          idx.New().String(),
		ProjectID:   projectID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      domain.TaskTodo,
		AssigneeID:  in.AssigneeID,
		DueDate:     in.DueDate,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Tasks().CreateTask(ctx, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, patch TaskPatch) (domain.Task, error) {
	t, p, err := s.Authz.TaskAccess(ctx, userID, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.AssigneeID != nil {
		if err := s.checkAssignee(ctx, p.BusinessID, *patch.AssigneeID); err != nil {
			return domain.Task{}, err
		}
		t.AssigneeID = *patch.AssigneeID
	}
	switch {
	case patch.ClearDue:
		t.DueDate = nil
	case patch.DueDate != nil:
		t.DueDate = patch.DueDate
	}
	if err := s.Store.Tasks().UpdateTask(ctx, t); err != nil {
		return domain.Task{}, notFound(err)
	}
	return s.Store.Tasks().GetTask(ctx, t.ID)
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if _, _, err := s.Authz.TaskAccess(ctx, userID, taskID); err != nil {
		return err
	}
	return notFound(s.Store.Tasks().DeleteTask(ctx, taskID))
}

// checkAssignee rejects assigning work to someone outside the business.
func (s *TaskService) checkAssignee(ctx context.Context, businessID, assigneeID string) error {
	if assigneeID == "" {
		return nil
	}
	_, err := s.Store.Members().GetMember(ctx, businessID, assigneeID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrForbidden
	}
	return err
}

type TimeService struct {
	Store store.Store
	Authz *Authorizer
}

type TimeInput struct {
	TaskID  string
	Minutes int
	Note    string
	SpentOn time.Time
}

func (s *TimeService) List(ctx context.Context, userID, projectID string) ([]domain.TimeEntry, error) {
	if _, _, err := s.Authz.ProjectAccess(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.Store.TimeEntries().ListTimeEntries(ctx, projectID)
}

func (s *TimeService) Log(ctx context.Context, userID, projectID string, in TimeInput) (domain.TimeEntry, error) {
	if _, _, err := s.Authz.ProjectAccess(ctx, userID, projectID); err != nil {
		return domain.TimeEntry{}, err
	}
	if in.TaskID != "" {
		t, err := s.Store.Tasks().GetTask(ctx, in.TaskID)
		if err != nil {
			return domain.TimeEntry{}, notFound(err)
		}
		if t.ProjectID != projectID {
			return domain.TimeEntry{}, ErrNotFound
		}
	}
	spent := in.SpentOn
	if spent.IsZero() {
		spent = time.Now().UTC()
	}
	e := domain.TimeEntry{
		ID:        idx.New().String(),
		ProjectID: projectID,
		TaskID:    in.TaskID,
		UserID:    userID,
		Minutes:   in.Minutes,
		Note:      in.Note,
		SpentOn:   spent.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.TimeEntries().CreateTimeEntry(ctx, e); err != nil {
		return domain.TimeEntry{}, err
	}
	return e, nil
}

type InvoiceService struct {
	Store store.Store
	Authz *Authorizer
}

type InvoiceInput struct {
	Number      string
	ClientName  string
	AmountCents int64
	Currency    string
	IssuedAt    time.Time
	DueAt       *time.Time
}

// Invoices are visible to owners and admins only.
func (s *InvoiceService) List(ctx context.Context, userID, businessID string) ([]domain.Invoice, error) {
	if _, err := s.Authz.RequireManager(ctx, userID, businessID); err != nil {
		return nil, err
	}
	return s.Store.Invoices().ListInvoices(ctx, businessID)
}

func (s *InvoiceService) Create(ctx context.Context, userID, businessID string, in InvoiceInput) (domain.Invoice, error) {
	if _, err := s.Authz.RequireManager(ctx, userID, businessID); err != nil {
		return domain.Invoice{}, err
	}
	issued := in.IssuedAt
	if issued.IsZero() {
		issued = time.Now().UTC()
	}
	inv := domain.Invoice{
		ID:          idx.New().String(),
		BusinessID:  businessID,
		Number:      strings.TrimSpace(in.Number),
		ClientName:  strings.TrimSpace(in.ClientName),
		AmountCents: in.AmountCents,
		Currency:    strings.ToUpper(in.Currency),
		Status:      domain.InvoiceDraft,
		IssuedAt:    issued.UTC(),
		DueAt:       in.DueAt,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Store.Invoices().CreateInvoice(ctx, inv); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Invoice{}, ErrInvoiceExists
		}
		return domain.Invoice{}, err
	}
	return inv, nil
}
