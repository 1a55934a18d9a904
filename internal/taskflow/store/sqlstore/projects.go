package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
)

type projectsRepo struct {
	c conn
}

const projectColumns = `id, business_id, name, description, status, created_by, created_at, updated_at`

func scanProject(s scanner) (domain.Project, error) {
	var p domain.Project
	err := s.Scan(&p.ID, &p.BusinessID, &p.Name, &p.Description, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.c.exec(ctx, `INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.BusinessID, p.Name, p.Description, p.Status, p.CreatedBy, p.CreatedAt.UTC(), p.CreatedAt.UTC())
	return err
}

func (r *projectsRepo) GetProject(ctx context.Context, id string) (domain.Project, error) {
	return scanProject(r.c.queryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
}

func (r *projectsRepo) ListProjects(ctx context.Context, businessID string) ([]domain.Project, error) {
	rows, err := r.c.query(ctx, `SELECT `+projectColumns+` FROM projects WHERE business_id = ? ORDER BY created_at DESC, id DESC`, businessID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanProject)
}

func (r *projectsRepo) UpdateProject(ctx context.Context, p domain.Project) error {
	return r.c.execOne(ctx, `UPDATE projects SET name = ?, description = ?, status = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Description, p.Status, time.Now().UTC(), p.ID)
}

func (r *projectsRepo) DeleteProject(ctx context.Context, id string) error {
	return r.c.execOne(ctx, `DELETE FROM projects WHERE id = ?`, id)
}

type tasksRepo struct {
	c conn
}

const taskColumns = `id, project_id, title, description, status, assignee_id, due_date, created_by, created_at, updated_at`

func scanTask(s scanner) (domain.Task, error) {
	var (
		t        domain.Task
		assignee sql.NullString
		due      sql.NullTime
	)
	err := s.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &assignee, &due,
		&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	t.AssigneeID = assignee.String
	t.DueDate = timePtr(due)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := r.c.exec(ctx, `INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Title, t.Description, t.Status, nullString(t.AssigneeID), nullTime(t.DueDate),
		t.CreatedBy, t.CreatedAt.UTC(), t.CreatedAt.UTC())
	return err
}

func (r *tasksRepo) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return scanTask(r.c.queryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
}

func (r *tasksRepo) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	rows, err := r.c.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTask)
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	return r.c.execOne(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, assignee_id = ?, due_date = ?, updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, t.Status, nullString(t.AssigneeID), nullTime(t.DueDate), time.Now().UTC(), t.ID)
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	return r.c.execOne(ctx, `DELETE FROM tasks WHERE id = ?`, id)
}

type timeEntriesRepo struct {
	c conn
}

func (r *timeEntriesRepo) CreateTimeEntry(ctx context.Context, e domain.TimeEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.c.exec(ctx, `
		INSERT INTO time_entries (id, project_id, task_id, user_id, minutes, note, spent_on, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProjectID, nullString(e.TaskID), e.UserID, e.Minutes, e.Note, e.SpentOn.UTC(), e.CreatedAt.UTC())
	return err
}

func (r *timeEntriesRepo) ListTimeEntries(ctx context.Context, projectID string) ([]domain.TimeEntry, error) {
	rows, err := r.c.query(ctx, `
		SELECT id, project_id, task_id, user_id, minutes, note, spent_on, created_at
		FROM time_entries WHERE project_id = ? ORDER BY spent_on DESC, id DESC`, projectID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(s scanner) (domain.TimeEntry, error) {
		var (
			e    domain.TimeEntry
			task sql.NullString
		)
		err := s.Scan(&e.ID, &e.ProjectID, &task, &e.UserID, &e.Minutes, &e.Note, &e.SpentOn, &e.CreatedAt)
		e.TaskID = task.String
		e.SpentOn = e.SpentOn.UTC()
		e.CreatedAt = e.CreatedAt.UTC()
		return e, err
	})
}

type invoicesRepo struct {
	c conn
}

func (r *invoicesRepo) CreateInvoice(ctx context.Context, inv domain.Invoice) error {
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	_, err := r.c.exec(ctx, `
		INSERT INTO invoices (id, business_id, number, client_name, amount_cents, currency, status, issued_at, due_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.BusinessID, inv.Number, inv.ClientName, inv.AmountCents, inv.Currency, inv.Status,
		inv.IssuedAt.UTC(), nullTime(inv.DueAt), inv.CreatedAt.UTC())
	return err
}

func (r *invoicesRepo) ListInvoices(ctx context.Context, businessID string) ([]domain.Invoice, error) {
	rows, err := r.c.query(ctx, `
		SELECT id, business_id, number, client_name, amount_cents, currency, status, issued_at, due_at, created_at
		FROM invoices WHERE business_id = ? ORDER BY issued_at DESC, id DESC`, businessID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(s scanner) (domain.Invoice, error) {
		var (
			inv domain.Invoice
			due sql.NullTime
		)
		err := s.Scan(&inv.ID, &inv.BusinessID, &inv.Number, &inv.ClientName, &inv.AmountCents,
			&inv.Currency, &inv.Status, &inv.IssuedAt, &due, &inv.CreatedAt)
		inv.DueAt = timePtr(due)
		inv.IssuedAt = inv.IssuedAt.UTC()
		inv.CreatedAt = inv.CreatedAt.UTC()
		return inv, err
	})
}
