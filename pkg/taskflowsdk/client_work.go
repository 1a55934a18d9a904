package taskflowsdk

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Projects(ctx context.Context, businessID string) ([]Project, error) {
	var out ProjectsResponse
	if err := c.do(ctx, http.MethodGet, "/api/businesses/"+url.PathEscape(businessID)+"/projects", nil, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

func (c *Client) CreateProject(ctx context.Context, businessID string, req CreateProjectRequest) (*Project, error) {
	var out ProjectResponse
	if err := c.do(ctx, http.MethodPost, "/api/businesses/"+url.PathEscape(businessID)+"/projects", req, &out); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

func (c *Client) Project(ctx context.Context, projectID string) (*Project, error) {
	var out ProjectResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(projectID), nil, &out); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

func (c *Client) UpdateProject(ctx context.Context, projectID string, req UpdateProjectRequest) (*Project, error) {
	var out ProjectResponse
	if err := c.do(ctx, http.MethodPatch, "/api/projects/"+url.PathEscape(projectID), req, &out); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(projectID), nil, nil)
}

func (c *Client) Tasks(ctx context.Context, projectID string) ([]Task, error) {
	var out TasksResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(projectID)+"/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, projectID string, req CreateTaskRequest) (*Task, error) {
	var out TaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+url.PathEscape(projectID)+"/tasks", req, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) UpdateTask(ctx context.Context, taskID string, req UpdateTaskRequest) (*Task, error) {
	var out TaskResponse
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(taskID), req, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(taskID), nil, nil)
}

func (c *Client) TimeEntries(ctx context.Context, projectID string) ([]TimeEntry, error) {
	var out TimeEntriesResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(projectID)+"/time-entries", nil, &out); err != nil {
		return nil, err
	}
	return out.TimeEntries, nil
}

func (c *Client) LogTime(ctx context.Context, projectID string, req LogTimeRequest) (*TimeEntry, error) {
	var out TimeEntryResponse
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+url.PathEscape(projectID)+"/time-entries", req, &out); err != nil {
		return nil, err
	}
	return &out.TimeEntry, nil
}

// Invoices lists a business's invoices. Owners and admins only.
func (c *Client) Invoices(ctx context.Context, businessID string) ([]Invoice, error) {
	var out InvoicesResponse
	if err := c.do(ctx, http.MethodGet, "/api/businesses/"+url.PathEscape(businessID)+"/invoices", nil, &out); err != nil {
		return nil, err
	}
	return out.Invoices, nil
}

func (c *Client) CreateInvoice(ctx context.Context, businessID string, req CreateInvoiceRequest) (*Invoice, error) {
	var out InvoiceResponse
	if err := c.do(ctx, http.MethodPost, "/api/businesses/"+url.PathEscape(businessID)+"/invoices", req, &out); err != nil {
		return nil, err
	}
	return &out.Invoice, nil
}
