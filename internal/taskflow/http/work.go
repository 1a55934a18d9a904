package http

import (
	"net/http"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/apperr"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/service"
	"github.com/aussiebroadwan/taskflow/pkg/httpx"
	sdk "github.com/aussiebroadwan/taskflow/pkg/taskflowsdk"
)

// WorkHandler serves projects, tasks, time entries and invoices. Every
// route re-checks membership through the services.
type WorkHandler struct {
	Projects *service.ProjectService
	Tasks    *service.TaskService
	Time     *service.TimeService
	Invoices *service.InvoiceService
}

// HandleListProjects handles GET /api/businesses/{id}/projects
//
//	@Summary	List projects
//	@Tags		Projects
//	@Produce	json
//	@Param		id	path		string	true	"Business ID"
//	@Success	200	{object}	taskflowsdk.ProjectsResponse
//	@Failure	403	{object}	taskflowsdk.ErrorResponse
//	@Router		/api/businesses/{id}/projects [get]
func (h *WorkHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Projects.List(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err, "Business")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.ProjectsResponse{Success: true, Projects: mapSlice(ps, toProject)})
}

// HandleCreateProject handles POST /api/businesses/{id}/projects
//
//	@Summary	Create a project
//	@Tags		Projects
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Business ID"
//	@Param		request	body		taskflowsdk.CreateProjectRequest	true	"Project"
//	@Success	201		{object}	taskflowsdk.ProjectResponse
//	@Failure	400		{object}	taskflowsdk.ErrorResponse
//	@Failure	403		{object}	taskflowsdk.ErrorResponse
//	@Router		/api/businesses/{id}/projects [post]
func (h *WorkHandler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req sdk.CreateProjectRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}
	p, err := h.Projects.Create(r.Context(), currentUser(r).ID, r.PathValue("id"), req.Name, req.Description)
	if err != nil {
		writeErr(w, r, err, "Business")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, sdk.ProjectResponse{Success: true, Project: toProject(p)})
}

// HandleGetProject handles GET /api/projects/{id}
//
//	@Summary	Get a project
//	@Tags		Projects
//	@Produce	json
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	taskflowsdk.ProjectResponse
//	@Failure	403	{object}	taskflowsdk.ErrorResponse
//	@Failure	404	{object}	taskflowsdk.ErrorResponse
//	@Router		/api/projects/{id} [get]
func (h *WorkHandler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.Projects.Get(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err, "Project")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.ProjectResponse{Success: true, Project: toProject(p)})
}

// HandleUpdateProject handles PATCH /api/projects/{id}
//
//	@Summary	Update a project
//	@Tags		Projects
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Project ID"
//	@Param		request	body		taskflowsdk.UpdateProjectRequest	true	"Fields to change"
//	@Success	200		{object}	taskflowsdk.ProjectResponse
//	@Failure	403		{object}	taskflowsdk.ErrorResponse
//	@Failure	404		{object}	taskflowsdk.ErrorResponse
//	@Router		/api/projects/{id} [patch]
func (h *WorkHandler) HandleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req sdk.UpdateProjectRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}
	p, err := h.Projects.Update(r.Context(), currentUser(r).ID, r.PathValue("id"), service.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		writeErr(w, r, err, "Project")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.ProjectResponse{Success: true, Project: toProject(p)})
}

// HandleDeleteProject handles DELETE /api/projects/{id}
//
//	@Summary		Delete a project
//	@Description	Owners and admins only. Tasks and time entries go with it.
//	@Tags			Projects
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	taskflowsdk.SuccessResponse
//	@Failure		403	{object}	taskflowsdk.ErrorResponse
//	@Failure		404	{object}	taskflowsdk.ErrorResponse
//	@Router			/api/projects/{id} [delete]
func (h *WorkHandler) HandleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.Projects.Delete(r.Context(), currentUser(r).ID, r.PathValue("id")); err != nil {
		writeErr(w, r, err, "Project")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.SuccessResponse{Success: true})
}

// HandleListTasks handles GET /api/projects/{id}/tasks
//
//	@Summary	List tasks
//	@Tags		Tasks
//	@Produce	json
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	taskflowsdk.TasksResponse
//	@Failure	403	{object}	taskflowsdk.ErrorResponse
//	@Failure	404	{object}	taskflowsdk.ErrorResponse
//	@Router		/api/projects/{id}/tasks [get]
func (h *WorkHandler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	ts, err := h.Tasks.List(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err, "Project")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.TasksResponse{Success: true, Tasks: mapSlice(ts, toTask)})
}

// HandleCreateTask handles POST /api/projects/{id}/tasks
//
//	@Summary		Create a task
//	@Description	The assignee, if any, must be a member of the project's business.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Project ID"
//	@Param			request	body		taskflowsdk.CreateTaskRequest	true	"Task"
//	@Success		201		{object}	taskflowsdk.TaskResponse
//	@Failure		400		{object}	taskflowsdk.ErrorResponse
//	@Failure		403		{object}	taskflowsdk.ErrorResponse
//	@Failure		404		{object}	taskflowsdk.ErrorResponse
//	@Router			/api/projects/{id}/tasks [post]
func (h *WorkHandler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req sdk.CreateTaskRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}
	t, err := h.Tasks.Create(r.Context(), currentUser(r).ID, r.PathValue("id"), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeErr(w, r, err, "Project")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, sdk.TaskResponse{Success: true, Task: toTask(t)})
}

// HandleUpdateTask handles PATCH /api/tasks/{id}
//
//	@Summary	Update a task
//	@Tags		Tasks
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Task ID"
//	@Param		request	body		taskflowsdk.UpdateTaskRequest	true	"Fields to change"
//	@Success	200		{object}	taskflowsdk.TaskResponse
//	@Failure	403		{object}	taskflowsdk.ErrorResponse
//	@Failure	404		{object}	taskflowsdk.ErrorResponse
//	@Router		/api/tasks/{id} [patch]
func (h *WorkHandler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req sdk.UpdateTaskRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}
	t, err := h.Tasks.Update(r.Context(), currentUser(r).ID, r.PathValue("id"), service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		ClearDue:    req.ClearDueDate,
	})
	if err != nil {
		writeErr(w, r, err, "Task")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.TaskResponse{Success: true, Task: toTask(t)})
}

// HandleDeleteTask handles DELETE /api/tasks/{id}
//
//	@Summary	Delete a task
//	@Tags		Tasks
//	@Produce	json
//	@Param		id	path		string	true	"Task ID"
//	@Success	200	{object}	taskflowsdk.SuccessResponse
//	@Failure	403	{object}	taskflowsdk.ErrorResponse
//	@Failure	404	{object}	taskflowsdk.ErrorResponse
//	@Router		/api/tasks/{id} [delete]
func (h *WorkHandler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.Tasks.Delete(r.Context(), currentUser(r).ID, r.PathValue("id")); err != nil {
		writeErr(w, r, err, "Task")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.SuccessResponse{Success: true})
}

// HandleListTime handles GET /api/projects/{id}/time-entries
//
//	@Summary	List time entries
//	@Tags		Time
//	@Produce	json
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	taskflowsdk.TimeEntriesResponse
//	@Failure	403	{object}	taskflowsdk.ErrorResponse
//	@Failure	404	{object}	taskflowsdk.ErrorResponse
//	@Router		/api/projects/{id}/time-entries [get]
func (h *WorkHandler) HandleListTime(w http.ResponseWriter, r *http.Request) {
	es, err := h.Time.List(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err, "Project")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.TimeEntriesResponse{Success: true, TimeEntries: mapSlice(es, toTimeEntry)})
}

// HandleLogTime handles POST /api/projects/{id}/time-entries
//
//	@Summary	Log time
//	@Tags		Time
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Project ID"
//	@Param		request	body		taskflowsdk.LogTimeRequest	true	"Entry"
//	@Success	201		{object}	taskflowsdk.TimeEntryResponse
//	@Failure	400		{object}	taskflowsdk.ErrorResponse
//	@Failure	403		{object}	taskflowsdk.ErrorResponse
//	@Failure	404		{object}	taskflowsdk.ErrorResponse
//	@Router		/api/projects/{id}/time-entries [post]
func (h *WorkHandler) HandleLogTime(w http.ResponseWriter, r *http.Request) {
	var req sdk.LogTimeRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}
	e, err := h.Time.Log(r.Context(), currentUser(r).ID, r.PathValue("id"), service.TimeInput{
		TaskID:  req.TaskID,
		Minutes: req.Minutes,
		Note:    req.Note,
		SpentOn: req.SpentOn,
	})
	if err != nil {
		writeErr(w, r, err, "Project")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, sdk.TimeEntryResponse{Success: true, TimeEntry: toTimeEntry(e)})
}

// HandleListInvoices handles GET /api/businesses/{id}/invoices
//
//	@Summary		List invoices
//	@Description	Owners and admins only.
//	@Tags			Invoices
//	@Produce		json
//	@Param			id	path		string	true	"Business ID"
//	@Success		200	{object}	taskflowsdk.InvoicesResponse
//	@Failure		403	{object}	taskflowsdk.ErrorResponse
//	@Router			/api/businesses/{id}/invoices [get]
func (h *WorkHandler) HandleListInvoices(w http.ResponseWriter, r *http.Request) {
	is, err := h.Invoices.List(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err, "Business")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.InvoicesResponse{Success: true, Invoices: mapSlice(is, toInvoice)})
}

// HandleCreateInvoice handles POST /api/businesses/{id}/invoices
//
//	@Summary		Create an invoice
//	@Description	Owners and admins only. Numbers are unique per business.
//	@Tags			Invoices
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Business ID"
//	@Param			request	body		taskflowsdk.CreateInvoiceRequest	true	"Invoice"
//	@Success		201		{object}	taskflowsdk.InvoiceResponse
//	@Failure		400		{object}	taskflowsdk.ErrorResponse
//	@Failure		403		{object}	taskflowsdk.ErrorResponse
//	@Failure		409		{object}	taskflowsdk.ErrorResponse	"Duplicate number"
//	@Router			/api/businesses/{id}/invoices [post]
func (h *WorkHandler) HandleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req sdk.CreateInvoiceRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}
	inv, err := h.Invoices.Create(r.Context(), currentUser(r).ID, r.PathValue("id"), service.InvoiceInput{
		Number:      req.Number,
		ClientName:  req.ClientName,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		IssuedAt:    req.IssuedAt,
		DueAt:       req.DueAt,
	})
	if err != nil {
		writeErr(w, r, err, "Business")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, sdk.InvoiceResponse{Success: true, Invoice: toInvoice(inv)})
}
