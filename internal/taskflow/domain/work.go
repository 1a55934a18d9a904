package domain

import "time"

const (
	ProjectActive   = "active"
	ProjectArchived = "archived"
)

const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskDone       = "done"
)

const (
	InvoiceDraft = "draft"
	InvoiceSent  = "sent"
	InvoicePaid  = "paid"
)

type Project struct {
	ID          string
	BusinessID  string
	Name        string
	Description string
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      string
	AssigneeID  string
	DueDate     *time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TimeEntry struct {
	ID        string
	ProjectID string
	TaskID    string
	UserID    string
	Minutes   int
	Note      string
	SpentOn   time.Time
	CreatedAt time.Time
}

type Invoice struct {
	ID          string
	BusinessID  string
	Number      string
	ClientName  string
	AmountCents int64
	Currency    string
	Status      string
	IssuedAt    time.Time
	DueAt       *time.Time
	CreatedAt   time.Time
}
