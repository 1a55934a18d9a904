package taskflowsdk

import "time"

// Request types carry `validate` tags; the server checks them with
// go-playground/validator before a handler runs.

// ============================================================================
// Errors
// ============================================================================

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error" example:"validation_error"`
	Message string            `json:"message" example:"Invalid request"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// SuccessResponse is returned by endpoints with nothing else to say.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ============================================================================
// Auth Types
// ============================================================================

type SignupRequest struct {
	Name            string `json:"name" validate:"required,notblank,max=100"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Password        string `json:"password" validate:"required,min=8,max=72,maxbytes=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Plan            string `json:"plan,omitempty" validate:"omitempty,oneof=free pro enterprise"`
	BusinessName    string `json:"businessName,omitempty" validate:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User is the public view of an account. The password hash never leaves
// the server.
type User struct {
	ID          string     `json:"id" example:"01HZX3J8Q4W2V5N7M9K1P3R6T8"`
	Name        string     `json:"name" example:"Ann Smith"`
	Email       string     `json:"email" example:"ann@example.com"`
	Role        string     `json:"role" example:"user"`
	BusinessID  string     `json:"businessId,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// AuthResponse is returned by signup, login and invitation accept. When
// RequiresTwoFactor is set the session cookie is issued but protected
// routes stay closed until POST /api/auth/2fa/verify succeeds.
type AuthResponse struct {
	Success           bool      `json:"success"`
	User              User      `json:"user"`
	Business          *Business `json:"business,omitempty"`
	RequiresTwoFactor bool      `json:"requiresTwoFactor"`
}

type TwoFactorStatus struct {
	Enabled              bool `json:"enabled"`
	BackupCodesRemaining int  `json:"backupCodesRemaining"`
}

type MeResponse struct {
	Success    bool            `json:"success"`
	User       User            `json:"user"`
	Businesses []Business      `json:"businesses"`
	TwoFactor  TwoFactorStatus `json:"twoFactor"`
}

// ============================================================================
// Two-Factor Types
// ============================================================================

type TwoFactorSetupResponse struct {
	Success bool   `json:"success"`
	Secret  string `json:"secret" example:"JBSWY3DPEHPK3PXP"`
	URI     string `json:"uri" example:"otpauth://totp/TaskFlow:ann@example.com?secret=JBSWY3DPEHPK3PXP&issuer=TaskFlow"`
}

type TwoFactorEnableRequest struct {
	Secret string `json:"secret" validate:"required"`
	Token  string `json:"token" validate:"required,len=6,numeric"`
}

type TwoFactorDisableRequest struct {
	Token        string `json:"token" validate:"required"`
	IsBackupCode bool   `json:"isBackupCode"`
}

// TwoFactorVerifyRequest answers the login challenge. UserID is optional
// and must match the signed-in user when present.
type TwoFactorVerifyRequest struct {
	UserID       string `json:"userId,omitempty"`
	Token        string `json:"token" validate:"required"`
	IsBackupCode bool   `json:"isBackupCode"`
}

type BackupCodesRegenerateRequest struct {
	Token string `json:"token" validate:"required,len=6,numeric"`
}

// BackupCodesResponse lists freshly generated codes. They are shown once.
type BackupCodesResponse struct {
	Success     bool     `json:"success"`
	BackupCodes []string `json:"backupCodes"`
}

// ============================================================================
// Business Types
// ============================================================================

type Business struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" example:"Acme Co"`
	Slug      string    `json:"slug" example:"acme-co"`
	Plan      string    `json:"plan" example:"free"`
	OwnerID   string    `json:"ownerId"`
	Role      string    `json:"role,omitempty" example:"owner"`
	CreatedAt time.Time `json:"createdAt"`
}

type BusinessesResponse struct {
	Success    bool       `json:"success"`
	Businesses []Business `json:"businesses"`
}

type Member struct {
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Status   string    `json:"status" example:"active"`
	Role     string    `json:"role" example:"member"`
	JoinedAt time.Time `json:"joinedAt"`
}

type MembersResponse struct {
	Success bool     `json:"success"`
	Members []Member `json:"members"`
}

type UpdateMemberRequest struct {
	Role string `json:"role" validate:"required,oneof=admin member"`
}

// ============================================================================
// Invitation Types
// ============================================================================

type InviteRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Role  string `json:"role" validate:"required,oneof=admin member"`
}

type Invitation struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
	// InviteURL is returned to the inviter so the link can be shared by
	// hand when email is not configured.
	InviteURL string `json:"inviteUrl,omitempty"`
}

type InviteResponse struct {
	Success    bool       `json:"success"`
	Invitation Invitation `json:"invitation"`
}

type InvitationPreviewResponse struct {
	Success      bool      `json:"success"`
	Email        string    `json:"email"`
	BusinessName string    `json:"businessName"`
	Role         string    `json:"role"`
	InviterName  string    `json:"inviterName,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type AcceptInvitationRequest struct {
	Token    string `json:"token" validate:"required"`
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72,maxbytes=72"`
}

// ============================================================================
// Work Types
// ============================================================================

type Project struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"businessId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status" example:"active"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProjectResponse struct {
	Success bool    `json:"success"`
	Project Project `json:"project"`
}

type ProjectsResponse struct {
	Success  bool      `json:"success"`
	Projects []Project `json:"projects"`
}

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=5000"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active archived"`
}

type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status" example:"todo"`
	AssigneeID  string     `json:"assigneeId,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TaskResponse struct {
	Success bool `json:"success"`
	Task    Task `json:"task"`
}

type TasksResponse struct {
	Success bool   `json:"success"`
	Tasks   []Task `json:"tasks"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,notblank,max=200"`
	Description string     `json:"description" validate:"max=5000"`
	AssigneeID  string     `json:"assigneeId,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// UpdateTaskRequest patches a task. ClearDueDate removes the due date.
type UpdateTaskRequest struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,notblank,max=200"`
	Description  *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Status       *string    `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress done"`
	AssigneeID   *string    `json:"assigneeId,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ClearDueDate bool       `json:"clearDueDate,omitempty"`
}

type TimeEntry struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	TaskID    string    `json:"taskId,omitempty"`
	UserID    string    `json:"userId"`
	Minutes   int       `json:"minutes"`
	Note      string    `json:"note"`
	SpentOn   time.Time `json:"spentOn"`
	CreatedAt time.Time `json:"createdAt"`
}

type TimeEntryResponse struct {
	Success   bool      `json:"success"`
	TimeEntry TimeEntry `json:"timeEntry"`
}

type TimeEntriesResponse struct {
	Success     bool        `json:"success"`
	TimeEntries []TimeEntry `json:"timeEntries"`
}

type LogTimeRequest struct {
	TaskID  string    `json:"taskId,omitempty"`
	Minutes int       `json:"minutes" validate:"required,min=1,max=1440"`
	Note    string    `json:"note" validate:"max=1000"`
	SpentOn time.Time `json:"spentOn"`
}

type Invoice struct {
	ID          string     `json:"id"`
	BusinessID  string     `json:"businessId"`
	Number      string     `json:"number" example:"INV-0001"`
	ClientName  string     `json:"clientName"`
	AmountCents int64      `json:"amountCents"`
	Currency    string     `json:"currency" example:"AUD"`
	Status      string     `json:"status" example:"draft"`
	IssuedAt    time.Time  `json:"issuedAt"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type InvoiceResponse struct {
	Success bool    `json:"success"`
	Invoice Invoice `json:"invoice"`
}

type InvoicesResponse struct {
	Success  bool      `json:"success"`
	Invoices []Invoice `json:"invoices"`
}

type CreateInvoiceRequest struct {
	Number      string     `json:"number" validate:"required,notblank,max=50"`
	ClientName  string     `json:"clientName" validate:"required,notblank,max=200"`
	AmountCents int64      `json:"amountCents" validate:"min=0"`
	Currency    string     `json:"currency" validate:"required,len=3"`
	IssuedAt    time.Time  `json:"issuedAt"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Sessions string `json:"sessions"`
}
