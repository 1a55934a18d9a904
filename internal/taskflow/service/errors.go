package service

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("an account with this email already exists")
	ErrBusinessNameRequired = errors.New("business name is required for paid plans")
	ErrInvalidPlan          = errors.New("unknown plan")
	ErrInvalidToken         = errors.New("invalid or expired token")

	ErrInvalidTwoFactorCode    = errors.New("invalid two-factor code")
	ErrTwoFactorAlreadyEnabled = errors.New("two-factor authentication already enabled")
	ErrTwoFactorNotEnabled     = errors.New("two-factor authentication not enabled")

	ErrInvitationInvalid = errors.New("invitation is invalid or has already been used")
	ErrInvitationExpired = errors.New("invitation has expired")
	ErrUserExists        = errors.New("a user with this email already has an account")

	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRole    = errors.New("invalid role")
	ErrOwnerImmutable = errors.New("the business owner cannot be changed or removed")
	ErrAlreadyMember  = errors.New("user is already a member of this business")
	ErrInvoiceExists  = errors.New("invoice number already used")
)
