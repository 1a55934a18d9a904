package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/apperr"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/service"
	"github.com/aussiebroadwan/taskflow/pkg/cryptox"
)

// toAppErr maps service sentinels onto the API error taxonomy. what names
// the resource in not-found messages.
func toAppErr(err error, what string) *apperr.Error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return apperr.InvalidCredentials()
	case errors.Is(err, service.ErrInvalidToken):
		return apperr.Authentication("")

	case errors.Is(err, service.ErrEmailTaken):
		return apperr.Conflict("An account with this email already exists")
	case errors.Is(err, service.ErrUserExists):
		return apperr.Conflict("This person already has an account; ask them to sign in")
	case errors.Is(err, service.ErrAlreadyMember):
		return apperr.Conflict("This person is already a member of the business")
	case errors.Is(err, service.ErrInvoiceExists):
		return apperr.Conflict("An invoice with this number already exists")
	case errors.Is(err, service.ErrTwoFactorAlreadyEnabled):
		return apperr.Conflict("Two-factor authentication is already enabled")

	case errors.Is(err, cryptox.ErrPasswordTooLong):
		return apperr.Validation("Invalid request", map[string]string{"password": "must be at most 72 bytes"})
	case errors.Is(err, service.ErrBusinessNameRequired):
		return apperr.Validation("Invalid request", map[string]string{"businessName": "is required"})
	case errors.Is(err, service.ErrInvalidPlan):
		return apperr.Validation("Invalid request", map[string]string{"plan": "must be one of: free, pro, enterprise"})
	case errors.Is(err, service.ErrInvalidRole):
		return apperr.Validation("Invalid request", map[string]string{"role": "must be one of: admin, member"})
	case errors.Is(err, service.ErrInvalidTwoFactorCode):
		return apperr.Validation("Invalid verification code", map[string]string{"token": "is invalid"})
	case errors.Is(err, service.ErrTwoFactorNotEnabled):
		return apperr.Validation("Two-factor authentication is not enabled", nil)
	case errors.Is(err, service.ErrInvitationExpired):
		return apperr.Validation("This invitation has expired", nil)

	case errors.Is(err, service.ErrInvitationInvalid):
		return apperr.NotFound("Invitation")
	case errors.Is(err, service.ErrNotFound):
		return apperr.NotFound(what)

	case errors.Is(err, service.ErrForbidden):
		return apperr.Authorization("")
	case errors.Is(err, service.ErrOwnerImmutable):
		return apperr.Authorization("The business owner cannot be changed or removed")
	}
	return apperr.Internal(err)
}

func writeErr(w http.ResponseWriter, r *http.Request, err error, what string) {
	apperr.Write(w, r, toAppErr(err, what))
}
