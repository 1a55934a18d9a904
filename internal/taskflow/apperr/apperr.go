// Package apperr is the error taxonomy returned to API clients. Services
// return sentinel errors; handlers translate them into an *Error and write
// it with Write.
package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/aussiebroadwan/taskflow/pkg/httpx"
	"github.com/aussiebroadwan/taskflow/pkg/slogx"
)

// Error codes carried in the "error" field of the response body.
const (
	CodeValidation        = "validation_error"
	CodeUnauthorized      = "unauthorized"
	CodeInvalidCreds      = "invalid_credentials"
	CodeTwoFactorRequired = "two_factor_required"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeInternal          = "internal_error"
)

type Error struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string]string

	// Err is the underlying cause. It is logged, and only shown to the
	// client when details are exposed.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string, fields map[string]string) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Code: CodeValidation, Message: message, Fields: fields}
}

// Authentication errors never say which part of the credentials was wrong.
func Authentication(message string) *Error {
	if message == "" {
		message = "Authentication required"
	}
	return &Error{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

func InvalidCredentials() *Error {
	return &Error{StatusCode: http.StatusUnauthorized, Code: CodeInvalidCreds, Message: "Invalid email or password"}
}

func TwoFactorRequired() *Error {
	return &Error{StatusCode: http.StatusUnauthorized, Code: CodeTwoFactorRequired, Message: "Two-factor verification required"}
}

func Authorization(message string) *Error {
	if message == "" {
		message = "You do not have access to this resource"
	}
	return &Error{StatusCode: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

func NotFound(what string) *Error {
	return &Error{StatusCode: http.StatusNotFound, Code: CodeNotFound, Message: what + " not found"}
}

func Conflict(message string) *Error {
	return &Error{StatusCode: http.StatusConflict, Code: CodeConflict, Message: message}
}

func Internal(err error) *Error {
	return &Error{StatusCode: http.StatusInternalServerError, Code: CodeInternal, Message: "Internal server error", Err: err}
}

var exposeDetails atomic.Bool

// ExposeDetails controls whether internal error causes are included in
// responses. It is set once at startup and must be false in production.
func ExposeDetails(on bool) { exposeDetails.Store(on) }

// From converts any error into an *Error, treating unknown errors as internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// Write sends err as the standard error envelope. Server errors are logged
// with their cause; client errors at debug level.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	e := From(err)
	log := slogx.FromContext(r.Context())

	if e.StatusCode >= http.StatusInternalServerError {
		log.Error("request failed", slog.String("code", e.Code), slog.Any("err", e.Err))
	} else {
		log.Debug("request rejected", slog.String("code", e.Code), slog.String("message", e.Message))
	}

	body := httpx.ErrorBody{Code: e.Code, Message: e.Message, Fields: e.Fields}
	if e.Err != nil && e.StatusCode >= http.StatusInternalServerError && exposeDetails.Load() {
		body.Message = e.Message + ": " + e.Err.Error()
	}
	httpx.WriteJSON(w, e.StatusCode, body)
}
