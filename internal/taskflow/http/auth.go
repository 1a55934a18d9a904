package http

import (
	"net/http"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/apperr"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/service"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/session"
	"github.com/aussiebroadwan/taskflow/pkg/httpx"
	sdk "github.com/aussiebroadwan/taskflow/pkg/taskflowsdk"
)

// AuthHandler serves signup, login, logout and the current-user profile.
type AuthHandler struct {
	Auth *service.AuthService
}

// currentUser is only valid behind RequireUser or RequireVerified.
func currentUser(r *http.Request) domain.User {
	u, _ := session.FromContext(r.Context()).User()
	return u
}

// HandleSignup handles POST /api/auth/signup
//
//	@Summary		Create an account
//	@Description	Creates a user, their first business and the owner membership in one transaction, then signs in.
//	@Description	The first user ever created becomes a system admin.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.SignupRequest	true	"Account details"
//	@Success		201		{object}	taskflowsdk.AuthResponse
//	@Failure		400		{object}	taskflowsdk.ErrorResponse	"Validation failed"
//	@Failure		409		{object}	taskflowsdk.ErrorResponse	"Email already registered"
//	@Failure		429		{object}	taskflowsdk.ErrorResponse	"Rate limited"
//	@Router			/api/auth/signup [post]
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req sdk.SignupRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}

	sess, business, err := h.Auth.Signup(r.Context(), service.SignupInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Plan:         req.Plan,
		BusinessName: req.BusinessName,
	})
	if err != nil {
		writeErr(w, r, err, "User")
		return
	}

	s := session.FromContext(r.Context())
	s.ClearTwoFactor()
	s.Set(sess.Token)

	b := toBusiness(business, domain.MemberOwner)
	httpx.WriteJSON(w, http.StatusCreated, sdk.AuthResponse{
		Success:  true,
		User:     toUser(sess.User),
		Business: &b,
	})
}

// HandleLogin handles POST /api/auth/login
//
//	@Summary		Sign in
//	@Description	Verifies email and password and sets the session cookie. Failures never say which part was wrong.
//	@Description	When requiresTwoFactor is true, call POST /api/auth/2fa/verify before using other routes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	taskflowsdk.AuthResponse
//	@Failure		400		{object}	taskflowsdk.ErrorResponse	"Validation failed"
//	@Failure		401		{object}	taskflowsdk.ErrorResponse	"Invalid email or password"
//	@Failure		429		{object}	taskflowsdk.ErrorResponse	"Rate limited"
//	@Router			/api/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req sdk.LoginRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}

	res, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(w, r, err, "User")
		return
	}

	s := session.FromContext(r.Context())
	s.ClearTwoFactor()
	s.Set(res.Token)

	httpx.WriteJSON(w, http.StatusOK, sdk.AuthResponse{
		Success:           true,
		User:              toUser(res.User),
		RequiresTwoFactor: res.RequiresTwoFactor,
	})
}

// HandleLogout handles POST /api/auth/logout
//
//	@Summary		Sign out
//	@Description	Clears the auth cookies and forgets the session row. Always succeeds.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	taskflowsdk.SuccessResponse
//	@Router			/api/auth/logout [post]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if token, ok := s.Read(); ok {
		h.Auth.Logout(r.Context(), token)
	}
	s.Clear()
	httpx.WriteJSON(w, http.StatusOK, sdk.SuccessResponse{Success: true})
}

// HandleMe handles GET /api/auth/me
//
//	@Summary		Current user
//	@Description	Returns the signed-in user, their businesses and 2FA status. Reachable before the 2FA challenge is answered.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	taskflowsdk.MeResponse
//	@Failure		401	{object}	taskflowsdk.ErrorResponse	"Not signed in"
//	@Router			/api/auth/me [get]
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, err := h.Auth.Profile(r.Context(), currentUser(r))
	if err != nil {
		writeErr(w, r, err, "User")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.MeResponse{
		Success:    true,
		User:       toUser(p.User),
		Businesses: toMemberships(p.Memberships),
		TwoFactor: sdk.TwoFactorStatus{
			Enabled:              p.TwoFactor.Enabled,
			BackupCodesRemaining: p.TwoFactor.BackupCodesRemaining,
		},
	})
}
