package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/apperr"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/service"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/session"
	"github.com/aussiebroadwan/taskflow/pkg/httpx"
	"github.com/aussiebroadwan/taskflow/pkg/slogx"
	sdk "github.com/aussiebroadwan/taskflow/pkg/taskflowsdk"
)

type InvitationHandler struct {
	Invitations *service.InvitationService
	TwoFactor   *service.TwoFactorService
}

// HandleCreate handles POST /api/businesses/{id}/invitations
//
//	@Summary		Invite someone to a business
//	@Description	Creates a pending user and an invitation valid for seven days, then emails the link. Owners and admins only.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Business ID"
//	@Param			request	body		taskflowsdk.InviteRequest	true	"Invitee"
//	@Success		201		{object}	taskflowsdk.InviteResponse
//	@Failure		403		{object}	taskflowsdk.ErrorResponse	"Not an owner or admin"
//	@Failure		404		{object}	taskflowsdk.ErrorResponse	"Business not found"
//	@Failure		409		{object}	taskflowsdk.ErrorResponse	"Already a member or has an account"
//	@Router			/api/businesses/{id}/invitations [post]
func (h *InvitationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req sdk.InviteRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}

	inv, err := h.Invitations.Invite(r.Context(), currentUser(r).ID, r.PathValue("id"), req.Email, req.Role)
	if err != nil {
		writeErr(w, r, err, "Business")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, sdk.InviteResponse{
		Success: true,
		Invitation: sdk.Invitation{
			ID:        inv.Invitation.ID,
			Email:     inv.Invitation.Email,
			Role:      inv.Invitation.Role,
			ExpiresAt: inv.Invitation.ExpiresAt,
			InviteURL: inv.Link,
		},
	})
}

// HandlePreview handles GET /api/invitations/{token}
//
//	@Summary		Preview an invitation
//	@Description	Shows who invited whom to which business. Does not consume the invitation.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string	true	"Invitation token"
//	@Success		200		{object}	taskflowsdk.InvitationPreviewResponse
//	@Failure		400		{object}	taskflowsdk.ErrorResponse	"Expired"
//	@Failure		404		{object}	taskflowsdk.ErrorResponse	"Unknown or used"
//	@Router			/api/invitations/{token} [get]
func (h *InvitationHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	p, err := h.Invitations.Preview(r.Context(), r.PathValue("token"))
	if err != nil {
		writeErr(w, r, err, "Invitation")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.InvitationPreviewResponse{
		Success:      true,
		Email:        p.Email,
		BusinessName: p.BusinessName,
		Role:         p.Role,
		InviterName:  p.InviterName,
		ExpiresAt:    p.ExpiresAt,
	})
}

// HandleAccept handles POST /api/invitations/accept
//
//	@Summary		Accept an invitation
//	@Description	Activates the invitee, links them to the business and deletes the invitation in one transaction, then signs in.
//	@Description	An invitation can be accepted once.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.AcceptInvitationRequest	true	"Token and new account details"
//	@Success		200		{object}	taskflowsdk.AuthResponse
//	@Failure		400		{object}	taskflowsdk.ErrorResponse	"Validation failed or expired"
//	@Failure		404		{object}	taskflowsdk.ErrorResponse	"Unknown or used"
//	@Failure		429		{object}	taskflowsdk.ErrorResponse	"Rate limited"
//	@Router			/api/invitations/accept [post]
func (h *InvitationHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var req sdk.AcceptInvitationRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}

	sess, err := h.Invitations.Accept(r.Context(), service.AcceptInput{
		Token:    req.Token,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeErr(w, r, err, "Invitation")
		return
	}

	s := session.FromContext(r.Context())
	s.ClearTwoFactor()
	s.Set(sess.Token)

	requires2FA, err := h.TwoFactor.IsEnabled(r.Context(), sess.User.ID)
	if err != nil {
		slogx.FromContext(r.Context()).Warn("failed to read 2fa status", slog.Any("err", err))
		requires2FA = true
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.AuthResponse{
		Success:           true,
		User:              toUser(sess.User),
		RequiresTwoFactor: requires2FA,
	})
}
