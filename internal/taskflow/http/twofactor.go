package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/apperr"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/service"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/session"
	"github.com/aussiebroadwan/taskflow/pkg/httpx"
	"github.com/aussiebroadwan/taskflow/pkg/slogx"
	sdk "github.com/aussiebroadwan/taskflow/pkg/taskflowsdk"
)

// TwoFactorHandler serves TOTP setup, the login challenge and backup codes.
type TwoFactorHandler struct {
	TwoFactor *service.TwoFactorService
}

// HandleSetup handles POST /api/auth/2fa/setup
//
//	@Summary		Start 2FA setup
//	@Description	Generates a TOTP secret and otpauth URI. Nothing is stored until the secret is confirmed with /enable.
//	@Tags			Two-Factor
//	@Produce		json
//	@Success		200	{object}	taskflowsdk.TwoFactorSetupResponse
//	@Failure		401	{object}	taskflowsdk.ErrorResponse	"Not signed in"
//	@Failure		409	{object}	taskflowsdk.ErrorResponse	"Already enabled"
//	@Router			/api/auth/2fa/setup [post]
func (h *TwoFactorHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	setup, err := h.TwoFactor.GenerateSecret(r.Context(), user.ID, user.Email)
	if err != nil {
		writeErr(w, r, err, "User")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.TwoFactorSetupResponse{Success: true, Secret: setup.Secret, URI: setup.URI})
}

// HandleEnable handles POST /api/auth/2fa/enable
//
//	@Summary		Enable 2FA
//	@Description	Confirms a code for the secret from /setup, enables 2FA and returns ten single-use backup codes.
//	@Tags			Two-Factor
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.TwoFactorEnableRequest	true	"Secret and current code"
//	@Success		200		{object}	taskflowsdk.BackupCodesResponse
//	@Failure		400		{object}	taskflowsdk.ErrorResponse	"Invalid code"
//	@Failure		409		{object}	taskflowsdk.ErrorResponse	"Already enabled"
//	@Router			/api/auth/2fa/enable [post]
func (h *TwoFactorHandler) HandleEnable(w http.ResponseWriter, r *http.Request) {
	var req sdk.TwoFactorEnableRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}

	user := currentUser(r)
	codes, err := h.TwoFactor.Enable(r.Context(), user.ID, req.Secret, req.Token)
	if err != nil {
		writeErr(w, r, err, "User")
		return
	}

	// Enabling proves possession of the device, so this browser is verified.
	if err := session.FromContext(r.Context()).SetTwoFactorVerified(user.ID); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to set 2fa cookie", slog.Any("err", err))
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.BackupCodesResponse{Success: true, BackupCodes: codes})
}

// HandleDisable handles POST /api/auth/2fa/disable
//
//	@Summary		Disable 2FA
//	@Description	Disables 2FA after checking a TOTP or backup code. All backup codes are deleted.
//	@Tags			Two-Factor
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.TwoFactorDisableRequest	true	"Current code"
//	@Success		200		{object}	taskflowsdk.SuccessResponse
//	@Failure		400		{object}	taskflowsdk.ErrorResponse	"Invalid code"
//	@Router			/api/auth/2fa/disable [post]
func (h *TwoFactorHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	var req sdk.TwoFactorDisableRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}

	if err := h.TwoFactor.Disable(r.Context(), currentUser(r).ID, req.Token, req.IsBackupCode); err != nil {
		writeErr(w, r, err, "User")
		return
	}
	session.FromContext(r.Context()).ClearTwoFactor()
	httpx.WriteJSON(w, http.StatusOK, sdk.SuccessResponse{Success: true})
}

// HandleVerify handles POST /api/auth/2fa/verify
//
//	@Summary		Answer the 2FA challenge
//	@Description	Checks a TOTP code, or consumes a backup code, and sets the 2fa_verified cookie for one hour.
//	@Tags			Two-Factor
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.TwoFactorVerifyRequest	true	"Code"
//	@Success		200		{object}	taskflowsdk.SuccessResponse
//	@Failure		401		{object}	taskflowsdk.ErrorResponse	"Invalid code"
//	@Failure		403		{object}	taskflowsdk.ErrorResponse	"userId does not match the session"
//	@Failure		429		{object}	taskflowsdk.ErrorResponse	"Rate limited"
//	@Router			/api/auth/2fa/verify [post]
func (h *TwoFactorHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req sdk.TwoFactorVerifyRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}

	user := currentUser(r)
	if req.UserID != "" && req.UserID != user.ID {
		apperr.Write(w, r, apperr.Authorization(""))
		return
	}

	err := h.TwoFactor.Verify(r.Context(), user.ID, req.Token, req.IsBackupCode)
	if errors.Is(err, service.ErrInvalidTwoFactorCode) {
		apperr.Write(w, r, apperr.Authentication("Invalid verification code"))
		return
	}
	if err != nil {
		writeErr(w, r, err, "User")
		return
	}

	if err := session.FromContext(r.Context()).SetTwoFactorVerified(user.ID); err != nil {
		apperr.Write(w, r, apperr.Internal(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.SuccessResponse{Success: true})
}

// HandleRegenerateBackupCodes handles POST /api/auth/2fa/backup-codes
//
//	@Summary		Regenerate backup codes
//	@Description	Replaces every backup code after checking a TOTP code. The new codes are shown once.
//	@Tags			Two-Factor
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.BackupCodesRegenerateRequest	true	"Current TOTP code"
//	@Success		200		{object}	taskflowsdk.BackupCodesResponse
//	@Failure		400		{object}	taskflowsdk.ErrorResponse	"Invalid code or 2FA not enabled"
//	@Router			/api/auth/2fa/backup-codes [post]
func (h *TwoFactorHandler) HandleRegenerateBackupCodes(w http.ResponseWriter, r *http.Request) {
	var req sdk.BackupCodesRegenerateRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}

	codes, err := h.TwoFactor.RegenerateBackupCodes(r.Context(), currentUser(r).ID, req.Token)
	if err != nil {
		writeErr(w, r, err, "User")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.BackupCodesResponse{Success: true, BackupCodes: codes})
}
