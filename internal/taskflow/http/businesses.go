package http

import (
	"net/http"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/apperr"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/service"
	"github.com/aussiebroadwan/taskflow/pkg/httpx"
	sdk "github.com/aussiebroadwan/taskflow/pkg/taskflowsdk"
)

type BusinessHandler struct {
	Businesses *service.BusinessService
}

// HandleList handles GET /api/businesses
//
//	@Summary		My businesses
//	@Tags			Businesses
//	@Produce		json
//	@Success		200	{object}	taskflowsdk.BusinessesResponse
//	@Failure		401	{object}	taskflowsdk.ErrorResponse
//	@Router			/api/businesses [get]
func (h *BusinessHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ms, err := h.Businesses.ListForUser(r.Context(), currentUser(r).ID)
	if err != nil {
		writeErr(w, r, err, "Business")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.BusinessesResponse{Success: true, Businesses: toMemberships(ms)})
}

// HandleListAll handles GET /api/admin/businesses
//
//	@Summary		All businesses
//	@Description	System admins only.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	taskflowsdk.BusinessesResponse
//	@Failure		403	{object}	taskflowsdk.ErrorResponse
//	@Router			/api/admin/businesses [get]
func (h *BusinessHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Businesses.ListAll(r.Context())
	if err != nil {
		writeErr(w, r, err, "Business")
		return
	}
	out := mapSlice(bs, func(b domain.Business) sdk.Business { return toBusiness(b, "") })
	httpx.WriteJSON(w, http.StatusOK, sdk.BusinessesResponse{Success: true, Businesses: out})
}

// HandleMembers handles GET /api/businesses/{id}/members
//
//	@Summary		Team list
//	@Tags			Businesses
//	@Produce		json
//	@Param			id	path		string	true	"Business ID"
//	@Success		200	{object}	taskflowsdk.MembersResponse
//	@Failure		403	{object}	taskflowsdk.ErrorResponse	"Not a member"
//	@Failure		404	{object}	taskflowsdk.ErrorResponse
//	@Router			/api/businesses/{id}/members [get]
func (h *BusinessHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	ms, err := h.Businesses.Members(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err, "Business")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.MembersResponse{Success: true, Members: mapSlice(ms, toMember)})
}

// HandleUpdateMember handles PATCH /api/businesses/{id}/members/{userId}
//
//	@Summary		Change a member's role
//	@Description	Owners and admins only. The owner's membership cannot be changed.
//	@Tags			Businesses
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Business ID"
//	@Param			userId	path		string							true	"User ID"
//	@Param			request	body		taskflowsdk.UpdateMemberRequest	true	"New role"
//	@Success		200		{object}	taskflowsdk.SuccessResponse
//	@Failure		403		{object}	taskflowsdk.ErrorResponse
//	@Failure		404		{object}	taskflowsdk.ErrorResponse
//	@Router			/api/businesses/{id}/members/{userId} [patch]
func (h *BusinessHandler) HandleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var req sdk.UpdateMemberRequest
	if err := apperr.DecodeJSON(r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}
	err := h.Businesses.UpdateMemberRole(r.Context(), currentUser(r).ID, r.PathValue("id"), r.PathValue("userId"), req.Role)
	if err != nil {
		writeErr(w, r, err, "Member")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.SuccessResponse{Success: true})
}

// HandleRemoveMember handles DELETE /api/businesses/{id}/members/{userId}
//
//	@Summary		Remove a member
//	@Description	Owners and admins only. Access is lost on the member's next request.
//	@Tags			Businesses
//	@Produce		json
//	@Param			id		path		string	true	"Business ID"
//	@Param			userId	path		string	true	"User ID"
//	@Success		200		{object}	taskflowsdk.SuccessResponse
//	@Failure		403		{object}	taskflowsdk.ErrorResponse
//	@Failure		404		{object}	taskflowsdk.ErrorResponse
//	@Router			/api/businesses/{id}/members/{userId} [delete]
func (h *BusinessHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	if err := h.Businesses.RemoveMember(r.Context(), currentUser(r).ID, r.PathValue("id"), r.PathValue("userId")); err != nil {
		writeErr(w, r, err, "Member")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sdk.SuccessResponse{Success: true})
}
