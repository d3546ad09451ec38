package http

import (
	"context"
	"net/http"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/service"
	"github.com/vasudha-ag/gatekeeper/pkg/gatesdk"
	"github.com/vasudha-ag/gatekeeper/pkg/httpx"
)

// RequireAdmin re-authorizes the caller and refuses anyone without the admin
// role. Runs after AuthnMiddleware, so the user id and token are in context.
func RequireAdmin(guard *service.GuardService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			_, err := guard.Check(ctx,
				httpx.UserIDFromContext(ctx),
				httpx.TokenFromContext(ctx),
				domain.RoleAdmin,
			)
			if err != nil {
				writeServiceError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type AdminPendingHandler struct {
	ApprovalService *service.ApprovalService
}

// ServeHTTP godoc
//
//	@Summary		List Pending Profiles Endpoint
//	@Description	Lists profiles awaiting an approval decision, oldest first
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	gatesdk.PendingProfilesResponse	"ok, profiles"
//	@Failure		401	{object}	gatesdk.ErrorResponse			"missing or invalid session token"
//	@Failure		403	{object}	gatesdk.ErrorResponse			"caller is not an admin"
//	@Router			/api/admin/pending [get].
func (h *AdminPendingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	pending, err := h.ApprovalService.ListPending(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	profiles := make([]gatesdk.Profile, 0, len(pending))
	for _, p := range pending {
		profiles = append(profiles, profileToSDK(p))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, gatesdk.PendingProfilesResponse{
		OK:       true,
		Profiles: profiles,
	})
}

type AdminDecisionHandler struct {
	ApprovalService *service.ApprovalService
}

// HandleApprove godoc
//
//	@Summary		Approve Profile Endpoint
//	@Description	Marks a profile approved so its user can log in. Takes effect on the next login or page load
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"Profile ID"
//	@Success		200	{object}	gatesdk.MessageResponse	"ok, message"
//	@Failure		404	{object}	gatesdk.ErrorResponse	"no such profile"
//	@Router			/api/admin/profiles/{id}/approve [post].
func (h *AdminDecisionHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Profile approved.", h.ApprovalService.Approve)
}

// HandleRevoke godoc
//
//	@Summary		Revoke Approval Endpoint
//	@Description	Returns a profile to the pending state
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"Profile ID"
//	@Success		200	{object}	gatesdk.MessageResponse	"ok, message"
//	@Failure		404	{object}	gatesdk.ErrorResponse	"no such profile"
//	@Router			/api/admin/profiles/{id}/revoke [post].
func (h *AdminDecisionHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Approval revoked.", h.ApprovalService.Revoke)
}

// HandleBlock godoc
//
//	@Summary		Block Profile Endpoint
//	@Description	Blocks a profile's user from all access, regardless of approval
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"Profile ID"
//	@Success		200	{object}	gatesdk.MessageResponse	"ok, message"
//	@Failure		404	{object}	gatesdk.ErrorResponse	"no such profile"
//	@Router			/api/admin/profiles/{id}/block [post].
func (h *AdminDecisionHandler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Profile blocked.", h.ApprovalService.Block)
}

// HandleUnblock godoc
//
//	@Summary		Unblock Profile Endpoint
//	@Description	Lifts a block; the approval flag is untouched
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"Profile ID"
//	@Success		200	{object}	gatesdk.MessageResponse	"ok, message"
//	@Failure		404	{object}	gatesdk.ErrorResponse	"no such profile"
//	@Router			/api/admin/profiles/{id}/unblock [post].
func (h *AdminDecisionHandler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Profile unblocked.", h.ApprovalService.Unblock)
}

func (h *AdminDecisionHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	action func(ctx context.Context, profileID string) error,
) {
	profileID := r.PathValue("id")
	if profileID == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
			OK:    false,
			Error: "profile id is required",
		})
		return
	}

	if err := action(r.Context(), profileID); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.MessageResponse{OK: true, Message: message})
}
