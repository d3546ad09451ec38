package http

import (
	"net/http"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/service"
	"github.com/vasudha-ag/gatekeeper/pkg/gatesdk"
	"github.com/vasudha-ag/gatekeeper/pkg/httpx"
)

type SessionHandler struct {
	GuardService *service.GuardService
}

// ServeHTTP godoc
//
//	@Summary		Session Introspection Endpoint
//	@Description	Re-authorizes the caller's session against the profile store and returns the
//	@Description	profile plus the landing page its role maps to. Blocked or unapproved accounts
//	@Description	are signed out as a side effect
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	gatesdk.SessionResponse	"ok, profile, landing"
//	@Failure		401	{object}	gatesdk.ErrorResponse	"missing or invalid session token"
//	@Failure		403	{object}	gatesdk.ErrorResponse	"blocked, unapproved, or unknown profile"
//	@Router			/api/session [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	token := httpx.TokenFromContext(ctx)

	profile, err := h.GuardService.Check(ctx, userID, token, "")
	if err != nil {
		clearSessionCookie(w)
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, gatesdk.SessionResponse{
		OK:      true,
		Profile: profileToSDK(profile),
		Landing: profile.Role.Landing(),
	})
}

func profileToSDK(p domain.Profile) gatesdk.Profile {
	return gatesdk.Profile{
		ID:       p.ID,
		FullName: p.FullName,
		Username: p.Username,
		Email:    p.Email,
		Phone:    p.Phone,
		Role:     string(p.Role),
		Approved: p.Approved,
		Blocked:  p.Blocked,
	}
}
