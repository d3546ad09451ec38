package http

import (
	"net/http"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/service"
	"github.com/vasudha-ag/gatekeeper/pkg/gatesdk"
	"github.com/vasudha-ag/gatekeeper/pkg/httpx"
)

type LogoutHandler struct {
	LoginService *service.LoginService
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Revokes the caller's session at the identity provider and clears the session cookie
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	gatesdk.MessageResponse	"ok, message"
//	@Router			/api/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Logout is best effort: the cookie is cleared either way, and a token
	// the provider no longer recognises is already logged out.
	if token := httpx.TokenFromContext(ctx); token != "" {
		_ = h.LoginService.Logout(ctx, token)
	}

	clearSessionCookie(w)
	httpx.WriteJSON(w, http.StatusOK, gatesdk.MessageResponse{
		OK:      true,
		Message: "Logged out.",
	})
}
