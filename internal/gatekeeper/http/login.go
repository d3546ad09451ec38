package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/service"
	"github.com/vasudha-ag/gatekeeper/pkg/gatesdk"
	"github.com/vasudha-ag/gatekeeper/pkg/httpx"
)

// SessionCookie carries the provider session token for browser page loads.
// API callers use the Authorization header instead; both are accepted.
const SessionCookie = "gk_session"

type LoginHandler struct {
	LoginService *service.LoginService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticates credentials against the identity provider, then authorizes the
//	@Description	session against the profile's approval and block flags. Any authorization
//	@Description	failure terminates the fresh session before it is reported
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.LoginRequest	true	"Credentials (email only, usernames are not accepted)"
//	@Success		200		{object}	gatesdk.LoginResponse	"ok, access_token, redirect, profile"
//	@Failure		400		{object}	gatesdk.ErrorResponse	"non-email identifier"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"invalid credentials"
//	@Failure		403		{object}	gatesdk.ErrorResponse	"blocked, unapproved, or unknown profile"
//	@Router			/api/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gatesdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
			OK:    false,
			Error: "invalid request body",
		})
		return
	}

	res, err := h.LoginService.Login(ctx, req.Email, req.Password)
	if err != nil {
		clearSessionCookie(w)
		writeServiceError(w, err)
		return
	}

	setSessionCookie(w, res.Session.AccessToken, res.Session.ExpiresAt)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, gatesdk.LoginResponse{
		OK:          true,
		AccessToken: res.Session.AccessToken,
		ExpiresIn:   int(time.Until(res.Session.ExpiresAt).Seconds()),
		Redirect:    res.Redirect,
		Profile:     profileToSDK(res.Profile),
	})
}

func setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
