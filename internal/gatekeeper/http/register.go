package http

import (
	"encoding/json"
	"net/http"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/service"
	"github.com/vasudha-ag/gatekeeper/pkg/gatesdk"
	"github.com/vasudha-ag/gatekeeper/pkg/httpx"
)

type RegisterHandler struct {
	RegisterService *service.RegisterService
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Admits a candidate account: validation and policy rules first, then identity
//	@Description	creation at the provider and the dependent profile insert, with rollback on partial failure
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.RegisterRequest		true	"Candidate account"
//	@Success		200		{object}	gatesdk.RegisterResponse	"ok, message"
//	@Failure		400		{object}	gatesdk.ErrorResponse		"validation failure"
//	@Failure		403		{object}	gatesdk.ErrorResponse		"policy refusal"
//	@Failure		409		{object}	gatesdk.ErrorResponse		"duplicate username or email"
//	@Failure		500		{object}	gatesdk.ErrorResponse		"unexpected failure"
//	@Router			/api/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gatesdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
			OK:    false,
			Error: "invalid request body",
		})
		return
	}

	res, err := h.RegisterService.Register(ctx, service.Registration{
		FirstName: req.First,
		LastName:  req.Last,
		Email:     req.Email,
		Password:  req.Password,
		Username:  req.Username,
		Phone:     req.Phone,
		Role:      req.Role,
		Agree:     req.Agree,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	msg := "Registration successful. You can now log in."
	if res.PendingConfirmation {
		msg = "Registration received. Confirm your email address, then log in."
	} else if !res.Approved {
		msg = "Registration successful. Your account is awaiting approval."
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.RegisterResponse{
		OK:                  true,
		Message:             msg,
		UserID:              res.UserID,
		PendingConfirmation: res.PendingConfirmation,
	})
}
