package http

import (
	"errors"
	"net/http"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/service"
	"github.com/vasudha-ag/gatekeeper/pkg/gatesdk"
	"github.com/vasudha-ag/gatekeeper/pkg/httpx"
)

// statusFor maps service errors onto HTTP statuses: 400 for validation, 401
// for credential failures, 403 for policy and authorization refusals, 409
// for conflicts, 503 for provider outages.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrTermsNotAccepted),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrPhoneRequired),
		errors.Is(err, service.ErrEmailIdentifier):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailNotConfirmed),
		errors.Is(err, service.ErrSessionNotEstablished):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrDisposableEmail),
		errors.Is(err, service.ErrReservedRole),
		errors.Is(err, service.ErrNoProfile),
		errors.Is(err, service.ErrAccountBlocked),
		errors.Is(err, service.ErrPendingApproval),
		errors.Is(err, service.ErrRoleMismatch):
		return http.StatusForbidden

	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict

	case errors.Is(err, service.ErrProfileNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrProviderUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError converts a service error into the API's error envelope.
// Internal errors are not echoed to the caller, with one exception: a partial
// registration left state behind that the user cannot repair by retrying, so
// its own message (ask an administrator) must get through.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	msg := err.Error()
	if status == http.StatusInternalServerError && !errors.Is(err, service.ErrPartialRegistration) {
		msg = "something went wrong, please try again"
	}

	httpx.WriteJSON(w, status, gatesdk.ErrorResponse{OK: false, Error: msg})
}
