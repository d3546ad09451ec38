package gatesdk

import (
	"encoding/json"
	"fmt"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the service's human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("gatekeeper: %d: %s", e.StatusCode, e.Message)
}

// IsConflict reports whether the error is a duplicate username/email.
func (e *APIError) IsConflict() bool { return e.StatusCode == 409 }

// IsPolicy reports whether the error is an admission policy refusal.
func (e *APIError) IsPolicy() bool { return e.StatusCode == 403 }

// IsUnauthorized reports whether the credentials or session were rejected.
func (e *APIError) IsUnauthorized() bool { return e.StatusCode == 401 }

func parseErrorResponse(statusCode int, body []byte) error {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return &APIError{StatusCode: statusCode, Message: er.Error}
	}
	return &APIError{StatusCode: statusCode, Message: "unexpected response from service"}
}
