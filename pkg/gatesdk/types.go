package gatesdk

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	First    string `json:"first"`
	Last     string `json:"last,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
	Agree    bool   `json:"agree"`
}

// RegisterResponse reports a successful registration.
type RegisterResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`

	// PendingConfirmation is set when the account exists but cannot log in
	// until the email address is confirmed.
	PendingConfirmation bool `json:"pending_confirmation,omitempty"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse reports a successful, fully authorized login.
type LoginResponse struct {
	OK          bool    `json:"ok"`
	AccessToken string  `json:"access_token"`
	ExpiresIn   int     `json:"expires_in"`
	Redirect    string  `json:"redirect"`
	Profile     Profile `json:"profile"`
}

// Profile is the public shape of an account's profile record.
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	Approved bool   `json:"approved"`
	Blocked  bool   `json:"blocked"`
}

// SessionResponse describes the caller's own session.
type SessionResponse struct {
	OK      bool    `json:"ok"`
	Profile Profile `json:"profile"`

	// Landing is the page the profile's role maps to.
	Landing string `json:"landing"`
}

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the generic failure envelope.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// PendingProfilesResponse lists profiles awaiting an approval decision.
type PendingProfilesResponse struct {
	OK       bool      `json:"ok"`
	Profiles []Profile `json:"profiles"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// StatusResponse is the body of the liveness and readiness probes.
type StatusResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *StatusChecks `json:"checks,omitempty"`
}

// StatusChecks itemises dependency health in the readiness probe.
type StatusChecks struct {
	Database string `json:"database"`
}
