package service

import "errors"

// Errors are grouped by how the caller should treat them: validation and
// policy failures are client-correctable, conflicts mean try another value,
// auth failures mean the credentials are wrong, authorization failures mean
// the identity is fine but its standing is not.
var (
	// Validation (malformed or missing input)
	ErrMissingField     = errors.New("missing required field")
	ErrTermsNotAccepted = errors.New("terms not accepted")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidUsername  = errors.New("invalid username")
	ErrPhoneRequired    = errors.New("phone number required for this role")
	ErrEmailIdentifier  = errors.New("log in with your email address")

	// Policy (admission rule violations)
	ErrDisposableEmail = errors.New("disposable email addresses are not allowed")
	ErrReservedRole    = errors.New("this role requires manual provisioning")

	// Conflict
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("an account with this email already exists")

	// Auth (credentials or session establishment)
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailNotConfirmed     = errors.New("confirm your email address before logging in")
	ErrSessionNotEstablished = errors.New("session not established")

	// Authorization (valid identity, insufficient standing)
	ErrNoProfile       = errors.New("no profile found for this account")
	ErrAccountBlocked  = errors.New("account blocked")
	ErrPendingApproval = errors.New("account pending approval")
	ErrRoleMismatch    = errors.New("access denied for this page")

	// Partial failure: the identity exists but the profile write failed and
	// could not be rolled back. Must never surface as success.
	ErrPartialRegistration = errors.New("registration incomplete, contact an administrator")

	// Transient
	ErrProviderUnavailable = errors.New("identity provider unavailable")

	ErrProfileNotFound = errors.New("profile not found")
)
