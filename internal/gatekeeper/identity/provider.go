// Package identity talks to the external identity provider that owns
// credentials and sessions. The provider speaks a GoTrue-compatible HTTP
// API; everything it returns is normalised into domain types and sentinel
// errors so callers never see provider wire formats.
package identity

import (
	"context"
	"errors"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
)

var (
	// ErrInvalidCredentials covers bad email/password pairs and any other
	// authentication refusal the provider does not distinguish further.
	ErrInvalidCredentials = errors.New("identity: invalid credentials")

	// ErrEmailNotConfirmed means the account exists but the provider is
	// still waiting on email confirmation.
	ErrEmailNotConfirmed = errors.New("identity: email not confirmed")

	// ErrUserExists means an identity with that email is already registered.
	ErrUserExists = errors.New("identity: user already exists")

	// ErrWeakPassword means the provider rejected the password as too weak.
	ErrWeakPassword = errors.New("identity: password does not meet requirements")

	// ErrUserNotFound is returned by admin lookups and deletes.
	ErrUserNotFound = errors.New("identity: user not found")

	// ErrUnavailable means the provider could not be reached or answered
	// with a server error. Callers should treat this as transient.
	ErrUnavailable = errors.New("identity: provider unavailable")
)

// SignUpParams carries a self-service registration to the provider.
// Metadata rides along on the identity record for traceability; the
// authoritative copy lives in the profile store.
type SignUpParams struct {
	Email    string
	Password string
	Metadata map[string]any
}

// SignUpResult reports what the provider did with a sign-up.
type SignUpResult struct {
	UserID string

	// RequiresConfirmation is true when the provider withheld a session
	// pending email confirmation.
	RequiresConfirmation bool
}

// AdminCreateParams creates a pre-confirmed identity via the admin API.
type AdminCreateParams struct {
	Email    string
	Password string
	Metadata map[string]any
}

// Provider is the public surface of the identity provider.
type Provider interface {
	SignUp(ctx context.Context, p SignUpParams) (SignUpResult, error)
	SignInWithPassword(ctx context.Context, email, password string) (domain.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AdminProvider is the privileged surface, authenticated with the service
// key. Used for the admin registration path and for rolling back identities
// when profile creation fails partway.
type AdminProvider interface {
	CreateUser(ctx context.Context, p AdminCreateParams) (string, error)
	DeleteUser(ctx context.Context, userID string) error
}
