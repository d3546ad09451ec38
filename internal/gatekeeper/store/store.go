package store

import (
	"context"
	"errors"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Profiles() Profiles
	PendingSignups() PendingSignups

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Prefer this
	// over Tx for multi-step operations (e.g. completing a pending signup).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos, plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Profiles interface {
	// GetByID returns a profile by provider user id.
	GetByID(ctx context.Context, id string) (domain.Profile, error)

	// GetByEmail looks up a profile by its unique email.
	GetByEmail(ctx context.Context, email string) (domain.Profile, error)

	// Create inserts a new profile. Returns ErrAlreadyExists when the id,
	// username or email is already taken.
	Create(ctx context.Context, p domain.Profile) error

	// UsernameTaken reports whether any profile holds the username.
	UsernameTaken(ctx context.Context, username string) (bool, error)

	// SetApproved flips the approval flag and bumps updated_at.
	SetApproved(ctx context.Context, id string, approved bool) error

	// SetBlocked flips the blocked flag and bumps updated_at.
	SetBlocked(ctx context.Context, id string, blocked bool) error

	// ListPending returns unapproved, unblocked profiles, oldest first.
	ListPending(ctx context.Context) ([]domain.Profile, error)

	// Delete removes a profile (admin cleanup only).
	Delete(ctx context.Context, id string) error
}

type PendingSignups interface {
	// Create parks registration details until email confirmation completes.
	Create(ctx context.Context, s domain.PendingSignup) error

	// GetByUserID returns the parked signup for a provider user id.
	GetByUserID(ctx context.Context, userID string) (domain.PendingSignup, error)

	// UsernameTaken reports whether a parked signup holds the username.
	// Checked alongside Profiles.UsernameTaken so two unconfirmed signups
	// cannot race for the same name.
	UsernameTaken(ctx context.Context, username string) (bool, error)

	// Delete removes a parked signup once its profile has been created.
	Delete(ctx context.Context, userID string) error

	// DeleteStale removes signups older than the given number of days.
	// Housekeeping for accounts that never confirmed.
	DeleteStale(ctx context.Context, olderThanDays int) error
}
