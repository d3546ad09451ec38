package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/identity"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/store"
	"github.com/vasudha-ag/gatekeeper/pkg/slogx"
)

// ApprovalPolicy decides the approved flag on freshly created profiles.
// It is read exactly once per profile, at creation time; flipping the policy
// later never reinterprets existing accounts.
type ApprovalPolicy string

const (
	// ApprovalManual holds new accounts until an administrator approves them.
	ApprovalManual ApprovalPolicy = "manual"

	// ApprovalAuto lets new accounts log in immediately.
	ApprovalAuto ApprovalPolicy = "auto"
)

// ParseApprovalPolicy maps a config string to a policy, defaulting to manual.
func ParseApprovalPolicy(s string) ApprovalPolicy {
	if ApprovalPolicy(s) == ApprovalAuto {
		return ApprovalAuto
	}
	return ApprovalManual
}

// ApprovedAtCreation reports the approved flag for a new profile.
func (p ApprovalPolicy) ApprovedAtCreation() bool {
	return p == ApprovalAuto
}

// RegistrationResult reports what registration did.
type RegistrationResult struct {
	UserID string

	// PendingConfirmation is true when the provider withheld the account
	// until the user confirms their email. No profile exists yet; it is
	// created at first login.
	PendingConfirmation bool

	// Approved echoes the approval flag the profile was created with.
	Approved bool
}

// RegisterService runs the registration workflow: admission rules, identity
// creation, then the dependent profile insert, reconciling partial failure
// between the two.
type RegisterService struct {
	Store    store.Store
	Provider identity.Provider

	// Admin enables the privileged path: identities created pre-confirmed
	// and rolled back when the profile insert fails. Nil means self-service
	// sign-up, where a failed profile insert can only be surfaced, never
	// rolled back.
	Admin identity.AdminProvider

	Policy ApprovalPolicy
}

// Register admits a candidate account and creates its identity and profile.
func (s *RegisterService) Register(ctx context.Context, req Registration) (RegistrationResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Admission rules, in declared order, before any external call.
	req.normalize()
	if err := admit(&req); err != nil {
		return RegistrationResult{}, err
	}

	// 2. Uniqueness checks before identity creation, so a conflict cannot
	// strand a freshly created identity.
	if err := s.checkConflicts(ctx, &req); err != nil {
		return RegistrationResult{}, err
	}

	role := domain.ParseRole(req.Role)

	// 3. Create the identity, privileged path when available.
	if s.Admin != nil {
		return s.registerViaAdmin(ctx, &req, role)
	}

	res, err := s.Provider.SignUp(ctx, identity.SignUpParams{
		Email:    req.Email,
		Password: req.Password,
		Metadata: providerMetadata(&req, role),
	})
	if err != nil {
		return RegistrationResult{}, mapIdentityError(err)
	}

	// 4. No user session yet: park the details and finish at first login.
	if res.RequiresConfirmation {
		err := s.Store.PendingSignups().Create(ctx, domain.PendingSignup{
			UserID:   res.UserID,
			FullName: req.FullName(),
			Username: req.Username,
			Email:    req.Email,
			Phone:    req.Phone,
			Role:     role,
		})
		if err != nil {
			log.Error("failed to park pending signup",
				slog.String("user_id", res.UserID),
				slog.Any("error", err),
			)
			return RegistrationResult{}, ErrPartialRegistration
		}

		return RegistrationResult{UserID: res.UserID, PendingConfirmation: true}, nil
	}

	// 5. Insert the dependent profile. Without admin privilege a failure
	// here cannot be rolled back, only reported, and never as success.
	approved := s.Policy.ApprovedAtCreation()
	if err := s.createProfile(ctx, res.UserID, &req, role, approved); err != nil {
		log.Error("profile insert failed after identity creation",
			slog.String("user_id", res.UserID),
			slog.Any("error", err),
		)
		return RegistrationResult{}, ErrPartialRegistration
	}

	return RegistrationResult{UserID: res.UserID, Approved: approved}, nil
}

// registerViaAdmin creates a pre-confirmed identity and rolls it back if the
// profile insert fails.
func (s *RegisterService) registerViaAdmin(
	ctx context.Context,
	req *Registration,
	role domain.Role,
) (RegistrationResult, error) {
	log := slogx.FromContext(ctx)

	userID, err := s.Admin.CreateUser(ctx, identity.AdminCreateParams{
		Email:    req.Email,
		Password: req.Password,
		Metadata: providerMetadata(req, role),
	})
	if err != nil {
		return RegistrationResult{}, mapIdentityError(err)
	}

	approved := s.Policy.ApprovedAtCreation()
	if err := s.createProfile(ctx, userID, req, role, approved); err != nil {
		// Roll the identity back so no stranded credential can log in.
		if delErr := s.Admin.DeleteUser(ctx, userID); delErr != nil {
			log.Error("identity rollback failed, account is stranded",
				slog.String("user_id", userID),
				slog.Any("profile_error", err),
				slog.Any("rollback_error", delErr),
			)
			return RegistrationResult{}, ErrPartialRegistration
		}

		log.Warn("registration rolled back after profile insert failure",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)

		if errors.Is(err, store.ErrAlreadyExists) {
			return RegistrationResult{}, ErrUsernameTaken
		}
		return RegistrationResult{}, err
	}

	return RegistrationResult{UserID: userID, Approved: approved}, nil
}

// checkConflicts refuses usernames and emails that are already spoken for,
// across both live profiles and parked signups.
func (s *RegisterService) checkConflicts(ctx context.Context, req *Registration) error {
	if req.Username != "" {
		taken, err := s.Store.Profiles().UsernameTaken(ctx, req.Username)
		if err != nil {
			return err
		}
		if !taken {
			taken, err = s.Store.PendingSignups().UsernameTaken(ctx, req.Username)
			if err != nil {
				return err
			}
		}
		if taken {
			return ErrUsernameTaken
		}
	}

	_, err := s.Store.Profiles().GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *RegisterService) createProfile(
	ctx context.Context,
	userID string,
	req *Registration,
	role domain.Role,
	approved bool,
) error {
	return s.Store.Profiles().Create(ctx, domain.Profile{
		ID:       userID,
		FullName: req.FullName(),
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     role,
		Approved: approved,
		Blocked:  false,
	})
}

// providerMetadata rides registration details on the identity record for
// traceability. The profile store stays the source of truth.
func providerMetadata(req *Registration, role domain.Role) map[string]any {
	return map[string]any{
		"full_name": req.FullName(),
		"username":  req.Username,
		"role":      string(role),
	}
}

// mapIdentityError normalises provider errors into this package's taxonomy.
func mapIdentityError(err error) error {
	switch {
	case errors.Is(err, identity.ErrUserExists):
		return ErrEmailTaken
	case errors.Is(err, identity.ErrWeakPassword):
		return ErrPasswordTooShort
	case errors.Is(err, identity.ErrEmailNotConfirmed):
		return ErrEmailNotConfirmed
	case errors.Is(err, identity.ErrInvalidCredentials):
		return ErrInvalidCredentials
	case errors.Is(err, identity.ErrUnavailable):
		return ErrProviderUnavailable
	default:
		return err
	}
}
