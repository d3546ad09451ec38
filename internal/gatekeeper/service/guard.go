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

// GuardService re-checks an existing session on every protected page load.
// It shares the authorization predicate with login; the one difference is
// role matching, which denies access without terminating the session.
type GuardService struct {
	Store    store.Store
	Provider identity.Provider
}

// Check authorizes the session's user for a page. requiredRole is empty for
// pages any authorized user may see. On blocked, unapproved or unknown
// identities the session is terminated before the error is returned; a role
// mismatch leaves the session intact.
func (s *GuardService) Check(
	ctx context.Context,
	userID string,
	accessToken string,
	requiredRole domain.Role,
) (domain.Profile, error) {
	log := slogx.FromContext(ctx)

	// 1. Resolve the profile; an unrecognized identity fails closed.
	profile, err := s.Store.Profiles().GetByID(ctx, userID)
	if err != nil {
		s.signOut(ctx, accessToken)
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("session for unknown identity terminated",
				slog.String("user_id", userID),
			)
			return domain.Profile{}, ErrNoProfile
		}
		return domain.Profile{}, err
	}

	// 2. Standing check, shared with login.
	if err := authorize(&profile); err != nil {
		s.signOut(ctx, accessToken)
		return domain.Profile{}, err
	}

	// 3. Role check. Denial keeps the session alive: a valid user on the
	// wrong page should stay logged in.
	if requiredRole != "" && profile.Role != requiredRole {
		return domain.Profile{}, ErrRoleMismatch
	}

	return profile, nil
}

func (s *GuardService) signOut(ctx context.Context, accessToken string) {
	if err := s.Provider.SignOut(ctx, accessToken); err != nil {
		slogx.FromContext(ctx).Warn("defensive sign-out failed", slog.Any("error", err))
	}
}
