package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/identity"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/store"
	"github.com/vasudha-ag/gatekeeper/pkg/slogx"
)

// LoginResult is a fully authorized session plus where to send the user.
type LoginResult struct {
	Session  domain.Session
	Profile  domain.Profile
	Redirect string
}

// LoginService authenticates credentials against the identity provider and
// authorizes the resulting session against the profile store. Any failure
// after authentication terminates the session before it is reported, so an
// unauthorized session is never left alive.
type LoginService struct {
	Store    store.Store
	Provider identity.Provider
	Policy   ApprovalPolicy
}

// Login runs the login workflow in strict order.
func (s *LoginService) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	// 1. The provider keys identities by email only. Anything that is not
	// an email address cannot be resolved, so reject it up front.
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if !strings.Contains(identifier, "@") {
		return LoginResult{}, ErrEmailIdentifier
	}

	// 2. Authenticate. Failure stops here, nothing to clean up.
	sess, err := s.Provider.SignInWithPassword(ctx, identifier, password)
	if err != nil {
		return LoginResult{}, mapIdentityError(err)
	}

	if sess.UserID == "" {
		return LoginResult{}, ErrSessionNotEstablished
	}

	// 3. Resolve the profile. A session with no profile fails closed.
	profile, err := s.resolveProfile(ctx, sess)
	if err != nil {
		s.signOut(ctx, sess.AccessToken)
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("authenticated session has no profile",
				slog.String("user_id", sess.UserID),
			)
			return LoginResult{}, ErrNoProfile
		}
		return LoginResult{}, err
	}

	// 4. Authorization gate, shared with the page guard.
	if err := authorize(&profile); err != nil {
		s.signOut(ctx, sess.AccessToken)
		return LoginResult{}, err
	}

	// 5. Role decides the landing page; unknown roles fall back to the
	// default destination rather than erroring.
	return LoginResult{
		Session:  sess,
		Profile:  profile,
		Redirect: profile.Role.Landing(),
	}, nil
}

// Logout revokes the session behind the token. Best effort: a dead session
// is already the state we want.
func (s *LoginService) Logout(ctx context.Context, accessToken string) error {
	return s.Provider.SignOut(ctx, accessToken)
}

// resolveProfile fetches the session's profile, completing a parked signup
// first when the user confirmed their email and this is their first login.
func (s *LoginService) resolveProfile(ctx context.Context, sess domain.Session) (domain.Profile, error) {
	profile, err := s.Store.Profiles().GetByID(ctx, sess.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Profile{}, err
	}

	signup, err := s.Store.PendingSignups().GetByUserID(ctx, sess.UserID)
	if err != nil {
		// No profile and no parked signup: genuinely unknown identity.
		return domain.Profile{}, err
	}

	log := slogx.FromContext(ctx)
	log.Info("completing registration at first login",
		slog.String("user_id", sess.UserID),
	)

	created := signup.ToProfile(s.Policy.ApprovedAtCreation(), time.Now().UTC())

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Profiles().Create(ctx, created); err != nil {
			return err
		}
		return tx.PendingSignups().Delete(ctx, sess.UserID)
	})
	if err != nil {
		return domain.Profile{}, err
	}

	return created, nil
}

func (s *LoginService) signOut(ctx context.Context, accessToken string) {
	if err := s.Provider.SignOut(ctx, accessToken); err != nil {
		slogx.FromContext(ctx).Warn("defensive sign-out failed", slog.Any("error", err))
	}
}

// authorize is the shared standing check: blocked always wins, then the
// approval gate. Role matching is deliberately not here; only the guard
// cares, and a role mismatch must not cost the user their session.
func authorize(p *domain.Profile) error {
	if p.Blocked {
		return ErrAccountBlocked
	}
	if !p.Approved {
		return ErrPendingApproval
	}
	return nil
}
