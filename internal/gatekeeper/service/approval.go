package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/store"
	"github.com/vasudha-ag/gatekeeper/pkg/slogx"
)

// ApprovalService is the administrative side of the admission gate: listing
// profiles waiting on approval and flipping the approved/blocked flags.
// Decisions take effect on the user's next login or page load; live sessions
// are not chased down.
type ApprovalService struct {
	Store store.Store
}

// ListPending returns profiles waiting on an approval decision, oldest first.
func (s *ApprovalService) ListPending(ctx context.Context) ([]domain.Profile, error) {
	return s.Store.Profiles().ListPending(ctx)
}

// Approve lets the profile's user log in.
func (s *ApprovalService) Approve(ctx context.Context, profileID string) error {
	return s.setApproved(ctx, profileID, true)
}

// Revoke returns the profile to the pending state.
func (s *ApprovalService) Revoke(ctx context.Context, profileID string) error {
	return s.setApproved(ctx, profileID, false)
}

// Block denies the profile's user all access, approved or not.
func (s *ApprovalService) Block(ctx context.Context, profileID string) error {
	return s.setBlocked(ctx, profileID, true)
}

// Unblock lifts a block. The approval flag is untouched.
func (s *ApprovalService) Unblock(ctx context.Context, profileID string) error {
	return s.setBlocked(ctx, profileID, false)
}

func (s *ApprovalService) setApproved(ctx context.Context, profileID string, approved bool) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Profiles().SetApproved(ctx, profileID, approved)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	log.Info("profile approval changed",
		slog.String("profile_id", profileID),
		slog.Bool("approved", approved),
	)
	return nil
}

func (s *ApprovalService) setBlocked(ctx context.Context, profileID string, blocked bool) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Profiles().SetBlocked(ctx, profileID, blocked)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	log.Info("profile block changed",
		slog.String("profile_id", profileID),
		slog.Bool("blocked", blocked),
	)
	return nil
}
