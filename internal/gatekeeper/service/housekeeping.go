package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/store"
)

// HousekeepingService periodically prunes pending signups whose email
// confirmation never arrived, so abandoned registrations do not hold
// usernames hostage forever.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// MaxPendingAgeDays is how long an unconfirmed signup may linger
	// before cleanup removes it.
	MaxPendingAgeDays int

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service with the given
// interval. A zero or negative interval defaults to 1 hour; a zero or
// negative age defaults to 7 days.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration, maxAgeDays int) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if maxAgeDays <= 0 {
		maxAgeDays = 7
	}

	return &HousekeepingService{
		Store:             st,
		Logger:            logger,
		Interval:          interval,
		MaxPendingAgeDays: maxAgeDays,
		stopCh:            make(chan struct{}),
		doneCh:            make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut
// it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		slog.Duration("interval", s.Interval),
		slog.Int("max_pending_age_days", s.MaxPendingAgeDays),
	)
}

// Stop shuts down the worker and blocks until any in-progress cleanup
// finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run once on startup before settling into the cadence.
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	ctx := context.Background()

	if err := s.Store.PendingSignups().DeleteStale(ctx, s.MaxPendingAgeDays); err != nil {
		s.Logger.Error("failed to delete stale pending signups", slog.Any("error", err))
		return
	}
	s.Logger.Debug("deleted stale pending signups")
}
