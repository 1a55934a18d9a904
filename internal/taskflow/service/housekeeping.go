package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
)

// HousekeepingService periodically deletes expired session rows and
// invitations so neither table grows without bound.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Sessions is false when session persistence is disabled.
	Sessions bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration, sessions bool) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		Sessions: sessions,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", slog.Duration("interval", s.Interval))
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background(), time.Now())
	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background(), time.Now())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup removes everything that expired before now. Each step is
// independent; a failure in one does not skip the others.
func (s *HousekeepingService) Cleanup(ctx context.Context, now time.Time) {
	s.Logger.Debug("starting housekeeping cleanup")

	var sessions, invitations int64
	var err error

	if s.Sessions {
		if sessions, err = s.Store.Sessions().DeleteExpiredSessions(ctx, now); err != nil {
			s.Logger.Error("failed to delete expired sessions", slog.Any("err", err))
		}
	}
	if invitations, err = s.Store.Invitations().DeleteExpiredInvitations(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired invitations", slog.Any("err", err))
	}

	s.Logger.Info("housekeeping cleanup completed",
		slog.Int64("sessions_deleted", sessions),
		slog.Int64("invitations_deleted", invitations),
	)
}
