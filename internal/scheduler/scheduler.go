// Package scheduler runs cron-driven housekeeping. The only job today is the
// interest expiry sweep: overdue pending interests are flipped to expired so
// dashboards and counts stay tidy. Read paths filter by expiry themselves and
// never depend on the sweep having run.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/config"
)

// sweepTimeout bounds a single sweep run.
const sweepTimeout = 30 * time.Second

// ExpireFunc is the sweep's unit of work: expire everything due at now and
// report how many rows changed.
type ExpireFunc func(ctx context.Context, now time.Time) (int64, error)

// Scheduler owns the cron runner for background housekeeping.
type Scheduler struct {
	cron      *cron.Cron
	expire    ExpireFunc
	schedule  string
	enabled   bool
	isRunning bool
}

// New builds a scheduler from config. The sweep itself is injected so the
// package stays free of service dependencies.
func New(cfg config.Config, expire ExpireFunc) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		expire:   expire,
		schedule: cfg.SweepSchedule,
		enabled:  cfg.SweepEnabled,
	}
}

// Start registers the sweep job and starts the cron runner. Disabled
// schedulers return nil without starting anything.
func (s *Scheduler) Start() error {
	if !s.enabled {
		log.Info().Msg("scheduler: interest expiry sweep disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.runSweep(); err != nil {
			log.Error().Err(err).Msg("scheduler: interest expiry sweep failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Info().Str("schedule", s.schedule).Msg("scheduler: interest expiry sweep started")
	return nil
}

// Stop halts the cron runner. Safe to call on a scheduler that never started.
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Info().Msg("scheduler: stopped")
	}
}

// RunNow executes one sweep immediately (manual trigger), regardless of the
// enabled flag or schedule.
func (s *Scheduler) RunNow() error {
	return s.runSweep()
}

func (s *Scheduler) runSweep() error {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.expire(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info().Int64("expired", n).Dur("took", time.Since(start)).Msg("scheduler: interest expiry sweep done")
	}
	return nil
}
