// Package scheduler wires up the cron job that refreshes every stored
// industry insight.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/muhammadolammi/careerinsights/internal/insights"
	"github.com/muhammadolammi/careerinsights/internal/logger"
	"github.com/robfig/cron/v3"
)

// Refresher runs one full refresh pass.
type Refresher interface {
	RefreshAll(ctx context.Context) (insights.RefreshReport, error)
}

// Scheduler wraps robfig/cron and runs the weekly refresh.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	locker    Locker
	spec      string
	lockTTL   time.Duration
	log       *logger.Logger
}

// New creates a Scheduler for the standard 5-field cron spec, e.g. "0 0 * * 0".
func New(refresher Refresher, locker Locker, spec string, log *logger.Logger) *Scheduler {
	if locker == nil {
		locker = NopLocker{}
	}
	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		locker:    locker,
		spec:      spec,
		lockTTL:   time.Hour,
		log:       log.With("component", "scheduler"),
	}
}

// Start registers the job and starts the cron loop. Unlike a polling loop it
// does not run immediately; the first refresh happens on the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		_, _ = s.RunOnce(ctx) // failures are logged inside
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info("cron started", "spec", s.spec)
	return nil
}

// Stop halts the cron loop and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("cron stopped")
}

// RunOnce performs a single refresh if this instance wins the lock. It reports
// whether the refresh ran and returns the lock or refresh error, if any. A
// lock held elsewhere is not an error.
func (s *Scheduler) RunOnce(ctx context.Context) (bool, error) {
	release, acquired, err := s.locker.Acquire(ctx, s.lockTTL)
	if err != nil {
		s.log.Error("refresh lock error", "error", err)
		return false, fmt.Errorf("acquire refresh lock: %w", err)
	}
	if !acquired {
		s.log.Info("refresh already running elsewhere, skipping tick")
		return false, nil
	}
	defer release()

	start := time.Now()
	report, err := s.refresher.RefreshAll(ctx)
	if err != nil {
		s.log.Error("refresh run failed", "error", err, "updated", len(report.Updated))
		return true, err
	}
	s.log.Info("refresh run finished",
		"updated", len(report.Updated),
		"skipped", len(report.Skipped),
		"duration", time.Since(start).String(),
	)
	return true, nil
}
