// Package jobs runs background work on a cron schedule.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/robfig/cron/v3"
)

const reconcileTimeout = 5 * time.Minute

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	cron      *cron.Cron
	reporting portssvc.ReportingService
	logger    *slog.Logger
	schedule  string
}

// NewScheduler creates a scheduler that reconciles balances on schedule.
func NewScheduler(reporting portssvc.ReportingService, logger *slog.Logger, schedule string) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))

	return &Scheduler{
		cron:      c,
		reporting: reporting,
		logger:    logger,
		schedule:  schedule,
	}
}

// Start registers the reconciliation job and starts the runner. An empty schedule disables it.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("Reconciliation job disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.Reconcile); err != nil {
		s.logger.Error("Failed to schedule reconciliation job", slog.String("schedule", s.schedule), slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("Scheduled reconciliation job", slog.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the runner; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Reconcile compares every stored balance against its journal and logs the outcome.
func (s *Scheduler) Reconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()
	ctx = middleware.WithLogger(ctx, s.logger.With(slog.String("job", "reconcile")))

	start := time.Now()
	mismatches, err := s.reporting.Reconcile(ctx, domain.SystemIdentity())
	if err != nil {
		s.logger.Error("Reconciliation failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Reconciliation finished",
		slog.Int("mismatches", len(mismatches)),
		slog.Duration("duration", time.Since(start)))
}
