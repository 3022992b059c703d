package scheduler

import (
	"context"
	"fmt"

	"github.com/Dan9191/cashflow-service/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron   *cron.Cron
	jobs   *Jobs
	logger *logrus.Logger
	config *config.Config
}

// NewScheduler creates a new scheduler running in the configured time zone
func NewScheduler(jobs *Jobs, logger *logrus.Logger, cfg *config.Config) *Scheduler {
	opts := []cron.Option{cron.WithChain(cron.Recover(cron.PrintfLogger(logger)))}
	if cfg.Location != nil {
		opts = append(opts, cron.WithLocation(cfg.Location))
	}
	return &Scheduler{
		cron:   cron.New(opts...),
		jobs:   jobs,
		logger: logger,
		config: cfg,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.config.ReminderSchedule, s.jobs.SendBillReminders); err != nil {
		return fmt.Errorf("failed to schedule bill reminder job: %w", err)
	}
	s.logger.WithField("schedule", s.config.ReminderSchedule).Info("Scheduled bill reminder job")
	s.cron.Start()
	return nil
}

// Stop stops the scheduler. The returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
