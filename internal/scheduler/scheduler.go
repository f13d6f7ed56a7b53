package scheduler

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler runs background maintenance jobs. Currently a single sweep
// that deactivates postings whose application deadline has passed.
type Scheduler struct {
	cron    *cron.Cron
	jobRepo domain.JobRepository
	spec    string
}

func New(jobRepo domain.JobRepository, spec string) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		jobRepo: jobRepo,
		spec:    spec,
	}
}

// Start registers the deadline sweep and launches the cron loop. The
// sweep also runs once at startup so a long-stopped instance catches up
// immediately.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweepExpired); err != nil {
		return err
	}
	go s.sweepExpired()
	s.cron.Start()
	if logger.Log != nil {
		logger.Log.Info("scheduler started", "spec", s.spec)
	}
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	if logger.Log != nil {
		logger.Log.Info("scheduler stopped")
	}
}

func (s *Scheduler) sweepExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.jobRepo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		if logger.Log != nil {
			logger.Log.Error("deadline sweep failed", "error", err)
		}
		return
	}
	if n > 0 && logger.Log != nil {
		logger.Log.Info("deactivated expired jobs", "count", n)
	}
}
