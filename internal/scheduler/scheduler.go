package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"bumpbot/internal/config"
)

// Scheduler handles periodic execution of scheduled tasks
type Scheduler struct {
	cron   *cron.Cron
	config *config.Config
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		config: cfg,
	}
}

// RegisterFunc schedules fn on a cron spec ("@hourly", "*/5 * * * *", ...).
// Errors from fn are logged under name.
func (s *Scheduler) RegisterFunc(spec, name string, fn func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := fn(); err != nil {
			s.config.Logger.Errorf("Scheduled task %s failed: %v", name, err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	s.config.Logger.Debugf("Scheduled task %s (%s)", name, spec)
	return nil
}

// Len returns the number of registered tasks.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.config.Logger.Info("Scheduler started!")
}

// Stop stops the scheduler and waits for running tasks to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.config.Logger.Info("Scheduler stopped")
}
