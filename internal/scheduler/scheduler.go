package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"MarketDigest/internal/dispatch"
)

// Scheduler fires the report job on a cron schedule. It exists only for
// deployments that prefer a small daemon over an external cron entry.
type Scheduler struct {
	Cron       *cron.Cron
	Dispatcher *dispatch.Dispatcher
	Ctx        context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, d *dispatch.Dispatcher) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Dispatcher: d,
		Ctx:        ctx,
	}
}

// Register adds the report job under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, func() {
		if err := s.Dispatcher.RunAndReport(s.Ctx); err != nil {
			log.Printf("[ERROR] scheduled run: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}
