package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AI2HU/tubedash/internal/logger"
	"github.com/AI2HU/tubedash/internal/services"
)

// DefaultCronExpr reloads the snapshot every 15 minutes.
const DefaultCronExpr = "*/15 * * * *"

// Scheduler manages periodic snapshot reloads. A failed reload keeps the
// previous snapshot live; the next tick tries again.
type Scheduler struct {
	dashboard *services.DashboardService
	cronExpr  string
	timeout   time.Duration
	cron      *cron.Cron
	running   bool
	mu        sync.RWMutex
}

// New creates a new scheduler. An empty cron expression falls back to the
// default cadence.
func New(dashboard *services.DashboardService, cronExpr string, timeout time.Duration) *Scheduler {
	if cronExpr == "" {
		cronExpr = DefaultCronExpr
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Scheduler{
		dashboard: dashboard,
		cronExpr:  cronExpr,
		timeout:   timeout,
		cron:      cron.New(),
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := s.cron.AddFunc(s.cronExpr, s.reload); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.running = true

	logger.Info("Scheduler started with cron expression: %s", s.cronExpr)
	return nil
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cron.Stop()
	s.running = false

	logger.Info("Scheduler stopped")
}

// Running reports whether the scheduler is active.
func (s *Scheduler) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scheduler) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.dashboard.Reload(ctx); err != nil {
		logger.Error("Scheduled snapshot reload failed, keeping previous snapshot: %v", err)
		return
	}
	logger.Debug("Scheduled snapshot reload completed")
}
