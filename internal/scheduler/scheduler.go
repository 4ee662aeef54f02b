package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/greentrack/internal/energy"
)

// Scheduler periodically refreshes the simulated generation figures. It is
// independent of the enrichment pipeline.
type Scheduler struct {
	scheduler *gocron.Scheduler
	board     *energy.GenerationBoard
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler.
func New(board *energy.GenerationBoard, interval time.Duration, zone *time.Location, logger *zap.Logger) *Scheduler {
	if zone == nil {
		zone = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(zone),
		board:     board,
		interval:  interval,
		logger:    logger.Named("scheduler"),
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval < time.Second {
		interval = 30 * time.Second
	}

	_, err := s.scheduler.Every(interval).Do(func() {
		snap := s.board.Refresh()
		s.logger.Debug("generation refreshed",
			zap.Int("total_mw", snap.TotalMW),
			zap.Int("grid_load_mw", snap.GridLoadMW),
			zap.Float64("renewable_pct", snap.RenewablePct),
		)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
