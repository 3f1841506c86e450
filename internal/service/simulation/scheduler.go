package simulation

import (
	"context"
	"log/slog"
	"time"
)

type batchRunner interface {
	RunBatch(ctx context.Context, n int) (*BatchResult, error)
}

// Scheduler runs a batch of count payments every interval until its context
// ends.
type Scheduler struct {
	batches  batchRunner
	count    int
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(batches batchRunner, count int, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		batches:  batches,
		count:    count,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("simulation scheduler started", "interval", s.interval, "count", s.count)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("simulation scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	res, err := s.batches.RunBatch(ctx, s.count)
	if err != nil {
		s.logger.Error("scheduled simulation batch failed", "error", err)
		return
	}
	s.logger.Debug("scheduled simulation batch done", "committed", res.Committed, "attempted", res.Attempted())
}
