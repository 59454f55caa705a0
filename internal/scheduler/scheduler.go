package scheduler

import (
	"context"
	"time"

	"github.com/wb-go/wbf/logger"
)

type reconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

// Scheduler periodically repairs registered counts from the ledger.
type Scheduler struct {
	registrations reconciler
	interval      time.Duration
	logger        logger.Logger
}

func New(
	registrations reconciler,
	interval time.Duration,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		registrations: registrations,
		interval:      interval,
		logger:        logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("reconciler started",
		logger.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	start := time.Now()
	repaired, err := s.registrations.Reconcile(ctx)
	if err != nil {
		s.logger.Error("reconcile failed",
			logger.Int("repaired", repaired),
			logger.String("error", err.Error()),
		)
		return
	}

	if repaired > 0 {
		s.logger.Warn("registered counts repaired",
			logger.Int("events", repaired),
			logger.Duration("took", time.Since(start)),
		)
		return
	}

	s.logger.Debug("reconcile finished, no drift",
		logger.Duration("took", time.Since(start)),
	)
}
