package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vitaboard/backend/domain"
	"github.com/vitaboard/backend/repository"
)

// SnapshotInvalidator lets the sweep drop cached activity snapshots after it
// rewrites stored statuses behind their backs.
type SnapshotInvalidator interface {
	InvalidateAll()
}

// SweepConfig controls when the overdue pass runs.
type SweepConfig struct {
	Schedule string
}

// OverdueSweep periodically marks pending activities whose date has gone by
// as late. Runs shortly after midnight so each day's backlog is stamped once.
type OverdueSweep struct {
	repo    repository.ActivityRepository
	engines SnapshotInvalidator
	logger  *zap.Logger
	cron    *cron.Cron
	now     func() time.Time
}

func NewOverdueSweep(
	repo repository.ActivityRepository,
	engines SnapshotInvalidator,
	logger *zap.Logger,
	cfg SweepConfig,
) *OverdueSweep {
	if cfg.Schedule == "" {
		cfg.Schedule = "5 0 * * *"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sweep := &OverdueSweep{
		repo:    repo,
		engines: engines,
		logger:  logger,
		cron:    cron.New(),
		now:     time.Now,
	}

	_, _ = sweep.cron.AddFunc(cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := sweep.Run(ctx); err != nil {
			sweep.logger.Error("overdue sweep failed", zap.Error(err))
		}
	})

	return sweep
}

// Start launches the cron scheduler and runs one immediate pass so a restart
// does not wait until the next midnight.
func (s *OverdueSweep) Start() {
	if s == nil || s.cron == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.Run(ctx); err != nil {
			s.logger.Error("initial overdue sweep failed", zap.Error(err))
		}
	}()
	s.cron.Start()
	s.logger.Info("overdue sweep started")
}

// Stop gracefully stops the scheduler.
func (s *OverdueSweep) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("overdue sweep stopped")
}

// Run marks every pending activity dated strictly before today as late.
func (s *OverdueSweep) Run(ctx context.Context) error {
	if s == nil || s.repo == nil {
		return nil
	}
	today := s.now().Format(domain.DateFormat)

	marked, err := s.repo.MarkOverdue(ctx, today)
	if err != nil {
		return err
	}
	if marked > 0 {
		s.logger.Info("activities marked late", zap.Int64("count", marked), zap.String("before", today))
		if s.engines != nil {
			s.engines.InvalidateAll()
		}
	}
	return nil
}
