package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"reportTracker/internal/logger"
	"reportTracker/internal/models/task"
	"reportTracker/internal/repository"
)

// OverdueWorker periodically reports how many tasks are past their
// deadline, per owner. Overdue is derived at read time and never
// written back, so the worker observes and logs but does not mutate.
type OverdueWorker struct {
	repo     repository.CollectionRepository
	interval time.Duration
	now      func() task.Date
}

func NewOverdueWorker(repo repository.CollectionRepository, interval time.Duration) *OverdueWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &OverdueWorker{
		repo:     repo,
		interval: interval,
		now:      task.Today,
	}
}

func (w *OverdueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: overdue scan started", zap.Time("started_at", time.Now()))
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: overdue scan stopping")
			return
		}
	}
}

// Check counts overdue tasks across all owners and logs the totals.
func (w *OverdueWorker) Check(ctx context.Context) map[string]int {
	start := time.Now()
	today := w.now()

	owners, err := w.repo.ListOwners(ctx)
	if err != nil {
		logger.Warn("Worker: failed to list owners", zap.Error(err))
		return nil
	}

	perOwner := make(map[string]int)
	checked := 0
	total := 0
	for _, owner := range owners {
		collection, err := w.repo.LoadCollection(ctx, owner)
		if err != nil {
			logger.Warn("Worker: failed to load collection",
				zap.String("owner_id", owner), zap.Error(err))
			continue
		}

		overdue := 0
		for _, t := range collection {
			checked++
			if t.DisplayStatusOn(today) == task.DisplayOverdue {
				overdue++
			}
		}
		if overdue > 0 {
			perOwner[owner] = overdue
			total += overdue
			logger.Warn("Worker: owner has overdue tasks",
				zap.String("owner_id", owner), zap.Int("overdue", overdue))
		}
	}

	logger.Info(
		"Worker: overdue scan finished",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked", checked),
		zap.Int("overdue", total),
	)
	return perOwner
}
