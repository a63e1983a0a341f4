package service

import (
	"context"
	"fmt"
	"time"

	"reportTracker/internal/models/task"
	"reportTracker/internal/models/user"
	"reportTracker/internal/stats"
)

// Overview aggregates the user's visible tasks for a year and an
// optional month (stats.AllMonths means the whole year).
func (s *TaskService) Overview(ctx context.Context, usr *user.User, year int, month stats.Month) (stats.Overview, error) {
	if year <= 0 {
		return stats.Overview{}, NewValidationError("year", "must be positive")
	}
	if month != stats.AllMonths && !month.Valid() {
		return stats.Overview{}, NewValidationError("month", "must be between 1 and 12")
	}

	tasks, err := s.visibleTasks(ctx, usr)
	if err != nil {
		return stats.Overview{}, err
	}
	return stats.Aggregate(tasks, year, month, s.now()), nil
}

// MonthlySeries returns twelve per-month buckets for the given year.
func (s *TaskService) MonthlySeries(ctx context.Context, usr *user.User, year int) ([12]stats.MonthBucket, error) {
	if year <= 0 {
		return [12]stats.MonthBucket{}, NewValidationError("year", "must be positive")
	}

	tasks, err := s.visibleTasks(ctx, usr)
	if err != nil {
		return [12]stats.MonthBucket{}, err
	}
	return stats.MonthlySeries(tasks, year, s.now()), nil
}

// TasksOnDay returns the user's visible tasks whose deadline falls on
// the given calendar day.
func (s *TaskService) TasksOnDay(ctx context.Context, usr *user.User, year int, month time.Month, day int) ([]*task.Task, error) {
	if year <= 0 {
		return nil, NewValidationError("year", "must be positive")
	}
	if month < time.January || month > time.December {
		return nil, NewValidationError("month", "must be between 1 and 12")
	}
	// time.Parse rejects out-of-range days like February 30th.
	if _, err := task.ParseDate(fmt.Sprintf("%04d-%02d-%02d", year, month, day)); err != nil {
		return nil, NewValidationError("day", "not a valid day of that month")
	}

	tasks, err := s.visibleTasks(ctx, usr)
	if err != nil {
		return nil, err
	}
	return stats.TasksOnDay(tasks, year, month, day), nil
}
