package handlers

import (
	"context"
	"time"

	"reportTracker/internal/models/task"
	"reportTracker/internal/models/user"
	"reportTracker/internal/service"
	"reportTracker/internal/snapshot"
	"reportTracker/internal/stats"
)

// ReportService is what the HTTP layer needs from the service;
// *service.TaskService satisfies it.
type ReportService interface {
	HealthCheck(ctx context.Context) error

	CreateTask(ctx context.Context, creator *user.User, in service.CreateInput) (*task.Task, error)
	UpdateTask(ctx context.Context, id string, opts ...task.TaskOption) (*task.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, usr *user.User) ([]*task.Task, error)
	GetTask(ctx context.Context, usr *user.User, id string) (*task.Task, error)

	Overview(ctx context.Context, usr *user.User, year int, month stats.Month) (stats.Overview, error)
	MonthlySeries(ctx context.Context, usr *user.User, year int) ([12]stats.MonthBucket, error)
	TasksOnDay(ctx context.Context, usr *user.User, year int, month time.Month, day int) ([]*task.Task, error)

	ExportSnapshot(ctx context.Context) (snapshot.Document, string, error)
	ImportSnapshot(ctx context.Context, doc snapshot.Document) (int, error)
	ResetAll(ctx context.Context, confirmation string) (int, error)

	ExportCSV(ctx context.Context, usr *user.User) ([]byte, error)
	ImportCSV(ctx context.Context, usr *user.User, data []byte) (int, error)

	GenerateInsight(ctx context.Context, usr *user.User) (string, error)
}
