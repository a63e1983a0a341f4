package repository

import (
	"context"
	"errors"

	"reportTracker/internal/models/task"
)

var (
	ErrNotFound = errors.New("collection not found")
	// ErrCorrupted marks a persisted blob that no longer parses. It is
	// scoped to one owner; callers skip that owner and keep going.
	ErrCorrupted = errors.New("collection payload corrupted")
)

// CollectionRepository stores one ordered task collection per owner.
// All writes are whole-collection replaces, last write wins; there is
// no partial update. The key naming convention of the underlying store
// (tasks_<ownerId>) stays inside the adapters.
type CollectionRepository interface {
	HealthCheck(ctx context.Context) error
	ListOwners(ctx context.Context) ([]string, error)
	LoadCollection(ctx context.Context, ownerID string) ([]*task.Task, error)
	SaveCollection(ctx context.Context, ownerID string, tasks []*task.Task) error
	DeleteCollection(ctx context.Context, ownerID string) error
	Close()
}
