package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reportTracker/internal/ai"
	"reportTracker/internal/logger"
	"reportTracker/internal/models/task"
	"reportTracker/internal/models/user"
	"reportTracker/internal/repository"
)

// TaskService owns the business rules: sequencing, ownership,
// completion-date bookkeeping, visibility. It never derives state into
// storage; the overdue override stays a read-side concern.
type TaskService struct {
	repo    repository.CollectionRepository
	insight ai.Generator

	// now is swappable so tests can pin "today".
	now func() task.Date

	insightMtx sync.Mutex
}

func NewTaskService(repo repository.CollectionRepository, insight ai.Generator) *TaskService {
	return &TaskService{
		repo:    repo,
		insight: insight,
		now:     task.Today,
	}
}

// WithClock pins the service's notion of today. Test hook.
func (s *TaskService) WithClock(now func() task.Date) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// CreateInput carries the user-editable fields of a new task.
type CreateInput struct {
	Content       string
	DocumentRef   string
	Deadline      task.Date
	Status        task.Status
	Notes         string
	CompletedDate *task.Date
}

func (s *TaskService) CreateTask(ctx context.Context, creator *user.User, in CreateInput) (*task.Task, error) {
	if in.Content == "" {
		return nil, NewValidationError("content", "must not be empty")
	}
	if in.DocumentRef == "" {
		return nil, NewValidationError("documentRef", "must not be empty")
	}
	if in.Deadline.IsZero() {
		return nil, NewValidationError("deadline", "must be a valid date")
	}
	if in.Status == "" {
		in.Status = task.StatusPending
	}
	if !in.Status.Valid() {
		return nil, NewValidationError("status", "unknown status value")
	}

	collection, err := s.loadOwnCollection(ctx, creator.ID)
	if err != nil {
		return nil, err
	}

	t := &task.Task{
		ID:            uuid.New().String(),
		Seq:           task.NextSeq(collection),
		Content:       in.Content,
		DocumentRef:   in.DocumentRef,
		Deadline:      in.Deadline,
		Status:        in.Status,
		Notes:         in.Notes,
		OwnerID:       creator.ID,
		OwnerName:     creator.FullName,
		CompletedDate: in.CompletedDate,
	}
	s.applyCompletionRule(t)

	collection = append(collection, t)
	if err := s.repo.SaveCollection(ctx, creator.ID, collection); err != nil {
		return nil, fmt.Errorf("saving collection: %w", err)
	}

	logger.Info("Service: task created",
		zap.String("task_id", t.ID),
		zap.String("owner_id", t.OwnerID),
		zap.Int("stt", t.Seq))
	return t, nil
}

// UpdateTask merges the given options into the task with this id,
// wherever it lives. Ownership is never reassigned; the owner scan
// stops at the first match since ids are unique system-wide.
func (s *TaskService) UpdateTask(ctx context.Context, id string, opts ...task.TaskOption) (*task.Task, error) {
	owners, err := s.repo.ListOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}

	for _, owner := range owners {
		collection, err := s.repo.LoadCollection(ctx, owner)
		if err != nil {
			if s.skippableOwnerError(owner, err) {
				continue
			}
			return nil, fmt.Errorf("loading collection %s: %w", owner, err)
		}

		t := task.FindByID(collection, id)
		if t == nil {
			continue
		}

		for _, opt := range opts {
			if opt != nil {
				opt(t)
			}
		}
		s.applyCompletionRule(t)

		if err := s.repo.SaveCollection(ctx, owner, collection); err != nil {
			return nil, fmt.Errorf("saving collection %s: %w", owner, err)
		}

		logger.Info("Service: task updated",
			zap.String("task_id", id), zap.String("owner_id", owner))
		return t, nil
	}

	logger.Info("Service: task not found for update", zap.String("task_id", id))
	return nil, NewNotFound("task", id)
}

// DeleteTask removes the task with this id and renumbers the owner's
// remaining tasks to a dense 1..N. No collection is touched when the
// id matches nothing.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	owners, err := s.repo.ListOwners(ctx)
	if err != nil {
		return fmt.Errorf("listing owners: %w", err)
	}

	for _, owner := range owners {
		collection, err := s.repo.LoadCollection(ctx, owner)
		if err != nil {
			if s.skippableOwnerError(owner, err) {
				continue
			}
			return fmt.Errorf("loading collection %s: %w", owner, err)
		}

		found, remaining := task.RemoveAndRenumber(collection, id)
		if !found {
			continue
		}

		if err := s.repo.SaveCollection(ctx, owner, remaining); err != nil {
			return fmt.Errorf("saving collection %s: %w", owner, err)
		}

		logger.Info("Service: task deleted",
			zap.String("task_id", id),
			zap.String("owner_id", owner),
			zap.Int("remaining", len(remaining)))
		return nil
	}

	logger.Info("Service: task not found for delete", zap.String("task_id", id))
	return NewNotFound("task", id)
}

// ListTasks returns the tasks visible to the user: their own
// collection, or for an admin the union of every owner's collection
// sorted by sequence number.
func (s *TaskService) ListTasks(ctx context.Context, usr *user.User) ([]*task.Task, error) {
	return s.visibleTasks(ctx, usr)
}

func (s *TaskService) GetTask(ctx context.Context, usr *user.User, id string) (*task.Task, error) {
	tasks, err := s.visibleTasks(ctx, usr)
	if err != nil {
		return nil, err
	}
	if t := task.FindByID(tasks, id); t != nil {
		return t, nil
	}
	return nil, NewNotFound("task", id)
}

func (s *TaskService) visibleTasks(ctx context.Context, usr *user.User) ([]*task.Task, error) {
	if !usr.IsAdmin() {
		return s.loadOwnCollection(ctx, usr.ID)
	}

	owners, err := s.repo.ListOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}

	union := []*task.Task{}
	for _, owner := range owners {
		collection, err := s.repo.LoadCollection(ctx, owner)
		if err != nil {
			if s.skippableOwnerError(owner, err) {
				continue
			}
			return nil, fmt.Errorf("loading collection %s: %w", owner, err)
		}
		union = append(union, collection...)
	}

	task.SortBySeq(union)
	return union, nil
}

func (s *TaskService) loadOwnCollection(ctx context.Context, ownerID string) ([]*task.Task, error) {
	collection, err := s.repo.LoadCollection(ctx, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return []*task.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading collection %s: %w", ownerID, err)
	}
	return collection, nil
}

// skippableOwnerError reports whether a per-owner read failure should
// be skipped so one broken blob cannot take down a cross-owner view.
func (s *TaskService) skippableOwnerError(owner string, err error) bool {
	if errors.Is(err, repository.ErrCorrupted) {
		logger.Warn("Service: skipping corrupted collection",
			zap.String("owner_id", owner), zap.Error(err))
		return true
	}
	if errors.Is(err, repository.ErrNotFound) {
		return true
	}
	return false
}

// applyCompletionRule keeps completedDate consistent with status:
// present (defaulting to today) if and only if the task is completed.
func (s *TaskService) applyCompletionRule(t *task.Task) {
	if t.Status == task.StatusCompleted {
		if t.CompletedDate == nil || t.CompletedDate.IsZero() {
			today := s.now()
			t.CompletedDate = &today
		}
		return
	}
	t.CompletedDate = nil
}
