package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"reportTracker/internal/logger"
	"reportTracker/internal/models/task"
	"reportTracker/internal/snapshot"
)

// ResetConfirmation is the phrase the caller must type back before a
// full reset is honored.
const ResetConfirmation = "DONG Y"

// ExportSnapshot collects every owner's collection into one backup
// document. A corrupted owner is skipped so the rest stays exportable.
func (s *TaskService) ExportSnapshot(ctx context.Context) (snapshot.Document, string, error) {
	owners, err := s.repo.ListOwners(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("listing owners: %w", err)
	}

	collections := map[string][]*task.Task{}
	for _, owner := range owners {
		collection, err := s.repo.LoadCollection(ctx, owner)
		if err != nil {
			if s.skippableOwnerError(owner, err) {
				continue
			}
			return nil, "", fmt.Errorf("loading collection %s: %w", owner, err)
		}
		collections[owner] = collection
	}

	if len(collections) == 0 {
		return nil, "", NewBusinessError(CodeEmptySystem, "there is no data to back up")
	}

	doc, err := snapshot.Build(collections)
	if err != nil {
		return nil, "", fmt.Errorf("building snapshot: %w", err)
	}

	logger.Info("Service: snapshot exported", zap.Int("owners", len(collections)))
	return doc, snapshot.Filename(s.now()), nil
}

// ImportSnapshot validates the whole document first and only then
// replaces the system state. A partially valid backup changes nothing.
func (s *TaskService) ImportSnapshot(ctx context.Context, doc snapshot.Document) (int, error) {
	collections, err := snapshot.Decode(doc)
	if err != nil {
		return 0, &BusinessError{
			Code:    CodeInvalidBackup,
			Message: "the backup file is not a valid system snapshot",
			Err:     err,
		}
	}

	if _, err := s.removeAll(ctx); err != nil {
		return 0, err
	}

	total := 0
	for owner, collection := range collections {
		if err := s.repo.SaveCollection(ctx, owner, collection); err != nil {
			return 0, fmt.Errorf("saving collection %s: %w", owner, err)
		}
		total += len(collection)
	}

	logger.Info("Service: snapshot imported",
		zap.Int("owners", len(collections)), zap.Int("tasks", total))
	return total, nil
}

// ResetAll wipes every collection. The confirmation phrase must match
// exactly; handlers pass it through untrimmed.
func (s *TaskService) ResetAll(ctx context.Context, confirmation string) (int, error) {
	if confirmation != ResetConfirmation {
		return 0, NewValidationError("confirmation", fmt.Sprintf("type %q to confirm", ResetConfirmation))
	}

	removed, err := s.removeAll(ctx)
	if err != nil {
		return 0, err
	}

	logger.Info("Service: system reset", zap.Int("owners_removed", removed))
	return removed, nil
}

func (s *TaskService) removeAll(ctx context.Context) (int, error) {
	owners, err := s.repo.ListOwners(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing owners: %w", err)
	}

	for _, owner := range owners {
		if err := s.repo.DeleteCollection(ctx, owner); err != nil {
			return 0, fmt.Errorf("deleting collection %s: %w", owner, err)
		}
	}
	return len(owners), nil
}
