package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reportTracker/internal/csvio"
	"reportTracker/internal/logger"
	"reportTracker/internal/models/task"
	"reportTracker/internal/models/user"
)

// ExportCSV renders the user's visible tasks as a spreadsheet-ready
// CSV file.
func (s *TaskService) ExportCSV(ctx context.Context, usr *user.User) ([]byte, error) {
	tasks, err := s.visibleTasks(ctx, usr)
	if err != nil {
		return nil, err
	}
	return csvio.Export(tasks)
}

// ImportCSV appends the rows of an uploaded CSV file to the importing
// user's own collection. Imported tasks get fresh ids and sequence
// numbers; they never overwrite existing ones.
func (s *TaskService) ImportCSV(ctx context.Context, usr *user.User, data []byte) (int, error) {
	rows, err := csvio.Import(data, s.now())
	if err != nil {
		return 0, NewValidationError("file", err.Error())
	}
	if len(rows) == 0 {
		return 0, nil
	}

	collection, err := s.loadOwnCollection(ctx, usr.ID)
	if err != nil {
		return 0, err
	}

	seq := task.NextSeq(collection)
	for _, row := range rows {
		t := &task.Task{
			ID:          uuid.New().String(),
			Seq:         seq,
			Content:     row.Content,
			DocumentRef: row.DocumentRef,
			Deadline:    row.Deadline,
			Status:      row.Status,
			Notes:       row.Notes,
			OwnerID:     usr.ID,
			OwnerName:   usr.FullName,
		}
		s.applyCompletionRule(t)
		collection = append(collection, t)
		seq++
	}

	if err := s.repo.SaveCollection(ctx, usr.ID, collection); err != nil {
		return 0, fmt.Errorf("saving collection: %w", err)
	}

	logger.Info("Service: CSV imported",
		zap.String("owner_id", usr.ID), zap.Int("rows", len(rows)))
	return len(rows), nil
}
