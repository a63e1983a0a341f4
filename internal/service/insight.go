package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"reportTracker/internal/ai"
	"reportTracker/internal/logger"
	"reportTracker/internal/models/user"
)

// GenerateInsight sends the user's visible tasks to the insight
// endpoint and returns its free-text answer. Only one generation runs
// at a time; a second caller gets an immediate busy error instead of
// queueing behind a slow upstream.
func (s *TaskService) GenerateInsight(ctx context.Context, usr *user.User) (string, error) {
	if s.insight == nil {
		return "", NewBusinessError(CodeInsightDisabled, "insight generation is not configured")
	}
	if !s.insightMtx.TryLock() {
		return "", NewBusinessError(CodeInsightInProgress, "an insight is already being generated, try again shortly")
	}
	defer s.insightMtx.Unlock()

	tasks, err := s.visibleTasks(ctx, usr)
	if err != nil {
		return "", err
	}

	text, err := s.insight.GenerateInsight(ctx, ai.Summarize(tasks, s.now()))
	if errors.Is(err, ai.ErrDisabled) {
		return "", NewBusinessError(CodeInsightDisabled, "insight generation is not configured")
	}
	if err != nil {
		logger.Error("Service: insight generation failed", err)
		return "", err
	}

	logger.Info("Service: insight generated",
		zap.String("user_id", usr.ID), zap.Int("tasks", len(tasks)))
	return text, nil
}
