package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"reportTracker/internal/logger"
	"reportTracker/internal/service"
)

func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: business error",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	responseWithJSON(w, statusCode,
		toPayload("error", businessErr.Code),
		toPayload("message", businessErr.Message),
		toPayload("details", businessErr.Details),
	)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound, service.CodeEmptySystem:
		return http.StatusNotFound
	case service.CodeValidation, service.CodeInvalidBackup:
		return http.StatusBadRequest
	case service.CodeForbidden:
		return http.StatusForbidden
	case service.CodeInsightInProgress:
		return http.StatusConflict
	case service.CodeInsightDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
