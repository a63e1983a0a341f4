package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"reportTracker/internal/logger"
	"reportTracker/internal/middleware"
	"reportTracker/internal/snapshot"
)

func (h *ReportHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: health check")

	if err := h.Service.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: storage unreachable", err)
		responseWithJSON(w, http.StatusServiceUnavailable, toPayload("status", "degraded"))
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
}

// Backup streams the full system snapshot as a downloadable JSON file.
func (h *ReportHandler) Backup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	doc, filename, err := h.Service.ExportSnapshot(r.Context())
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err, zap.String("operation", "backup"))
		responseWithError(w, http.StatusInternalServerError, "failed to build backup")
		return
	}

	data, err := snapshot.Encode(doc)
	if err != nil {
		logger.Error("HTTP: snapshot encoding failed", err)
		responseWithError(w, http.StatusInternalServerError, "failed to encode backup")
		return
	}

	logger.Info("HTTP_OUT: backup exported",
		zap.String("filename", filename),
		zap.Duration("ms", time.Since(start)))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Restore replaces the whole system state with an uploaded snapshot.
// The document is validated in full before anything is touched.
func (h *ReportHandler) Restore(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		responseWithError(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	doc, err := snapshot.Parse(data)
	if err != nil {
		logger.Warn("HTTP: rejected backup upload", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "the file is not a valid system backup")
		return
	}

	count, err := h.Service.ImportSnapshot(r.Context(), doc)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err, zap.String("operation", "restore"))
		responseWithError(w, http.StatusInternalServerError, "failed to restore backup")
		return
	}

	logger.Info("HTTP_OUT: backup restored",
		zap.Int("tasks", count),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("restored", count))
}

type resetRequest struct {
	Confirmation string `json:"confirmation"`
}

// Reset wipes every collection once the confirmation phrase matches.
func (h *ReportHandler) Reset(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request resetRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		responseWithError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	removed, err := h.Service.ResetAll(r.Context(), request.Confirmation)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err, zap.String("operation", "reset"))
		responseWithError(w, http.StatusInternalServerError, "failed to reset system")
		return
	}

	logger.Info("HTTP_OUT: system reset", zap.Int("owners_removed", removed))
	responseWithJSON(w, http.StatusOK, toPayload("ownersRemoved", removed))
}

// Insight asks the generative endpoint for a free-text progress
// summary of the caller's visible tasks.
func (h *ReportHandler) Insight(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	usr := middleware.CurrentUser(r.Context())
	text, err := h.Service.GenerateInsight(r.Context(), usr)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err, zap.String("operation", "insight"))
		responseWithError(w, http.StatusBadGateway, "insight generation failed")
		return
	}

	logger.Info("HTTP_OUT: insight generated", zap.Duration("ms", time.Since(start)))
	responseWithJSON(w, http.StatusOK, toPayload("insight", text))
}
