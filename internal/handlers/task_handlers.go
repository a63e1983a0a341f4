package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"reportTracker/internal/handlers/dto"
	"reportTracker/internal/logger"
	"reportTracker/internal/middleware"
	"reportTracker/internal/models/task"
	"reportTracker/internal/service"
)

// maxImportSize caps uploaded CSV and backup files at 10 MiB.
const maxImportSize = 10 << 20

type ReportHandler struct {
	Service ReportService

	// now is swappable so tests can pin "today" for display statuses.
	now func() task.Date
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		Service: svc,
		now:     task.Today,
	}
}

func (h *ReportHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	usr := middleware.CurrentUser(r.Context())
	tasks, err := h.Service.ListTasks(r.Context(), usr)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err, zap.String("operation", "list_tasks"))
		responseWithError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	logger.Info("HTTP_OUT: tasks listed",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("tasks", dto.FromTaskList(tasks, h.now())))
}

func (h *ReportHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")
	if id == "" {
		responseWithError(w, http.StatusBadRequest, "task id is required")
		return
	}

	usr := middleware.CurrentUser(r.Context())
	t, err := h.Service.GetTask(r.Context(), usr, id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err, zap.String("operation", "get_task"))
		responseWithError(w, http.StatusInternalServerError, "failed to load task")
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(t, h.now())))
}

func (h *ReportHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: wrong content type",
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: malformed JSON body",
			zap.Error(err), zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	usr := middleware.CurrentUser(r.Context())
	created, err := h.Service.CreateTask(r.Context(), usr, service.CreateInput{
		Content:       request.Content,
		DocumentRef:   request.DocumentRef,
		Deadline:      request.Deadline,
		Status:        request.Status,
		Notes:         request.Notes,
		CompletedDate: request.CompletedDate,
	})
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err,
			zap.String("operation", "create_task"),
			zap.Duration("ms", time.Since(start)))
		responseWithError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	logger.Info("HTTP_OUT: task created",
		zap.String("task_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("task", dto.FromTask(created, h.now())))
}

func (h *ReportHandler) PutTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")
	if id == "" {
		responseWithError(w, http.StatusBadRequest, "task id is required")
		return
	}

	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: malformed JSON body",
			zap.Error(err), zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	updated, err := h.Service.UpdateTask(r.Context(), id, request.Options()...)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err,
			zap.String("operation", "update_task"),
			zap.Duration("ms", time.Since(start)))
		responseWithError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	logger.Info("HTTP_OUT: task updated",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(updated, h.now())))
}

func (h *ReportHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")
	if id == "" {
		responseWithError(w, http.StatusBadRequest, "task id is required")
		return
	}

	if err := h.Service.DeleteTask(r.Context(), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err, zap.String("operation", "delete_task"))
		responseWithError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	logger.Info("HTTP_OUT: task deleted", zap.String("task_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	usr := middleware.CurrentUser(r.Context())
	data, err := h.Service.ExportCSV(r.Context(), usr)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err, zap.String("operation", "export_csv"))
		responseWithError(w, http.StatusInternalServerError, "failed to export tasks")
		return
	}

	filename := fmt.Sprintf("bao_cao_cong_viec_%s.csv", h.now().String())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *ReportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		responseWithError(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	usr := middleware.CurrentUser(r.Context())
	count, err := h.Service.ImportCSV(r.Context(), usr, data)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err, zap.String("operation", "import_csv"))
		responseWithError(w, http.StatusInternalServerError, "failed to import tasks")
		return
	}

	logger.Info("HTTP_OUT: CSV imported",
		zap.Int("rows", count),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("imported", count))
}
