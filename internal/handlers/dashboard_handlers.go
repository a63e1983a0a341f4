package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"reportTracker/internal/handlers/dto"
	"reportTracker/internal/logger"
	"reportTracker/internal/middleware"
	"reportTracker/internal/stats"
)

// Overview serves the dashboard numbers for ?year= and an optional
// ?month=; omitting month aggregates the whole year.
func (h *ReportHandler) Overview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		logger.Warn("HTTP: bad query parameter",
			zap.String("param", "year"), zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "year must be a number")
		return
	}

	// The month filter accepts "all" (the UI's whole-year value) or 1-12.
	month := stats.AllMonths
	if raw := r.URL.Query().Get("month"); raw != "" && raw != "all" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			responseWithError(w, http.StatusBadRequest, `month must be "all" or a number between 1 and 12`)
			return
		}
		month = stats.Month(m)
	}

	usr := middleware.CurrentUser(r.Context())
	overview, err := h.Service.Overview(r.Context(), usr, year, month)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err, zap.String("operation", "overview"))
		responseWithError(w, http.StatusInternalServerError, "failed to build overview")
		return
	}

	logger.Info("HTTP_OUT: overview built",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("overview", overview))
}

func (h *ReportHandler) MonthlySeries(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		responseWithError(w, http.StatusBadRequest, "year must be a number")
		return
	}

	usr := middleware.CurrentUser(r.Context())
	series, err := h.Service.MonthlySeries(r.Context(), usr, year)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err, zap.String("operation", "monthly_series"))
		responseWithError(w, http.StatusInternalServerError, "failed to build monthly series")
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("months", series))
}

// CalendarDay lists the tasks due on /calendar/{year}/{month}/{day}.
func (h *ReportHandler) CalendarDay(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		responseWithError(w, http.StatusBadRequest, "year must be a number")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		responseWithError(w, http.StatusBadRequest, "month must be a number")
		return
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		responseWithError(w, http.StatusBadRequest, "day must be a number")
		return
	}

	usr := middleware.CurrentUser(r.Context())
	tasks, err := h.Service.TasksOnDay(r.Context(), usr, year, time.Month(month), day)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err, zap.String("operation", "calendar_day"))
		responseWithError(w, http.StatusInternalServerError, "failed to load calendar day")
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("tasks", dto.FromTaskList(tasks, h.now())))
}
