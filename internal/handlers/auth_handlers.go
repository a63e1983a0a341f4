package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"reportTracker/internal/handlers/dto"
	"reportTracker/internal/logger"
	"reportTracker/internal/models/user"
)

// Login resolves a username against the fixed roster. There is no
// password: accounts belong to one small unit and selecting one is the
// whole ceremony.
func (h *ReportHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		responseWithError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	usr, ok := user.ByUsername(request.Username)
	if !ok {
		logger.Warn("HTTP: unknown username",
			zap.String("username", request.Username),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnauthorized, "unknown username")
		return
	}

	logger.Info("HTTP_OUT: login", zap.String("user_id", usr.ID))
	responseWithJSON(w, http.StatusOK, toPayload("user", usr))
}

// ListUsers returns the roster for the account picker.
func (h *ReportHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")
	responseWithJSON(w, http.StatusOK, toPayload("users", user.All()))
}
