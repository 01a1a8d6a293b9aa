// Package handlers contains the HTTP handlers for the REST API.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"outreach-backend/pkg/errors"
)

func respondJSON(logger *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func respondError(logger *zap.Logger, w http.ResponseWriter, status int, message string) {
	respondJSON(logger, w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

// respondAppError maps application errors onto HTTP statuses, hiding
// internal detail for anything unexpected.
func respondAppError(logger *zap.Logger, w http.ResponseWriter, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		message := appErr.Message
		if status >= 500 {
			logger.Error("Request failed", zap.Error(err))
			message = "Internal server error"
		}
		respondError(logger, w, status, message)
		return
	}
	logger.Error("Request failed", zap.Error(err))
	respondError(logger, w, http.StatusInternalServerError, "Internal server error")
}
