package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/application/services"
	"outreach-backend/pkg/observability"
)

// EmailHandler handles the flagged-email endpoints.
type EmailHandler struct {
	emails  *services.EmailService
	gmail   ports.GmailGateway
	metrics *observability.Collector
	logger  *zap.Logger
}

func NewEmailHandler(
	emails *services.EmailService,
	gmail ports.GmailGateway,
	metrics *observability.Collector,
	logger *zap.Logger,
) *EmailHandler {
	return &EmailHandler{
		emails:  emails,
		gmail:   gmail,
		metrics: metrics,
		logger:  logger,
	}
}

// Scan handles POST /emails/scan
func (h *EmailHandler) Scan(w http.ResponseWriter, r *http.Request) {
	result, err := h.emails.Scan(r.Context())
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	h.metrics.EmailsFlagged.Add(float64(result.Flagged))
	respondJSON(h.logger, w, http.StatusOK, result)
}

// List handles GET /emails
func (h *EmailHandler) List(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	emails, err := h.emails.List(r.Context(), unreadOnly, limit)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"emails": emails,
		"total":  len(emails),
	})
}

// MarkRead handles POST /emails/{emailID}/read
func (h *EmailHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "emailID")
	if err := h.emails.MarkRead(r.Context(), id); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"read": true})
}

// Dismiss handles DELETE /emails/{emailID}
func (h *EmailHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "emailID")
	if err := h.emails.Dismiss(r.Context(), id); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"dismissed": true})
}

// Watch handles POST /emails/watch
func (h *EmailHandler) Watch(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		respondError(h.logger, w, http.StatusBadRequest, "topic query parameter is required")
		return
	}
	if err := h.gmail.Watch(r.Context(), topic); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"watching": true})
}

// StopWatch handles DELETE /emails/watch
func (h *EmailHandler) StopWatch(w http.ResponseWriter, r *http.Request) {
	if err := h.gmail.StopWatch(r.Context()); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"watching": false})
}
