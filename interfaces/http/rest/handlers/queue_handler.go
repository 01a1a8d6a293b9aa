package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"outreach-backend/application/services"
	"outreach-backend/pkg/observability"
)

// QueueHandler handles the daily outreach queue endpoints.
type QueueHandler struct {
	queue   *services.QueueService
	metrics *observability.Collector
	logger  *zap.Logger
}

func NewQueueHandler(queue *services.QueueService, metrics *observability.Collector, logger *zap.Logger) *QueueHandler {
	return &QueueHandler{
		queue:   queue,
		metrics: metrics,
		logger:  logger,
	}
}

// Generate handles POST /queue/generate
func (h *QueueHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Limit int `json:"limit"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	result, err := h.queue.Generate(r.Context(), req.Limit)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	h.metrics.QueueEntriesCreated.Add(float64(result.Generated))
	respondJSON(h.logger, w, http.StatusOK, result)
}

// Day handles GET /queue
func (h *QueueHandler) Day(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	state := r.URL.Query().Get("state")
	if state != "" && state != "pending" && state != "contacted" && state != "skipped" {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid state filter")
		return
	}

	day, err := h.queue.Day(r.Context(), date, state)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, day)
}

// MarkContacted handles POST /queue/{entryID}/contacted
func (h *QueueHandler) MarkContacted(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "entryID")
	entry, err := h.queue.MarkContacted(r.Context(), id)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, entry)
}

// Skip handles POST /queue/{entryID}/skip
func (h *QueueHandler) Skip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "entryID")
	entry, err := h.queue.Skip(r.Context(), id)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, entry)
}
