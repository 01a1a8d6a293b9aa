package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"outreach-backend/application/services"
	"outreach-backend/pkg/observability"
)

// CalendarHandler handles the calendar sync and listing endpoints.
type CalendarHandler struct {
	calendar *services.CalendarService
	metrics  *observability.Collector
	logger   *zap.Logger
}

func NewCalendarHandler(calendar *services.CalendarService, metrics *observability.Collector, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendar: calendar,
		metrics:  metrics,
		logger:   logger,
	}
}

// Sync handles POST /calendar/sync
func (h *CalendarHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.calendar.Sync(r.Context())
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	h.metrics.EventsSynced.Add(float64(result.Synced))
	respondJSON(h.logger, w, http.StatusOK, result)
}

// Upcoming handles GET /calendar/upcoming
func (h *CalendarHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 || days > 90 {
		days = 7
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	events, err := h.calendar.Upcoming(r.Context(), days, limit)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  len(events),
	})
}
