package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"outreach-backend/application/services"
)

// DashboardHandler serves aggregate stats and the stored daily briefing.
type DashboardHandler struct {
	dashboard *services.DashboardService
	briefing  *services.BriefingService
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard *services.DashboardService, briefing *services.BriefingService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		briefing:  briefing,
		logger:    logger,
	}
}

// Stats handles GET /dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, stats)
}

// FollowerTiers handles GET /dashboard/follower-tiers
func (h *DashboardHandler) FollowerTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.dashboard.FollowerTiers(r.Context())
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"tiers": tiers})
}

// Briefing handles GET /dashboard/briefing
func (h *DashboardHandler) Briefing(w http.ResponseWriter, r *http.Request) {
	briefing, err := h.briefing.Last(r.Context())
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	if briefing == nil {
		respondError(h.logger, w, http.StatusNotFound, "No briefing has been generated yet")
		return
	}
	respondJSON(h.logger, w, http.StatusOK, briefing)
}
