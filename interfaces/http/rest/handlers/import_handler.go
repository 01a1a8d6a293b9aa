package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/application/services"
	"outreach-backend/domain/contact"
	"outreach-backend/pkg/observability"
)

// ImportHandler handles the Google Sheets import endpoints.
type ImportHandler struct {
	importer *services.ImportService
	sheets   ports.SheetsGateway
	metrics  *observability.Collector
	logger   *zap.Logger
}

func NewImportHandler(
	importer *services.ImportService,
	sheets ports.SheetsGateway,
	metrics *observability.Collector,
	logger *zap.Logger,
) *ImportHandler {
	return &ImportHandler{
		importer: importer,
		sheets:   sheets,
		metrics:  metrics,
		logger:   logger,
	}
}

// Sync handles POST /import/sheets
func (h *ImportHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var cfg services.SheetsConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.importer.Sync(r.Context(), cfg)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}

	h.metrics.ContactsImported.Add(float64(result.Imported))
	h.metrics.DuplicatesFlagged.Add(float64(result.DuplicatesFound))
	respondJSON(h.logger, w, http.StatusOK, result)
}

// resolveRequest is the body for POST /import/resolve.
type resolveRequest struct {
	Action     services.ResolveAction `json:"action"`
	NewContact contact.Contact        `json:"newContact"`
	ExistingID string                 `json:"existingId,omitempty"`
}

// Resolve handles POST /import/resolve
func (h *ImportHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resolved, err := h.importer.Resolve(r.Context(), req.Action, req.NewContact, req.ExistingID)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	if req.Action == services.ResolveMerge {
		h.metrics.ContactsMerged.Inc()
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"action":  req.Action,
		"contact": resolved,
	})
}

// Export handles POST /import/export
func (h *ImportHandler) Export(w http.ResponseWriter, r *http.Request) {
	result, err := h.importer.Export(r.Context())
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, result)
}

// Config handles GET /import/config
func (h *ImportHandler) Config(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.importer.Config(r.Context())
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"configured": cfg != nil,
		"config":     cfg,
	})
}

// Metadata handles GET /import/sheets/{spreadsheetID}
func (h *ImportHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "spreadsheetID")
	meta, err := h.sheets.Metadata(r.Context(), id)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, meta)
}
