package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/domain/prospect"
	"outreach-backend/pkg/utils"
)

// BlocklistHandler manages the do-not-contact list.
type BlocklistHandler struct {
	blocklist ports.BlocklistRepository
	logger    *zap.Logger
}

func NewBlocklistHandler(blocklist ports.BlocklistRepository, logger *zap.Logger) *BlocklistHandler {
	return &BlocklistHandler{
		blocklist: blocklist,
		logger:    logger,
	}
}

// CreateBlocklistRequest is the payload for adding a blocklist entry.
type CreateBlocklistRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Email          string `json:"email" validate:"omitempty,email"`
	TwitterHandle  string `json:"twitter_handle" validate:"omitempty,max=100"`
	YouTubeChannel string `json:"youtube_channel" validate:"omitempty,max=200"`
	Reason         string `json:"reason" validate:"omitempty,max=500"`
}

// List handles GET /blocklist
func (h *BlocklistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.blocklist.List(r.Context())
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}

// Create handles POST /blocklist
func (h *BlocklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBlocklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.blocklist.Create(r.Context(), prospect.BlocklistEntry{
		Name:           req.Name,
		Email:          req.Email,
		TwitterHandle:  req.TwitterHandle,
		YouTubeChannel: req.YouTubeChannel,
		Reason:         req.Reason,
	})
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusCreated, entry)
}

// Delete handles DELETE /blocklist/{entryID}
func (h *BlocklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "entryID")
	if err := h.blocklist.Delete(r.Context(), id); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"deleted": true})
}
