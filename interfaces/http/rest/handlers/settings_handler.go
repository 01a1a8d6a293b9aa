package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/infrastructure/google"
	"outreach-backend/pkg/errors"
)

// settingOAuthState holds the pending OAuth state token between the
// connect redirect and the callback.
const settingOAuthState = "google_oauth_state"

// SettingsHandler handles the Google account connection endpoints.
type SettingsHandler struct {
	auth     *google.Auth
	settings ports.SettingsRepository
	logger   *zap.Logger
}

func NewSettingsHandler(auth *google.Auth, settings ports.SettingsRepository, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		auth:     auth,
		settings: settings,
		logger:   logger,
	}
}

// GoogleConnect handles GET /settings/google/connect
func (h *SettingsHandler) GoogleConnect(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	if err := h.settings.Set(r.Context(), settingOAuthState, state); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"url": h.auth.AuthURL(state),
	})
}

// GoogleCallback handles GET /settings/google/callback
func (h *SettingsHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		respondError(h.logger, w, http.StatusBadRequest, "Google authorization was denied: "+errMsg)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(h.logger, w, http.StatusBadRequest, "Missing authorization code")
		return
	}

	state := r.URL.Query().Get("state")
	stored, err := h.settings.Get(r.Context(), settingOAuthState)
	if err != nil || stored == "" || stored != state {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	if err := h.settings.Delete(r.Context(), settingOAuthState); err != nil {
		h.logger.Warn("Failed to clear OAuth state", zap.Error(err))
	}

	if err := h.auth.Exchange(r.Context(), code); err != nil {
		respondAppError(h.logger, w, err)
		return
	}

	h.logger.Info("Google account connected")
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"connected": true})
}

// GoogleStatus handles GET /settings/google/status
func (h *SettingsHandler) GoogleStatus(w http.ResponseWriter, r *http.Request) {
	connected, expiry, err := h.auth.Connected(r.Context())
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}

	resp := map[string]interface{}{"connected": connected}
	if connected {
		resp["token_expiry"] = expiry
	}
	respondJSON(h.logger, w, http.StatusOK, resp)
}

// GoogleDisconnect handles DELETE /settings/google
func (h *SettingsHandler) GoogleDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Disconnect(r.Context()); err != nil && !errors.IsNotFound(err) {
		respondAppError(h.logger, w, err)
		return
	}
	h.logger.Info("Google account disconnected")
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"connected": false})
}
