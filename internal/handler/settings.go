package handler

import (
	"encoding/json"
	"net/http"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/journal"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
	statesync "github.com/BuggyOpenSouce/Buggy-AI/internal/sync"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/logger"
)

// SettingsHandler handles profile, settings, theme and journal endpoints.
type SettingsHandler struct {
	controller *statesync.Controller
	journal    *journal.Aggregator
	logger     *logger.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(ctrl *statesync.Controller, agg *journal.Aggregator, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{controller: ctrl, journal: agg, logger: log}
}

// GetProfile handles GET /api/v1/profile
func (h *SettingsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.controller.Profile()
	if !ok {
		writeError(w, http.StatusNotFound, "no profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/v1/profile — a partial update; a first
// update creates a fresh guest profile with a new identity.
func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile := h.controller.UpdateProfile(r.Context(), update)
	writeJSON(w, http.StatusOK, profile)
}

// GetAISettings handles GET /api/v1/settings/ai
func (h *SettingsHandler) GetAISettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.AISettings())
}

// UpdateAISettings handles PUT /api/v1/settings/ai
func (h *SettingsHandler) UpdateAISettings(w http.ResponseWriter, r *http.Request) {
	settings := h.controller.AISettings()
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.controller.UpdateAISettings(settings)
	writeJSON(w, http.StatusOK, h.controller.AISettings())
}

// GetUISettings handles GET /api/v1/settings/ui
func (h *SettingsHandler) GetUISettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.UISettings())
}

// UpdateUISettings handles PUT /api/v1/settings/ui
func (h *SettingsHandler) UpdateUISettings(w http.ResponseWriter, r *http.Request) {
	settings := h.controller.UISettings()
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.controller.UpdateUISettings(settings)
	writeJSON(w, http.StatusOK, h.controller.UISettings())
}

// GetSidebarSettings handles GET /api/v1/settings/sidebar
func (h *SettingsHandler) GetSidebarSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.SidebarSettings())
}

// UpdateSidebarSettings handles PUT /api/v1/settings/sidebar
func (h *SettingsHandler) UpdateSidebarSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.SidebarSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.controller.UpdateSidebarSettings(settings)
	writeJSON(w, http.StatusOK, settings)
}

type themeRequest struct {
	Theme string `json:"theme"`
}

// GetTheme handles GET /api/v1/settings/theme
func (h *SettingsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeRequest{Theme: h.controller.Theme()})
}

// SetTheme handles PUT /api/v1/settings/theme
func (h *SettingsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Theme == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.controller.SetTheme(req.Theme)
	writeJSON(w, http.StatusOK, req)
}

type splashRequest struct {
	URL string `json:"url"`
}

// SetSplash handles PUT /api/v1/settings/splash
func (h *SettingsHandler) SetSplash(w http.ResponseWriter, r *http.Request) {
	var req splashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.controller.SetSplashGif(req.URL)
	writeJSON(w, http.StatusOK, req)
}

// GetJournal handles GET /api/v1/journal
func (h *SettingsHandler) GetJournal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.journal.Entries())
}
