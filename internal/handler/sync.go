package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	statesync "github.com/BuggyOpenSouce/Buggy-AI/internal/sync"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/logger"
)

// SyncHandler handles the manual sync action and sync status.
type SyncHandler struct {
	controller *statesync.Controller
	logger     *logger.Logger
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(ctrl *statesync.Controller, log *logger.Logger) *SyncHandler {
	return &SyncHandler{controller: ctrl, logger: log}
}

// Status handles GET /api/v1/sync
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.Status())
}

// Trigger handles POST /api/v1/sync — the explicit user-triggered sync. It
// is the one action gated by the connectivity flag, and the one place a sync
// failure is surfaced directly to the user.
func (h *SyncHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	if !h.controller.Online() {
		writeError(w, http.StatusServiceUnavailable, "offline: manual sync unavailable")
		return
	}

	err := h.controller.ManualSync(r.Context())
	if errors.Is(err, statesync.ErrGuestMode) {
		writeError(w, http.StatusConflict, "please sign in or create a guest profile first")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "data synchronization failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "synced"})
}

type connectivityRequest struct {
	Online bool `json:"online"`
}

// SetConnectivity handles PUT /api/v1/sync/connectivity — the UI reports the
// binary online/offline signal here.
func (h *SyncHandler) SetConnectivity(w http.ResponseWriter, r *http.Request) {
	var req connectivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.controller.SetOnline(req.Online)
	w.WriteHeader(http.StatusNoContent)
}
