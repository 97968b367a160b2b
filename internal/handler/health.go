package handler

import (
	"net/http"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/remotestore"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	remoteClient *remotestore.Client
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(client *remotestore.Client) *HealthHandler {
	return &HealthHandler{remoteClient: client}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready — readiness includes the remote store link. The
// app stays usable offline, but clients can use this to reflect sync state.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.remoteClient == nil || !h.remoteClient.IsConnected() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "remote store not connected",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
