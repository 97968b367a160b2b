package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/journal"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/localstore"
	statesync "github.com/BuggyOpenSouce/Buggy-AI/internal/sync"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/logger"
)

func newSyncHandler() (*SyncHandler, *statesync.Controller) {
	store := localstore.NewMemStore()
	ctrl := statesync.NewController(store, nil, journal.New(store), 0, logger.NewNop())
	ctrl.InitialLoad(context.Background())
	return NewSyncHandler(ctrl, logger.NewNop()), ctrl
}

func TestSyncTriggerOffline(t *testing.T) {
	h, ctrl := newSyncHandler()
	ctrl.SetOnline(false)

	rec := httptest.NewRecorder()
	h.Trigger(rec, httptest.NewRequest(http.MethodPost, "/sync", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when offline", rec.Code)
	}
}

func TestSyncTriggerGuest(t *testing.T) {
	h, _ := newSyncHandler()

	rec := httptest.NewRecorder()
	h.Trigger(rec, httptest.NewRequest(http.MethodPost, "/sync", nil))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 in guest mode", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sign in") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestSyncStatusEndpoint(t *testing.T) {
	h, ctrl := newSyncHandler()
	ctrl.SetOnline(false)

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/sync", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var status statesync.SyncStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Online {
		t.Error("status reports online after SetOnline(false)")
	}
	if status.Identified {
		t.Error("status reports identified for a guest")
	}
}

func TestSetConnectivity(t *testing.T) {
	h, ctrl := newSyncHandler()

	rec := httptest.NewRecorder()
	h.SetConnectivity(rec, httptest.NewRequest(http.MethodPut, "/sync/connectivity", strings.NewReader(`{"online":false}`)))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if ctrl.Online() {
		t.Error("connectivity signal not recorded")
	}
}
