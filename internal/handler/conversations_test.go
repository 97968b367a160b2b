package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/journal"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/localstore"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
	statesync "github.com/BuggyOpenSouce/Buggy-AI/internal/sync"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/logger"
)

func newTestRouter() (*chi.Mux, *statesync.Controller) {
	store := localstore.NewMemStore()
	ctrl := statesync.NewController(store, nil, journal.New(store), 0, logger.NewNop())
	ctrl.InitialLoad(context.Background())

	h := NewConversationHandler(ctrl, logger.NewNop())
	r := chi.NewRouter()
	r.Route("/conversations", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/save", h.Save)
		r.Post("/close", h.Close)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/open", h.Open)
			r.Put("/", h.Rename)
			r.Delete("/", h.Delete)
		})
	})
	return r, ctrl
}

func TestCreateAndListConversations(t *testing.T) {
	r, _ := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/conversations", strings.NewReader(`{}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created model.Chat
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Title != "New Chat" {
		t.Errorf("title = %q, want default", created.Title)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/conversations", nil))
	var list model.ListChatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Chats) != 1 || list.Chats[0].ID != created.ID {
		t.Errorf("list = %+v", list)
	}
	if list.ActiveID != created.ID {
		t.Errorf("active = %q, want %q", list.ActiveID, created.ID)
	}
}

func TestRenameConversation(t *testing.T) {
	r, ctrl := newTestRouter()
	chat := ctrl.CreateChat("Old")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/conversations/"+chat.ID, strings.NewReader(`{"title":"New"}`)))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("rename status = %d, body %s", rec.Code, rec.Body.String())
	}

	roster, _ := ctrl.Roster()
	if roster[0].Title != "New" {
		t.Errorf("title = %q", roster[0].Title)
	}
}

func TestRenameRejectsBadID(t *testing.T) {
	r, _ := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/conversations/not-a-uuid", strings.NewReader(`{"title":"x"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed id", rec.Code)
	}
}

func TestRenameUnknownConversation(t *testing.T) {
	r, _ := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut,
		"/conversations/0190a8b0-0000-7000-8000-000000000000", strings.NewReader(`{"title":"x"}`)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteConversation(t *testing.T) {
	r, ctrl := newTestRouter()
	chat := ctrl.CreateChat("Doomed")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/conversations/"+chat.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if roster, _ := ctrl.Roster(); len(roster) != 0 {
		t.Errorf("roster = %v, want empty", roster)
	}
}

func TestSaveFeatureConversation(t *testing.T) {
	r, ctrl := newTestRouter()

	body := `{"title":"Question chat","messages":[{"role":"user","content":"q"},{"role":"assistant","content":"a"}]}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/conversations/save", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}

	active, ok := ctrl.ActiveChat()
	if !ok || len(active.Messages) != 2 {
		t.Errorf("active = %+v, %v", active, ok)
	}
}

func TestCloseConversation(t *testing.T) {
	r, ctrl := newTestRouter()
	ctrl.CreateChat("Open")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/conversations/close", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("close status = %d", rec.Code)
	}
	if _, ok := ctrl.ActiveChat(); ok {
		t.Error("active body still resident after close")
	}
}
