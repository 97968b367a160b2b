// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
	statesync "github.com/BuggyOpenSouce/Buggy-AI/internal/sync"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/logger"
)

// ConversationHandler handles conversation endpoints.
type ConversationHandler struct {
	controller *statesync.Controller
	logger     *logger.Logger
}

// NewConversationHandler creates a new conversation handler.
func NewConversationHandler(ctrl *statesync.Controller, log *logger.Logger) *ConversationHandler {
	return &ConversationHandler{controller: ctrl, logger: log}
}

func validConversationID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// List handles GET /api/v1/conversations
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	roster, activeID := h.controller.Roster()
	writeJSON(w, http.StatusOK, &model.ListChatsResponse{Chats: roster, ActiveID: activeID})
}

// Create handles POST /api/v1/conversations
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	chat := h.controller.CreateChat(req.Title)
	writeJSON(w, http.StatusCreated, chat)
}

// Save handles POST /api/v1/conversations/save — stores a feature-generated
// conversation (question or image chat) as a roster entry.
func (h *ConversationHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req model.SaveChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	chat := h.controller.SaveFeatureChat(req.Title, req.Messages)
	writeJSON(w, http.StatusCreated, chat)
}

// Open handles POST /api/v1/conversations/{id}/open — selects a conversation
// and lazily loads its body.
func (h *ConversationHandler) Open(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validConversationID(id) {
		writeError(w, http.StatusBadRequest, "invalid conversation ID format")
		return
	}

	chat, ok := h.controller.OpenChat(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

// Close handles POST /api/v1/conversations/close — discards the active body
// from memory when the user navigates away.
func (h *ConversationHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.controller.CloseActiveChat()
	w.WriteHeader(http.StatusNoContent)
}

// Rename handles PUT /api/v1/conversations/{id}
func (h *ConversationHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validConversationID(id) {
		writeError(w, http.StatusBadRequest, "invalid conversation ID format")
		return
	}

	var req model.RenameChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.controller.RenameChat(id, req.Title) {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/conversations/{id}
func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validConversationID(id) {
		writeError(w, http.StatusBadRequest, "invalid conversation ID format")
		return
	}

	h.controller.DeleteChat(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
