package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/chat"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/logger"
)

// MessageHandler handles message flow endpoints on the active conversation.
type MessageHandler struct {
	service *chat.Service
	logger  *logger.Logger
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(svc *chat.Service, log *logger.Logger) *MessageHandler {
	return &MessageHandler{service: svc, logger: log}
}

// Send handles POST /api/v1/messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	messages, err := h.service.Send(r.Context(), &req)
	if err != nil {
		h.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &model.SendMessageResponse{Messages: messages})
}

// Regenerate handles POST /api/v1/messages/{index}/regenerate
func (h *MessageHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	index, ok := h.messageIndex(w, r)
	if !ok {
		return
	}

	messages, err := h.service.Regenerate(r.Context(), index)
	if err != nil {
		h.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &model.SendMessageResponse{Messages: messages})
}

// Explain handles POST /api/v1/messages/{index}/explain
func (h *MessageHandler) Explain(w http.ResponseWriter, r *http.Request) {
	index, ok := h.messageIndex(w, r)
	if !ok {
		return
	}

	messages, err := h.service.Explain(r.Context(), index)
	if err != nil {
		h.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &model.SendMessageResponse{Messages: messages})
}

func (h *MessageHandler) messageIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "invalid message index")
		return 0, false
	}
	return index, true
}

func (h *MessageHandler) writeFlowError(w http.ResponseWriter, err error) {
	if errors.Is(err, chat.ErrNoActiveChat) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
