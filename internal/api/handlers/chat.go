package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"chainboard/internal/services/chatbot"
	"chainboard/pkg/errors"
)

const maxChatMessageLen = 2000

// ChatService is the slice of the chatbot service the handler needs
type ChatService interface {
	Ask(ctx context.Context, message string) (chatbot.Reply, error)
}

// ChatHandler serves the dashboard assistant endpoint
type ChatHandler struct {
	svc ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type chatRequest struct {
	Message string `json:"message"`
}

// HandleAsk serves POST /api/v1/chat
func (h *ChatHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(errors.ErrInvalidInput, "invalid request body"))
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		respondError(w, errors.Wrap(errors.ErrInvalidInput, "message is required"))
		return
	}
	if len(req.Message) > maxChatMessageLen {
		respondError(w, errors.Wrapf(errors.ErrInvalidInput, "message exceeds %d characters", maxChatMessageLen))
		return
	}

	reply, err := h.svc.Ask(r.Context(), req.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}
