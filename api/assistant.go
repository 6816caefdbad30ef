package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/citraoverseas/placement/internal/assistant"
)

type AssistantHandler struct {
	gen assistant.Generator
}

func NewAssistantHandler(gen assistant.Generator) *AssistantHandler {
	return &AssistantHandler{gen: gen}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat relays one message to the generative backend and returns its reply.
// The endpoint is stateless; every call stands alone.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(w, "field 'message' is required", http.StatusBadRequest)
		return
	}

	reply, err := h.gen.Reply(r.Context(), req.Message)
	if err != nil {
		logger.Error("assistant reply failed", "err", err)
		writeError(w, "assistant is unavailable, please try again", http.StatusInternalServerError)
		return
	}

	writeJSON(w, chatResponse{Reply: reply}, http.StatusOK)
}
