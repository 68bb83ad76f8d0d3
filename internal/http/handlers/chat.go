package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/agendasalao/salon-ai-platform/internal/conversation"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// ChatHandler drives the conversation machine directly, without
// WhatsApp in the loop. Useful for local testing and demos.
type ChatHandler struct {
	machine *conversation.Machine
	logger  *logging.Logger
}

// NewChatHandler creates the chat simulation endpoint.
func NewChatHandler(machine *conversation.Machine, logger *logging.Logger) *ChatHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatHandler{machine: machine, logger: logger}
}

// SimulateRequest is the POST /chat/simulate body.
type SimulateRequest struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// Simulate feeds one message through the conversation machine and
// returns the reply that would have gone out over WhatsApp.
// POST /chat/simulate
func (h *ChatHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.From == "" || req.Text == "" {
		jsonError(w, "from and text are required", http.StatusBadRequest)
		return
	}

	reply := h.machine.HandleMessage(r.Context(), conversation.Inbound{
		From:       req.From,
		Text:       req.Text,
		ReceivedAt: time.Now().UTC(),
	})
	writeJSON(w, http.StatusOK, reply)
}
