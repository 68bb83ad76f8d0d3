package messaging

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/agendasalao/salon-ai-platform/internal/conversation"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// MessageHandler processes a normalized inbound message and returns the
// reply to send back.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg conversation.Inbound) conversation.Reply
}

// webhookPayload mirrors the WhatsApp Cloud API webhook envelope,
// reduced to the fields the bot consumes.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					ID   string `json:"id"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// WebhookHandler terminates the WhatsApp webhook: GET verifies the
// subscription, POST receives message events.
type WebhookHandler struct {
	handler     MessageHandler
	sender      Sender
	verifyToken string
	logger      *logging.Logger
	now         func() time.Time
}

// NewWebhookHandler creates the WhatsApp webhook endpoint.
func NewWebhookHandler(handler MessageHandler, sender Sender, verifyToken string, logger *logging.Logger) *WebhookHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &WebhookHandler{
		handler:     handler,
		sender:      sender,
		verifyToken: verifyToken,
		logger:      logger,
		now:         time.Now,
	}
}

// Verify answers the Cloud API subscription handshake.
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode != "subscribe" || token != h.verifyToken {
		h.logger.Warn("webhook verification rejected", "mode", mode)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.logger.Info("webhook verified")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(challenge))
}

// Receive processes inbound message events. It always acknowledges with
// 200 so the provider does not redeliver; processing problems are
// logged, and every message still gets a reply.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.Warn("undecodable webhook payload", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx := r.Context()
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.From == "" || msg.Text.Body == "" {
					continue
				}
				reply := h.handler.HandleMessage(ctx, conversation.Inbound{
					From:       msg.From,
					Text:       msg.Text.Body,
					ReceivedAt: h.now().UTC(),
				})
				if err := h.sender.Send(ctx, msg.From, reply.Text); err != nil {
					h.logger.Error("failed to send reply", "to", msg.From, "error", err)
				}
			}
		}
	}
	w.WriteHeader(http.StatusOK)
}
