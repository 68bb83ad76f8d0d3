package messaging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendasalao/salon-ai-platform/internal/conversation"
)

type stubHandler struct {
	inbound []conversation.Inbound
	reply   string
}

func (s *stubHandler) HandleMessage(_ context.Context, msg conversation.Inbound) conversation.Reply {
	s.inbound = append(s.inbound, msg)
	return conversation.Reply{Text: s.reply}
}

type stubSender struct {
	sent []string
}

func (s *stubSender) Send(_ context.Context, to, text string) error {
	s.sent = append(s.sent, to+": "+text)
	return nil
}

func TestWebhookVerify(t *testing.T) {
	h := NewWebhookHandler(&stubHandler{}, &stubSender{}, "agenda_salao_verify", nil)

	req := httptest.NewRequest(http.MethodGet, "/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=agenda_salao_verify&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	h.Verify(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12345", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	rec = httptest.NewRecorder()
	h.Verify(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWebhookReceive(t *testing.T) {
	handler := &stubHandler{reply: "Olá! Como posso ajudar?"}
	sender := &stubSender{}
	h := NewWebhookHandler(handler, sender, "agenda_salao_verify", nil)

	payload := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{
						"from": "5511999990000",
						"id": "wamid.1",
						"text": {"body": "quero agendar um corte"}
					}]
				}
			}]
		}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, handler.inbound, 1)
	assert.Equal(t, "5511999990000", handler.inbound[0].From)
	assert.Equal(t, "quero agendar um corte", handler.inbound[0].Text)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "5511999990000: Olá! Como posso ajudar?", sender.sent[0])
}

func TestWebhookReceiveIgnoresNonMessageEvents(t *testing.T) {
	handler := &stubHandler{reply: "oi"}
	sender := &stubSender{}
	h := NewWebhookHandler(handler, sender, "agenda_salao_verify", nil)

	// Status-only delivery receipts carry no messages array.
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(`{"entry":[{"changes":[{"value":{}}]}]}`))
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, handler.inbound)
	assert.Empty(t, sender.sent)
}
