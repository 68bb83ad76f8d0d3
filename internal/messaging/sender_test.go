package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSender(t *testing.T, handler http.HandlerFunc) *WhatsAppSender {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	s := NewWhatsAppSender("test-token", "12345", nil)
	s.baseURL = srv.URL
	return s
}

func TestWhatsAppSenderSend(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	sender := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, sender.Send(context.Background(), "+5511999990000", "olá"))
	assert.Equal(t, "/12345/messages", gotPath)
	assert.Equal(t, "whatsapp", gotBody["messaging_product"])
	assert.Equal(t, "+5511999990000", gotBody["to"])
	assert.Equal(t, map[string]any{"body": "olá"}, gotBody["text"])
}

func TestWhatsAppSenderRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	sender := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, sender.Send(context.Background(), "+5511999990000", "olá"))
	assert.Equal(t, int32(3), calls.Load())
}

func TestWhatsAppSenderNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	sender := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := sender.Send(context.Background(), "+5511999990000", "olá")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx other than 429 is terminal")
}

func TestWhatsAppSenderValidation(t *testing.T) {
	sender := NewWhatsAppSender("", "12345", nil)
	assert.Error(t, sender.Send(context.Background(), "+5511999990000", "olá"))

	sender = NewWhatsAppSender("token", "12345", nil)
	assert.Error(t, sender.Send(context.Background(), "", "olá"))
	assert.Error(t, sender.Send(context.Background(), "+5511999990000", "  "))
}
