package handlers

import (
	"net/http"

	"github.com/agendasalao/salon-ai-platform/internal/conversation"
	"github.com/agendasalao/salon-ai-platform/internal/observability/metrics"
	"github.com/agendasalao/salon-ai-platform/internal/reminder"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// StatsHandler exposes operational counters.
type StatsHandler struct {
	reminders *reminder.Scheduler
	sessions  conversation.SessionStore
	metrics   *metrics.ConversationMetrics
	logger    *logging.Logger
}

// NewStatsHandler creates the stats endpoints.
func NewStatsHandler(reminders *reminder.Scheduler, sessions conversation.SessionStore, cm *metrics.ConversationMetrics, logger *logging.Logger) *StatsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsHandler{reminders: reminders, sessions: sessions, metrics: cm, logger: logger}
}

// ReminderStats returns reminder job counts by status.
// GET /stats/reminders
func (h *StatsHandler) ReminderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reminders.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to load reminder stats", "error", err)
		jsonError(w, "failed to load reminder stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ConversationStats returns the number of live sessions.
// GET /stats/conversations
func (h *StatsHandler) ConversationStats(w http.ResponseWriter, r *http.Request) {
	active, err := h.sessions.ActiveCount(r.Context())
	if err != nil {
		h.logger.Error("failed to count sessions", "error", err)
		jsonError(w, "failed to count sessions", http.StatusInternalServerError)
		return
	}
	h.metrics.SetActiveSessions(active)
	writeJSON(w, http.StatusOK, map[string]int{"active_sessions": active})
}
