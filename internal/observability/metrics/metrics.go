package metrics

import "github.com/prometheus/client_golang/prometheus"

// ReminderMetrics exposes counters for the reminder pipeline.
type ReminderMetrics struct {
	scheduledTotal prometheus.Counter
	firedTotal     *prometheus.CounterVec
	cancelledTotal prometheus.Counter
	dispatchRetry  prometheus.Counter
}

func NewReminderMetrics(reg prometheus.Registerer) *ReminderMetrics {
	m := &ReminderMetrics{
		scheduledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "reminders",
			Name:      "scheduled_total",
			Help:      "Total reminder jobs scheduled",
		}),
		firedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "reminders",
			Name:      "fired_total",
			Help:      "Total reminder fire attempts by outcome",
		}, []string{"kind", "status"}),
		cancelledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "reminders",
			Name:      "cancelled_total",
			Help:      "Total reminder jobs cancelled",
		}),
		dispatchRetry: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "reminders",
			Name:      "dispatch_retries_total",
			Help:      "Total dispatch retries after a failed send",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.scheduledTotal, m.firedTotal, m.cancelledTotal, m.dispatchRetry)
	return m
}

func (m *ReminderMetrics) ObserveScheduled(n int) {
	if m == nil {
		return
	}
	m.scheduledTotal.Add(float64(n))
}

func (m *ReminderMetrics) ObserveFired(kind, status string) {
	if m == nil {
		return
	}
	m.firedTotal.WithLabelValues(kind, status).Inc()
}

func (m *ReminderMetrics) ObserveCancelled(n int) {
	if m == nil {
		return
	}
	m.cancelledTotal.Add(float64(n))
}

func (m *ReminderMetrics) ObserveRetry() {
	if m == nil {
		return
	}
	m.dispatchRetry.Inc()
}

// ConversationMetrics exposes counters for the dialogue layer.
type ConversationMetrics struct {
	messagesTotal  *prometheus.CounterVec
	intentTotal    *prometheus.CounterVec
	sessionsActive prometheus.Gauge
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "conversations",
			Name:      "messages_total",
			Help:      "Total inbound messages by resulting state",
		}, []string{"state"}),
		intentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "conversations",
			Name:      "intents_total",
			Help:      "Total classified intents",
		}, []string{"intent"}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "salon",
			Subsystem: "conversations",
			Name:      "sessions_active",
			Help:      "Sessions currently tracked",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.intentTotal, m.sessionsActive)
	return m
}

func (m *ConversationMetrics) ObserveMessage(state string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(state).Inc()
}

func (m *ConversationMetrics) ObserveIntent(intent string) {
	if m == nil {
		return
	}
	m.intentTotal.WithLabelValues(intent).Inc()
}

func (m *ConversationMetrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.sessionsActive.Set(float64(n))
}
