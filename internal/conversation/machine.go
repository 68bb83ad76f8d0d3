package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agendasalao/salon-ai-platform/internal/availability"
	"github.com/agendasalao/salon-ai-platform/internal/catalog"
	"github.com/agendasalao/salon-ai-platform/internal/intent"
	"github.com/agendasalao/salon-ai-platform/internal/ledger"
	"github.com/agendasalao/salon-ai-platform/internal/observability/metrics"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// Inbound is a normalized message event from the transport.
type Inbound struct {
	From       string    `json:"from"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"received_at"`
}

// Reply is what the machine wants sent back to the user.
type Reply struct {
	Text   string        `json:"text"`
	State  State         `json:"state"`
	Intent intent.Intent `json:"intent"`
}

// Machine drives the per-user booking dialogue. Messages for one phone
// number are processed strictly in arrival order; sessions for
// different users proceed in parallel.
type Machine struct {
	classifier intent.Classifier
	catalog    *catalog.Catalog
	engine     *availability.Engine
	bookings   *ledger.Service
	sessions   SessionStore
	logger     *logging.Logger
	metrics    *metrics.ConversationMetrics
	threshold  float64
	now        func() time.Time

	mailboxMu sync.Mutex
	mailboxes map[string]*sync.Mutex
}

// MachineOption customizes a Machine.
type MachineOption func(*Machine)

// WithClarificationThreshold sets the confidence below which the
// machine asks the user to rephrase.
func WithClarificationThreshold(t float64) MachineOption {
	return func(m *Machine) {
		if t > 0 {
			m.threshold = t
		}
	}
}

// WithMetrics attaches dialogue counters.
func WithMetrics(cm *metrics.ConversationMetrics) MachineOption {
	return func(m *Machine) { m.metrics = cm }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) { m.now = now }
}

// NewMachine creates the conversation state machine.
func NewMachine(classifier intent.Classifier, cat *catalog.Catalog, engine *availability.Engine, bookings *ledger.Service, sessions SessionStore, logger *logging.Logger, opts ...MachineOption) *Machine {
	if logger == nil {
		logger = logging.Default()
	}
	m := &Machine{
		classifier: classifier,
		catalog:    cat,
		engine:     engine,
		bookings:   bookings,
		sessions:   sessions,
		logger:     logger,
		threshold:  0.15,
		now:        time.Now,
		mailboxes:  make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) mailbox(phone string) *sync.Mutex {
	m.mailboxMu.Lock()
	defer m.mailboxMu.Unlock()
	if mb, ok := m.mailboxes[phone]; ok {
		return mb
	}
	mb := &sync.Mutex{}
	m.mailboxes[phone] = mb
	return mb
}

// HandleMessage processes one inbound message and returns the reply.
// Internal failures never surface to the user: the reply falls back to
// a generic re-prompt and the error is logged.
func (m *Machine) HandleMessage(ctx context.Context, msg Inbound) Reply {
	mb := m.mailbox(msg.From)
	mb.Lock()
	defer mb.Unlock()

	sess, err := m.sessions.Get(ctx, msg.From)
	if err != nil {
		m.logger.Error("failed to load session", "phone", msg.From, "error", err)
		sess = nil
	}
	if sess == nil || sess.Terminal() {
		sess = NewSession(msg.From, m.now().UTC())
	}

	// A clarification detour lasts one turn; the next message is
	// interpreted against the state it interrupted.
	if sess.State == StateClarification && sess.PriorState != "" {
		sess.State = sess.PriorState
		sess.PriorState = ""
	}

	result := m.classifier.Classify(msg.Text)
	m.metrics.ObserveIntent(string(result.Intent))

	reply := m.process(ctx, sess, msg, result)
	sess.LastIntent = result.Intent
	sess.UpdatedAt = m.now().UTC()

	if sess.Terminal() {
		if err := m.sessions.Delete(ctx, sess.Phone); err != nil {
			m.logger.Error("failed to delete session", "phone", sess.Phone, "error", err)
		}
	} else if err := m.sessions.Save(ctx, sess); err != nil {
		m.logger.Error("failed to save session", "phone", sess.Phone, "error", err)
	}

	m.metrics.ObserveMessage(string(sess.State))
	m.logger.Info("message processed",
		"phone", sess.Phone,
		"intent", result.Intent,
		"confidence", result.Confidence,
		"state", sess.State,
	)
	reply.State = sess.State
	reply.Intent = result.Intent
	return reply
}

func (m *Machine) process(ctx context.Context, sess *Session, msg Inbound, result intent.Result) Reply {
	// Session-wide intents take priority over the current state.
	switch result.Intent {
	case intent.IntentCancelBooking:
		// Inside a confirmation prompt, "cancelar" declines the slot
		// rather than killing the whole conversation.
		if sess.State != StateConfirming {
			return m.handleCancel(ctx, sess)
		}
	case intent.IntentGoodbye:
		sess.State = StateEnded
		return Reply{Text: replyGoodbye}
	case intent.IntentPriceQuery:
		return Reply{Text: replyPriceTable(m.catalog, firstOr(result.Entities.Services, sess.Draft.ServiceID))}
	case intent.IntentReschedule:
		return m.handleReschedule(ctx, sess, result)
	}

	if result.Confidence < m.threshold && !m.actionable(sess, msg, result) {
		return m.clarify(sess)
	}

	switch sess.State {
	case StateGreeting:
		return m.handleGreeting(ctx, sess, result)
	case StateAwaitingService, StateCompleted:
		return m.handleServiceSelection(ctx, sess, result)
	case StateSelectingDate:
		return m.handleDateSelection(ctx, sess, result)
	case StateSelectingTime:
		return m.handleTimeSelection(ctx, sess, result)
	case StateConfirming:
		return m.handleConfirmation(ctx, sess, msg)
	}
	return m.clarify(sess)
}

// actionable reports whether a low-confidence message still carries
// something the current state can use, like a bare date, a time, or a
// yes/no while confirming.
func (m *Machine) actionable(sess *Session, msg Inbound, result intent.Result) bool {
	switch sess.State {
	case StateAwaitingService, StateCompleted:
		return len(result.Entities.Services) > 0
	case StateSelectingDate:
		return len(result.Entities.Dates) > 0
	case StateSelectingTime:
		return len(result.Entities.Times) > 0 || len(result.Entities.Dates) > 0
	case StateConfirming:
		return isAffirmative(msg.Text) || isNegative(msg.Text)
	}
	return false
}

func (m *Machine) clarify(sess *Session) Reply {
	if sess.State != StateClarification {
		sess.PriorState = sess.State
		sess.State = StateClarification
	}
	return Reply{Text: replyFallback}
}

func (m *Machine) handleGreeting(ctx context.Context, sess *Session, result intent.Result) Reply {
	switch result.Intent {
	case intent.IntentGreeting:
		sess.State = StateAwaitingService
		return Reply{Text: replyGreeting}
	case intent.IntentBookService, intent.IntentCheckAvailability:
		sess.State = StateAwaitingService
		return m.handleServiceSelection(ctx, sess, result)
	}
	sess.State = StateAwaitingService
	return Reply{Text: replyGreeting}
}

func (m *Machine) handleServiceSelection(ctx context.Context, sess *Session, result intent.Result) Reply {
	if len(result.Entities.Services) == 0 {
		sess.State = StateAwaitingService
		return Reply{Text: replyServiceMenu(m.catalog)}
	}

	serviceID := result.Entities.Services[0]
	svc, err := m.catalog.ServiceByID(serviceID)
	if err != nil {
		sess.State = StateAwaitingService
		return Reply{Text: replyServiceMenu(m.catalog)}
	}
	sess.Draft = Draft{ServiceID: svc.ID, RescheduleOf: sess.Draft.RescheduleOf}
	sess.State = StateSelectingDate

	// The same turn may already carry a date.
	if len(result.Entities.Dates) > 0 {
		return m.handleDateSelection(ctx, sess, result)
	}
	return Reply{Text: replyServiceChosen(svc)}
}

func (m *Machine) handleDateSelection(ctx context.Context, sess *Session, result intent.Result) Reply {
	date, ok := firstDate(result.Entities.Dates, m.now())
	if !ok {
		return Reply{Text: replyAskDate}
	}

	slots, err := m.engine.Availability(ctx, availability.Query{
		ServiceID: sess.Draft.ServiceID,
		Date:      date,
	})
	if err != nil {
		m.logger.Error("availability query failed", "service_id", sess.Draft.ServiceID, "error", err)
		return Reply{Text: replyFallback}
	}

	sess.Draft.Date = date.Format("2006-01-02")
	sess.Offered = slots
	if len(slots) == 0 {
		sess.State = StateSelectingDate
		return Reply{Text: replySlots(humanDate(date), nil)}
	}
	sess.State = StateSelectingTime

	// The same turn may already carry a time.
	if len(result.Entities.Times) > 0 {
		return m.handleTimeSelection(ctx, sess, result)
	}
	return Reply{Text: replySlots(humanDate(date), slots)}
}

func (m *Machine) handleTimeSelection(ctx context.Context, sess *Session, result intent.Result) Reply {
	// A new date before a chosen time overwrites the draft.
	if len(result.Entities.Times) == 0 && len(result.Entities.Dates) > 0 {
		return m.handleDateSelection(ctx, sess, result)
	}
	if len(result.Entities.Times) == 0 {
		return Reply{Text: replyTimeNotOffered(sess.Draft.Date, sess.Offered)}
	}

	slot, ok := matchSlot(result.Entities.Times[0], sess.Offered)
	if !ok {
		return Reply{Text: replyTimeNotOffered(sess.Draft.Date, sess.Offered)}
	}

	sess.Draft.StaffID = slot.StaffID
	sess.Draft.StartAt = slot.StartAt
	sess.State = StateConfirming

	svc, err := m.catalog.ServiceByID(sess.Draft.ServiceID)
	if err != nil {
		m.logger.Error("draft references unknown service", "service_id", sess.Draft.ServiceID, "error", err)
		return Reply{Text: replyFallback}
	}
	return Reply{Text: replyConfirmSlot(svc, slot)}
}

func (m *Machine) handleConfirmation(ctx context.Context, sess *Session, msg Inbound) Reply {
	if isNegative(msg.Text) {
		sess.State = StateSelectingTime
		return Reply{Text: replyConfirmDeclined}
	}
	if !isAffirmative(msg.Text) {
		svc, err := m.catalog.ServiceByID(sess.Draft.ServiceID)
		if err != nil {
			return Reply{Text: replyFallback}
		}
		return Reply{Text: replyConfirmSlot(svc, offeredSlot(sess))}
	}

	var booking *ledger.Booking
	var err error
	if sess.Draft.RescheduleOf != uuid.Nil {
		booking, err = m.bookings.Reschedule(ctx, sess.Draft.RescheduleOf, sess.Draft.StaffID, sess.Draft.StartAt)
	} else {
		booking, err = m.bookings.Reserve(ctx, ledger.ReserveRequest{
			ClientName:  sess.ClientName,
			ClientPhone: sess.Phone,
			ServiceID:   sess.Draft.ServiceID,
			StaffID:     sess.Draft.StaffID,
			StartAt:     sess.Draft.StartAt,
		})
	}
	if ledger.IsConflict(err) {
		return m.handleConflict(ctx, sess)
	}
	if err != nil {
		m.logger.Error("reservation failed", "phone", sess.Phone, "error", err)
		return Reply{Text: replyFallback}
	}

	sess.BookingID = booking.ID
	sess.Draft.RescheduleOf = uuid.Nil
	sess.Offered = nil
	sess.State = StateCompleted

	staffName := booking.StaffID
	if staff, serr := m.catalog.StaffByID(booking.StaffID); serr == nil {
		staffName = staff.Name
	}
	return Reply{Text: replyBooked(booking, staffName)}
}

// handleConflict refreshes availability after the chosen slot was taken
// between the offer and the confirmation.
func (m *Machine) handleConflict(ctx context.Context, sess *Session) Reply {
	date, _ := time.ParseInLocation("2006-01-02", sess.Draft.Date, m.now().Location())
	slots, err := m.engine.Availability(ctx, availability.Query{
		ServiceID: sess.Draft.ServiceID,
		Date:      date,
	})
	if err != nil {
		m.logger.Error("availability refresh failed", "service_id", sess.Draft.ServiceID, "error", err)
		return Reply{Text: replyFallback}
	}
	sess.Offered = slots
	sess.State = StateSelectingTime
	return Reply{Text: replySlotTaken + "\n\n" + replySlots(humanDate(date), slots)}
}

func (m *Machine) handleCancel(ctx context.Context, sess *Session) Reply {
	if sess.BookingID == uuid.Nil {
		sess.State = StateCancelled
		return Reply{Text: replyNothingToCancel}
	}
	if _, err := m.bookings.Cancel(ctx, sess.BookingID, "client request"); err != nil {
		m.logger.Error("cancellation failed", "booking_id", sess.BookingID, "error", err)
		return Reply{Text: replyFallback}
	}
	sess.State = StateCancelled
	return Reply{Text: replyCancelled}
}

func (m *Machine) handleReschedule(ctx context.Context, sess *Session, result intent.Result) Reply {
	if sess.BookingID == uuid.Nil {
		return m.handleServiceSelection(ctx, sess, result)
	}
	booking, err := m.bookings.Get(ctx, sess.BookingID)
	if err != nil {
		m.logger.Error("failed to load booking for reschedule", "booking_id", sess.BookingID, "error", err)
		return Reply{Text: replyFallback}
	}
	sess.Draft = Draft{ServiceID: booking.ServiceID, RescheduleOf: booking.ID}
	sess.State = StateSelectingDate
	if len(result.Entities.Dates) > 0 {
		return m.handleDateSelection(ctx, sess, result)
	}
	return Reply{Text: replyAskDate}
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}

func firstDate(entities []string, now time.Time) (time.Time, bool) {
	for _, e := range entities {
		if d, ok := parseDate(e, now); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

func offeredSlot(sess *Session) availability.Slot {
	for _, s := range sess.Offered {
		if s.StartAt.Equal(sess.Draft.StartAt) && s.StaffID == sess.Draft.StaffID {
			return s
		}
	}
	return availability.Slot{StaffID: sess.Draft.StaffID, StartAt: sess.Draft.StartAt}
}

func humanDate(d time.Time) string {
	return d.Format("02/01/2006")
}
