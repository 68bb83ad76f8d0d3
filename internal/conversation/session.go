package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/agendasalao/salon-ai-platform/internal/availability"
	"github.com/agendasalao/salon-ai-platform/internal/intent"
)

// State enumerates where a session sits in the booking dialogue.
type State string

const (
	StateGreeting        State = "greeting"
	StateAwaitingService State = "awaiting_service"
	StateSelectingDate   State = "selecting_date"
	StateSelectingTime   State = "selecting_time"
	StateConfirming      State = "confirming_booking"
	StateCompleted       State = "completed"
	StateClarification   State = "clarification_needed"
	StateCancelled       State = "cancelled"
	StateEnded           State = "ended"
)

// Draft accumulates booking fields across turns. Unconfirmed fields may
// be overwritten by later turns, e.g. picking a different date before a
// time is chosen.
type Draft struct {
	ServiceID string    `json:"service_id,omitempty"`
	Date      string    `json:"date,omitempty"` // 2006-01-02
	StaffID   string    `json:"staff_id,omitempty"`
	StartAt   time.Time `json:"start_at,omitempty"`
	// RescheduleOf points at the booking being moved, when set the
	// confirmed reservation replaces it.
	RescheduleOf uuid.UUID `json:"reschedule_of,omitempty"`
}

// Session is the per-user dialogue state. It references bookings by id
// only; booking fields live in the ledger.
type Session struct {
	Phone      string `json:"phone"`
	ClientName string `json:"client_name,omitempty"`
	State      State  `json:"state"`
	// PriorState is where a clarification detour returns to.
	PriorState State         `json:"prior_state,omitempty"`
	LastIntent intent.Intent `json:"last_intent,omitempty"`
	Draft      Draft         `json:"draft"`
	// Offered holds the candidates presented in SelectingTime; a chosen
	// time must match one of them.
	Offered   []availability.Slot `json:"offered,omitempty"`
	BookingID uuid.UUID           `json:"booking_id,omitempty"`
	StartedAt time.Time           `json:"started_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewSession starts a fresh dialogue for a phone number.
func NewSession(phone string, now time.Time) *Session {
	return &Session{
		Phone:     phone,
		State:     StateGreeting,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Terminal reports whether the session reached a sink state.
func (s *Session) Terminal() bool {
	return s.State == StateCancelled || s.State == StateEnded
}
