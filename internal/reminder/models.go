package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies one of the notification stages tied to a booking's
// timeline.
type Kind string

const (
	KindConfirmation   Kind = "confirmation"
	KindReminder24h    Kind = "reminder_24h"
	KindReminder2h     Kind = "reminder_2h"
	KindNoShowFollowup Kind = "no_show_followup"
	KindReviewRequest  Kind = "review_request"
)

// Kinds lists every stage in timeline order.
var Kinds = []Kind{
	KindConfirmation,
	KindReminder24h,
	KindReminder2h,
	KindNoShowFollowup,
	KindReviewRequest,
}

// Status tracks a job's lifecycle. Scheduled is the only non-terminal
// state.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusFired     Status = "fired"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Job is one deferred notification for a booking. The booking id is a
// back-reference only; the job carries the fields its template needs so
// firing never reads the ledger.
type Job struct {
	ID          uuid.UUID  `json:"id"`
	BookingID   uuid.UUID  `json:"booking_id"`
	Kind        Kind       `json:"kind"`
	FireAt      time.Time  `json:"fire_at"`
	Status      Status     `json:"status"`
	ClientName  string     `json:"client_name"`
	ClientPhone string     `json:"client_phone"`
	ServiceName string     `json:"service_name"`
	StartAt     time.Time  `json:"start_at"`
	Attempts    int        `json:"attempts"`
	LastError   string     `json:"last_error,omitempty"`
	FiredAt     *time.Time `json:"fired_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Stats aggregates job counts per status for the health endpoint.
type Stats struct {
	Scheduled int `json:"scheduled"`
	Fired     int `json:"fired"`
	Failed    int `json:"failed"`
	Cancelled int `json:"cancelled"`
}
