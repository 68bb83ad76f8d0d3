package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks the lifecycle of a booking. Bookings are never deleted;
// status changes are the only mutation.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

// Booking is a confirmed reservation of a staff member's time.
type Booking struct {
	ID           uuid.UUID  `json:"id"`
	ClientName   string     `json:"client_name"`
	ClientPhone  string     `json:"client_phone"`
	ServiceID    string     `json:"service_id"`
	StaffID      string     `json:"staff_id"`
	StartAt      time.Time  `json:"start_at"`
	EndAt        time.Time  `json:"end_at"`
	Price        float64    `json:"price"`
	Status       Status     `json:"status"`
	CancelReason string     `json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Overlaps reports whether the booking's interval overlaps [start, end).
// Intervals are half-open, so back-to-back bookings do not conflict.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}
