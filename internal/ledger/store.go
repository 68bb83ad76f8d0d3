package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence boundary for bookings. Insert must be atomic
// with respect to concurrent inserts for the same staff member: no two
// Confirmed bookings for one staff member may overlap.
type Store interface {
	// Insert persists a new Confirmed booking after verifying that no
	// overlapping Confirmed booking exists for the staff member. Returns
	// *ConflictError when the slot is taken.
	Insert(ctx context.Context, b *Booking) error

	// Get returns the booking with the given id, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*Booking, error)

	// UpdateStatus transitions a booking's status. A cancel transition
	// records the reason and timestamp.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason string) error

	// ListConfirmedInRange returns Confirmed bookings for a staff member
	// whose interval overlaps [from, to), ordered by start time.
	ListConfirmedInRange(ctx context.Context, staffID string, from, to time.Time) ([]Booking, error)

	// ListByPhone returns all bookings for a client phone, newest first.
	ListByPhone(ctx context.Context, phone string) ([]Booking, error)
}
