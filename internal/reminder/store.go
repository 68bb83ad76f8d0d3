package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates an unknown reminder job id.
var ErrNotFound = errors.New("reminder: job not found")

// Store is the persistence boundary for reminder jobs. Terminal
// transitions are conditional on the job still being Scheduled, which
// keeps a fire racing a cancellation from resurrecting the job.
type Store interface {
	// Create persists a new Scheduled job.
	Create(ctx context.Context, job *Job) error

	// ListDue returns Scheduled jobs with fire_at <= asOf, oldest first.
	ListDue(ctx context.Context, asOf time.Time) ([]Job, error)

	// ListByBooking returns every job for a booking, in timeline order.
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]Job, error)

	// MarkFired transitions Scheduled -> Fired. Returns false when the
	// job was no longer Scheduled.
	MarkFired(ctx context.Context, id uuid.UUID, attempts int) (bool, error)

	// MarkFailed transitions Scheduled -> Failed, recording the error.
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string) (bool, error)

	// CancelAll transitions every Scheduled job for a booking to
	// Cancelled and returns how many were cancelled.
	CancelAll(ctx context.Context, bookingID uuid.UUID) (int, error)

	// Stats returns job counts per status.
	Stats(ctx context.Context) (Stats, error)
}
