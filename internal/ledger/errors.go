package ledger

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates an unknown booking id.
var ErrNotFound = errors.New("ledger: booking not found")

// ConflictError reports that a reservation attempt overlaps an existing
// Confirmed booking for the same staff member. Callers should re-query
// availability and retry with a different slot.
type ConflictError struct {
	StaffID string
	StartAt time.Time
	EndAt   time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("ledger: slot conflict for staff %s between %s and %s",
		e.StaffID, e.StartAt.Format(time.RFC3339), e.EndAt.Format(time.RFC3339))
}

// IsConflict reports whether err is a reservation conflict.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
