package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendasalao/salon-ai-platform/internal/observability/metrics"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// Scheduler creates and cancels the reminder job set tied to a booking.
type Scheduler struct {
	store   Store
	logger  *logging.Logger
	metrics *metrics.ReminderMetrics
	now     func() time.Time
}

// NewScheduler creates a reminder scheduler.
func NewScheduler(store Store, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{store: store, logger: logger, now: time.Now}
}

// WithClock overrides the scheduler's time source, for tests.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// WithMetrics attaches reminder pipeline counters.
func (s *Scheduler) WithMetrics(m *metrics.ReminderMetrics) *Scheduler {
	s.metrics = m
	return s
}

// fireAt returns the fire instant for each stage relative to the
// booking start. The confirmation stage fires immediately.
func fireAt(kind Kind, now, start time.Time) time.Time {
	switch kind {
	case KindConfirmation:
		return now
	case KindReminder24h:
		return start.Add(-24 * time.Hour)
	case KindReminder2h:
		return start.Add(-2 * time.Hour)
	case KindNoShowFollowup:
		return start.Add(30 * time.Minute)
	case KindReviewRequest:
		return start.Add(2 * time.Hour)
	}
	return start
}

// ScheduleForBooking creates one Scheduled job per stage. Stages whose
// fire instant already passed are skipped, so a booking made an hour
// ahead never gets a 24h reminder.
func (s *Scheduler) ScheduleForBooking(ctx context.Context, bookingID uuid.UUID, clientName, clientPhone, serviceName string, startAt time.Time) error {
	now := s.now().UTC()
	created := 0
	for _, kind := range Kinds {
		at := fireAt(kind, now, startAt.UTC())
		if at.Before(now) {
			continue
		}
		job := &Job{
			ID:          uuid.New(),
			BookingID:   bookingID,
			Kind:        kind,
			FireAt:      at,
			Status:      StatusScheduled,
			ClientName:  clientName,
			ClientPhone: clientPhone,
			ServiceName: serviceName,
			StartAt:     startAt.UTC(),
			CreatedAt:   now,
		}
		if err := s.store.Create(ctx, job); err != nil {
			return fmt.Errorf("reminder: schedule %s: %w", kind, err)
		}
		created++
	}
	s.metrics.ObserveScheduled(created)
	s.logger.Info("reminders scheduled",
		"booking_id", bookingID,
		"jobs", created,
		"start_at", startAt,
	)
	return nil
}

// CancelAll transitions every Scheduled job for the booking to
// Cancelled. Jobs already fired or failed keep their state.
func (s *Scheduler) CancelAll(ctx context.Context, bookingID uuid.UUID) (int, error) {
	n, err := s.store.CancelAll(ctx, bookingID)
	if err != nil {
		return 0, fmt.Errorf("reminder: cancel all: %w", err)
	}
	s.metrics.ObserveCancelled(n)
	return n, nil
}

// Stats reports job counts per status.
func (s *Scheduler) Stats(ctx context.Context) (Stats, error) {
	return s.store.Stats(ctx)
}
