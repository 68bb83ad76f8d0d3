package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendasalao/salon-ai-platform/internal/catalog"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// ErrUnknownService indicates a reservation for a service the catalog
// does not carry.
var ErrUnknownService = errors.New("ledger: unknown service")

// ErrUnqualifiedStaff indicates the staff member lacks the skill for the
// requested service.
var ErrUnqualifiedStaff = errors.New("ledger: staff member not qualified for service")

// ReminderScheduler is the hook the service calls after booking changes
// so reminder pipelines stay in sync with the ledger.
type ReminderScheduler interface {
	ScheduleForBooking(ctx context.Context, bookingID uuid.UUID, clientName, clientPhone, serviceName string, startAt time.Time) error
	CancelAll(ctx context.Context, bookingID uuid.UUID) (int, error)
}

// CalendarMirror receives best-effort copies of booking changes. Mirror
// failures never fail the booking operation.
type CalendarMirror interface {
	MirrorBooking(ctx context.Context, b *Booking) error
	RemoveBooking(ctx context.Context, bookingID uuid.UUID) error
}

// ReserveRequest carries everything needed to confirm a booking.
type ReserveRequest struct {
	ClientName  string
	ClientPhone string
	ServiceID   string
	StaffID     string
	StartAt     time.Time
}

// Service coordinates the booking ledger with the catalog, the reminder
// pipeline and the calendar mirror.
type Service struct {
	store     Store
	catalog   *catalog.Catalog
	reminders ReminderScheduler
	calendar  CalendarMirror
	logger    *logging.Logger
	now       func() time.Time
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithReminderScheduler wires the reminder pipeline hook.
func WithReminderScheduler(r ReminderScheduler) ServiceOption {
	return func(s *Service) { s.reminders = r }
}

// WithCalendarMirror wires the best-effort calendar mirror.
func WithCalendarMirror(c CalendarMirror) ServiceOption {
	return func(s *Service) { s.calendar = c }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates the booking service.
func NewService(store Store, cat *catalog.Catalog, logger *logging.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		store:   store,
		catalog: cat,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reserve validates the request against the catalog, computes the end
// time from the service duration, and atomically records the booking.
// On conflict the caller receives a *ConflictError and nothing is
// persisted.
func (s *Service) Reserve(ctx context.Context, req ReserveRequest) (*Booking, error) {
	svc, err := s.catalog.ServiceByID(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, req.ServiceID)
	}
	staff, err := s.catalog.StaffByID(req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("ledger: unknown staff member %s", req.StaffID)
	}
	if !staff.HasSkill(svc.Skill) {
		return nil, fmt.Errorf("%w: %s cannot perform %s", ErrUnqualifiedStaff, staff.ID, svc.ID)
	}

	b := &Booking{
		ID:          uuid.New(),
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ServiceID:   svc.ID,
		StaffID:     staff.ID,
		StartAt:     req.StartAt.UTC(),
		EndAt:       req.StartAt.UTC().Add(svc.Duration),
		Price:       svc.Price,
		Status:      StatusConfirmed,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.Insert(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("booking confirmed",
		"booking_id", b.ID,
		"service_id", b.ServiceID,
		"staff_id", b.StaffID,
		"start_at", b.StartAt,
	)

	if s.reminders != nil {
		if err := s.reminders.ScheduleForBooking(ctx, b.ID, b.ClientName, b.ClientPhone, svc.Name, b.StartAt); err != nil {
			s.logger.Error("failed to schedule reminders", "booking_id", b.ID, "error", err)
		}
	}
	s.mirror(ctx, b)
	return b, nil
}

// Cancel transitions a booking to Cancelled and cancels its pending
// reminders. Cancelling an already-cancelled booking is a no-op.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*Booking, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusCancelled {
		return b, nil
	}

	if err := s.store.UpdateStatus(ctx, id, StatusCancelled, reason); err != nil {
		return nil, err
	}
	if s.reminders != nil {
		n, err := s.reminders.CancelAll(ctx, id)
		if err != nil {
			s.logger.Error("failed to cancel reminders", "booking_id", id, "error", err)
		} else if n > 0 {
			s.logger.Info("reminders cancelled", "booking_id", id, "count", n)
		}
	}
	if s.calendar != nil {
		if err := s.calendar.RemoveBooking(ctx, id); err != nil {
			s.logger.Warn("calendar removal failed", "booking_id", id, "error", err)
		}
	}
	s.logger.Info("booking cancelled", "booking_id", id, "reason", reason)
	return s.store.Get(ctx, id)
}

// Reschedule moves a booking to a new slot as an atomic swap: the new
// slot is reserved first, and only on success is the old booking
// cancelled. A conflict on the new slot leaves the original booking
// untouched.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, newStaffID string, newStart time.Time) (*Booking, error) {
	old, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if old.Status != StatusConfirmed {
		return nil, fmt.Errorf("ledger: cannot reschedule booking in status %s", old.Status)
	}

	staffID := newStaffID
	if staffID == "" {
		staffID = old.StaffID
	}
	replacement, err := s.Reserve(ctx, ReserveRequest{
		ClientName:  old.ClientName,
		ClientPhone: old.ClientPhone,
		ServiceID:   old.ServiceID,
		StaffID:     staffID,
		StartAt:     newStart,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.Cancel(ctx, id, "rescheduled"); err != nil {
		// The replacement exists; surface the inconsistency loudly.
		s.logger.Error("reschedule left old booking active",
			"old_booking_id", id,
			"new_booking_id", replacement.ID,
			"error", err,
		)
		return replacement, fmt.Errorf("ledger: reschedule cancel step: %w", err)
	}
	s.logger.Info("booking rescheduled",
		"old_booking_id", id,
		"new_booking_id", replacement.ID,
		"start_at", replacement.StartAt,
	)
	return replacement, nil
}

// Get returns a booking by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.store.Get(ctx, id)
}

// ListByPhone returns a client's bookings, newest first.
func (s *Service) ListByPhone(ctx context.Context, phone string) ([]Booking, error) {
	return s.store.ListByPhone(ctx, phone)
}

func (s *Service) mirror(ctx context.Context, b *Booking) {
	if s.calendar == nil {
		return
	}
	if err := s.calendar.MirrorBooking(ctx, b); err != nil {
		s.logger.Warn("calendar mirror failed", "booking_id", b.ID, "error", err)
	}
}
