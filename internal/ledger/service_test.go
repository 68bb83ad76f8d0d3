package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendasalao/salon-ai-platform/internal/catalog"
)

type recordingScheduler struct {
	scheduled []uuid.UUID
	cancelled []uuid.UUID
}

func (r *recordingScheduler) ScheduleForBooking(_ context.Context, id uuid.UUID, _, _, _ string, _ time.Time) error {
	r.scheduled = append(r.scheduled, id)
	return nil
}

func (r *recordingScheduler) CancelAll(_ context.Context, id uuid.UUID) (int, error) {
	r.cancelled = append(r.cancelled, id)
	return 5, nil
}

func newTestService(t *testing.T) (*Service, *recordingScheduler) {
	t.Helper()
	sched := &recordingScheduler{}
	svc := NewService(NewMemoryStore(), catalog.Default(), nil, WithReminderScheduler(sched))
	return svc, sched
}

func TestServiceReserve(t *testing.T) {
	svc, sched := newTestService(t)
	ctx := context.Background()
	start := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)

	b, err := svc.Reserve(ctx, ReserveRequest{
		ClientName:  "Maria",
		ClientPhone: "+5511999990000",
		ServiceID:   "corte",
		StaffID:     "staff_1",
		StartAt:     start,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, start.Add(time.Hour), b.EndAt, "end time comes from the service duration")
	assert.Equal(t, 45.0, b.Price, "price comes from the catalog, not the caller")
	require.Len(t, sched.scheduled, 1)
	assert.Equal(t, b.ID, sched.scheduled[0])
}

func TestServiceReserveValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	start := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)

	_, err := svc.Reserve(ctx, ReserveRequest{ServiceID: "massagem", StaffID: "staff_1", StartAt: start})
	assert.ErrorIs(t, err, ErrUnknownService)

	// Marina does not do manicures.
	_, err = svc.Reserve(ctx, ReserveRequest{ServiceID: "manicure", StaffID: "staff_1", StartAt: start})
	assert.ErrorIs(t, err, ErrUnqualifiedStaff)
}

func TestServiceReserveConflict(t *testing.T) {
	svc, sched := newTestService(t)
	ctx := context.Background()
	start := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)

	_, err := svc.Reserve(ctx, ReserveRequest{ServiceID: "corte", StaffID: "staff_1", StartAt: start})
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, ReserveRequest{ServiceID: "corte", StaffID: "staff_1", StartAt: start.Add(30 * time.Minute)})
	assert.True(t, IsConflict(err))
	assert.Len(t, sched.scheduled, 1, "no reminders for a failed reservation")
}

func TestServiceCancelIdempotent(t *testing.T) {
	svc, sched := newTestService(t)
	ctx := context.Background()
	start := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)

	b, err := svc.Reserve(ctx, ReserveRequest{ServiceID: "corte", StaffID: "staff_1", StartAt: start})
	require.NoError(t, err)

	got, err := svc.Cancel(ctx, b.ID, "client request")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Len(t, sched.cancelled, 1)

	// Second cancel is a no-op and must not cascade again.
	got, err = svc.Cancel(ctx, b.ID, "client request")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Len(t, sched.cancelled, 1)

	_, err = svc.Cancel(ctx, uuid.New(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceReschedule(t *testing.T) {
	svc, sched := newTestService(t)
	ctx := context.Background()
	start := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)

	b, err := svc.Reserve(ctx, ReserveRequest{
		ClientName: "Maria", ClientPhone: "+5511999990000",
		ServiceID: "corte", StaffID: "staff_1", StartAt: start,
	})
	require.NoError(t, err)

	moved, err := svc.Reschedule(ctx, b.ID, "", start.Add(4*time.Hour))
	require.NoError(t, err)
	assert.NotEqual(t, b.ID, moved.ID)
	assert.Equal(t, start.Add(4*time.Hour), moved.StartAt)
	assert.Equal(t, "staff_1", moved.StaffID)

	old, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, old.Status)
	assert.Equal(t, "rescheduled", old.CancelReason)

	// Old reminders cancelled, new set scheduled.
	assert.Equal(t, []uuid.UUID{b.ID, moved.ID}, sched.scheduled)
	assert.Equal(t, []uuid.UUID{b.ID}, sched.cancelled)
}

func TestServiceRescheduleConflictKeepsOriginal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	start := time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)
	taken := start.Add(4 * time.Hour)

	b, err := svc.Reserve(ctx, ReserveRequest{ServiceID: "corte", StaffID: "staff_1", StartAt: start})
	require.NoError(t, err)
	_, err = svc.Reserve(ctx, ReserveRequest{ServiceID: "corte", StaffID: "staff_1", StartAt: taken})
	require.NoError(t, err)

	_, err = svc.Reschedule(ctx, b.ID, "", taken)
	assert.True(t, IsConflict(err))

	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status, "original booking survives a failed reschedule")
}
