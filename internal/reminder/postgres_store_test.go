package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresStoreCreateAndListDue(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	store := NewPostgresStore(mock)
	job := &Job{
		ID:          uuid.New(),
		BookingID:   uuid.New(),
		Kind:        KindConfirmation,
		FireAt:      t0,
		Status:      StatusScheduled,
		ClientName:  "Maria",
		ClientPhone: "+5511999990000",
		ServiceName: "Corte Feminino",
		StartAt:     t0.Add(48 * time.Hour),
		CreatedAt:   t0,
	}

	mock.ExpectExec("INSERT INTO reminder_jobs").
		WithArgs(job.ID, job.BookingID, "confirmation", job.FireAt, "scheduled",
			job.ClientName, job.ClientPhone, job.ServiceName, job.StartAt,
			0, "", (*time.Time)(nil), job.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	if err := store.Create(context.Background(), job); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows := pgxmock.NewRows([]string{
		"id", "booking_id", "kind", "fire_at", "status", "client_name",
		"client_phone", "service_name", "start_at", "attempts", "last_error", "fired_at", "created_at",
	}).AddRow(job.ID, job.BookingID, "confirmation", job.FireAt, "scheduled",
		job.ClientName, job.ClientPhone, job.ServiceName, job.StartAt, 0, "", (*time.Time)(nil), job.CreatedAt)

	mock.ExpectQuery("SELECT .+ FROM reminder_jobs").
		WithArgs(t0).
		WillReturnRows(rows)

	due, err := store.ListDue(context.Background(), t0)
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(due) != 1 || due[0].Kind != KindConfirmation {
		t.Fatalf("unexpected due jobs: %+v", due)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresStoreTerminalTransitions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	store := NewPostgresStore(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE reminder_jobs SET status = 'fired'").
		WithArgs(1, pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	updated, err := store.MarkFired(context.Background(), id, 1)
	if err != nil || !updated {
		t.Fatalf("mark fired: updated=%v err=%v", updated, err)
	}

	// A job cancelled in the meantime is not resurrected.
	mock.ExpectExec("UPDATE reminder_jobs SET status = 'failed'").
		WithArgs(3, "transport unavailable", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	updated, err = store.MarkFailed(context.Background(), id, 3, "transport unavailable")
	if err != nil || updated {
		t.Fatalf("mark failed: updated=%v err=%v", updated, err)
	}

	bookingID := uuid.New()
	mock.ExpectExec("UPDATE reminder_jobs SET status = 'cancelled'").
		WithArgs(bookingID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 5))
	n, err := store.CancelAll(context.Background(), bookingID)
	if err != nil || n != 5 {
		t.Fatalf("cancel all: n=%d err=%v", n, err)
	}
}
