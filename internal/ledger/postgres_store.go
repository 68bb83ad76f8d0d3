package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists bookings in PostgreSQL. The overlap check and
// insert run inside one transaction holding a per-staff advisory lock,
// so concurrent reservations for the same staff member serialize while
// different staff members proceed independently.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a booking store backed by pgx.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

const bookingColumns = `id, client_name, client_phone, service_id, staff_id, start_at, end_at, price, status, cancel_reason, cancelled_at, created_at`

func (s *PostgresStore) Insert(ctx context.Context, b *Booking) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ledger: begin reserve: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, b.StaffID); err != nil {
		return fmt.Errorf("ledger: staff lock: %w", err)
	}

	var conflicts int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE staff_id = $1 AND status = 'confirmed'
		  AND start_at < $3 AND end_at > $2`,
		b.StaffID, b.StartAt, b.EndAt,
	).Scan(&conflicts)
	if err != nil {
		return fmt.Errorf("ledger: conflict check: %w", err)
	}
	if conflicts > 0 {
		return &ConflictError{StaffID: b.StaffID, StartAt: b.StartAt, EndAt: b.EndAt}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, b.ClientName, b.ClientPhone, b.ServiceID, b.StaffID,
		b.StartAt, b.EndAt, b.Price, string(b.Status), b.CancelReason, b.CancelledAt, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ledger: insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ledger: commit reserve: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("ledger: get booking: %w", err)
	}
	defer rows.Close()
	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrNotFound
	}
	return &bookings[0], nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason string) error {
	var tag pgconn.CommandTag
	var err error
	if status == StatusCancelled {
		tag, err = s.db.Exec(ctx, `
			UPDATE bookings SET status = $1, cancel_reason = $2, cancelled_at = $3
			WHERE id = $4`, string(status), reason, time.Now().UTC(), id)
	} else {
		tag, err = s.db.Exec(ctx, `
			UPDATE bookings SET status = $1 WHERE id = $2`, string(status), id)
	}
	if err != nil {
		return fmt.Errorf("ledger: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListConfirmedInRange(ctx context.Context, staffID string, from, to time.Time) ([]Booking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE staff_id = $1 AND status = 'confirmed'
		  AND start_at < $3 AND end_at > $2
		ORDER BY start_at ASC`, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ledger: list confirmed: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (s *PostgresStore) ListByPhone(ctx context.Context, phone string) ([]Booking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE client_phone = $1
		ORDER BY created_at DESC`, phone)
	if err != nil {
		return nil, fmt.Errorf("ledger: list by phone: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]Booking, error) {
	var result []Booking
	for rows.Next() {
		var b Booking
		var status string
		err := rows.Scan(
			&b.ID, &b.ClientName, &b.ClientPhone, &b.ServiceID, &b.StaffID,
			&b.StartAt, &b.EndAt, &b.Price, &status, &b.CancelReason,
			&b.CancelledAt, &b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ledger: scan booking: %w", err)
		}
		b.Status = Status(status)
		result = append(result, b)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return result, nil
}
