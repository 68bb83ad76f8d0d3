package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists reminder jobs in PostgreSQL.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a reminder job store backed by pgx.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

const jobColumns = `id, booking_id, kind, fire_at, status, client_name, client_phone, service_name, start_at, attempts, last_error, fired_at, created_at`

func (s *PostgresStore) Create(ctx context.Context, job *Job) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO reminder_jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		job.ID, job.BookingID, string(job.Kind), job.FireAt, string(job.Status),
		job.ClientName, job.ClientPhone, job.ServiceName, job.StartAt,
		job.Attempts, job.LastError, job.FiredAt, job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("reminder: create job: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListDue(ctx context.Context, asOf time.Time) ([]Job, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+jobColumns+` FROM reminder_jobs
		WHERE status = 'scheduled' AND fire_at <= $1
		ORDER BY fire_at ASC`, asOf)
	if err != nil {
		return nil, fmt.Errorf("reminder: list due: %w", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (s *PostgresStore) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]Job, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+jobColumns+` FROM reminder_jobs
		WHERE booking_id = $1
		ORDER BY fire_at ASC`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("reminder: list by booking: %w", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (s *PostgresStore) MarkFired(ctx context.Context, id uuid.UUID, attempts int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE reminder_jobs SET status = 'fired', attempts = $1, fired_at = $2
		WHERE id = $3 AND status = 'scheduled'`, attempts, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("reminder: mark fired: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE reminder_jobs SET status = 'failed', attempts = $1, last_error = $2
		WHERE id = $3 AND status = 'scheduled'`, attempts, lastError, id)
	if err != nil {
		return false, fmt.Errorf("reminder: mark failed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) CancelAll(ctx context.Context, bookingID uuid.UUID) (int, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE reminder_jobs SET status = 'cancelled'
		WHERE booking_id = $1 AND status = 'scheduled'`, bookingID)
	if err != nil {
		return 0, fmt.Errorf("reminder: cancel all: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.Query(ctx, `
		SELECT status, COUNT(*) FROM reminder_jobs GROUP BY status`)
	if err != nil {
		return Stats{}, fmt.Errorf("reminder: stats: %w", err)
	}
	defer rows.Close()

	var st Stats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, fmt.Errorf("reminder: scan stats: %w", err)
		}
		switch Status(status) {
		case StatusScheduled:
			st.Scheduled = count
		case StatusFired:
			st.Fired = count
		case StatusFailed:
			st.Failed = count
		case StatusCancelled:
			st.Cancelled = count
		}
	}
	return st, rows.Err()
}

func scanJobs(rows pgx.Rows) ([]Job, error) {
	var out []Job
	for rows.Next() {
		var j Job
		var kind, status string
		err := rows.Scan(
			&j.ID, &j.BookingID, &kind, &j.FireAt, &status,
			&j.ClientName, &j.ClientPhone, &j.ServiceName, &j.StartAt,
			&j.Attempts, &j.LastError, &j.FiredAt, &j.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("reminder: scan job: %w", err)
		}
		j.Kind = Kind(kind)
		j.Status = Status(status)
		out = append(out, j)
	}
	return out, rows.Err()
}
