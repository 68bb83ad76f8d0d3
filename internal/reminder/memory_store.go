package reminder

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps reminder jobs in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

// NewMemoryStore creates an empty in-memory job store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[uuid.UUID]*Job)}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Create(ctx context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

func (s *MemoryStore) ListDue(ctx context.Context, asOf time.Time) ([]Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var due []Job
	for _, j := range s.jobs {
		if j.Status == StatusScheduled && !j.FireAt.After(asOf) {
			due = append(due, *j)
		}
	}
	sort.Slice(due, func(i, k int) bool { return due[i].FireAt.Before(due[k].FireAt) })
	return due, nil
}

func (s *MemoryStore) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Job
	for _, j := range s.jobs {
		if j.BookingID == bookingID {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].FireAt.Before(out[k].FireAt) })
	return out, nil
}

func (s *MemoryStore) MarkFired(ctx context.Context, id uuid.UUID, attempts int) (bool, error) {
	return s.terminal(id, StatusFired, attempts, "")
}

func (s *MemoryStore) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string) (bool, error) {
	return s.terminal(id, StatusFailed, attempts, lastError)
}

func (s *MemoryStore) terminal(id uuid.UUID, status Status, attempts int, lastError string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return false, ErrNotFound
	}
	if j.Status != StatusScheduled {
		return false, nil
	}
	j.Status = status
	j.Attempts = attempts
	j.LastError = lastError
	if status == StatusFired {
		now := time.Now().UTC()
		j.FiredAt = &now
	}
	return true, nil
}

func (s *MemoryStore) CancelAll(ctx context.Context, bookingID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cancelled := 0
	for _, j := range s.jobs {
		if j.BookingID == bookingID && j.Status == StatusScheduled {
			j.Status = StatusCancelled
			cancelled++
		}
	}
	return cancelled, nil
}

func (s *MemoryStore) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st Stats
	for _, j := range s.jobs {
		switch j.Status {
		case StatusScheduled:
			st.Scheduled++
		case StatusFired:
			st.Fired++
		case StatusFailed:
			st.Failed++
		case StatusCancelled:
			st.Cancelled++
		}
	}
	return st, nil
}
