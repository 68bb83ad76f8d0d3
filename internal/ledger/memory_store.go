package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps bookings in process memory. Reservation attempts are
// serialized per staff member so attempts for different staff never
// block each other.
type MemoryStore struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*Booking

	staffMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewMemoryStore creates an empty in-memory booking store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bookings: make(map[uuid.UUID]*Booking),
		locks:    make(map[string]*sync.Mutex),
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) staffLock(staffID string) *sync.Mutex {
	s.staffMu.Lock()
	defer s.staffMu.Unlock()
	if l, ok := s.locks[staffID]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[staffID] = l
	return l
}

// Insert atomically checks for overlap and stores the booking.
func (s *MemoryStore) Insert(ctx context.Context, b *Booking) error {
	lock := s.staffLock(b.StaffID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	for _, existing := range s.bookings {
		if existing.StaffID == b.StaffID && existing.Status == StatusConfirmed && existing.Overlaps(b.StartAt, b.EndAt) {
			s.mu.RUnlock()
			return &ConflictError{StaffID: b.StaffID, StartAt: b.StartAt, EndAt: b.EndAt}
		}
	}
	s.mu.RUnlock()

	s.mu.Lock()
	cp := *b
	s.bookings[b.ID] = &cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	if status == StatusCancelled {
		b.CancelReason = reason
		now := time.Now().UTC()
		b.CancelledAt = &now
	}
	return nil
}

func (s *MemoryStore) ListConfirmedInRange(ctx context.Context, staffID string, from, to time.Time) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Booking
	for _, b := range s.bookings {
		if b.StaffID == staffID && b.Status == StatusConfirmed && b.Overlaps(from, to) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (s *MemoryStore) ListByPhone(ctx context.Context, phone string) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Booking
	for _, b := range s.bookings {
		if b.ClientPhone == phone {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
