package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/agendasalao/salon-ai-platform/internal/catalog"
	"github.com/agendasalao/salon-ai-platform/internal/ledger"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// Granularity is the spacing between candidate slot starts.
const Granularity = 30 * time.Minute

// DefaultResultLimit caps how many ranked slots a query returns.
const DefaultResultLimit = 10

// Slot is a candidate reservation interval for one staff member.
// Slots are derived on demand and never persisted.
type Slot struct {
	StaffID   string    `json:"staff_id"`
	StaffName string    `json:"staff_name"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Score     float64   `json:"score"`
}

// Query describes an availability request.
type Query struct {
	ServiceID string
	Date      time.Time
	// DurationOverride replaces the catalog duration when positive.
	DurationOverride time.Duration
}

// Engine enumerates, filters and ranks open slots against the booking
// ledger. Results are deterministic for identical catalog and ledger
// state.
type Engine struct {
	catalog *catalog.Catalog
	store   ledger.Store
	logger  *logging.Logger
	limit   int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithResultLimit overrides the maximum number of returned slots.
func WithResultLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// NewEngine creates an availability engine over the given catalog and
// booking store.
func NewEngine(cat *catalog.Catalog, store ledger.Store, logger *logging.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	e := &Engine{
		catalog: cat,
		store:   store,
		logger:  logger,
		limit:   DefaultResultLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Availability returns the ranked open slots for a service on a date.
// Unknown service ids fail with catalog.ErrNotFound; a date with no
// qualified working staff yields an empty list.
func (e *Engine) Availability(ctx context.Context, q Query) ([]Slot, error) {
	svc, err := e.catalog.ServiceByID(q.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	duration := svc.Duration
	if q.DurationOverride > 0 {
		duration = q.DurationOverride
	}

	qualified, err := e.catalog.StaffQualifiedFor(q.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}

	var slots []Slot
	for _, staff := range qualified {
		if !staff.WorksOn(q.Date.Weekday()) {
			continue
		}
		windowStart, windowEnd := staff.WorkingWindow(q.Date)

		booked, err := e.store.ListConfirmedInRange(ctx, staff.ID, windowStart, windowEnd)
		if err != nil {
			return nil, fmt.Errorf("availability: load bookings for %s: %w", staff.ID, err)
		}

		for start := windowStart; !start.Add(duration).After(windowEnd); start = start.Add(Granularity) {
			end := start.Add(duration)
			if conflicts(booked, start, end) {
				continue
			}
			slots = append(slots, Slot{
				StaffID:   staff.ID,
				StaffName: staff.Name,
				StartAt:   start,
				EndAt:     end,
				Score:     score(start, staff.Efficiency),
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Score != slots[j].Score {
			return slots[i].Score > slots[j].Score
		}
		if !slots[i].StartAt.Equal(slots[j].StartAt) {
			return slots[i].StartAt.Before(slots[j].StartAt)
		}
		return slots[i].StaffID < slots[j].StaffID
	})

	if len(slots) > e.limit {
		slots = slots[:e.limit]
	}
	e.logger.Debug("availability computed",
		"service_id", q.ServiceID,
		"date", q.Date.Format("2006-01-02"),
		"slots", len(slots),
	)
	return slots, nil
}

func conflicts(booked []ledger.Booking, start, end time.Time) bool {
	for i := range booked {
		if booked[i].Overlaps(start, end) {
			return true
		}
	}
	return false
}

// score ranks a slot by how well it matches historical demand. The
// popular midday window and early-week days get a bonus, and faster
// staff members rank slightly higher.
func score(start time.Time, efficiency float64) float64 {
	s := 50.0
	if h := start.Hour(); h >= 10 && h <= 16 {
		s += 20
	}
	switch start.Weekday() {
	case time.Monday, time.Tuesday, time.Wednesday:
		s += 10
	}
	return s + efficiency*20
}
