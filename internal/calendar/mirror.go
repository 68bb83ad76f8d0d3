package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agendasalao/salon-ai-platform/internal/ledger"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// Mirror copies booking changes to an external calendar over its REST
// API. Mirroring is advisory: callers treat failures as log-worthy, not
// fatal.
type Mirror struct {
	baseURL    string
	calendarID string
	token      string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewMirror creates a calendar mirror client.
func NewMirror(baseURL, calendarID, token string, logger *logging.Logger) *Mirror {
	if logger == nil {
		logger = logging.Default()
	}
	return &Mirror{
		baseURL:    baseURL,
		calendarID: calendarID,
		token:      token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

var _ ledger.CalendarMirror = (*Mirror)(nil)

type eventPayload struct {
	BookingID string    `json:"booking_id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// MirrorBooking creates or replaces the calendar event for a booking.
func (m *Mirror) MirrorBooking(ctx context.Context, b *ledger.Booking) error {
	payload := eventPayload{
		BookingID: b.ID.String(),
		Title:     fmt.Sprintf("%s - %s", b.ServiceID, b.ClientName),
		Start:     b.StartAt,
		End:       b.EndAt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("calendar: marshal event: %w", err)
	}

	url := fmt.Sprintf("%s/calendars/%s/events", m.baseURL, m.calendarID)
	if err := m.do(ctx, http.MethodPost, url, body); err != nil {
		return err
	}
	m.logger.Info("booking mirrored to calendar", "booking_id", b.ID)
	return nil
}

// RemoveBooking deletes the calendar event for a cancelled booking.
func (m *Mirror) RemoveBooking(ctx context.Context, bookingID uuid.UUID) error {
	url := fmt.Sprintf("%s/calendars/%s/events/%s", m.baseURL, m.calendarID, bookingID)
	if err := m.do(ctx, http.MethodDelete, url, nil); err != nil {
		return err
	}
	m.logger.Info("calendar event removed", "booking_id", bookingID)
	return nil
}

func (m *Mirror) do(ctx context.Context, method, url string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("calendar: build request: %w", err)
	}
	if m.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calendar: %s: %w", method, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 8192))

	// A delete for an event that never mirrored is fine.
	if resp.StatusCode == http.StatusNotFound && method == http.MethodDelete {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("calendar: %s failed: status %d", method, resp.StatusCode)
	}
	return nil
}
