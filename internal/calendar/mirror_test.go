package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendasalao/salon-ai-platform/internal/ledger"
)

func TestMirrorBooking(t *testing.T) {
	var gotPath string
	var gotEvent eventPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer cal-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotEvent))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	mirror := NewMirror(srv.URL, "salon-main", "cal-token", nil)
	start := time.Date(2025, 10, 6, 14, 0, 0, 0, time.UTC)
	b := &ledger.Booking{
		ID:         uuid.New(),
		ClientName: "Maria",
		ServiceID:  "corte",
		StaffID:    "staff_1",
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
	}

	require.NoError(t, mirror.MirrorBooking(context.Background(), b))
	assert.Equal(t, "/calendars/salon-main/events", gotPath)
	assert.Equal(t, b.ID.String(), gotEvent.BookingID)
	assert.Equal(t, "corte - Maria", gotEvent.Title)
	assert.Equal(t, start, gotEvent.Start)
}

func TestRemoveBookingTolerates404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	mirror := NewMirror(srv.URL, "salon-main", "", nil)
	assert.NoError(t, mirror.RemoveBooking(context.Background(), uuid.New()))
}

func TestMirrorBookingServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	mirror := NewMirror(srv.URL, "salon-main", "", nil)
	err := mirror.MirrorBooking(context.Background(), &ledger.Booking{ID: uuid.New()})
	assert.Error(t, err)
}
