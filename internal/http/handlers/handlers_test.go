package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/agendasalao/salon-ai-platform/internal/availability"
	"github.com/agendasalao/salon-ai-platform/internal/catalog"
	"github.com/agendasalao/salon-ai-platform/internal/ledger"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

func newBookingFixture(t *testing.T) *BookingHandler {
	t.Helper()
	cat := catalog.Default()
	svc := ledger.NewService(ledger.NewMemoryStore(), cat, logging.Default())
	return NewBookingHandler(svc, logging.Default())
}

func withBookingID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("bookingID", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCheckAvailabilityRejectsBadInput(t *testing.T) {
	cat := catalog.Default()
	engine := availability.NewEngine(cat, ledger.NewMemoryStore(), logging.Default())
	h := NewAvailabilityHandler(engine, logging.Default())

	cases := []struct {
		name  string
		query string
	}{
		{"missing params", ""},
		{"missing date", "service_id=corte"},
		{"bad date", "service_id=corte&date=07/10/2030"},
		{"bad duration", "service_id=corte&date=2030-10-07&duration_minutes=-30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/availability?"+tc.query, nil)
			rr := httptest.NewRecorder()
			h.CheckAvailability(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestGetBookingInvalidID(t *testing.T) {
	h := newBookingFixture(t)

	req := withBookingID(httptest.NewRequest(http.MethodGet, "/bookings/not-a-uuid", nil), "not-a-uuid")
	rr := httptest.NewRecorder()
	h.GetBooking(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetBookingNotFound(t *testing.T) {
	h := newBookingFixture(t)
	id := uuid.NewString()

	req := withBookingID(httptest.NewRequest(http.MethodGet, "/bookings/"+id, nil), id)
	rr := httptest.NewRecorder()
	h.GetBooking(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCancelBookingNotFound(t *testing.T) {
	h := newBookingFixture(t)
	id := uuid.NewString()

	req := withBookingID(httptest.NewRequest(http.MethodDelete, "/bookings/"+id, strings.NewReader(`{"reason":"moved"}`)), id)
	rr := httptest.NewRecorder()
	h.CancelBooking(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateBookingValidation(t *testing.T) {
	h := newBookingFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"client_phone":"5511999990000"}`))
	rr := httptest.NewRecorder()
	h.CreateBooking(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateBookingUnknownService(t *testing.T) {
	h := newBookingFixture(t)

	body := `{"client_phone":"5511999990000","service_id":"laser","staff_id":"staff_1","start_at":"2030-10-07T14:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreateBooking(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown service")
}

func TestListClientBookingsRequiresPhone(t *testing.T) {
	h := newBookingFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rr := httptest.NewRecorder()
	h.ListClientBookings(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
