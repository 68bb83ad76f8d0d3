package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agendasalao/salon-ai-platform/internal/ledger"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// BookingHandler exposes the booking ledger over HTTP.
type BookingHandler struct {
	bookings *ledger.Service
	logger   *logging.Logger
}

// NewBookingHandler creates the booking endpoints.
func NewBookingHandler(bookings *ledger.Service, logger *logging.Logger) *BookingHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingHandler{bookings: bookings, logger: logger}
}

// CreateBookingRequest is the POST /bookings body.
type CreateBookingRequest struct {
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	ServiceID   string    `json:"service_id"`
	StaffID     string    `json:"staff_id"`
	StartAt     time.Time `json:"start_at"`
}

// CreateBooking reserves a slot.
// POST /bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ClientPhone == "" || req.ServiceID == "" || req.StaffID == "" || req.StartAt.IsZero() {
		jsonError(w, "client_phone, service_id, staff_id and start_at are required", http.StatusBadRequest)
		return
	}

	booking, err := h.bookings.Reserve(r.Context(), ledger.ReserveRequest{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ServiceID:   req.ServiceID,
		StaffID:     req.StaffID,
		StartAt:     req.StartAt,
	})
	switch {
	case ledger.IsConflict(err):
		jsonError(w, "slot already booked", http.StatusConflict)
	case errors.Is(err, ledger.ErrUnknownService), errors.Is(err, ledger.ErrUnqualifiedStaff):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		h.logger.Error("failed to create booking", "error", err)
		jsonError(w, "failed to create booking", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusCreated, booking)
	}
}

// GetBooking returns one booking.
// GET /bookings/{bookingID}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}
	booking, err := h.bookings.Get(r.Context(), id)
	if errors.Is(err, ledger.ErrNotFound) {
		jsonError(w, "booking not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to get booking", "booking_id", id, "error", err)
		jsonError(w, "failed to get booking", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// CancelBookingRequest is the optional DELETE /bookings/{id} body.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// CancelBooking cancels a booking. Cancelling twice is fine.
// DELETE /bookings/{bookingID}
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}
	var req CancelBookingRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Reason == "" {
		req.Reason = "client request"
	}

	booking, err := h.bookings.Cancel(r.Context(), id, req.Reason)
	if errors.Is(err, ledger.ErrNotFound) {
		jsonError(w, "booking not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to cancel booking", "booking_id", id, "error", err)
		jsonError(w, "failed to cancel booking", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// RescheduleRequest is the POST /bookings/{id}/reschedule body.
type RescheduleRequest struct {
	StaffID string    `json:"staff_id,omitempty"`
	StartAt time.Time `json:"start_at"`
}

// RescheduleBooking moves a booking to a new slot. The original booking
// survives when the new slot is taken.
// POST /bookings/{bookingID}/reschedule
func (h *BookingHandler) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}
	var req RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StartAt.IsZero() {
		jsonError(w, "start_at is required", http.StatusBadRequest)
		return
	}

	booking, err := h.bookings.Reschedule(r.Context(), id, req.StaffID, req.StartAt)
	switch {
	case ledger.IsConflict(err):
		jsonError(w, "new slot already booked", http.StatusConflict)
	case errors.Is(err, ledger.ErrNotFound):
		jsonError(w, "booking not found", http.StatusNotFound)
	case err != nil:
		h.logger.Error("failed to reschedule booking", "booking_id", id, "error", err)
		jsonError(w, "failed to reschedule booking", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, booking)
	}
}

// ListClientBookings returns a client's bookings, newest first.
// GET /bookings?phone=...
func (h *BookingHandler) ListClientBookings(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		jsonError(w, "phone query parameter is required", http.StatusBadRequest)
		return
	}
	bookings, err := h.bookings.ListByPhone(r.Context(), phone)
	if err != nil {
		h.logger.Error("failed to list bookings", "phone", phone, "error", err)
		jsonError(w, "failed to list bookings", http.StatusInternalServerError)
		return
	}
	if bookings == nil {
		bookings = []ledger.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func bookingID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "bookingID"))
	if err != nil {
		jsonError(w, "invalid booking id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
