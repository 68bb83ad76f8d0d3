package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/agendasalao/salon-ai-platform/internal/availability"
	"github.com/agendasalao/salon-ai-platform/internal/catalog"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// AvailabilityHandler exposes slot queries over HTTP.
type AvailabilityHandler struct {
	engine *availability.Engine
	logger *logging.Logger
}

// NewAvailabilityHandler creates the availability endpoint.
func NewAvailabilityHandler(engine *availability.Engine, logger *logging.Logger) *AvailabilityHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AvailabilityHandler{engine: engine, logger: logger}
}

// CheckAvailability lists ranked open slots.
// GET /availability?service_id=corte&date=2025-10-06&duration_minutes=90
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	serviceID := r.URL.Query().Get("service_id")
	dateParam := r.URL.Query().Get("date")
	if serviceID == "" || dateParam == "" {
		jsonError(w, "service_id and date query parameters are required", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		jsonError(w, "date must be formatted as 2006-01-02", http.StatusBadRequest)
		return
	}

	q := availability.Query{ServiceID: serviceID, Date: date}
	if raw := r.URL.Query().Get("duration_minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			jsonError(w, "duration_minutes must be a positive integer", http.StatusBadRequest)
			return
		}
		q.DurationOverride = time.Duration(minutes) * time.Minute
	}

	slots, err := h.engine.Availability(r.Context(), q)
	if errors.Is(err, catalog.ErrNotFound) {
		jsonError(w, "unknown service", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("availability query failed", "service_id", serviceID, "error", err)
		jsonError(w, "failed to compute availability", http.StatusInternalServerError)
		return
	}
	if slots == nil {
		slots = []availability.Slot{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service_id": serviceID,
		"date":       dateParam,
		"slots":      slots,
	})
}
