package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/agendasalao/salon-ai-platform/internal/http/handlers"
	httpmiddleware "github.com/agendasalao/salon-ai-platform/internal/http/middleware"
	"github.com/agendasalao/salon-ai-platform/internal/messaging"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	AvailabilityHandler *handlers.AvailabilityHandler
	BookingHandler      *handlers.BookingHandler
	StatsHandler        *handlers.StatsHandler
	ChatHandler         *handlers.ChatHandler
	WebhookHandler      *messaging.WebhookHandler
	MetricsHandler      http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (webhooks, health checks)
	r.Group(func(public chi.Router) {
		public.Get("/health", handlers.HealthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.WebhookHandler != nil {
			public.Route("/webhook/whatsapp", func(r chi.Router) {
				r.Get("/", cfg.WebhookHandler.Verify)
				r.Post("/", cfg.WebhookHandler.Receive)
			})
		}
	})

	// Salon API
	if cfg.AvailabilityHandler != nil {
		r.Get("/availability", cfg.AvailabilityHandler.CheckAvailability)
	}
	if cfg.BookingHandler != nil {
		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", cfg.BookingHandler.CreateBooking)
			r.Get("/", cfg.BookingHandler.ListClientBookings)
			r.Route("/{bookingID}", func(r chi.Router) {
				r.Get("/", cfg.BookingHandler.GetBooking)
				r.Delete("/", cfg.BookingHandler.CancelBooking)
				r.Post("/reschedule", cfg.BookingHandler.RescheduleBooking)
			})
		})
	}
	if cfg.StatsHandler != nil {
		r.Route("/stats", func(r chi.Router) {
			r.Get("/reminders", cfg.StatsHandler.ReminderStats)
			r.Get("/conversations", cfg.StatsHandler.ConversationStats)
		})
	}
	if cfg.ChatHandler != nil {
		r.Post("/chat/simulate", cfg.ChatHandler.Simulate)
	}

	return r
}
