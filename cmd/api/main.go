package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/agendasalao/salon-ai-platform/internal/api/router"
	"github.com/agendasalao/salon-ai-platform/internal/availability"
	"github.com/agendasalao/salon-ai-platform/internal/calendar"
	"github.com/agendasalao/salon-ai-platform/internal/catalog"
	appconfig "github.com/agendasalao/salon-ai-platform/internal/config"
	"github.com/agendasalao/salon-ai-platform/internal/conversation"
	"github.com/agendasalao/salon-ai-platform/internal/http/handlers"
	"github.com/agendasalao/salon-ai-platform/internal/intent"
	"github.com/agendasalao/salon-ai-platform/internal/ledger"
	"github.com/agendasalao/salon-ai-platform/internal/messaging"
	"github.com/agendasalao/salon-ai-platform/internal/observability/metrics"
	"github.com/agendasalao/salon-ai-platform/internal/reminder"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting salon-ai-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Storage: PostgreSQL when configured, in-memory otherwise.
	var bookingStore ledger.Store
	var reminderStore reminder.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		bookingStore = ledger.NewPostgresStore(pool)
		reminderStore = reminder.NewPostgresStore(pool)
		logger.Info("using postgres storage")
	} else {
		bookingStore = ledger.NewMemoryStore()
		reminderStore = reminder.NewMemoryStore()
		logger.Warn("DATABASE_URL not set, using in-memory storage")
	}

	// Sessions: Redis when configured, in-memory otherwise.
	var sessions conversation.SessionStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		sessions = conversation.NewRedisSessionStore(redisClient, cfg.SessionIdleTimeout)
		logger.Info("using redis session store")
	} else {
		sessions = conversation.NewMemorySessionStore(cfg.SessionIdleTimeout)
		logger.Warn("REDIS_ADDR not set, using in-memory session store")
	}

	reminderMetrics := metrics.NewReminderMetrics(prometheus.DefaultRegisterer)
	conversationMetrics := metrics.NewConversationMetrics(prometheus.DefaultRegisterer)

	cat := catalog.Default()
	engine := availability.NewEngine(cat, bookingStore, logger,
		availability.WithResultLimit(cfg.AvailabilityResultLimit),
	)
	scheduler := reminder.NewScheduler(reminderStore, logger).WithMetrics(reminderMetrics)

	serviceOpts := []ledger.ServiceOption{
		ledger.WithReminderScheduler(scheduler),
	}
	if cfg.CalendarBaseURL != "" {
		mirror := calendar.NewMirror(cfg.CalendarBaseURL, cfg.CalendarID, cfg.CalendarToken, logger)
		serviceOpts = append(serviceOpts, ledger.WithCalendarMirror(mirror))
	}
	bookings := ledger.NewService(bookingStore, cat, logger, serviceOpts...)

	machine := conversation.NewMachine(intent.NewLexical(), cat, engine, bookings, sessions, logger,
		conversation.WithClarificationThreshold(cfg.ClarificationThreshold),
		conversation.WithMetrics(conversationMetrics),
	)

	sender := messaging.NewWhatsAppSender(cfg.WhatsAppToken, cfg.WhatsAppPhoneNumberID, logger)
	webhook := messaging.NewWebhookHandler(machine, sender, cfg.WhatsAppVerifyToken, logger)

	routerCfg := &router.Config{
		Logger:              logger,
		AvailabilityHandler: handlers.NewAvailabilityHandler(engine, logger),
		BookingHandler:      handlers.NewBookingHandler(bookings, logger),
		StatsHandler:        handlers.NewStatsHandler(scheduler, sessions, conversationMetrics, logger),
		ChatHandler:         handlers.NewChatHandler(machine, logger),
		WebhookHandler:      webhook,
		MetricsHandler:      promhttp.Handler(),
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
