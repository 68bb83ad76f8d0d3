package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agendasalao/salon-ai-platform/internal/config"
	"github.com/agendasalao/salon-ai-platform/internal/messaging"
	"github.com/agendasalao/salon-ai-platform/internal/notify"
	"github.com/agendasalao/salon-ai-platform/internal/observability/metrics"
	"github.com/agendasalao/salon-ai-platform/internal/reminder"
	"github.com/agendasalao/salon-ai-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting reminder worker", "env", cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store reminder.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = reminder.NewPostgresStore(pool)
	} else {
		store = reminder.NewMemoryStore()
		logger.Warn("DATABASE_URL not set, using in-memory job store")
	}

	var dispatcher reminder.Dispatcher
	if cfg.WhatsAppToken != "" {
		sender := messaging.NewWhatsAppSender(cfg.WhatsAppToken, cfg.WhatsAppPhoneNumberID, logger)
		dispatcher = notify.NewWhatsAppDispatcher(sender)
	} else {
		dispatcher = notify.NewLogDispatcher(logger)
		logger.Warn("WHATSAPP_TOKEN not set, logging reminders instead of sending")
	}

	worker := reminder.NewWorker(store, dispatcher,
		metrics.NewReminderMetrics(prometheus.DefaultRegisterer), logger,
		reminder.WithPollInterval(cfg.ReminderPollInterval),
		reminder.WithParallelism(cfg.ReminderParallelism),
		reminder.WithMaxAttempts(cfg.DispatchMaxAttempts),
		reminder.WithBaseDelay(cfg.DispatchBaseDelay),
	)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down reminder worker...")
		cancel()
	}()

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("reminder worker exited", "error", err)
		os.Exit(1)
	}
	logger.Info("reminder worker exited")
}
