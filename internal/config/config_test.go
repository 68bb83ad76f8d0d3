package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("REMINDER_POLL_INTERVAL", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.ReminderPollInterval != 5*time.Minute {
		t.Fatalf("expected default poll interval, got %s", cfg.ReminderPollInterval)
	}
	if cfg.ReminderParallelism != 4 {
		t.Fatalf("expected default parallelism, got %d", cfg.ReminderParallelism)
	}
	if cfg.SessionIdleTimeout != 30*time.Minute {
		t.Fatalf("expected default session idle timeout, got %s", cfg.SessionIdleTimeout)
	}
	if cfg.ClarificationThreshold != 0.15 {
		t.Fatalf("expected default clarification threshold, got %f", cfg.ClarificationThreshold)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("REMINDER_POLL_INTERVAL", "1m")
	t.Setenv("REMINDER_PARALLELISM", "8")
	t.Setenv("DISPATCH_MAX_ATTEMPTS", "5")
	t.Setenv("WHATSAPP_VERIFY_TOKEN", "custom-token")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if cfg.ReminderPollInterval != time.Minute {
		t.Fatalf("expected poll interval override, got %s", cfg.ReminderPollInterval)
	}
	if cfg.ReminderParallelism != 8 {
		t.Fatalf("expected parallelism override, got %d", cfg.ReminderParallelism)
	}
	if cfg.DispatchMaxAttempts != 5 {
		t.Fatalf("expected dispatch attempts override, got %d", cfg.DispatchMaxAttempts)
	}
	if cfg.WhatsAppVerifyToken != "custom-token" {
		t.Fatalf("expected verify token override, got %s", cfg.WhatsAppVerifyToken)
	}
}
