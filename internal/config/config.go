package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string

	// WhatsApp Cloud API
	WhatsAppToken         string
	WhatsAppPhoneNumberID string
	WhatsAppVerifyToken   string

	// Calendar mirror (best-effort)
	CalendarBaseURL string
	CalendarID      string
	CalendarToken   string

	// Reminder worker
	ReminderPollInterval time.Duration
	ReminderParallelism  int
	DispatchMaxAttempts  int
	DispatchBaseDelay    time.Duration

	// Conversation sessions
	SessionIdleTimeout      time.Duration
	ClarificationThreshold  float64
	AvailabilityResultLimit int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		WhatsAppToken:         getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppPhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		WhatsAppVerifyToken:   getEnv("WHATSAPP_VERIFY_TOKEN", "agenda_salao_verify"),

		CalendarBaseURL: getEnv("CALENDAR_BASE_URL", ""),
		CalendarID:      getEnv("CALENDAR_ID", "primary"),
		CalendarToken:   getEnv("CALENDAR_TOKEN", ""),

		ReminderPollInterval: getEnvAsDuration("REMINDER_POLL_INTERVAL", 5*time.Minute),
		ReminderParallelism:  getEnvAsInt("REMINDER_PARALLELISM", 4),
		DispatchMaxAttempts:  getEnvAsInt("DISPATCH_MAX_ATTEMPTS", 3),
		DispatchBaseDelay:    getEnvAsDuration("DISPATCH_BASE_DELAY", 2*time.Second),

		SessionIdleTimeout:      getEnvAsDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		ClarificationThreshold:  getEnvAsFloat("CLARIFICATION_THRESHOLD", 0.15),
		AvailabilityResultLimit: getEnvAsInt("AVAILABILITY_RESULT_LIMIT", 10),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
