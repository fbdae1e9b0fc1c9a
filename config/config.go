// File: /config/config.go
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DataDir  string
	LogLevel string

	// Rate limiting
	RateLimitPerMinute int
	RateLimitBurst     int

	// Reminder sweep
	ReminderSweepInterval time.Duration

	// Email Configuration (reminder digests; disabled when SMTPHost is empty)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	NotifyEmail  string
}

func Load() *Config {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))
	rateLimit, _ := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "300"))
	rateBurst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "50"))
	sweepMinutes, _ := strconv.Atoi(getEnv("REMINDER_SWEEP_MINUTES", "60"))
	if sweepMinutes <= 0 {
		sweepMinutes = 60
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		DataDir:  getEnv("DATA_DIR", "./data"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RateLimitPerMinute: rateLimit,
		RateLimitBurst:     rateBurst,

		ReminderSweepInterval: time.Duration(sweepMinutes) * time.Minute,

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@triptracker.local"),
		FromName:     getEnv("FROM_NAME", "TripTracker"),
		NotifyEmail:  getEnv("NOTIFY_EMAIL", ""),
	}
}

// DatabasePath is the SQLite file inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "triptracker.db")
}

// SlotPath is the active-trip draft file, kept outside the database.
func (c *Config) SlotPath() string {
	return filepath.Join(c.DataDir, "active_trip.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
