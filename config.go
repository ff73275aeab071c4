package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Config is read from the environment (and .env via godotenv/autoload); a few
// fields can be overridden by command-line flags.
type Config struct {
	Port      string
	DBPath    string
	LogLevel  string
	Retention time.Duration

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	ToEmail  string

	AdminUsername string
	AdminPassword string
}

// maxRetentionDays is about a century.
const maxRetentionDays = 36500

func loadConfig(defaultRecipient string) Config {
	cfg := Config{
		Port:          envOr("PORT", "8080"),
		DBPath:        envOr("DB_PATH", "portfolio.db"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		SMTPHost:      envOr("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      envOr("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		ToEmail:       envOr("TO_EMAIL", defaultRecipient),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Retention:     365 * 24 * time.Hour,
	}
	if v := os.Getenv("VISITOR_RETENTION_DAYS"); v != "" {
		// A malformed or absurd value turns negative so Validate rejects it
		// instead of overflowing the duration.
		days, err := strconv.Atoi(v)
		if err != nil || days > maxRetentionDays {
			days = -1
		}
		cfg.Retention = time.Duration(days) * 24 * time.Hour
	}
	return cfg
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.Retention <= 0 {
		return fmt.Errorf("VISITOR_RETENTION_DAYS must be a positive number of days")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path is empty")
	}
	return nil
}

// adminCredentials falls back to development defaults, warning in debug mode
// the way the login handler always has.
func (c Config) adminCredentials(debug bool) (string, string) {
	user, pass := c.AdminUsername, c.AdminPassword
	if user == "" {
		user = "admin"
		if debug {
			logger.Warn().Msg("using default admin username; set ADMIN_USERNAME")
		}
	}
	if pass == "" {
		pass = "admin123"
		if debug {
			logger.Warn().Msg("using default admin password; set ADMIN_PASSWORD")
		}
	}
	return user, pass
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
