package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskflow/pkg/httpx"
	"github.com/aussiebroadwan/taskflow/pkg/jwtx"
)

type Config struct {
	Env                  string        // Environment (dev, test, preview, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	TrustedProxies       string        // CIDRs whose X-Forwarded-For is believed (default: none)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseURL    string // File path for sqlite, URL/DSN for postgres (default: taskflow.db)

	AuthSecret         string // HS256 signing secret, required outside dev/test
	AuthIssuer         string // iss claim (default: taskflow)
	SessionPersistence bool   // Write session rows when the table exists (default: true)

	TwoFactorIssuer        string // Issuer shown in authenticator apps (default: TaskFlow)
	TwoFactorEncryptionKey string // Key material for sealing TOTP secrets (default: derived from AuthSecret)

	InvitationTTL time.Duration // How long an invitation link stays valid (default: 7 days)
	AppBaseURL    string        // Prefix for invitation links (default: http://localhost:3000)

	SMTPHost     string // Optional: invitations are only logged when empty
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

func LoadConfig() Config {
	return Config{
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		TrustedProxies:       os.Getenv("TRUSTED_PROXIES"),

		DatabaseDriver: getEnvOrDefault("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    getEnvOrDefault("DATABASE_URL", "taskflow.db"),

		AuthSecret:         os.Getenv("AUTH_SECRET"),
		AuthIssuer:         getEnvOrDefault("AUTH_ISSUER", "taskflow"),
		SessionPersistence: getEnvBoolOrDefault("SESSION_PERSISTENCE", true),

		TwoFactorIssuer:        getEnvOrDefault("TWOFACTOR_ISSUER", "TaskFlow"),
		TwoFactorEncryptionKey: os.Getenv("TWOFACTOR_ENCRYPTION_KEY"),

		InvitationTTL: getEnvDurationOrDefault("INVITATION_TTL", 7*24*time.Hour),
		AppBaseURL:    strings.TrimRight(getEnvOrDefault("APP_BASE_URL", "http://localhost:3000"), "/"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
	}
}

// IsDevelopment reports whether the environment may run with an ephemeral
// signing secret.
func (c Config) IsDevelopment() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development", "test", "local":
		return true
	}
	return false
}

// IsProduction reports whether internal error details must stay hidden.
func (c Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

var ErrMissingSecret = errors.New("app: AUTH_SECRET is required outside dev/test")

// Validate rejects configurations the service must not start with. A weak
// or missing signing secret is fatal everywhere except dev and test.
func (c Config) Validate() error {
	if !c.IsDevelopment() {
		if c.AuthSecret == "" {
			return ErrMissingSecret
		}
		if len(c.AuthSecret) < jwtx.MinSecretBytes {
			return fmt.Errorf("app: AUTH_SECRET: %w", jwtx.ErrWeakSecret)
		}
	}
	if c.AuthSecret != "" && len(c.AuthSecret) < jwtx.MinSecretBytes {
		return fmt.Errorf("app: AUTH_SECRET: %w", jwtx.ErrWeakSecret)
	}

	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("app: unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("app: DATABASE_URL is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("app: invalid PORT %d", c.Port)
	}
	if _, err := httpx.ParseTrustedProxies(c.TrustedProxies); err != nil {
		return fmt.Errorf("app: TRUSTED_PROXIES: %w", err)
	}
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		return errors.New("app: SMTP_FROM is required when SMTP_HOST is set")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
