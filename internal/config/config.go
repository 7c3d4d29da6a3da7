package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	DBConnectTimeout time.Duration

	JWTSecret  string
	SessionTTL time.Duration

	RedisAddr           string
	SkipRedisSubscriber bool

	SMTP SMTPConfig

	TokenSweepSchedule string
	TokenRetention     time.Duration
	AllowedOrigins     []string
}

// SMTPConfig is the outbound mail relay used for password reset messages.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// Enabled reports whether enough credentials are present to relay mail.
func (c SMTPConfig) Enabled() bool {
	return c.User != "" && c.Pass != "" && c.From != ""
}

// MinTokenRetention is the shortest time a reset token row is kept after creation.
const MinTokenRetention = 24 * time.Hour

var loadDotEnv = func() error { return godotenv.Load() }

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port: getEnvOrDefault("PORT", "8080"),

		PostgresHost:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresSSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		DBConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 30*time.Second),

		JWTSecret:  getEnvOrDefault("JWT_SECRET", "dev"),
		SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),

		RedisAddr:           getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		SkipRedisSubscriber: getEnvBool("SKIP_REDIS_SUBSCRIBER", false),

		SMTP: SMTPConfig{
			Host: getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
			Port: getEnvOrDefault("SMTP_PORT", "587"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: getEnvOrDefault("SMTP_FROM", "no-reply@roleplay.com"),
		},

		TokenSweepSchedule: getEnvOrDefault("TOKEN_SWEEP_SCHEDULE", "@every 30m"),
		TokenRetention:     getEnvDuration("TOKEN_RETENTION", 7*24*time.Hour),
		AllowedOrigins:     splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode)
}

func validateConfig(cfg *Config) error {
	var missing []string
	if cfg.PostgresUser == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if cfg.PostgresPassword == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if cfg.PostgresDB == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if cfg.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	// Expired reset tokens must outlive their TTL so consumers see expiry, not absence.
	if cfg.TokenRetention < MinTokenRetention {
		return fmt.Errorf("TOKEN_RETENTION must be at least %s", MinTokenRetention)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
