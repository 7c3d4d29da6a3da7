package config

import (
	"errors"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "user")
	t.Setenv("POSTGRES_PASSWORD", "pass")
	t.Setenv("POSTGRES_DB", "roleplay")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("SMTP_FROM", "")
	t.Setenv("TOKEN_RETENTION", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.JWTSecret != "dev" {
		t.Fatalf("expected default secret 'dev', got %q", cfg.JWTSecret)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected 24h session ttl, got %s", cfg.SessionTTL)
	}
	if cfg.SMTP.From != "no-reply@roleplay.com" {
		t.Fatalf("unexpected smtp sender %q", cfg.SMTP.From)
	}
	if cfg.TokenRetention != 7*24*time.Hour {
		t.Fatalf("expected 7 day token retention, got %s", cfg.TokenRetention)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SKIP_REDIS_SUBSCRIBER", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected 2h session ttl, got %s", cfg.SessionTTL)
	}
	if !cfg.SkipRedisSubscriber {
		t.Fatalf("expected SkipRedisSubscriber to be true")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_DB", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing postgres settings")
	}
}

func TestLoadRejectsNonPositiveSessionTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_TTL", "-1h")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative session ttl")
	}
}

func TestLoadRejectsShortTokenRetention(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_RETENTION", "2h")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for a retention shorter than %s", MinTokenRetention)
	}

	t.Setenv("TOKEN_RETENTION", "48h")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TokenRetention != 48*time.Hour {
		t.Fatalf("expected 48h retention, got %s", cfg.TokenRetention)
	}
}

func TestLoadDotEnvFailure(t *testing.T) {
	orig := loadDotEnv
	defer func() { loadDotEnv = orig }()
	loadDotEnv = func() error { return errors.New("bad .env") }

	if _, err := Load(); err == nil {
		t.Fatalf("expected .env error to propagate")
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "d", PostgresSSLMode: "disable",
	}
	want := "host=db user=u password=p dbname=d port=5432 sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
}

func TestSMTPEnabled(t *testing.T) {
	if (SMTPConfig{}).Enabled() {
		t.Fatalf("empty smtp config must not be enabled")
	}
	if !(SMTPConfig{User: "u", Pass: "p", From: "f"}).Enabled() {
		t.Fatalf("expected smtp config to be enabled")
	}
}
