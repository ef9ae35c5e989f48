package config

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"APP_ADDR", "APP_ENV", "SESSION_TTL", "CORS_ORIGINS", "STORAGE_DIR"} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()
	if cfg.Addr != ":8080" || cfg.Environment != "development" {
		t.Fatalf("unexpected defaults: addr=%q env=%q", cfg.Addr, cfg.Environment)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected 2h session ttl, got %s", cfg.SessionTTL)
	}
	if cfg.StorageDir != "generated" {
		t.Fatalf("expected generated storage dir, got %q", cfg.StorageDir)
	}
	if cfg.CORSOrigins != nil {
		t.Fatalf("expected no cors origins, got %v", cfg.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg := FromEnv()
	if cfg.SessionTTL != 15*time.Minute {
		t.Fatalf("expected 15m, got %s", cfg.SessionTTL)
	}
	if want := []string{"https://a.example", "https://b.example"}; !slices.Equal(cfg.CORSOrigins, want) {
		t.Fatalf("expected %v, got %v", want, cfg.CORSOrigins)
	}
	if cfg.RedisDB != 0 {
		t.Fatalf("expected invalid REDIS_DB to fall back to 0, got %d", cfg.RedisDB)
	}
	if cfg.RunMigrations {
		t.Fatal("expected RUN_MIGRATIONS=false to disable migrations")
	}
}

func TestValidate(t *testing.T) {
	base := Config{MaxBodyBytes: 4096, SessionTTL: time.Hour, AdminTokenTTL: time.Hour}
	if err := base.Validate(); err != nil {
		t.Fatalf("base config should validate: %v", err)
	}

	prod := base
	prod.Environment = "production"
	expectError(t, prod.Validate(), "DATABASE_URL")

	prod.DatabaseURL = "postgres://localhost/hrdocs"
	prod.RedisAddr = "localhost:6379"
	prod.JWTSecret = "short"
	expectError(t, prod.Validate(), "JWT_SECRET")

	prod.JWTSecret = "0123456789abcdef0123456789abcdef"
	if err := prod.Validate(); err != nil {
		t.Fatalf("complete production config should validate: %v", err)
	}

	admin := base
	admin.AdminPasswordHash = "$2a$10$abc"
	expectError(t, admin.Validate(), "JWT_SECRET")

	small := base
	small.MaxBodyBytes = 10
	expectError(t, small.Validate(), "MAX_BODY_BYTES")
}

func TestHousekeepingDefaults(t *testing.T) {
	t.Setenv("DOCUMENT_RETENTION", "")
	t.Setenv("SESSION_PURGE_INTERVAL", "1m")

	cfg := FromEnv()
	if cfg.SessionPurgeInterval != time.Minute {
		t.Fatalf("expected 1m purge interval, got %s", cfg.SessionPurgeInterval)
	}
	if cfg.RetentionInterval != 24*time.Hour {
		t.Fatalf("expected 24h retention interval, got %s", cfg.RetentionInterval)
	}
	if cfg.DocumentRetention != 0 {
		t.Fatalf("expected retention disabled, got %s", cfg.DocumentRetention)
	}

	cfg.DocumentRetention = -time.Hour
	expectError(t, cfg.Validate(), "DOCUMENT_RETENTION")
}

func expectError(t *testing.T, err error, contains string) {
	t.Helper()
	if err == nil || !strings.Contains(err.Error(), contains) {
		t.Fatalf("expected error mentioning %s, got %v", contains, err)
	}
}
