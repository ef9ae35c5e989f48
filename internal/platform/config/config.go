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

type Config struct {
	Addr              string
	DatabaseURL       string
	Environment       string
	JWTSecret         string
	AdminPasswordHash string
	AdminTokenTTL     time.Duration
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	SessionTTL        time.Duration
	StorageDir        string
	AssetDir          string
	AssetBaseURL      string
	TemplatesDir      string
	CompaniesFile     string
	MigrationsDir     string
	CORSOrigins       []string
	RunMigrations     bool
	MaxBodyBytes      int64
	MetricsEnabled    bool
	LogLevel          string

	SessionPurgeInterval time.Duration
	RetentionInterval    time.Duration
	DocumentRetention    time.Duration
}

// Load reads a .env file when one exists and then the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		Environment:       getEnv("APP_ENV", "development"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminTokenTTL:     getEnvDuration("ADMIN_TOKEN_TTL", 8*time.Hour),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		SessionTTL:        getEnvDuration("SESSION_TTL", 2*time.Hour),
		StorageDir:        getEnv("STORAGE_DIR", "generated"),
		AssetDir:          getEnv("ASSET_DIR", "static/images"),
		AssetBaseURL:      getEnv("ASSET_BASE_URL", "/static/images/"),
		TemplatesDir:      getEnv("TEMPLATES_DIR", ""),
		CompaniesFile:     getEnv("COMPANIES_FILE", ""),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "migrations"),
		CORSOrigins:       getEnvList("CORS_ORIGINS", nil),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
		LogLevel:          getEnv("LOG_LEVEL", "info"),

		SessionPurgeInterval: getEnvDuration("SESSION_PURGE_INTERVAL", 10*time.Minute),
		RetentionInterval:    getEnvDuration("RETENTION_INTERVAL", 24*time.Hour),
		DocumentRetention:    getEnvDuration("DOCUMENT_RETENTION", 0),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c Config) Validate() error {
	if c.IsProduction() {
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required in production")
		}
		if strings.TrimSpace(c.RedisAddr) == "" {
			return errors.New("REDIS_ADDR is required in production")
		}
		if len(strings.TrimSpace(c.JWTSecret)) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
	}
	if strings.TrimSpace(c.AdminPasswordHash) != "" && strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must be set when ADMIN_PASSWORD_HASH is configured")
	}
	if c.MaxBodyBytes < 1024 {
		return errors.New("MAX_BODY_BYTES must be at least 1024")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.DocumentRetention < 0 {
		return errors.New("DOCUMENT_RETENTION must not be negative")
	}
	if c.AdminTokenTTL <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_TTL must be positive, got %s", c.AdminTokenTTL)
	}
	return nil
}
