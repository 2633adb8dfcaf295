// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/neomorfeo/homebase/internal/adapter/otel"
)

// Config is the process configuration.
type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    string
	CORSOrigins  []string
	StatsTTL     time.Duration
	Telemetry    otel.Config
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables with defaults.
func FromEnv() (Config, error) {
	ttl, err := time.ParseDuration(envOrDefault("STATS_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parsing STATS_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("STATS_TTL must be positive, got %s", ttl)
	}

	env := envOrDefault("OTEL_ENVIRONMENT", "development")
	cfg := Config{
		Port:         envOrDefault("PORT", "8080"),
		DatabasePath: envOrDefault("DATABASE_PATH", "homebase.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		CORSOrigins:  splitList(os.Getenv("CORS_ORIGINS")),
		StatsTTL:     ttl,
		Telemetry: otel.Config{
			ServiceName:    envOrDefault("OTEL_SERVICE_NAME", "homebase"),
			ServiceVersion: envOrDefault("OTEL_SERVICE_VERSION", "0.1.0"),
			Environment:    env,
			Exporter:       envOrDefault("OTEL_EXPORTER", otel.ExporterStdout),
			Insecure:       env == "development",
		},
	}

	if cfg.JWTSecret == "" {
		if env != "development" {
			return Config{}, errors.New("JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = "dev-secret"
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
