package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultAPIBase is the production Botshop API.
const DefaultAPIBase = "https://botshop-production.up.railway.app"

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Admin API
	APIBaseURL string
	AdminToken string // pre-seeded credential; prompted for when empty

	// HTTP client
	HTTPTimeout time.Duration // 0 disables the client timeout

	// Resilience
	MaxConcurrency int

	// Presentation
	Timezone   string
	LabelsFile string

	// Observability
	OTLPEndpoint string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		APIBaseURL: getEnv("BOTSHOP_API_BASE", DefaultAPIBase),
		AdminToken: getEnv("ADMIN_DASH_TOKEN", ""),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 30*time.Second),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),

		Timezone:   getEnv("DASH_TIMEZONE", "Asia/Jerusalem"),
		LabelsFile: getEnv("LABELS_FILE", ""),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DASH_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
