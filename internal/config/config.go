// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFormat selects the log handler: "json" (default) or "text" for
	// coloured human-readable output during development.
	LogFormat string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RootDomain is the platform's registered domain. Hosts one label below it
	// address a business micro-site. Defaults to "localhost".
	RootDomain string

	// ReservedSubdomains are labels under RootDomain that always address the
	// main site. Defaults to ["www", "api"].
	ReservedSubdomains []string

	// SiteURL is the public base URL of the main site, used in the sitemap.
	SiteURL string

	// Places configures the Google Places proxy.
	Places PlacesConfig

	// AdminToken guards the admin routes. Empty disables them entirely.
	AdminToken string

	// MaxBodyBytes caps request body sizes. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RateLimitPerMinute is the per-IP request budget for the places proxy
	// and analytics routes. Defaults to 60.
	RateLimitPerMinute int
}

// PlacesConfig holds the Google Places client settings.
type PlacesConfig struct {
	// APIKey is the Places API key. Empty disables the proxy.
	APIKey string
	// BaseURL is the Places API endpoint.
	BaseURL string
	// CacheSize is the number of place details kept in memory.
	CacheSize int
	// CacheTTL is how long a cached place details response stays valid.
	CacheTTL time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("ROOT_DOMAIN", "localhost")
	v.SetDefault("RESERVED_SUBDOMAINS", "www,api")
	v.SetDefault("SITE_URL", "http://localhost:5173")
	v.SetDefault("GOOGLE_PLACES_BASE_URL", "https://places.googleapis.com/v1")
	v.SetDefault("PLACES_CACHE_SIZE", 256)
	v.SetDefault("PLACES_CACHE_TTL", 10*time.Minute)
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	cfg := Config{
		Port:               v.GetString("PORT"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		CORSOrigins:        splitCSV(v.GetString("CORS_ORIGINS")),
		RootDomain:         v.GetString("ROOT_DOMAIN"),
		ReservedSubdomains: splitCSV(v.GetString("RESERVED_SUBDOMAINS")),
		SiteURL:            strings.TrimRight(v.GetString("SITE_URL"), "/"),
		Places: PlacesConfig{
			APIKey:    v.GetString("GOOGLE_PLACES_API_KEY"),
			BaseURL:   strings.TrimRight(v.GetString("GOOGLE_PLACES_BASE_URL"), "/"),
			CacheSize: v.GetInt("PLACES_CACHE_SIZE"),
			CacheTTL:  v.GetDuration("PLACES_CACHE_TTL"),
		},
		AdminToken:         v.GetString("ADMIN_TOKEN"),
		MaxBodyBytes:       v.GetInt64("MAX_BODY_BYTES"),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
	}

	var missing []string

	cfg.DatabaseURL = v.GetString("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be json or text, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
