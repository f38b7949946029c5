// Package config handles application configuration and environment loading.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration for generation and the preview server.
type Config struct {
	SidebarsPath string // sidebars file, YAML or JSON (default "sidebars.yaml")
	DocsPath     string // doc metadata file (optional)
	I18nDir      string // directory holding <locale>/code.json catalogs (optional)
	Locale       string // active locale (default "en")
	SiteURL      string // absolute site URL; same-host links count as internal
	OutDir       string // output directory for generated pages (default "build")
	StaticBase   string // URL prefix of static assets on generated pages (default "/static")
	Concurrency  int    // pages rendered in parallel (default 4)

	ListenAddr      string        // preview server listen address (default ":8080")
	ShutdownTimeout time.Duration // graceful shutdown grace period (default 5s)
	LogLevel        string        // log level: debug, info, warn, error (default "info")
	Env             string        // environment: "development" (default) or "production"

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 50)
	RateLimitBurst int     // burst capacity (default 100)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// NewLogger returns the process logger: JSON in production, text otherwise.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SidebarsPath) == "" {
		return fmt.Errorf("DOCINDEX_SIDEBARS must not be empty")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("DOCINDEX_CONCURRENCY must be at least 1")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit settings must be positive")
	}
	if c.IsProduction() && len(c.CORSAllowedOrigins) == 1 && c.CORSAllowedOrigins[0] == "*" {
		return fmt.Errorf("CORS wildcard (*) is not allowed in production (DOCINDEX_ENV=production)")
	}
	return nil
}

// LoadFromEnv loads configuration from DOCINDEX_* environment variables and
// applies defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		SidebarsPath: os.Getenv("DOCINDEX_SIDEBARS"),
		DocsPath:     os.Getenv("DOCINDEX_DOCS"),
		I18nDir:      os.Getenv("DOCINDEX_I18N_DIR"),
		Locale:       os.Getenv("DOCINDEX_LOCALE"),
		SiteURL:      strings.TrimSpace(os.Getenv("DOCINDEX_SITE_URL")),
		OutDir:       os.Getenv("DOCINDEX_OUT_DIR"),
		StaticBase:   os.Getenv("DOCINDEX_STATIC_BASE"),
		ListenAddr:   os.Getenv("DOCINDEX_LISTEN_ADDR"),
		LogLevel:     os.Getenv("DOCINDEX_LOG_LEVEL"),
		Env:          os.Getenv("DOCINDEX_ENV"),
	}

	if v := os.Getenv("DOCINDEX_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse DOCINDEX_CONCURRENCY: %w", err)
		}
		cfg.Concurrency = n
	}
	if v := os.Getenv("DOCINDEX_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse DOCINDEX_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	// Rate limiting
	if v := os.Getenv("DOCINDEX_RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		} else {
			cfg.Warnings = append(cfg.Warnings, "ignoring invalid DOCINDEX_RATE_LIMIT_RPS "+strconv.Quote(v))
		}
	}
	if v := os.Getenv("DOCINDEX_RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		} else {
			cfg.Warnings = append(cfg.Warnings, "ignoring invalid DOCINDEX_RATE_LIMIT_BURST "+strconv.Quote(v))
		}
	}

	// CORS
	if v := os.Getenv("DOCINDEX_CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = compactNonEmpty(origins)
	}

	// Defaults
	if cfg.SidebarsPath == "" {
		cfg.SidebarsPath = "sidebars.yaml"
	}
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "build"
	}
	if cfg.StaticBase == "" {
		cfg.StaticBase = "/static"
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 4
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 50
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 100
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.DocsPath == "" {
		cfg.Warnings = append(cfg.Warnings, "DOCINDEX_DOCS not set; link cards will have no descriptions")
	}

	return cfg, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func compactNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
