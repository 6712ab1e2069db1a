// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "ledgerline-dev-secret"

// Config holds the server settings. Every field maps to one environment
// variable, see Load.
type Config struct {
	Port string
	Env  string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	JWTSecret        string
	JWTExpirationDur time.Duration

	// PipelineAPIKey guards /api/v1/pipeline. Empty disables those routes.
	PipelineAPIKey string

	// ScheduleCacheSize bounds the compiled recurrence rules kept in memory.
	ScheduleCacheSize int
}

var appConfig *Config

// env collects parse problems so Load can report all of them at once.
type env struct {
	problems []string
}

func (e *env) str(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (e *env) duration(key string, fallback time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		e.problems = append(e.problems, fmt.Sprintf("%s: %q is not a positive duration", key, raw))
		return fallback
	}
	return d
}

func (e *env) positiveInt(key string, fallback int) int {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		e.problems = append(e.problems, fmt.Sprintf("%s: %q is not a positive integer", key, raw))
		return fallback
	}
	return n
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	e := &env{}
	cfg := &Config{
		Port: e.str("PORT", "8080"),
		Env:  e.str("ENV", "development"),

		DBDriver:   strings.ToLower(e.str("DB_DRIVER", "postgres")),
		DBHost:     e.str("DB_HOST", "localhost"),
		DBPort:     e.str("DB_PORT", "5432"),
		DBUser:     e.str("DB_USER", "ledgerline"),
		DBPassword: e.str("DB_PASSWORD", "ledgerline"),
		DBName:     e.str("DB_NAME", "ledgerline"),
		DBSSLMode:  e.str("DB_SSLMODE", "disable"),
		SQLitePath: e.str("SQLITE_PATH", "ledgerline.db"),

		JWTSecret:        e.str("JWT_SECRET", devJWTSecret),
		JWTExpirationDur: e.duration("JWT_EXPIRES_IN", 24*time.Hour),

		PipelineAPIKey: e.str("PIPELINE_API_KEY", ""),

		ScheduleCacheSize: e.positiveInt("SCHEDULE_CACHE_SIZE", 1024),
	}
	if len(e.problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(e.problems, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appConfig = cfg
	return cfg, nil
}

// Validate checks settings that depend on each other.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid configuration: DB_DRIVER %q must be postgres or sqlite", c.DBDriver)
	}
	if c.IsProduction() && c.JWTSecret == devJWTSecret {
		return fmt.Errorf("invalid configuration: JWT_SECRET must be set in production")
	}
	return nil
}

// IsProduction reports whether the server runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Get returns the loaded configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		cfg, err := Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		appConfig = cfg
	}
	return appConfig
}

// Set replaces the loaded configuration. Tests use it to pin secrets.
func Set(c *Config) {
	appConfig = c
}
