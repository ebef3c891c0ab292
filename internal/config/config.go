package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // Single user, no login (default)
	AuthModeLocal AuthMode = "local" // Local user database with sessions
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		OpenLibrary
		Covers
		Dashboard
		Metrics
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		LogLevel                 string
		LogPretty                bool // Console output instead of JSON
	}
	Database struct {
		Driver   string // sqlite or postgres
		Path     string // SQLite file
		DSN      string // PostgreSQL connection string
		LogLevel string
	}
	Auth struct {
		Mode            AuthMode
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS

		MaxLoginAttempts int           // Failed attempts before lockout
		RateLimitWindow  time.Duration // Window for counting attempts per IP
		LockoutDuration  time.Duration
	}
	OpenLibrary struct {
		BaseURL           string
		UserAgent         string
		RequestsPerSecond float64
		SearchLimit       int
		Timeout           time.Duration
		BreakerFailures   uint32
		BreakerCooldown   time.Duration
	}
	Covers struct {
		Dir string // Local cover cache; empty disables caching
	}
	Dashboard struct {
		Limit int // Books per ranking
	}
	Metrics struct {
		Enabled bool
	}
	Demo struct {
		Enabled bool // Read-only showcase: writes are refused
	}
)

// NewConfig reads the configuration from the environment. A .env file in
// the working directory, when present, is loaded first; variables already
// set in the environment win.
func NewConfig() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)

	v.SetDefault("database_driver", DefaultDatabaseDriver)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("auth_session_secret", "")      // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h") // 24 hours
	v.SetDefault("auth_bcrypt_cost", 12)         // bcrypt cost factor
	v.SetDefault("auth_secure_cookies", true)    // HTTPS-only cookies
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	// OpenLibrary defaults
	v.SetDefault("openlibrary_base_url", "https://openlibrary.org")
	v.SetDefault("openlibrary_user_agent", "bookr/1.0 (https://github.com/mrlokans/bookr)")
	v.SetDefault("openlibrary_rps", 1.0)
	v.SetDefault("openlibrary_search_limit", 10)
	v.SetDefault("openlibrary_timeout", "10s")
	v.SetDefault("openlibrary_breaker_failures", 5)
	v.SetDefault("openlibrary_breaker_cooldown", "30s")

	v.SetDefault("covers_dir", DefaultCoversDir)
	v.SetDefault("dashboard_limit", 5)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			LogLevel:                 v.GetString("LOG_LEVEL"),
			LogPretty:                v.GetBool("LOG_PRETTY"),
		},
		Database: Database{
			Driver:   v.GetString("DATABASE_DRIVER"),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Auth: Auth{
			Mode:             AuthMode(v.GetString("AUTH_MODE")),
			SessionSecret:    v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime:  v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:    v.GetBool("AUTH_SECURE_COOKIES"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		OpenLibrary: OpenLibrary{
			BaseURL:           v.GetString("OPENLIBRARY_BASE_URL"),
			UserAgent:         v.GetString("OPENLIBRARY_USER_AGENT"),
			RequestsPerSecond: v.GetFloat64("OPENLIBRARY_RPS"),
			SearchLimit:       v.GetInt("OPENLIBRARY_SEARCH_LIMIT"),
			Timeout:           v.GetDuration("OPENLIBRARY_TIMEOUT"),
			BreakerFailures:   v.GetUint32("OPENLIBRARY_BREAKER_FAILURES"),
			BreakerCooldown:   v.GetDuration("OPENLIBRARY_BREAKER_COOLDOWN"),
		},
		Covers: Covers{
			Dir: v.GetString("COVERS_DIR"),
		},
		Dashboard: Dashboard{
			Limit: v.GetInt("DASHBOARD_LIMIT"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}
