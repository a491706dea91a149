package config

import (
	"os"
	"strconv"
	"time"
)

// Config maditrack (HTTP API) configuration
type Config struct {
	HTTP struct {
		Addr string
	}
	DBEnabled bool
	Database  DatabaseConfig
	Redis     struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	Signup struct {
		// RateLimitWindow: lookback window for the duplicate-signup guard.
		RateLimitWindow time.Duration
		// OrphanGracePeriod: organizations older than this with no principal
		// are swept by the reconciler.
		OrphanGracePeriod time.Duration
		// OrphanSweepInterval: how often the reconciler runs (0 disables it).
		OrphanSweepInterval time.Duration
	}
	Session struct {
		TTL time.Duration
	}
	Assistant AssistantConfig
}

// DatabaseConfig PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// AssistantConfig upstream AI-assistant service settings.
// When BaseURL is empty the chat endpoint answers with a local placeholder.
type AssistantConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// Default to true for local dev: if DB is unavailable, maditrack falls
	// back to stub handlers so the front-end still renders.
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "maditrack")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Signup.RateLimitWindow = parseDuration(getEnv("SIGNUP_RATE_LIMIT_WINDOW", "24h"), 24*time.Hour)
	cfg.Signup.OrphanGracePeriod = parseDuration(getEnv("SIGNUP_ORPHAN_GRACE", "1h"), time.Hour)
	cfg.Signup.OrphanSweepInterval = parseDuration(getEnv("SIGNUP_ORPHAN_SWEEP_INTERVAL", "15m"), 15*time.Minute)

	cfg.Session.TTL = parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour)

	cfg.Assistant.BaseURL = getEnv("ASSISTANT_BASE_URL", "")
	cfg.Assistant.APIKey = getEnv("ASSISTANT_API_KEY", "")
	cfg.Assistant.Timeout = parseDuration(getEnv("ASSISTANT_TIMEOUT", "30s"), 30*time.Second)

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
