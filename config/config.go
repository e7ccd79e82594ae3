package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the HTTP server and integration settings
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"golf-club-api"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	// Level is LogLevel resolved by Load
	Level slog.Level

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	CORS  CORSConfig  `envPrefix:"CORS_"`
	Audit AuditConfig `envPrefix:"AUDIT_"`
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// CORSConfig controls the CORS middleware
type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`
	MaxAge         int      `env:"MAX_AGE" envDefault:"86400"`
}

// AuditConfig controls publication of management events
type AuditConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Stream  string `env:"STREAM" envDefault:"golf-club-audit"`
}

// RedisConfig holds the Redis connection used by the audit publisher
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// LoadDotEnv loads a .env file if present. A missing file is not an error.
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}
}

// Load parses the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	level, err := ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	cfg.Level = level
	return cfg, nil
}

// ParseLogLevel maps LOG_LEVEL values onto slog levels
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (supported: debug, info, warn, error)", level)
	}
}
