package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseType represents the type of database to use
type DatabaseType string

const (
	DatabaseTypeSQLite   DatabaseType = "sqlite"
	DatabaseTypePostgres DatabaseType = "postgres"
)

// Config holds database connection configuration
type Config struct {
	Type DatabaseType `env:"DB_TYPE" envDefault:"sqlite"`

	// SQLite file path, or ":memory:"
	DatabasePath string `env:"DB_PATH" envDefault:"./data/golf_club.db"`

	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	Username string `env:"DB_USERNAME" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Database string `env:"DB_NAME" envDefault:"golf_club"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Zero pool sizes are replaced by per-dialect defaults
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"30m"`

	RunMigration bool `env:"RUN_MIGRATION" envDefault:"true"`
}

// NewDatabaseConfig creates a new database configuration from environment variables.
// SQLite is the default; DB_TYPE=postgres selects PostgreSQL.
func NewDatabaseConfig() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse database configuration: %w", err)
	}

	switch strings.ToLower(string(config.Type)) {
	case "postgres", "postgresql":
		config.Type = DatabaseTypePostgres
	case "sqlite", "":
		config.Type = DatabaseTypeSQLite
	default:
		slog.Warn("Unknown DB_TYPE, defaulting to sqlite", "db_type", config.Type)
		config.Type = DatabaseTypeSQLite
	}

	if config.Type == DatabaseTypeSQLite {
		// SQLite serialises writes; a single connection avoids "database is locked"
		config.MaxOpenConns = defaultInt(config.MaxOpenConns, 1)
		config.MaxIdleConns = defaultInt(config.MaxIdleConns, 1)

		if config.DatabasePath != ":memory:" {
			dbDir := filepath.Dir(config.DatabasePath)
			if err := os.MkdirAll(dbDir, 0o755); err != nil {
				slog.Warn("Failed to create database directory", "path", dbDir, "error", err)
			}
		}

		slog.Info("Database configuration (SQLite)",
			"database_path", config.DatabasePath,
			"max_open_conns", config.MaxOpenConns,
		)
	} else {
		config.MaxOpenConns = defaultInt(config.MaxOpenConns, 25)
		config.MaxIdleConns = defaultInt(config.MaxIdleConns, 5)

		slog.Info("Database configuration (PostgreSQL)",
			"host", config.Host,
			"port", config.Port,
			"database", config.Database,
			"username", config.Username,
			"sslmode", config.SSLMode,
			"max_open_conns", config.MaxOpenConns,
			"max_idle_conns", config.MaxIdleConns,
		)
	}

	return config, nil
}

// DSN returns the PostgreSQL connection URL with credentials escaped
func (c *Config) DSN() string {
	dsnURL := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:   c.Database,
	}
	q := dsnURL.Query()
	q.Set("sslmode", c.SSLMode)
	dsnURL.RawQuery = q.Encode()
	return dsnURL.String()
}

// ConnectGormDB opens the configured database, applies pool settings, registers
// query metrics and, when enabled, runs migrations
func ConnectGormDB(config *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if config.Type == DatabaseTypePostgres {
		slog.Info("Attempting GORM PostgreSQL database connection",
			"host", config.Host,
			"port", config.Port,
			"database", config.Database)
		dialector = postgres.Open(config.DSN())
	} else {
		slog.Info("Attempting GORM SQLite database connection", "path", config.DatabasePath)
		dialector = sqlite.Open(config.DatabasePath)
	}

	gormDB, err := Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to open GORM %s database connection: %w", config.Type, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if config.RunMigration {
		if err := Migrate(gormDB); err != nil {
			return nil, err
		}
	}

	slog.Info("GORM database connection established successfully", "type", config.Type)
	return gormDB, nil
}

// Open creates a GORM handle with driver error translation and query metrics enabled
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	if err := db.Use(NewQueryMetricsPlugin()); err != nil {
		return nil, fmt.Errorf("failed to register query metrics: %w", err)
	}
	return db, nil
}

func defaultInt(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
