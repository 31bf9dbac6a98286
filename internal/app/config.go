package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/emiliopalmerini/labgenie/internal/adapters/gemini"
	"github.com/emiliopalmerini/labgenie/internal/adapters/otel"
	"github.com/emiliopalmerini/labgenie/internal/adapters/sqlite"
	"github.com/emiliopalmerini/labgenie/internal/util"
)

// EnvPrefix namespaces the environment variables read by LoadConfig.
const EnvPrefix = "LABGENIE"

// Config is built once at startup and passed to constructors. Environment
// variables are LABGENIE_<tag>; GEMINI_API_KEY is also read unprefixed.
type Config struct {
	Addr              string        `yaml:"addr" envconfig:"ADDR"`
	DatabaseDriver    string        `yaml:"database_driver" envconfig:"DB_DRIVER"`
	DatabasePath      string        `yaml:"database_path" envconfig:"DB_PATH"`
	DatabaseURL       string        `yaml:"database_url" envconfig:"DB_URL"`
	DatabaseAuthToken string        `yaml:"database_auth_token" envconfig:"DB_AUTH_TOKEN"`
	ExportDir         string        `yaml:"export_dir" envconfig:"EXPORT_DIR"`
	GeminiAPIKey      string        `yaml:"gemini_api_key" envconfig:"GEMINI_API_KEY"`
	GeminiModel       string        `yaml:"gemini_model" envconfig:"GEMINI_MODEL"`
	GenerationTimeout time.Duration `yaml:"generation_timeout" envconfig:"GENERATION_TIMEOUT"`
	SecretKey         string        `yaml:"secret_key" envconfig:"SECRET_KEY"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" envconfig:"MAX_BODY_BYTES"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	LogLevel          string        `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat         string        `yaml:"log_format" envconfig:"LOG_FORMAT"`
	OTEL              otel.Config   `yaml:"otel" envconfig:"OTEL"`
}

// DefaultConfig returns the built-in defaults. Paths live under the XDG
// data directory.
func DefaultConfig() *Config {
	dataDir, err := util.GetXDGDataDir()
	if err != nil {
		dataDir = "."
	}

	return &Config{
		Addr:              ":5000",
		DatabaseDriver:    sqlite.DriverLibSQL,
		DatabasePath:      filepath.Join(dataDir, "experiments.db"),
		ExportDir:         filepath.Join(dataDir, "records"),
		GeminiModel:       gemini.DefaultModel,
		GenerationTimeout: 30 * time.Second,
		SecretKey:         "supersecretkey",
		MaxBodyBytes:      16 << 20,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
	}
}

// LoadConfig layers defaults, the optional YAML file at path and the
// environment, later layers winning. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenDatabase opens the configured database and applies migrations. A
// DatabaseURL selects a remote Turso database over the local file.
func (c *Config) OpenDatabase(ctx context.Context) (*sql.DB, error) {
	if c.DatabaseURL != "" {
		return sqlite.OpenRemote(ctx, c.DatabaseURL, c.DatabaseAuthToken)
	}
	return sqlite.Open(ctx, c.DatabaseDriver, c.DatabasePath)
}

// ConnectDatabase is OpenDatabase without migrations.
func (c *Config) ConnectDatabase(ctx context.Context) (*sql.DB, error) {
	if c.DatabaseURL != "" {
		return sqlite.ConnectRemote(ctx, c.DatabaseURL, c.DatabaseAuthToken)
	}
	return sqlite.Connect(ctx, c.DatabaseDriver, c.DatabasePath)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case sqlite.DriverLibSQL, sqlite.DriverSQLite:
	default:
		return fmt.Errorf("invalid database driver: %s (valid: %s, %s)", c.DatabaseDriver, sqlite.DriverLibSQL, sqlite.DriverSQLite)
	}
	if c.DatabaseURL != "" && c.DatabaseDriver != sqlite.DriverLibSQL {
		return fmt.Errorf("database URL requires the %s driver", sqlite.DriverLibSQL)
	}
	if c.DatabaseURL == "" && c.DatabasePath == "" {
		return fmt.Errorf("database path not configured")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s (valid: json, console)", c.LogFormat)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("generation timeout must be positive, got %s", c.GenerationTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}
