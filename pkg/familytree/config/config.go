package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/tendant/family-tree/pkg/familytree"
	"github.com/tendant/family-tree/pkg/familytree/repo/memory"
	"github.com/tendant/family-tree/pkg/familytree/repo/sqlite"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:            "7654",
		Environment:     "development",
		StorageType:     "memory",
		LogLevel:        "info",
		LogFormat:       "text",
		MaxBodyBytes:    1 << 20,
		ShutdownTimeout: 10 * time.Second,
	}
}

// ServerConfig represents server configuration for the family-tree service
type ServerConfig struct {
	Port        string `yaml:"port" json:"port" toml:"port" env:"PORT" env-description:"HTTP listen port"`
	Environment string `yaml:"environment" json:"environment" toml:"environment" env:"ENVIRONMENT" env-description:"development, production or testing"`

	// Storage configuration
	StorageType string `yaml:"storage_type" json:"storage_type" toml:"storage_type" env:"STORAGE_TYPE" env-description:"record store: memory or sqlite"`

	// Logging
	LogLevel  string `yaml:"log_level" json:"log_level" toml:"log_level" env:"LOG_LEVEL" env-description:"debug, info, warn or error"`
	LogFormat string `yaml:"log_format" json:"log_format" toml:"log_format" env:"LOG_FORMAT" env-description:"text or json"`

	// Server options
	MaxBodyBytes    int64         `yaml:"max_body_bytes" json:"max_body_bytes" toml:"max_body_bytes" env:"MAX_BODY_BYTES" env-description:"largest accepted request body"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-description:"graceful shutdown deadline"`
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.StorageType != "memory" && c.StorageType != "sqlite" {
		return fmt.Errorf("storage_type must be 'memory' or 'sqlite', got %q", c.StorageType)
	}

	if _, err := c.logLevel(); err != nil {
		return err
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be 'text' or 'json', got %q", c.LogFormat)
	}

	if c.MaxBodyBytes <= 0 {
		return errors.New("max_body_bytes must be positive")
	}

	return nil
}

// BuildStore creates the record store selected by StorageType. The returned
// close function releases it; both stores discard their records on close.
func (c *ServerConfig) BuildStore(ctx context.Context) (familytree.Store, func() error, error) {
	switch c.StorageType {
	case "memory":
		return memory.New(), func() error { return nil }, nil
	case "sqlite":
		repo, err := sqlite.New(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build sqlite store: %w", err)
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}
}

// BuildLogger creates a slog logger writing to w in the configured format.
func (c *ServerConfig) BuildLogger(w io.Writer) *slog.Logger {
	level, err := c.logLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c *ServerConfig) logLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// WithPort overrides the listen port.
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		c.Port = port
		return nil
	}
}

// WithStorageType selects the record store ("memory" or "sqlite").
func WithStorageType(storageType string) Option {
	return func(c *ServerConfig) error {
		c.StorageType = storageType
		return nil
	}
}
