package config

import (
	"fmt"
	"io"

	"github.com/ilyakaznacheev/cleanenv"
)

// WithEnv applies environment variable overrides. Unset variables keep the
// current value.
//
//	PORT             - listen port (default: "7654")
//	ENVIRONMENT      - runtime environment (default: "development")
//	STORAGE_TYPE     - "memory" (default) or "sqlite"
//	LOG_LEVEL        - debug, info (default), warn, error
//	LOG_FORMAT       - "text" (default) or "json"
//	MAX_BODY_BYTES   - request body limit (default: 1048576)
//	SHUTDOWN_TIMEOUT - graceful shutdown deadline (default: "10s")
func WithEnv() Option {
	return func(c *ServerConfig) error {
		if err := cleanenv.ReadEnv(c); err != nil {
			return fmt.Errorf("read environment: %w", err)
		}
		return nil
	}
}

// WithConfigFile reads a YAML, JSON, TOML or .env file, then applies
// environment overrides on top of it.
func WithConfigFile(path string) Option {
	return func(c *ServerConfig) error {
		if err := cleanenv.ReadConfig(path, c); err != nil {
			return fmt.Errorf("read config file %s: %w", path, err)
		}
		return nil
	}
}

// WriteUsage describes every environment variable the server reads.
func WriteUsage(w io.Writer) {
	cfg := defaults()
	cleanenv.FUsage(w, &cfg, nil)()
}
