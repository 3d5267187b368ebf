package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/family-tree/pkg/familytree"
	"github.com/tendant/family-tree/pkg/familytree/repo/memory"
	"github.com/tendant/family-tree/pkg/familytree/repo/sqlite"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7654", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Options(t *testing.T) {
	cfg, err := Load(nil, WithPort("9000"), WithStorageType("sqlite"))
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StorageType)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"empty port", func(c *ServerConfig) { c.Port = "" }},
		{"unknown storage", func(c *ServerConfig) { c.StorageType = "postgres" }},
		{"unknown log level", func(c *ServerConfig) { c.LogLevel = "verbose" }},
		{"unknown log format", func(c *ServerConfig) { c.LogFormat = "xml" }},
		{"non-positive body limit", func(c *ServerConfig) { c.MaxBodyBytes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWithEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("STORAGE_TYPE", "sqlite")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load(WithEnv())
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StorageType)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	// Unset variables keep their defaults.
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestWithEnv_Invalid(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "mongo")
	_, err := Load(WithEnv())
	assert.Error(t, err)

	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("MAX_BODY_BYTES", "lots")
	_, err = Load(WithEnv())
	assert.Error(t, err)
}

func TestWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "familytree.yaml")
	content := "port: \"7000\"\nstorage_type: sqlite\nlog_format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PORT", "7001")

	cfg, err := Load(WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, "7001", cfg.Port, "environment overrides the file")
	assert.Equal(t, "sqlite", cfg.StorageType)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestWithConfigFile_Missing(t *testing.T) {
	_, err := Load(WithConfigFile(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Error(t, err)
}

func TestBuildStore(t *testing.T) {
	ctx := context.Background()

	for storageType, want := range map[string]familytree.Store{
		"memory": &memory.Repository{},
		"sqlite": &sqlite.Repository{},
	} {
		t.Run(storageType, func(t *testing.T) {
			cfg, err := Load(WithStorageType(storageType))
			require.NoError(t, err)

			store, closeStore, err := cfg.BuildStore(ctx)
			require.NoError(t, err)
			defer closeStore()
			assert.IsType(t, want, store)

			person := &familytree.Person{ID: "p1", DisplayName: "Ada", Events: []string{}}
			require.NoError(t, familytree.SaveItem(ctx, store, person, person.ID))
			fetched, err := familytree.GetItem(ctx, store, familytree.PersonType, "p1")
			require.NoError(t, err)
			assert.Equal(t, person, fetched)
		})
	}
}

func TestBuildLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := defaults()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	logger := cfg.BuildLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"value"`)
}

func TestWriteUsage(t *testing.T) {
	var buf bytes.Buffer
	WriteUsage(&buf)

	out := buf.String()
	for _, name := range []string{"PORT", "STORAGE_TYPE", "LOG_LEVEL"} {
		assert.True(t, strings.Contains(out, name), "usage mentions %s", name)
	}
}
