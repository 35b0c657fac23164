package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "postgres url", mutate: func(c *Config) { c.DatabaseURL = "postgres://u:p@localhost:5432/posts" }},
		{name: "badger url", mutate: func(c *Config) { c.DatabaseURL = "badger://" }},
		{name: "json logs", mutate: func(c *Config) { c.LogFormat = "json" }},
		{name: "empty addr", mutate: func(c *Config) { c.Addr = "" }, wantErr: true},
		{name: "empty database url", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: true},
		{name: "unknown scheme", mutate: func(c *Config) { c.DatabaseURL = "mysql://localhost/posts" }, wantErr: true},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.ShutdownTimeout = 0 }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "sqlite://data/postboard.db", cfg.DatabaseURL)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("POSTBOARD_TEST_FROM_FILE=file\nPOSTBOARD_TEST_PRESET=file\n"), 0o600))

	t.Setenv("POSTBOARD_TEST_PRESET", "env")
	t.Cleanup(func() { os.Unsetenv("POSTBOARD_TEST_FROM_FILE") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "file", os.Getenv("POSTBOARD_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("POSTBOARD_TEST_PRESET"))
}

func TestLoadDotEnvMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BAD-KEY=value\n"), 0o600))

	assert.Error(t, LoadDotEnv(path))
}
