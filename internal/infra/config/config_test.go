package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, SourceStackExchange, cfg.Source.Kind)
	require.Equal(t, "stackoverflow", cfg.Source.StackExchange.Site)
	require.Equal(t, 20, cfg.Source.Limit)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
http:
  address: ":9090"
screen:
  queueSize: 8
  fetchTimeout: 3s
source:
  kind: memory
  limit: 5
  memory:
    - id: "1"
      title: "first"
      body: "body"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SOURCE_LIMIT", "7")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 8, cfg.Screen.QueueSize)
	require.Equal(t, 3*time.Second, cfg.Screen.FetchTimeout)
	require.Equal(t, SourceMemory, cfg.Source.Kind)
	require.Equal(t, 7, cfg.Source.Limit)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, []MemoryQuestion{{ID: "1", Title: "first", Body: "body"}}, cfg.Source.Memory)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: ["), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.ErrorContains(t, err, "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "unknown source", mutate: func(c *Config) { c.Source.Kind = "ftp" }, wantErr: "not supported"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Source.Kind = SourcePostgres }, wantErr: "source.postgres.dsn"},
		{name: "valkey without addr", mutate: func(c *Config) { c.Source.Kind = SourceValkey }, wantErr: "source.valkey.addr"},
		{name: "sqlite without path", mutate: func(c *Config) {
			c.Source.Kind = SourceSQLite
			c.Source.SQLite.Path = " "
		}, wantErr: "source.sqlite.path"},
		{name: "zero limit", mutate: func(c *Config) { c.Source.Limit = 0 }, wantErr: "source.limit"},
		{name: "rate limit burst", mutate: func(c *Config) { c.HTTP.RateLimit.Burst = 0 }, wantErr: "burst"},
		{name: "metrics path", mutate: func(c *Config) { c.Metrics.Path = "metrics" }, wantErr: "metrics.path"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
