package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds understood by the question source providers.
const (
	SourceMemory        = "memory"
	SourceStackExchange = "stackexchange"
	SourcePostgres      = "postgres"
	SourceSQLite        = "sqlite"
	SourceValkey        = "valkey"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
	Screen  ScreenConfig  `yaml:"screen"`
	Source  SourceConfig  `yaml:"source"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// ScreenConfig tunes the single-threaded screen host.
type ScreenConfig struct {
	QueueSize    int           `yaml:"queueSize"`
	FetchTimeout time.Duration `yaml:"fetchTimeout"`
}

// SourceConfig selects and configures where last-active questions come from.
type SourceConfig struct {
	Kind          string              `yaml:"kind"`
	Limit         int                 `yaml:"limit"`
	StackExchange StackExchangeConfig `yaml:"stackExchange"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	SQLite        SQLiteConfig        `yaml:"sqlite"`
	Valkey        ValkeyConfig        `yaml:"valkey"`
	Memory        []MemoryQuestion    `yaml:"memory"`
}

// StackExchangeConfig points at the public question API.
type StackExchangeConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Site    string        `yaml:"site"`
	Key     string        `yaml:"key"`
	Timeout time.Duration `yaml:"timeout"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SQLiteConfig points at a local database file.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// ValkeyConfig contains connection information for the published question list.
type ValkeyConfig struct {
	Addr string `yaml:"addr"`
	Key  string `yaml:"key"`
}

// MemoryQuestion seeds the in-memory source.
type MemoryQuestion struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SCREEN_FETCH_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Screen.FetchTimeout = parsed
		}
	}
	if v := os.Getenv("SOURCE_KIND"); v != "" {
		cfg.Source.Kind = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("SOURCE_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Source.Limit = parsed
		}
	}
	if v := os.Getenv("STACKEXCHANGE_BASE_URL"); v != "" {
		cfg.Source.StackExchange.BaseURL = v
	}
	if v := os.Getenv("STACKEXCHANGE_SITE"); v != "" {
		cfg.Source.StackExchange.Site = v
	}
	if v := os.Getenv("STACKEXCHANGE_KEY"); v != "" {
		cfg.Source.StackExchange.Key = v
	}
	if v := os.Getenv("SOURCE_POSTGRES_DSN"); v != "" {
		cfg.Source.Postgres.DSN = v
	}
	if v := os.Getenv("SOURCE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Source.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("SOURCE_SQLITE_PATH"); v != "" {
		cfg.Source.SQLite.Path = v
	}
	if v := os.Getenv("SOURCE_VALKEY_ADDR"); v != "" {
		cfg.Source.Valkey.Addr = v
	}
	if v := os.Getenv("SOURCE_VALKEY_KEY"); v != "" {
		cfg.Source.Valkey.Key = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             20,
			},
		},
		Log: LogConfig{
			Level:   "info",
			Service: "lastactive",
		},
		Screen: ScreenConfig{
			QueueSize:    64,
			FetchTimeout: 15 * time.Second,
		},
		Source: SourceConfig{
			Kind:  SourceStackExchange,
			Limit: 20,
			StackExchange: StackExchangeConfig{
				BaseURL: "https://api.stackexchange.com/2.3",
				Site:    "stackoverflow",
				Timeout: 10 * time.Second,
			},
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			SQLite: SQLiteConfig{
				Path: "./data/questions.db",
			},
			Valkey: ValkeyConfig{
				Key: "questions:last_active",
			},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.Screen.QueueSize <= 0 {
		return errors.New("screen.queueSize must be positive")
	}
	if c.Screen.FetchTimeout < 0 {
		return errors.New("screen.fetchTimeout cannot be negative")
	}
	if c.Source.Limit <= 0 {
		return errors.New("source.limit must be positive")
	}
	switch c.Source.Kind {
	case SourceMemory:
	case SourceStackExchange:
		if strings.TrimSpace(c.Source.StackExchange.BaseURL) == "" {
			return errors.New("source.stackExchange.baseUrl cannot be empty")
		}
		if strings.TrimSpace(c.Source.StackExchange.Site) == "" {
			return errors.New("source.stackExchange.site cannot be empty")
		}
	case SourcePostgres:
		if strings.TrimSpace(c.Source.Postgres.DSN) == "" {
			return errors.New("source.postgres.dsn cannot be empty when kind is postgres")
		}
	case SourceSQLite:
		if strings.TrimSpace(c.Source.SQLite.Path) == "" {
			return errors.New("source.sqlite.path cannot be empty when kind is sqlite")
		}
	case SourceValkey:
		if strings.TrimSpace(c.Source.Valkey.Addr) == "" {
			return errors.New("source.valkey.addr cannot be empty when kind is valkey")
		}
		if strings.TrimSpace(c.Source.Valkey.Key) == "" {
			return errors.New("source.valkey.key cannot be empty when kind is valkey")
		}
	default:
		return fmt.Errorf("source.kind %q is not supported", c.Source.Kind)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	return nil
}
