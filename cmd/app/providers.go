package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/lastactive/internal/domain/questions"
	"github.com/yanqian/lastactive/internal/infra/config"
	"github.com/yanqian/lastactive/internal/infra/metrics"
	"github.com/yanqian/lastactive/internal/infra/questionsource"
	"github.com/yanqian/lastactive/internal/infra/stackexchange"
	"github.com/yanqian/lastactive/internal/interface/screen"
	"github.com/yanqian/lastactive/internal/platform/dispatch"
	"github.com/yanqian/lastactive/internal/screens/questionslist"
	"github.com/yanqian/lastactive/pkg/logger"
)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Service)
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

func provideLoop(cfg *config.Config, logger *slog.Logger) *dispatch.Loop {
	return dispatch.NewLoop(cfg.Screen.QueueSize, logger)
}

func provideHost(cfg *config.Config, loop *dispatch.Loop, controller *questionslist.Controller, view *screen.HeadlessView, recorder *screen.Recorder, logger *slog.Logger) (*screen.Host, func()) {
	host := screen.NewHost(screen.Config{FetchTimeout: cfg.Screen.FetchTimeout}, loop, controller, view, recorder, logger)
	return host, host.Close
}

// provideEndpoint selects the question source named by source.kind and instruments it.
func provideEndpoint(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (questions.Endpoint, func(), error) {
	endpoint, cleanup, err := openSource(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Metrics.Enabled {
		return endpoint, cleanup, nil
	}
	return metrics.Instrument(endpoint, metrics.NewFetchMetrics(reg, cfg.Source.Kind)), cleanup, nil
}

func openSource(cfg *config.Config, logger *slog.Logger) (questions.Endpoint, func(), error) {
	noop := func() {}
	src := cfg.Source
	switch src.Kind {
	case config.SourceMemory:
		logger.Info("question source: memory", "records", len(src.Memory))
		return questionsource.NewMemoryEndpoint(memoryRecords(src.Memory), src.Limit), noop, nil
	case config.SourceStackExchange:
		logger.Info("question source: stackexchange", "site", src.StackExchange.Site)
		return stackexchange.NewClient(stackExchangeOptions(src)), noop, nil
	case config.SourcePostgres:
		pool, err := openPostgres(src.Postgres)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("question source: postgres")
		endpoint := questionsource.NewPostgresEndpoint(pool, src.Limit)
		return endpoint, endpoint.Close, nil
	case config.SourceSQLite:
		endpoint, err := questionsource.OpenSQLite(src.SQLite.Path, src.Limit)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("question source: sqlite", "path", src.SQLite.Path)
		return endpoint, func() {
			if err := endpoint.Close(); err != nil {
				logger.Warn("close sqlite source", "error", err)
			}
		}, nil
	case config.SourceValkey:
		client, err := openValkey(src.Valkey)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("question source: valkey", "addr", src.Valkey.Addr, "key", src.Valkey.Key)
		return questionsource.NewValkeyEndpoint(client, src.Valkey.Key, src.Limit), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown question source %q", src.Kind)
	}
}

func stackExchangeOptions(src config.SourceConfig) stackexchange.Options {
	return stackexchange.Options{
		BaseURL:  src.StackExchange.BaseURL,
		Site:     src.StackExchange.Site,
		Key:      src.StackExchange.Key,
		PageSize: src.Limit,
		Timeout:  src.StackExchange.Timeout,
	}
}

func memoryRecords(seed []config.MemoryQuestion) []questions.RawQuestionRecord {
	records := make([]questions.RawQuestionRecord, 0, len(seed))
	for _, q := range seed {
		records = append(records, questions.RawQuestionRecord{ID: q.ID, Title: q.Title, Body: q.Body})
	}
	return records
}

func openPostgres(cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func openValkey(cfg config.ValkeyConfig) (valkey.Client, error) {
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		return nil, err
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("create valkey client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping valkey: %w", err)
	}
	return client, nil
}

func buildValkeyOptions(cfg config.ValkeyConfig) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Addr, "://") {
		opt, err := valkey.ParseURL(cfg.Addr)
		if err != nil {
			return valkey.ClientOption{}, fmt.Errorf("parse valkey url: %w", err)
		}
		return opt, nil
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Addr}}, nil
}
