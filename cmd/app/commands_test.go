package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/lastactive/internal/domain/questions"
	"github.com/yanqian/lastactive/internal/infra/config"
	"github.com/yanqian/lastactive/internal/interface/console"
)

func TestListerRun_PrintsQuestions(t *testing.T) {
	var out bytes.Buffer
	l, cleanup, err := initializeLister(memoryConfig(), console.NewScreen(&out))
	require.NoError(t, err)
	defer cleanup()

	require.NoError(t, l.Run(context.Background(), "2"))
	require.Contains(t, out.String(), "loading last active questions...")
	require.Contains(t, out.String(), "1   first")
	require.Contains(t, out.String(), "opening question 2")
}

func TestListerRun_UnknownQuestion(t *testing.T) {
	var out bytes.Buffer
	l, cleanup, err := initializeLister(memoryConfig(), console.NewScreen(&out))
	require.NoError(t, err)
	defer cleanup()

	err = l.Run(context.Background(), "99")
	require.ErrorContains(t, err, "question 99 is not listed")
}

func TestOpenSource_UnknownKind(t *testing.T) {
	cfg := memoryConfig()
	cfg.Source.Kind = "carrier-pigeon"

	_, _, err := openSource(cfg, testLogger())
	require.ErrorContains(t, err, "unknown question source")
}

func TestOpenSource_SQLite(t *testing.T) {
	cfg := memoryConfig()
	cfg.Source.Kind = config.SourceSQLite
	cfg.Source.SQLite.Path = t.TempDir() + "/questions.db"

	endpoint, cleanup, err := openSource(cfg, testLogger())
	require.NoError(t, err)
	defer cleanup()

	records, err := endpoint.FetchLastActive(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestBuildValkeyOptions(t *testing.T) {
	opt, err := buildValkeyOptions(config.ValkeyConfig{Addr: "localhost:6379"})
	require.NoError(t, err)
	require.Equal(t, []string{"localhost:6379"}, opt.InitAddress)

	opt, err = buildValkeyOptions(config.ValkeyConfig{Addr: "redis://cache:6380/0"})
	require.NoError(t, err)
	require.Equal(t, []string{"cache:6380"}, opt.InitAddress)
}

func memoryConfig() *config.Config {
	return &config.Config{
		Log:    config.LogConfig{Level: "error"},
		Screen: config.ScreenConfig{QueueSize: 8, FetchTimeout: time.Second},
		Source: config.SourceConfig{
			Kind:  config.SourceMemory,
			Limit: 10,
			Memory: []config.MemoryQuestion{
				{ID: "1", Title: "first", Body: "a"},
				{ID: "2", Title: "second", Body: "b"},
			},
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStoreRecords_SQLiteKeepsOrder(t *testing.T) {
	cfg := memoryConfig()
	cfg.Source.Kind = config.SourceSQLite
	cfg.Source.SQLite.Path = t.TempDir() + "/questions.db"
	records := []questions.RawQuestionRecord{
		{ID: "30", Title: "newest", Body: "x"},
		{ID: "20", Title: "older", Body: "y"},
	}

	require.NoError(t, storeRecords(context.Background(), cfg, records))

	endpoint, cleanup, err := openSource(cfg, testLogger())
	require.NoError(t, err)
	defer cleanup()
	got, err := endpoint.FetchLastActive(context.Background())
	require.NoError(t, err)
	require.Equal(t, records, got)
}

func TestStoreRecords_RejectsReadOnlySource(t *testing.T) {
	err := storeRecords(context.Background(), memoryConfig(), nil)
	require.ErrorContains(t, err, "sync needs source.kind")
}
