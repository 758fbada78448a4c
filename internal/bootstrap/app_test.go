package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/lastactive/internal/infra/config"
	"github.com/yanqian/lastactive/internal/platform/dispatch"
)

func TestAppRun_StopsOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loop := dispatch.NewLoop(4, logger)
	server := &http.Server{Addr: addr, Handler: http.NotFoundHandler()}
	app := NewApp(&config.Config{HTTP: config.HTTPConfig{Address: addr}}, logger, loop, server)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- app.Run(ctx) }()

	require.NoError(t, loop.Call(context.Background(), func() {}))
	cancel()

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	select {
	case <-loop.Done():
	default:
		t.Fatal("loop still running")
	}
}
