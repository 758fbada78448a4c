package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/lastactive/internal/infra/config"
	"github.com/yanqian/lastactive/internal/platform/dispatch"
)

// App encapsulates the dispatch loop and HTTP server lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	loop   *dispatch.Loop
	server *http.Server
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, loop *dispatch.Loop, server *http.Server) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), loop: loop, server: server}
}

// Run starts the loop and the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	loopCtx, stopLoop := context.WithCancel(context.Background())
	go a.loop.Run(loopCtx)
	defer func() {
		stopLoop()
		<-a.loop.Done()
	}()

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
