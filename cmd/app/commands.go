package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanqian/lastactive/internal/domain/questions"
	"github.com/yanqian/lastactive/internal/infra/config"
	"github.com/yanqian/lastactive/internal/infra/questionsource"
	"github.com/yanqian/lastactive/internal/infra/stackexchange"
	"github.com/yanqian/lastactive/internal/interface/console"
	"github.com/yanqian/lastactive/internal/platform/dispatch"
	"github.com/yanqian/lastactive/internal/screens/questionslist"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		cfg        *config.Config
	)

	root := &cobra.Command{
		Use:           "lastactive",
		Short:         "Last active questions screen",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := os.Setenv("CONFIG_PATH", configPath); err != nil {
					return err
				}
			}
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default $CONFIG_PATH or configs/config.yaml)")

	root.AddCommand(serveCmd(func() *config.Config { return cfg }), listCmd(func() *config.Config { return cfg }), syncCmd(func() *config.Config { return cfg }))
	return root
}

func serveCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Host the questions list screen over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := initializeApp(cfg())
			if err != nil {
				return fmt.Errorf("wire application: %w", err)
			}
			defer cleanup()
			return app.Run(cmd.Context())
		},
	}
}

func listCmd(cfg func() *config.Config) *cobra.Command {
	var openID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch and print the last active questions once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := console.NewScreen(cmd.OutOrStdout())
			l, cleanup, err := initializeLister(cfg(), view)
			if err != nil {
				return fmt.Errorf("wire lister: %w", err)
			}
			defer cleanup()
			return l.Run(cmd.Context(), openID)
		},
	}
	cmd.Flags().StringVar(&openID, "open", "", "question id to open once the list is shown")
	return cmd
}

func syncCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Copy last active questions from StackExchange into the sqlite or valkey source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			records, err := stackexchange.NewClient(stackExchangeOptions(c.Source)).FetchLastActive(cmd.Context())
			if err != nil {
				return err
			}
			if err := storeRecords(cmd.Context(), c, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "synced %d questions into %s\n", len(records), c.Source.Kind)
			return nil
		},
	}
}

// storeRecords writes records, most recently active first, into the configured writable source.
func storeRecords(ctx context.Context, cfg *config.Config, records []questions.RawQuestionRecord) error {
	switch cfg.Source.Kind {
	case config.SourceSQLite:
		endpoint, err := questionsource.OpenSQLite(cfg.Source.SQLite.Path, cfg.Source.Limit)
		if err != nil {
			return err
		}
		defer endpoint.Close()
		now := time.Now().Unix()
		for i, record := range records {
			if err := endpoint.Upsert(ctx, record, now-int64(i)); err != nil {
				return err
			}
		}
		return nil
	case config.SourceValkey:
		client, err := openValkey(cfg.Source.Valkey)
		if err != nil {
			return err
		}
		defer client.Close()
		return questionsource.NewValkeyEndpoint(client, cfg.Source.Valkey.Key, cfg.Source.Limit).Publish(ctx, records)
	default:
		return fmt.Errorf("sync needs source.kind %s or %s, got %q", config.SourceSQLite, config.SourceValkey, cfg.Source.Kind)
	}
}

// lister drives one activation cycle of the questions list against a console screen.
type lister struct {
	cfg        *config.Config
	loop       *dispatch.Loop
	controller *questionslist.Controller
	view       *console.Screen
	logger     *slog.Logger
}

func newLister(cfg *config.Config, loop *dispatch.Loop, controller *questionslist.Controller, view *console.Screen, logger *slog.Logger) *lister {
	controller.BindView(view)
	return &lister{
		cfg:        cfg,
		loop:       loop,
		controller: controller,
		view:       view,
		logger:     logger.With("component", "main.lister"),
	}
}

func (l *lister) Run(ctx context.Context, openID string) error {
	loopCtx, stopLoop := context.WithCancel(ctx)
	go l.loop.Run(loopCtx)
	defer func() {
		stopLoop()
		<-l.loop.Done()
	}()

	fetchCtx, cancel := ctx, context.CancelFunc(func() {})
	if l.cfg.Screen.FetchTimeout > 0 {
		fetchCtx, cancel = context.WithTimeout(ctx, l.cfg.Screen.FetchTimeout)
	}
	defer cancel()

	var activateErr error
	if err := l.loop.Call(ctx, func() { activateErr = l.controller.Activate(fetchCtx) }); err != nil {
		return err
	}
	if activateErr != nil {
		return activateErr
	}

	select {
	case <-l.view.Finished():
	case <-ctx.Done():
		return ctx.Err()
	}

	var (
		state  questionslist.State
		opened bool
	)
	err := l.loop.Call(ctx, func() {
		state = l.controller.State()
		if openID != "" && state == questionslist.StateLoaded {
			opened = l.view.Select(openID)
		}
		l.controller.Deactivate()
	})
	if err != nil {
		return err
	}
	l.logger.Debug("list cycle finished", "state", state.String())

	if state == questionslist.StateError {
		return questions.ErrFetchFailed
	}
	if openID != "" && !opened {
		return fmt.Errorf("question %s is not listed", openID)
	}
	return nil
}
