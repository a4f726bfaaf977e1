package main

import (
	"bandarcms/internal/app"
	"bandarcms/internal/domain/config"
	"bandarcms/internal/store"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagLogLevel string
)

func main() {
	root := &cobra.Command{
		Use:           "bandarcms",
		Short:         "Blog CMS for The Bandar Breakdowns",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "cms.yaml", "config file path")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug|info|warn|error)")

	root.AddCommand(
		newIndexCmd(),
		newReindexCmd(),
		newUpdateIndexCmd(),
		newCreateCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newListCmd(),
		newSearchCmd(),
		newStatsCmd(),
		newWatchCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err.Error())
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch flagLogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// setup loads config, opens the store and builds the CMS. The returned
// closer must run before exit so the store flushes cleanly.
func setup() (*app.CMS, func(), error) {
	logger := newLogger()

	cfg, err := config.LoadOrDefault(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	st, err := store.Open(cfg.Store, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	cms, err := app.New(cfg, st, logger)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return cms, func() { _ = st.Close() }, nil
}
