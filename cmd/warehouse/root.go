package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/warehouse-seeder-go/internal/config"
	"github.com/AntonStoeckl/warehouse-seeder-go/internal/logging"
)

const envFile = ".env"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "warehouse",
		Short:         "Seed and check the demo warehouse database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSeedCommand(), newServeCommand())

	return root
}

// setupObservability installs the default logger and, when a DSN is configured, Sentry.
// The returned func flushes pending Sentry events and is always safe to call.
func setupObservability(w io.Writer, cfg config.Config) (*slog.Logger, func(), error) {
	logger, err := logging.Setup(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}

	if cfg.SentryDSN == "" {
		return logger, func() {}, nil
	}

	if err = sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.AppEnv,
	}); err != nil {
		logger.Error("sentry init failed", "error", err.Error())
		return logger, func() {}, nil
	}

	return logger, func() { sentry.Flush(2 * time.Second) }, nil
}
