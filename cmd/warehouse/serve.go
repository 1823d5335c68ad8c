package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/warehouse-seeder-go/internal/config"
	"github.com/AntonStoeckl/warehouse-seeder-go/internal/health"
	"github.com/AntonStoeckl/warehouse-seeder-go/internal/metrics"
	"github.com/AntonStoeckl/warehouse-seeder-go/internal/storage"
	"github.com/AntonStoeckl/warehouse-seeder-go/seeder/postgresengine"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve /, /health, /db-check, and /metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}

			logger, flush, err := setupObservability(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			defer flush()

			collector, err := metrics.NewCollector()
			if err != nil {
				return err
			}

			conn, err := storage.Open(cmd.Context(), cfg,
				postgresengine.WithLogger(logger),
				postgresengine.WithMetrics(collector),
			)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer conn.Close()

			options := []health.Option{health.WithLogger(logger), health.WithGatherer(collector.Registry())}
			if cfg.SentryDSN != "" {
				options = append(options, health.WithSentry())
			}

			addr := net.JoinHostPort("", cfg.HTTPPort)
			logger.Info("server starting", "addr", addr, "adapter", conn.AdapterType())

			return health.Serve(cmd.Context(), health.NewApp(conn.Sink(), options...), addr)
		},
	}
}
