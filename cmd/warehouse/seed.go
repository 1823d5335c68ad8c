package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/warehouse-seeder-go/internal/config"
	"github.com/AntonStoeckl/warehouse-seeder-go/internal/metrics"
	"github.com/AntonStoeckl/warehouse-seeder-go/internal/storage"
	"github.com/AntonStoeckl/warehouse-seeder-go/seeder"
	"github.com/AntonStoeckl/warehouse-seeder-go/seeder/memoryengine"
	"github.com/AntonStoeckl/warehouse-seeder-go/seeder/postgresengine"
)

type seedFlags struct {
	params      seeder.Params
	dryRun      bool
	pushgateway string
}

func newSeedCommand() *cobra.Command {
	flags := seedFlags{params: seeder.DefaultParams()}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Truncate the warehouse tables and fill them with synthetic users, subscriptions, and events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), flags)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&flags.params.BaseSeed, "seed", flags.params.BaseSeed, "base seed; each phase derives its own seed from it")
	f.IntVar(&flags.params.UserCount, "users", flags.params.UserCount, "number of users")
	f.IntVar(&flags.params.SubscriptionCount, "subscriptions", flags.params.SubscriptionCount, "number of subscriptions, capped at the number of users")
	f.IntVar(&flags.params.EventsPerUser.Min, "events-min", flags.params.EventsPerUser.Min, "minimum events per user")
	f.IntVar(&flags.params.EventsPerUser.Max, "events-max", flags.params.EventsPerUser.Max, "maximum events per user")
	f.IntVar(&flags.params.MaxUserAgeDays, "max-age-days", flags.params.MaxUserAgeDays, "maximum user account age in days")
	f.BoolVar(&flags.dryRun, "dry-run", false, "generate into memory without touching the database")
	f.StringVar(&flags.pushgateway, "pushgateway", "", "Prometheus Pushgateway URL to push run metrics to")

	return cmd
}

func runSeed(ctx context.Context, out, logOut io.Writer, flags seedFlags) error {
	if err := flags.params.Validate(); err != nil {
		return err
	}

	var (
		cfg config.Config
		err error
	)

	if flags.dryRun {
		cfg, err = config.Read(envFile)
	} else {
		cfg, err = config.Load(envFile)
	}

	if err != nil {
		return err
	}

	logger, flush, err := setupObservability(logOut, cfg)
	if err != nil {
		return err
	}
	defer flush()

	collector, err := metrics.NewCollector()
	if err != nil {
		return err
	}

	var sink seeder.Sink

	if flags.dryRun {
		sink = memoryengine.NewSink()
	} else {
		conn, openErr := storage.Open(
			ctx,
			cfg,
			postgresengine.WithLogger(logger),
			postgresengine.WithMetrics(collector),
		)
		if openErr != nil {
			return fmt.Errorf("connecting to database: %w", openErr)
		}
		defer conn.Close()

		sink = conn.Sink()
	}

	pipeline, err := seeder.NewPipeline(sink, seeder.WithLogger(logger), seeder.WithMetrics(collector))
	if err != nil {
		return err
	}

	summary, runErr := pipeline.Run(ctx, flags.params)

	if flags.pushgateway != "" {
		if pushErr := collector.Push(ctx, flags.pushgateway); pushErr != nil {
			logger.Warn("pushing metrics failed", "error", pushErr.Error())
		}
	}

	if runErr != nil {
		return runErr
	}

	printSummary(out, summary, flags.dryRun)

	return nil
}

func printSummary(out io.Writer, summary seeder.Summary, dryRun bool) {
	mode := ""
	if dryRun {
		mode = " (dry run)"
	}

	fmt.Fprintf(out, "Seed complete%s: users=%d subscriptions=%d events=%d\n",
		mode, summary.Users, summary.Subscriptions, summary.Events)
	fmt.Fprintf(out, "  seed=%d now=%s cancelled=%d paid_users=%d\n",
		summary.BaseSeed, summary.Now.Format("2006-01-02T15:04:05Z07:00"), summary.Cancelled, summary.PaidUsers)
}
