// Package seeder generates a reproducible synthetic analytics dataset of users, subscriptions,
// and behavioral events.
//
// The dataset is derived from a single base seed. Every generation phase gets its own deterministic
// random streams (see NewPhaseStreams), so each phase is individually reproducible and
// uncorrelated with the other phases.
//
// Phases run strictly in order, each fully materialized and committed to a Sink before the next
// one starts:
//   - Users: the root entity set
//   - Subscriptions: a sample of the users with billing state
//   - Events: a behavioral stream per user, conditioned on the paid/free cohort
//
// Common usage pattern:
//
//	sink, _ := postgresengine.NewSinkFromPGXPool(pool)
//	pipeline, _ := seeder.NewPipeline(sink, seeder.WithLogger(slog.Default()))
//
//	summary, err := pipeline.Run(ctx, seeder.DefaultParams())
//	if err != nil {
//		// handle error, prior phases stay committed
//	}
//
// The generators themselves are pure functions over their PhaseStreams and can be used without a Sink.
package seeder
