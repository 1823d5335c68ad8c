// Package postgresengine provides a PostgreSQL implementation of the seeder.Sink interface.
//
// This package persists generated users, subscriptions, and events into PostgreSQL,
// supporting multiple database adapters (pgx, sql.DB, sqlx, gorm). Inserts of one phase run in a
// single transaction that is committed at the phase boundary.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX, GORM)
//   - FK-safe reset of all three tables with identity restart
//   - Configurable table names and optional logging and metrics
//   - A connectivity probe for health checks
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	sink, _ := postgresengine.NewSinkFromPGXPool(db)
//	defer sink.Close(ctx)
//
//	// With custom table names and logging
//	sink, _ := postgresengine.NewSinkFromPGXPool(
//		db,
//		postgresengine.WithTableNames(postgresengine.TableNames{Users: "demo_users", ...}),
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	pipeline, _ := seeder.NewPipeline(sink)
//	summary, err := pipeline.Run(ctx, seeder.DefaultParams())
package postgresengine
