package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/AntonStoeckl/warehouse-seeder-go/internal/config"
	"github.com/AntonStoeckl/warehouse-seeder-go/seeder/postgresengine"
)

// Wrapper abstracts over the different connection types.
type Wrapper interface {
	Sink() *postgresengine.Sink
	AdapterType() string
	Close()
}

// PGXPoolWrapper wraps a pgxpool-based sink.
type PGXPoolWrapper struct {
	pool *pgxpool.Pool
	sink *postgresengine.Sink
}

func (w *PGXPoolWrapper) Sink() *postgresengine.Sink {
	return w.sink
}

func (w *PGXPoolWrapper) AdapterType() string {
	return config.AdapterPGXPool
}

func (w *PGXPoolWrapper) Close() {
	w.sink.Close(context.Background())
	w.pool.Close()
}

// SQLDBWrapper wraps a sql.DB-based sink.
type SQLDBWrapper struct {
	db   *sql.DB
	sink *postgresengine.Sink
}

func (w *SQLDBWrapper) Sink() *postgresengine.Sink {
	return w.sink
}

func (w *SQLDBWrapper) AdapterType() string {
	return config.AdapterSQLDB
}

func (w *SQLDBWrapper) Close() {
	w.sink.Close(context.Background())
	_ = w.db.Close() // nothing left to do about it on teardown
}

// SQLXWrapper wraps a sqlx.DB-based sink.
type SQLXWrapper struct {
	db   *sqlx.DB
	sink *postgresengine.Sink
}

func (w *SQLXWrapper) Sink() *postgresengine.Sink {
	return w.sink
}

func (w *SQLXWrapper) AdapterType() string {
	return config.AdapterSQLXDB
}

func (w *SQLXWrapper) Close() {
	w.sink.Close(context.Background())
	_ = w.db.Close() // nothing left to do about it on teardown
}

// GORMWrapper wraps a gorm.DB-based sink.
type GORMWrapper struct {
	db   *gorm.DB
	sink *postgresengine.Sink
}

func (w *GORMWrapper) Sink() *postgresengine.Sink {
	return w.sink
}

func (w *GORMWrapper) AdapterType() string {
	return config.AdapterGORMDB
}

func (w *GORMWrapper) Close() {
	w.sink.Close(context.Background())

	if sqlDB, err := w.db.DB(); err == nil {
		_ = sqlDB.Close() // nothing left to do about it on teardown
	}
}

// Open connects with the driver selected by cfg.AdapterType and creates the sink.
func Open(ctx context.Context, cfg config.Config, options ...postgresengine.Option) (Wrapper, error) {
	switch cfg.AdapterType {
	case config.AdapterPGXPool, "":
		poolConfig, err := cfg.PostgresPGXPoolConfig()
		if err != nil {
			return nil, err
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("connecting pgx pool: %w", err)
		}

		sink, err := postgresengine.NewSinkFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return nil, err
		}

		return &PGXPoolWrapper{pool: pool, sink: sink}, nil

	case config.AdapterSQLDB:
		db, err := cfg.OpenPostgresSQLDB(ctx)
		if err != nil {
			return nil, err
		}

		sink, err := postgresengine.NewSinkFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close() // the sink error is the one worth reporting
			return nil, err
		}

		return &SQLDBWrapper{db: db, sink: sink}, nil

	case config.AdapterSQLXDB:
		db, err := cfg.OpenPostgresSQLX(ctx)
		if err != nil {
			return nil, err
		}

		sink, err := postgresengine.NewSinkFromSQLX(db, options...)
		if err != nil {
			_ = db.Close() // the sink error is the one worth reporting
			return nil, err
		}

		return &SQLXWrapper{db: db, sink: sink}, nil

	case config.AdapterGORMDB:
		db, err := cfg.OpenPostgresGORM(ctx)
		if err != nil {
			return nil, err
		}

		sink, err := postgresengine.NewSinkFromGORM(db, options...)
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close() // the sink error is the one worth reporting
			}
			return nil, err
		}

		return &GORMWrapper{db: db, sink: sink}, nil

	default: // neither one of the known types nor empty
		return nil, fmt.Errorf("%w: unsupported adapter type %q", config.ErrInvalidSetting, cfg.AdapterType)
	}
}
