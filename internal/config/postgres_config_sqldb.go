package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

const (
	defaultMaxOpenConnections = 4
	defaultMaxIdleConnections = 2
	defaultMaxConnLifetime    = time.Hour
	defaultMaxConnIdleTime    = time.Minute * 5
)

// OpenPostgresSQLDB opens and pings a configured *sql.DB using lib/pq.
func (c Config) OpenPostgresSQLDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", c.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	configurePool(db)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close() // the ping error is the one worth reporting
		return nil, fmt.Errorf("pinging database: %w", pingErr)
	}

	return db, nil
}

type poolConfigurer interface {
	SetMaxOpenConns(n int)
	SetMaxIdleConns(n int)
	SetConnMaxLifetime(d time.Duration)
	SetConnMaxIdleTime(d time.Duration)
}

func configurePool(db poolConfigurer) {
	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
}
