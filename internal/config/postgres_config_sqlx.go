package config

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// OpenPostgresSQLX opens and pings a configured *sqlx.DB using lib/pq.
func (c Config) OpenPostgresSQLX(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", c.PostgresDSN())
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
