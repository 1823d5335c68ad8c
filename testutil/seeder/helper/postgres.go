package helper

import (
	"context"
	"database/sql"
	_ "embed"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/warehouse-seeder-go/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// GivenPostgresConfigOrSkip loads the database configuration from the environment
// and skips the test when no database is configured.
func GivenPostgresConfigOrSkip(t testing.TB) config.Config {
	cfg, err := config.Load()
	if err != nil {
		t.Skipf("no PostgreSQL configured: %v", err)
	}

	return cfg
}

// GivenSchema opens a plain database/sql connection and creates the three tables if they are missing.
// The connection is closed when the test ends.
func GivenSchema(t testing.TB, cfg config.Config) *sql.DB {
	db, err := cfg.OpenPostgresSQLDB(context.Background())
	require.NoError(t, err, "error connecting to DB in test setup")
	t.Cleanup(func() {
		_ = db.Close() // makes no sense to handle this
	})

	_, err = db.ExecContext(context.Background(), schemaSQL)
	require.NoError(t, err, "error creating schema in test setup")

	return db
}

// CountRows returns the number of rows in table.
func CountRows(t testing.TB, db *sql.DB, table string) int {
	var n int
	err := db.QueryRowContext(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err, "error counting rows")

	return n
}
