package adapters

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// SQLAdapter implements DBAdapter for *sql.DB.
type SQLAdapter struct {
	db *sql.DB
}

func NewSQLAdapter(db *sql.DB) SQLAdapter {
	return SQLAdapter{db: db}
}

func (a SQLAdapter) Exec(ctx context.Context, query string) (int64, error) {
	return execSQL(ctx, a.db, query)
}

func (a SQLAdapter) QueryInt(ctx context.Context, query string) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}

func (a SQLAdapter) Begin(ctx context.Context) (DBTx, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return sqlTx{tx: tx}, nil
}

// SQLXAdapter implements DBAdapter for *sqlx.DB.
type SQLXAdapter struct {
	db *sqlx.DB
}

func NewSQLXAdapter(db *sqlx.DB) SQLXAdapter {
	return SQLXAdapter{db: db}
}

func (a SQLXAdapter) Exec(ctx context.Context, query string) (int64, error) {
	return execSQL(ctx, a.db, query)
}

func (a SQLXAdapter) QueryInt(ctx context.Context, query string) (int, error) {
	var n int
	if err := a.db.GetContext(ctx, &n, query); err != nil {
		return 0, err
	}

	return n, nil
}

func (a SQLXAdapter) Begin(ctx context.Context) (DBTx, error) {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return sqlTx{tx: tx.Tx}, nil
}
