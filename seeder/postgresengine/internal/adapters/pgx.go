package adapters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXAdapter implements DBAdapter for *pgxpool.Pool.
type PGXAdapter struct {
	pool *pgxpool.Pool
}

func NewPGXAdapter(pool *pgxpool.Pool) PGXAdapter {
	return PGXAdapter{pool: pool}
}

func (a PGXAdapter) Exec(ctx context.Context, query string) (int64, error) {
	tag, err := a.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (a PGXAdapter) QueryInt(ctx context.Context, query string) (int, error) {
	var n int
	if err := a.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}

// Begin pins one pooled connection for the lifetime of the transaction.
func (a PGXAdapter) Begin(ctx context.Context) (DBTx, error) {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return pgxTx{tx: tx}, nil
}

type pgxTx struct {
	tx pgx.Tx
}

func (t pgxTx) Exec(ctx context.Context, query string) (int64, error) {
	tag, err := t.tx.Exec(ctx, query)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (t pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t pgxTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
