package adapters

import (
	"context"
	"database/sql"
)

// DBAdapter is the connection as seen by the sink.
type DBAdapter interface {
	Exec(ctx context.Context, query string) (rowsAffected int64, err error)
	QueryInt(ctx context.Context, query string) (int, error)
	Begin(ctx context.Context) (DBTx, error)
}

// DBTx is one phase transaction.
type DBTx interface {
	Exec(ctx context.Context, query string) (rowsAffected int64, err error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// sqlExecer is satisfied by *sql.DB, *sql.Tx, and *sqlx.DB.
type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execSQL(ctx context.Context, conn sqlExecer, query string) (int64, error) {
	result, err := conn.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// sqlTx serves database/sql and sqlx transactions; sqlx.Tx embeds *sql.Tx.
type sqlTx struct {
	tx *sql.Tx
}

func (t sqlTx) Exec(ctx context.Context, query string) (int64, error) {
	return execSQL(ctx, t.tx, query)
}

func (t sqlTx) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t sqlTx) Rollback(_ context.Context) error {
	return t.tx.Rollback()
}
