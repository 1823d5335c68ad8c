package postgresengine

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/warehouse-seeder-go/seeder/postgresengine/internal/adapters"
)

var errFakeDB = errors.New("fake database failure")

// fakeDB records every statement and lets tests inject failures per step.
type fakeDB struct {
	execs       []string
	queries     []string
	txs         []*fakeTx
	failExec    bool
	failQuery   bool
	failBegin   bool
	failTxExec  bool
	failCommit  bool
	rowsAffect  int64
	probeResult int
}

func newFakeDB() *fakeDB {
	return &fakeDB{rowsAffect: 1, probeResult: 1}
}

func (db *fakeDB) QueryInt(_ context.Context, query string) (int, error) {
	db.queries = append(db.queries, query)
	if db.failQuery {
		return 0, errFakeDB
	}

	return db.probeResult, nil
}

func (db *fakeDB) Exec(_ context.Context, query string) (int64, error) {
	db.execs = append(db.execs, query)
	if db.failExec {
		return 0, errFakeDB
	}

	return 0, nil
}

func (db *fakeDB) Begin(_ context.Context) (adapters.DBTx, error) {
	if db.failBegin {
		return nil, errFakeDB
	}

	tx := &fakeTx{db: db}
	db.txs = append(db.txs, tx)

	return tx, nil
}

type fakeTx struct {
	db         *fakeDB
	execs      []string
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Exec(_ context.Context, query string) (int64, error) {
	tx.execs = append(tx.execs, query)
	if tx.db.failTxExec {
		return 0, errFakeDB
	}

	return tx.db.rowsAffect, nil
}

func (tx *fakeTx) Commit(_ context.Context) error {
	if tx.db.failCommit {
		return errFakeDB
	}

	tx.committed = true

	return nil
}

func (tx *fakeTx) Rollback(_ context.Context) error {
	tx.rolledBack = true
	return nil
}
