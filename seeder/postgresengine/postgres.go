package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/AntonStoeckl/warehouse-seeder-go/seeder"
	"github.com/AntonStoeckl/warehouse-seeder-go/seeder/postgresengine/internal/adapters"
)

const (
	defaultUsersTableName         = "users"
	defaultSubscriptionsTableName = "subscriptions"
	defaultEventsTableName        = "events"
)

// Sink persists the generated dataset into PostgreSQL.
//
// Inserts open a transaction lazily; Commit commits it. Sink is not safe for concurrent use,
// which matches the strictly sequential pipeline.
type Sink struct {
	db               adapters.DBAdapter
	tables           TableNames
	logger           Logger
	metricsCollector MetricsCollector
	tx               adapters.DBTx
	pendingRows      int
}

var _ seeder.Sink = (*Sink)(nil)

// NewSinkFromPGXPool creates a new Sink using a pgx Pool with optional configuration.
func NewSinkFromPGXPool(db *pgxpool.Pool, options ...Option) (*Sink, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newSink(adapters.NewPGXAdapter(db), options...)
}

// NewSinkFromSQLDB creates a new Sink using a sql.DB with optional configuration.
func NewSinkFromSQLDB(db *sql.DB, options ...Option) (*Sink, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newSink(adapters.NewSQLAdapter(db), options...)
}

// NewSinkFromSQLX creates a new Sink using a sqlx.DB with optional configuration.
func NewSinkFromSQLX(db *sqlx.DB, options ...Option) (*Sink, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newSink(adapters.NewSQLXAdapter(db), options...)
}

// NewSinkFromGORM creates a new Sink using a gorm.DB with optional configuration.
func NewSinkFromGORM(db *gorm.DB, options ...Option) (*Sink, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newSink(adapters.NewGORMAdapter(db), options...)
}

func newSink(db adapters.DBAdapter, options ...Option) (*Sink, error) {
	s := &Sink{
		db:     db,
		tables: DefaultTableNames(),
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Reset truncates all three tables in one statement, restarting identity counters.
// Any transaction left open by a previous failure is rolled back first.
func (s *Sink) Reset(ctx context.Context) error {
	s.rollbackOpenTx(ctx)

	sqlQuery, err := s.buildTruncateQuery()
	if err != nil {
		return err
	}

	start := time.Now()
	_, execErr := s.db.Exec(ctx, sqlQuery) // TRUNCATE reports no row count
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, opReset, duration)

	if execErr != nil {
		s.logError(logMsgResetFailed, execErr, logAttrQuery, sqlQuery)
		s.recordErrorMetrics(opReset)

		return errors.Join(ErrResetFailed, execErr)
	}

	s.recordDurationMetrics(opReset, duration)
	s.logOperation(logMsgTablesReset, logAttrDurationMS, s.toMilliseconds(duration))

	return nil
}

// InsertUser appends one users row to the open phase transaction.
func (s *Sink) InsertUser(ctx context.Context, user seeder.User) error {
	sqlQuery, err := s.buildInsertUserQuery(user)
	if err != nil {
		return err
	}

	return s.execInTx(ctx, sqlQuery, opInsertUser)
}

// InsertSubscription appends one subscriptions row to the open phase transaction.
func (s *Sink) InsertSubscription(ctx context.Context, subscription seeder.Subscription) error {
	sqlQuery, err := s.buildInsertSubscriptionQuery(subscription)
	if err != nil {
		return err
	}

	return s.execInTx(ctx, sqlQuery, opInsertSubscription)
}

// InsertEvent appends one events row to the open phase transaction.
// The properties are stored as a JSONB document.
func (s *Sink) InsertEvent(ctx context.Context, event seeder.Event) error {
	sqlQuery, err := s.buildInsertEventQuery(event)
	if err != nil {
		return err
	}

	return s.execInTx(ctx, sqlQuery, opInsertEvent)
}

// Commit durably persists all rows inserted since the previous Commit.
// Committing without pending inserts is a no-op.
func (s *Sink) Commit(ctx context.Context) error {
	if s.tx == nil {
		return nil
	}

	tx, rows := s.tx, s.pendingRows
	s.tx, s.pendingRows = nil, 0

	start := time.Now()
	commitErr := tx.Commit(ctx)
	duration := time.Since(start)

	if commitErr != nil {
		s.logError(logMsgCommitFailed, commitErr, logAttrRowCount, rows)
		s.recordErrorMetrics(opCommit)

		return errors.Join(ErrCommitFailed, commitErr)
	}

	s.recordDurationMetrics(opCommit, duration)
	s.logOperation(logMsgCommitted, logAttrRowCount, rows, logAttrDurationMS, s.toMilliseconds(duration))

	return nil
}

// Probe executes a trivial query and returns its scalar result (1 on a healthy connection).
func (s *Sink) Probe(ctx context.Context) (int, error) {
	sqlQuery, err := s.buildProbeQuery()
	if err != nil {
		return 0, err
	}

	start := time.Now()
	result, queryErr := s.db.QueryInt(ctx, sqlQuery)
	s.logQueryWithDuration(sqlQuery, opProbe, time.Since(start))

	if queryErr != nil {
		s.logError(logMsgProbeFailed, queryErr)
		s.recordErrorMetrics(opProbe)

		return 0, errors.Join(ErrProbeFailed, queryErr)
	}

	return result, nil
}

// Close rolls back a transaction that was never committed.
// The underlying connection is owned by the caller and stays open.
func (s *Sink) Close(ctx context.Context) {
	s.rollbackOpenTx(ctx)
}

// execInTx executes one insert in the phase transaction, beginning it if needed.
// On failure the transaction is rolled back and discarded.
func (s *Sink) execInTx(ctx context.Context, sqlQuery string, operation string) error {
	if s.tx == nil {
		tx, beginErr := s.db.Begin(ctx)
		if beginErr != nil {
			s.logError(logMsgBeginFailed, beginErr)
			s.recordErrorMetrics(operation)

			return errors.Join(ErrBeginTxFailed, beginErr)
		}

		s.tx = tx
	}

	start := time.Now()
	rowsAffected, execErr := s.tx.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, operation, duration)

	if execErr != nil {
		s.logError(logMsgInsertFailed, execErr, logAttrQuery, sqlQuery)
		s.recordErrorMetrics(operation)
		s.rollbackOpenTx(ctx)

		return errors.Join(ErrInsertFailed, execErr)
	}

	if rowsAffected != 1 {
		s.logError(logMsgInsertFailed, ErrUnexpectedRowsAffected, logAttrRowsAffected, rowsAffected)
		s.recordErrorMetrics(operation)
		s.rollbackOpenTx(ctx)

		return errors.Join(ErrInsertFailed, ErrUnexpectedRowsAffected)
	}

	s.pendingRows++
	s.recordDurationMetrics(operation, duration)

	return nil
}

func (s *Sink) rollbackOpenTx(ctx context.Context) {
	if s.tx == nil {
		return
	}

	if rollbackErr := s.tx.Rollback(ctx); rollbackErr != nil && s.logger != nil {
		s.logger.Warn(logMsgRollbackFailed, logAttrError, rollbackErr.Error())
	}

	s.tx, s.pendingRows = nil, 0
}
