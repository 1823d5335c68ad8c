package postgresengine

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/warehouse-seeder-go/seeder"
	"github.com/AntonStoeckl/warehouse-seeder-go/testutil/seeder/helper"
)

func givenSink(t *testing.T, db *fakeDB, options ...Option) *Sink {
	sink, err := newSink(db, options...)
	require.NoError(t, err, "error in arranging test data")

	return sink
}

func fixtureUser() seeder.User {
	return seeder.User{
		ID:           uuid.MustParse("6f1c1c2e-2f4a-4b8e-9a39-1f2b3c4d5e6f"),
		Email:        "user1@demo.local",
		CreatedAt:    time.Date(2025, time.January, 2, 3, 0, 0, 0, time.UTC),
		Country:      "DE",
		SignupSource: "github",
	}
}

func Test_Reset_ShouldTruncateAllTablesInOneStatement(t *testing.T) {
	// arrange
	db := newFakeDB()
	sink := givenSink(t, db)

	// act
	err := sink.Reset(context.Background())

	// assert
	require.NoError(t, err)
	require.Len(t, db.execs, 1)

	stmt := db.execs[0]
	assert.True(t, strings.HasPrefix(stmt, "TRUNCATE"))
	assert.Contains(t, stmt, "RESTART IDENTITY")
	events := strings.Index(stmt, `"events"`)
	subscriptions := strings.Index(stmt, `"subscriptions"`)
	users := strings.Index(stmt, `"users"`)
	assert.True(t, events >= 0 && events < subscriptions && subscriptions < users, stmt)
}

func Test_Reset_ShouldUseConfiguredTableNames(t *testing.T) {
	// arrange
	db := newFakeDB()
	sink := givenSink(t, db, WithTableNames(TableNames{Users: "demo_users", Subscriptions: "demo_subs", Events: "demo_events"}))

	// act
	require.NoError(t, sink.Reset(context.Background()))

	// assert
	assert.Contains(t, db.execs[0], `"demo_events"`)
	assert.Contains(t, db.execs[0], `"demo_subs"`)
	assert.Contains(t, db.execs[0], `"demo_users"`)
}

func Test_Reset_ShouldWrapError_WhenExecFails(t *testing.T) {
	// arrange
	db := newFakeDB()
	db.failExec = true
	metrics := helper.NewMetricsCollectorSpy()
	sink := givenSink(t, db, WithMetrics(metrics))

	// act
	err := sink.Reset(context.Background())

	// assert
	assert.ErrorIs(t, err, ErrResetFailed)
	assert.ErrorIs(t, err, errFakeDB)
	assert.True(t, metrics.HasCounterRecordWithLabels(MetricDatabaseErrors, map[string]string{LabelOperation: opReset}))
}

func Test_Reset_ShouldRollBackOpenTransaction(t *testing.T) {
	// arrange
	db := newFakeDB()
	sink := givenSink(t, db)
	require.NoError(t, sink.InsertUser(context.Background(), fixtureUser()))

	// act
	require.NoError(t, sink.Reset(context.Background()))

	// assert
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func Test_Inserts_ShouldShareOneTransaction_UntilCommit(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := newFakeDB()
	sink := givenSink(t, db)
	user := fixtureUser()

	// act
	require.NoError(t, sink.InsertUser(ctx, user))
	require.NoError(t, sink.InsertUser(ctx, user))
	require.NoError(t, sink.Commit(ctx))
	require.NoError(t, sink.InsertSubscription(ctx, seeder.Subscription{ID: uuid.New(), UserID: user.ID, Plan: seeder.PlanFree, Status: seeder.StatusActive}))
	require.NoError(t, sink.Commit(ctx))

	// assert
	require.Len(t, db.txs, 2)
	assert.Len(t, db.txs[0].execs, 2)
	assert.True(t, db.txs[0].committed)
	assert.Len(t, db.txs[1].execs, 1)
	assert.True(t, db.txs[1].committed)
}

func Test_Commit_ShouldBeNoOp_WhenNothingIsPending(t *testing.T) {
	// arrange
	db := newFakeDB()
	sink := givenSink(t, db)

	// act
	err := sink.Commit(context.Background())

	// assert
	assert.NoError(t, err)
	assert.Empty(t, db.txs)
}

func Test_Commit_ShouldWrapError_WhenCommitFails(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := newFakeDB()
	sink := givenSink(t, db)
	require.NoError(t, sink.InsertUser(ctx, fixtureUser()))
	db.failCommit = true

	// act
	err := sink.Commit(ctx)

	// assert
	assert.ErrorIs(t, err, ErrCommitFailed)
	assert.Nil(t, sink.tx)
}

func Test_InsertUser_ShouldRenderAllColumns(t *testing.T) {
	// arrange
	db := newFakeDB()
	sink := givenSink(t, db)

	// act
	require.NoError(t, sink.InsertUser(context.Background(), fixtureUser()))

	// assert
	stmt := db.txs[0].execs[0]
	assert.True(t, strings.HasPrefix(stmt, `INSERT INTO "users"`), stmt)
	for _, col := range []string{colUserID, colEmail, colCreatedAt, colCountry, colSignupSource} {
		assert.Contains(t, stmt, `"`+col+`"`)
	}
	assert.Contains(t, stmt, "'6f1c1c2e-2f4a-4b8e-9a39-1f2b3c4d5e6f'")
	assert.Contains(t, stmt, "'user1@demo.local'")
	assert.Contains(t, stmt, "'github'")
}

func Test_InsertSubscription_ShouldRenderNull_WhenNotCancelled(t *testing.T) {
	// arrange
	db := newFakeDB()
	sink := givenSink(t, db)
	subscription := seeder.Subscription{
		ID:        uuid.New(),
		UserID:    fixtureUser().ID,
		Plan:      seeder.PlanPro,
		Status:    seeder.StatusActive,
		StartedAt: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		MRRUSD:    99,
	}

	// act
	require.NoError(t, sink.InsertSubscription(context.Background(), subscription))

	// assert
	stmt := db.txs[0].execs[0]
	assert.True(t, strings.HasPrefix(stmt, `INSERT INTO "subscriptions"`), stmt)
	assert.Contains(t, stmt, "NULL")
	assert.Contains(t, stmt, "'pro'")
	assert.Contains(t, stmt, "'active'")
	assert.Contains(t, stmt, "99")
}

func Test_InsertEvent_ShouldStorePropertiesAsJSONB(t *testing.T) {
	// arrange
	db := newFakeDB()
	sink := givenSink(t, db)
	event := seeder.Event{
		ID:         uuid.New(),
		UserID:     fixtureUser().ID,
		Name:       seeder.EventFeatureUsed,
		OccurredAt: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		Properties: seeder.Properties{seeder.PropertyFeature: "alerts"},
	}

	// act
	require.NoError(t, sink.InsertEvent(context.Background(), event))

	// assert
	stmt := db.txs[0].execs[0]
	assert.True(t, strings.HasPrefix(stmt, `INSERT INTO "events"`), stmt)
	assert.Contains(t, stmt, `'{"feature":"alerts"}'::jsonb`)
	assert.Contains(t, stmt, "'feature_used'")
}

func Test_InsertEvent_ShouldStoreEmptyObject_WhenPropertiesAreEmpty(t *testing.T) {
	// arrange
	db := newFakeDB()
	sink := givenSink(t, db)

	// act
	require.NoError(t, sink.InsertEvent(context.Background(), seeder.Event{ID: uuid.New(), UserID: uuid.New(), Name: seeder.EventLogin}))

	// assert
	assert.Contains(t, db.txs[0].execs[0], `'{}'::jsonb`)
}

func Test_Insert_ShouldRollBack_WhenExecFails(t *testing.T) {
	// arrange
	db := newFakeDB()
	db.failTxExec = true
	logHandler := helper.NewLogHandlerSpy(false)
	sink := givenSink(t, db, WithLogger(slog.New(logHandler)))

	// act
	err := sink.InsertUser(context.Background(), fixtureUser())

	// assert
	assert.ErrorIs(t, err, ErrInsertFailed)
	assert.ErrorIs(t, err, errFakeDB)
	assert.True(t, db.txs[0].rolledBack)
	assert.Nil(t, sink.tx)
	assert.True(t, logHandler.HasErrorLogWithMessage(logMsgInsertFailed).WithAttr(logAttrQuery).Assert())
}

func Test_Insert_ShouldFail_WhenRowsAffectedIsNotOne(t *testing.T) {
	// arrange
	db := newFakeDB()
	db.rowsAffect = 0
	sink := givenSink(t, db)

	// act
	err := sink.InsertUser(context.Background(), fixtureUser())

	// assert
	assert.ErrorIs(t, err, ErrInsertFailed)
	assert.ErrorIs(t, err, ErrUnexpectedRowsAffected)
	assert.True(t, db.txs[0].rolledBack)
}

func Test_Insert_ShouldFail_WhenBeginFails(t *testing.T) {
	// arrange
	db := newFakeDB()
	db.failBegin = true
	sink := givenSink(t, db)

	// act
	err := sink.InsertEvent(context.Background(), seeder.Event{ID: uuid.New(), UserID: uuid.New(), Name: seeder.EventLogin})

	// assert
	assert.ErrorIs(t, err, ErrBeginTxFailed)
}

func Test_Probe_ShouldReturnOne_WhenDatabaseAnswers(t *testing.T) {
	// arrange
	db := newFakeDB()
	sink := givenSink(t, db)

	// act
	result, err := sink.Probe(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, result)
	require.Len(t, db.queries, 1)
	assert.Equal(t, "SELECT 1", db.queries[0])
}

func Test_Probe_ShouldFail_WhenQueryFails(t *testing.T) {
	// arrange
	db := newFakeDB()
	db.failQuery = true
	sink := givenSink(t, db)

	// act
	_, err := sink.Probe(context.Background())

	// assert
	assert.ErrorIs(t, err, ErrProbeFailed)
}

func Test_Close_ShouldRollBackUncommittedRows(t *testing.T) {
	// arrange
	db := newFakeDB()
	sink := givenSink(t, db)
	require.NoError(t, sink.InsertUser(context.Background(), fixtureUser()))

	// act
	sink.Close(context.Background())

	// assert
	assert.True(t, db.txs[0].rolledBack)
}

func Test_Sink_ShouldLogSQLAtDebug_AndCommitsAtInfo(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := newFakeDB()
	logHandler := helper.NewLogHandlerSpy(false)
	sink := givenSink(t, db, WithLogger(slog.New(logHandler)))

	// act
	require.NoError(t, sink.Reset(ctx))
	require.NoError(t, sink.InsertUser(ctx, fixtureUser()))
	require.NoError(t, sink.Commit(ctx))

	// assert
	assert.True(t, logHandler.HasDebugLogWithMessage(logMsgSQLExecuted+opReset).WithDurationMS().WithAttr(logAttrQuery).Assert())
	assert.True(t, logHandler.HasDebugLogWithMessage(logMsgSQLExecuted+opInsertUser).WithDurationMS().Assert())
	assert.True(t, logHandler.HasInfoLogWithMessage(logMsgOperation+logMsgCommitted).WithIntAttr(logAttrRowCount, 1).Assert())
}

func Test_Sink_ShouldRecordStatementDurations(t *testing.T) {
	// arrange
	ctx := context.Background()
	metrics := helper.NewMetricsCollectorSpy()
	sink := givenSink(t, newFakeDB(), WithMetrics(metrics))

	// act
	require.NoError(t, sink.InsertUser(ctx, fixtureUser()))
	require.NoError(t, sink.Commit(ctx))

	// assert
	assert.True(t, metrics.HasDurationRecordWithLabels(MetricStatementDuration, map[string]string{LabelOperation: opInsertUser, LabelStatus: statusSuccess}))
	assert.True(t, metrics.HasDurationRecordWithLabels(MetricStatementDuration, map[string]string{LabelOperation: opCommit, LabelStatus: statusSuccess}))
}
