package postgresengine

import (
	"math"
	"time"
)

// Metric names reported to a MetricsCollector.
const (
	MetricStatementDuration = "postgres_sink_statement_duration_seconds"
	MetricDatabaseErrors    = "postgres_sink_errors_total"
	LabelOperation          = "operation"
	LabelStatus             = "status"
	statusSuccess           = "success"
	statusError             = "error"
)

const (
	opReset              = "reset"
	opInsertUser         = "insert_user"
	opInsertSubscription = "insert_subscription"
	opInsertEvent        = "insert_event"
	opCommit             = "commit"
	opProbe              = "probe"
)

const (
	logMsgBuildQueryFailed = "failed to build query"
	logMsgMarshalFailed    = "failed to marshal event properties"
	logMsgResetFailed      = "truncating tables failed"
	logMsgBeginFailed      = "beginning phase transaction failed"
	logMsgInsertFailed     = "database execution failed during insert"
	logMsgCommitFailed     = "committing phase transaction failed"
	logMsgRollbackFailed   = "rolling back phase transaction failed"
	logMsgProbeFailed      = "connectivity probe failed"
	logMsgTablesReset      = "tables reset"
	logMsgCommitted        = "phase committed"
	logMsgSQLExecuted      = "executed sql for: "
	logMsgOperation        = "sink operation: "
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrOperation       = "operation"
	logAttrEventName       = "event_name"
	logAttrRowCount        = "row_count"
	logAttrRowsAffected    = "rows_affected"
	logAttrDurationMS      = "duration_ms"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (s *Sink) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (s *Sink) logOperation(action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logError logs error information at the error level if the logger is configured.
func (s *Sink) logError(message string, err error, args ...any) {
	if s.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		s.logger.Error(message, allArgs...)
	}
}

// recordDurationMetrics records a successful statement duration if the collector is configured.
func (s *Sink) recordDurationMetrics(operation string, duration time.Duration) {
	if s.metricsCollector != nil {
		s.metricsCollector.RecordDuration(MetricStatementDuration, duration, map[string]string{
			LabelOperation: operation,
			LabelStatus:    statusSuccess,
		})
	}
}

// recordErrorMetrics records a database error if the collector is configured.
func (s *Sink) recordErrorMetrics(operation string) {
	if s.metricsCollector != nil {
		s.metricsCollector.IncrementCounter(MetricDatabaseErrors, map[string]string{
			LabelOperation: operation,
			LabelStatus:    statusError,
		})
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s *Sink) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
