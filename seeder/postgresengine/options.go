package postgresengine

import (
	"time"
)

// Logger interface for SQL query logging, operational information, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting sink performance and error metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// TableNames are the names of the three entity tables.
type TableNames struct {
	Users         string
	Subscriptions string
	Events        string
}

// DefaultTableNames returns users, subscriptions, events.
func DefaultTableNames() TableNames {
	return TableNames{
		Users:         defaultUsersTableName,
		Subscriptions: defaultSubscriptionsTableName,
		Events:        defaultEventsTableName,
	}
}

// Option defines a functional option for configuring Sink.
type Option func(*Sink) error

// WithTableNames sets the table names for the Sink.
func WithTableNames(names TableNames) Option {
	return func(s *Sink) error {
		if names.Users == "" || names.Subscriptions == "" || names.Events == "" {
			return ErrEmptyTableName
		}

		s.tables = names

		return nil
	}
}

// WithLogger sets the logger for the Sink.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Resets and commits with row counts and durations (production-safe)
// Warn level: Non-critical issues like rollback failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(s *Sink) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Sink.
// The collector will receive statement durations per operation and database error counts.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Sink) error {
		s.metricsCollector = collector
		return nil
	}
}
