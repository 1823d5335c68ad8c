package seeder

import (
	"time"
)

// Logger interface for phase progress, warnings, and error reporting.
// It is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting generation metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// Clock returns the reference time "now" of a run.
type Clock func() time.Time

// Option defines a functional option for configuring a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets the logger for the Pipeline.
//
// Info level: phase completions with counts and durations, the run summary
// Error level: failures that abort the run.
func WithLogger(logger Logger) Option {
	return func(p *Pipeline) error {
		p.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Pipeline.
func WithMetrics(collector MetricsCollector) Option {
	return func(p *Pipeline) error {
		p.metricsCollector = collector
		return nil
	}
}

// WithClock replaces the wall clock, which is read once at the start of each run.
func WithClock(clock Clock) Option {
	return func(p *Pipeline) error {
		if clock == nil {
			return ErrNilClock
		}

		p.clock = clock

		return nil
	}
}
