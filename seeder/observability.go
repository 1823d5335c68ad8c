package seeder

import (
	"math"
	"time"
)

// Metric names reported to a MetricsCollector.
const (
	MetricPhaseDuration = "seeder_phase_duration_seconds"
	MetricPhaseRecords  = "seeder_phase_records"
	MetricPhaseErrors   = "seeder_phase_errors_total"
	MetricRunDuration   = "seeder_run_duration_seconds"
	MetricRunsCompleted = "seeder_runs_completed_total"
)

// Metric label keys and values.
const (
	LabelPhase     = "phase"
	LabelStatus    = "status"
	LabelErrorType = "error_type"
	StatusSuccess  = "success"
	StatusError    = "error"
	errTypeGen     = "generate"
	errTypeSink    = "sink"

	resetPhaseLabel = "reset"
)

const (
	logMsgRunStarted     = "seeding run started"
	logMsgResetCompleted = "sink reset completed"
	logMsgPhaseCompleted = "phase completed"
	logMsgPhaseFailed    = "phase failed"
	logMsgRunCompleted   = "seed complete"
	logAttrError         = "error"
	logAttrPhase         = "phase"
	logAttrSeed          = "seed"
	logAttrRecordCount   = "record_count"
	logAttrDurationMS    = "duration_ms"
	logAttrUsers         = "users"
	logAttrSubscriptions = "subscriptions"
	logAttrEvents        = "events"
	logAttrCancelled     = "cancelled"
	logAttrPaidUsers     = "paid_users"
	logAttrNow           = "now"
)

// logOperation logs operational information at info level if the logger is configured.
func (p *Pipeline) logOperation(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

// logError logs error information at the error level if the logger is configured.
func (p *Pipeline) logError(msg string, err error, args ...any) {
	if p.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		p.logger.Error(msg, allArgs...)
	}
}

func (p *Pipeline) recordPhaseMetrics(phase Phase, records int, duration time.Duration) {
	if p.metricsCollector == nil {
		return
	}

	labels := map[string]string{LabelPhase: phase.String(), LabelStatus: StatusSuccess}
	p.metricsCollector.RecordDuration(MetricPhaseDuration, duration, labels)
	p.metricsCollector.RecordValue(MetricPhaseRecords, float64(records), map[string]string{LabelPhase: phase.String()})
}

func (p *Pipeline) recordPhaseError(phase string, errorType string) {
	if p.metricsCollector == nil {
		return
	}

	p.metricsCollector.IncrementCounter(MetricPhaseErrors, map[string]string{
		LabelPhase:     phase,
		LabelErrorType: errorType,
	})
}

// recordRunMetrics records the run duration and completion with status success or error.
func (p *Pipeline) recordRunMetrics(duration time.Duration, status string) {
	if p.metricsCollector == nil {
		return
	}

	labels := map[string]string{LabelStatus: status}
	p.metricsCollector.RecordDuration(MetricRunDuration, duration, labels)
	p.metricsCollector.IncrementCounter(MetricRunsCompleted, labels)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
