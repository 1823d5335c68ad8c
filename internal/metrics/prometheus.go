package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/AntonStoeckl/warehouse-seeder-go/seeder"
	"github.com/AntonStoeckl/warehouse-seeder-go/seeder/postgresengine"
)

const pushJobName = "warehouse_seeder"

var ErrPushFailed = errors.New("pushing metrics failed")

type histogramEntry struct {
	vec    *promclient.HistogramVec
	labels []string
}

type counterEntry struct {
	vec    *promclient.CounterVec
	labels []string
}

type gaugeEntry struct {
	vec    *promclient.GaugeVec
	labels []string
}

// Collector maps metric reports onto registered Prometheus vectors.
type Collector struct {
	registry   *promclient.Registry
	histograms map[string]histogramEntry
	counters   map[string]counterEntry
	gauges     map[string]gaugeEntry
	unknown    *promclient.CounterVec
}

var (
	_ seeder.MetricsCollector         = (*Collector)(nil)
	_ postgresengine.MetricsCollector = (*Collector)(nil)
)

// NewCollector registers all known metrics in a fresh registry.
func NewCollector() (*Collector, error) {
	reg := promclient.NewRegistry()

	c := &Collector{
		registry:   reg,
		histograms: make(map[string]histogramEntry),
		counters:   make(map[string]counterEntry),
		gauges:     make(map[string]gaugeEntry),
	}

	c.addHistogram(seeder.MetricPhaseDuration, "Duration of one generation phase including persistence.",
		seeder.LabelPhase, seeder.LabelStatus)
	c.addHistogram(seeder.MetricRunDuration, "Duration of a complete seeding run.",
		seeder.LabelStatus)
	c.addHistogram(postgresengine.MetricStatementDuration, "Duration of sink statements.",
		postgresengine.LabelOperation, postgresengine.LabelStatus)

	c.addCounter(seeder.MetricPhaseErrors, "Phases aborted by an error.",
		seeder.LabelPhase, seeder.LabelErrorType)
	c.addCounter(seeder.MetricRunsCompleted, "Seeding runs that completed.",
		seeder.LabelStatus)
	c.addCounter(postgresengine.MetricDatabaseErrors, "Failed sink statements.",
		postgresengine.LabelOperation, postgresengine.LabelStatus)

	c.addGauge(seeder.MetricPhaseRecords, "Records generated by the last run of a phase.",
		seeder.LabelPhase)

	c.unknown = promclient.NewCounterVec(promclient.CounterOpts{
		Name: "seeder_unknown_metric_reports_total",
		Help: "Reports under a metric name without a registered collector.",
	}, []string{"metric"})

	collectors := []promclient.Collector{c.unknown}
	for _, h := range c.histograms {
		collectors = append(collectors, h.vec)
	}
	for _, cnt := range c.counters {
		collectors = append(collectors, cnt.vec)
	}
	for _, g := range c.gauges {
		collectors = append(collectors, g.vec)
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return c, nil
}

// MustNewCollector is like NewCollector but panics on registration errors.
func MustNewCollector() *Collector {
	c, err := NewCollector()
	if err != nil {
		panic(err)
	}

	return c
}

func (c *Collector) addHistogram(name, help string, labels ...string) {
	c.histograms[name] = histogramEntry{
		vec: promclient.NewHistogramVec(promclient.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: promclient.DefBuckets,
		}, labels),
		labels: labels,
	}
}

func (c *Collector) addCounter(name, help string, labels ...string) {
	c.counters[name] = counterEntry{
		vec:    promclient.NewCounterVec(promclient.CounterOpts{Name: name, Help: help}, labels),
		labels: labels,
	}
}

func (c *Collector) addGauge(name, help string, labels ...string) {
	c.gauges[name] = gaugeEntry{
		vec:    promclient.NewGaugeVec(promclient.GaugeOpts{Name: name, Help: help}, labels),
		labels: labels,
	}
}

// Registry exposes the registry, e.g. for a /metrics handler.
func (c *Collector) Registry() *promclient.Registry {
	return c.registry
}

// RecordDuration observes duration in seconds.
func (c *Collector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	entry, ok := c.histograms[metric]
	if !ok {
		c.unknown.WithLabelValues(metric).Inc()
		return
	}

	entry.vec.WithLabelValues(labelValues(entry.labels, labels)...).Observe(duration.Seconds())
}

// IncrementCounter adds one to the counter.
func (c *Collector) IncrementCounter(metric string, labels map[string]string) {
	entry, ok := c.counters[metric]
	if !ok {
		c.unknown.WithLabelValues(metric).Inc()
		return
	}

	entry.vec.WithLabelValues(labelValues(entry.labels, labels)...).Inc()
}

// RecordValue sets the gauge.
func (c *Collector) RecordValue(metric string, value float64, labels map[string]string) {
	entry, ok := c.gauges[metric]
	if !ok {
		c.unknown.WithLabelValues(metric).Inc()
		return
	}

	entry.vec.WithLabelValues(labelValues(entry.labels, labels)...).Set(value)
}

// Push sends all collected metrics to a Prometheus Pushgateway at url.
func (c *Collector) Push(ctx context.Context, url string) error {
	if err := push.New(url, pushJobName).Gatherer(c.registry).PushContext(ctx); err != nil {
		return errors.Join(ErrPushFailed, err)
	}

	return nil
}

// labelValues orders values by the registered label names; missing labels become empty.
func labelValues(names []string, labels map[string]string) []string {
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = labels[name]
	}

	return values
}
