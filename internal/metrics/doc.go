// Package metrics exports seeding and sink metrics to Prometheus.
//
// Collector satisfies the MetricsCollector interfaces of both the seeder and the postgresengine packages.
// Metrics reported under a name it does not know are counted in seeder_unknown_metric_reports_total
// instead of being silently dropped.
package metrics
