// Package health serves the HTTP health-check endpoints next to the seeded database.
//
//	GET /          short banner
//	GET /health    liveness, never touches the database
//	GET /db-check  runs SELECT 1 through a Prober
//	GET /metrics   Prometheus exposition, when a gatherer is configured
package health
