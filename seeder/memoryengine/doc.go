// Package memoryengine provides an in-memory seeder.Sink.
//
// Inserts are staged until Commit, mirroring the per-phase commit boundary of the database sinks.
// It backs dry runs and tests that need to inspect exactly what a run persisted.
package memoryengine
