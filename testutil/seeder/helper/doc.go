// Package helper provides test doubles for the seeder packages.
//
// It contains a log handler spy for asserting on structured log output, a metrics collector spy,
// a sink that fails on a chosen operation, and a fixed clock.
package helper
