// Package storage opens the PostgreSQL connection selected by the configured adapter type
// and wraps it together with the seeding sink built on top of it.
//
// The wrapper owns the connection: Close rolls back an uncommitted phase and releases the connection.
package storage
