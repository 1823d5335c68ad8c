// Package adapters hides the four supported PostgreSQL client libraries behind DBAdapter.
//
// The sink only needs three things from a connection: executing a literal statement and learning
// how many rows it touched, reading a single integer (the connectivity probe), and running
// statements inside one transaction per generation phase.
package adapters
