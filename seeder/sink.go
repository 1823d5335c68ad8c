package seeder

import (
	"context"
)

// Sink is the storage the pipeline persists into.
//
// Inserts of one phase are staged until Commit, which durably persists everything since the
// previous Commit. There is no rollback across phases: a failing phase leaves earlier phases committed.
//
// Reset destructively clears all entity tables and resets identity counters. It is invoked exactly
// once at the start of a run.
type Sink interface {
	Reset(ctx context.Context) error
	InsertUser(ctx context.Context, user User) error
	InsertSubscription(ctx context.Context, subscription Subscription) error
	InsertEvent(ctx context.Context, event Event) error
	Commit(ctx context.Context) error
}
