package helper

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/warehouse-seeder-go/seeder"
	"github.com/AntonStoeckl/warehouse-seeder-go/seeder/memoryengine"
)

// ErrInjected is returned by FailingSink for the operation it was told to fail.
var ErrInjected = errors.New("injected sink failure")

// FixedNow is the reference time used across tests.
var FixedNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

// FixedClock always returns FixedNow.
func FixedClock() time.Time {
	return FixedNow
}

// SinkOperation names one method of the seeder.Sink contract.
type SinkOperation string

const (
	OpReset              SinkOperation = "reset"
	OpInsertUser         SinkOperation = "insert_user"
	OpInsertSubscription SinkOperation = "insert_subscription"
	OpInsertEvent        SinkOperation = "insert_event"
	OpCommit             SinkOperation = "commit"
)

// FailingSink delegates to an in-memory sink and fails the n-th call of one operation.
// Calls records every operation in order, including the failing one.
type FailingSink struct {
	*memoryengine.Sink
	failOn SinkOperation
	failAt int
	counts map[SinkOperation]int
	Calls  []SinkOperation
}

var _ seeder.Sink = (*FailingSink)(nil)

// NewFailingSink creates a sink failing the failAt-th (1-based) call of failOn.
func NewFailingSink(failOn SinkOperation, failAt int) *FailingSink {
	return &FailingSink{
		Sink:   memoryengine.NewSink(),
		failOn: failOn,
		failAt: failAt,
		counts: make(map[SinkOperation]int),
	}
}

func (s *FailingSink) hit(op SinkOperation) error {
	s.Calls = append(s.Calls, op)
	s.counts[op]++

	if op == s.failOn && s.counts[op] == s.failAt {
		return ErrInjected
	}

	return nil
}

func (s *FailingSink) Reset(ctx context.Context) error {
	if err := s.hit(OpReset); err != nil {
		return err
	}

	return s.Sink.Reset(ctx)
}

func (s *FailingSink) InsertUser(ctx context.Context, user seeder.User) error {
	if err := s.hit(OpInsertUser); err != nil {
		return err
	}

	return s.Sink.InsertUser(ctx, user)
}

func (s *FailingSink) InsertSubscription(ctx context.Context, subscription seeder.Subscription) error {
	if err := s.hit(OpInsertSubscription); err != nil {
		return err
	}

	return s.Sink.InsertSubscription(ctx, subscription)
}

func (s *FailingSink) InsertEvent(ctx context.Context, event seeder.Event) error {
	if err := s.hit(OpInsertEvent); err != nil {
		return err
	}

	return s.Sink.InsertEvent(ctx, event)
}

func (s *FailingSink) Commit(ctx context.Context) error {
	if err := s.hit(OpCommit); err != nil {
		return err
	}

	return s.Sink.Commit(ctx)
}

// CallCount returns how often op was called, including a failing call.
func (s *FailingSink) CallCount(op SinkOperation) int {
	return s.counts[op]
}
