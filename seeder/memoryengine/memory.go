package memoryengine

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/warehouse-seeder-go/seeder"
)

var ErrDuplicateID = errors.New("duplicate identifier")
var ErrUnknownUser = errors.New("referenced user does not exist")

// Sink keeps committed rows in memory. The zero value is not usable, use NewSink.
type Sink struct {
	mu sync.Mutex

	users         []seeder.User
	subscriptions []seeder.Subscription
	events        []seeder.Event

	staged tables

	committedUserIDs map[uuid.UUID]struct{}
	stagedUserIDs    map[uuid.UUID]struct{}

	resets  int
	commits int
}

type tables struct {
	users         []seeder.User
	subscriptions []seeder.Subscription
	events        []seeder.Event
}

// NewSink creates an empty Sink.
func NewSink() *Sink {
	return &Sink{
		committedUserIDs: make(map[uuid.UUID]struct{}),
		stagedUserIDs:    make(map[uuid.UUID]struct{}),
	}
}

// Reset drops all committed and staged rows.
func (s *Sink) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = nil
	s.subscriptions = nil
	s.events = nil
	s.staged = tables{}
	s.committedUserIDs = make(map[uuid.UUID]struct{})
	s.stagedUserIDs = make(map[uuid.UUID]struct{})
	s.resets++

	return nil
}

// InsertUser stages a user row.
func (s *Sink) InsertUser(_ context.Context, user seeder.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasCommittedUser(user.ID) {
		return ErrDuplicateID
	}

	if _, ok := s.stagedUserIDs[user.ID]; ok {
		return ErrDuplicateID
	}

	s.staged.users = append(s.staged.users, user)
	s.stagedUserIDs[user.ID] = struct{}{}

	return nil
}

// InsertSubscription stages a subscription row. The owning user must already be committed.
func (s *Sink) InsertSubscription(_ context.Context, subscription seeder.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasCommittedUser(subscription.UserID) {
		return ErrUnknownUser
	}

	s.staged.subscriptions = append(s.staged.subscriptions, subscription)

	return nil
}

// InsertEvent stages an event row. The owning user must already be committed.
func (s *Sink) InsertEvent(_ context.Context, event seeder.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasCommittedUser(event.UserID) {
		return ErrUnknownUser
	}

	s.staged.events = append(s.staged.events, event)

	return nil
}

// Commit makes all staged rows visible.
func (s *Sink) Commit(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append(s.users, s.staged.users...)
	s.subscriptions = append(s.subscriptions, s.staged.subscriptions...)
	s.events = append(s.events, s.staged.events...)

	for id := range s.stagedUserIDs {
		s.committedUserIDs[id] = struct{}{}
	}

	s.staged = tables{}
	s.stagedUserIDs = make(map[uuid.UUID]struct{})
	s.commits++

	return nil
}

// Users returns a copy of the committed users.
func (s *Sink) Users() []seeder.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]seeder.User(nil), s.users...)
}

// Subscriptions returns a copy of the committed subscriptions.
func (s *Sink) Subscriptions() []seeder.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]seeder.Subscription(nil), s.subscriptions...)
}

// Events returns a copy of the committed events.
func (s *Sink) Events() []seeder.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]seeder.Event(nil), s.events...)
}

// StagedCount returns the number of rows inserted since the last Commit.
func (s *Sink) StagedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.staged.users) + len(s.staged.subscriptions) + len(s.staged.events)
}

// Resets returns how often Reset was called.
func (s *Sink) Resets() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resets
}

// Commits returns how often Commit was called.
func (s *Sink) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commits
}

// Probe mirrors the connectivity probe of the database sinks and always returns 1.
func (s *Sink) Probe(_ context.Context) (int, error) {
	return 1, nil
}

func (s *Sink) hasCommittedUser(id uuid.UUID) bool {
	_, ok := s.committedUserIDs[id]
	return ok
}
