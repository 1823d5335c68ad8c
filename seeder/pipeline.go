package seeder

import (
	"context"
	"errors"
	"time"
)

// Summary reports what one run generated and persisted.
type Summary struct {
	BaseSeed      int64
	Now           time.Time
	Users         int
	Subscriptions int
	Cancelled     int
	PaidUsers     int
	Events        int
}

// Dataset is a fully materialized, not persisted, generation result.
type Dataset struct {
	Users         []User
	Subscriptions []Subscription
	Events        []Event
}

// Pipeline runs the three generation phases against a Sink, strictly in order.
// It is not safe for concurrent use; runs are meant to be executed one at a time.
type Pipeline struct {
	sink             Sink
	logger           Logger
	metricsCollector MetricsCollector
	clock            Clock
}

// NewPipeline creates a Pipeline persisting into sink with optional configuration.
func NewPipeline(sink Sink, options ...Option) (*Pipeline, error) {
	if sink == nil {
		return nil, ErrNilSink
	}

	p := &Pipeline{
		sink:  sink,
		clock: func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Run validates params, resets the sink, and then generates, inserts, and commits
// users, subscriptions, and events, in that order.
//
// Invalid params are rejected before the sink is touched. The first failing operation aborts the run;
// phases committed before the failure stay persisted. "now" is read once from the clock at the start.
func (p *Pipeline) Run(ctx context.Context, params Params) (Summary, error) {
	if err := params.Validate(); err != nil {
		return Summary{}, err
	}

	runStart := time.Now()
	now := p.clock()
	summary := Summary{BaseSeed: params.BaseSeed, Now: now}

	p.logOperation(logMsgRunStarted, logAttrSeed, params.BaseSeed, logAttrNow, now)

	if err := p.runPhases(ctx, params, &summary); err != nil {
		p.recordRunMetrics(time.Since(runStart), StatusError)
		return summary, err
	}

	p.recordRunMetrics(time.Since(runStart), StatusSuccess)
	p.logOperation(
		logMsgRunCompleted,
		logAttrUsers, summary.Users,
		logAttrSubscriptions, summary.Subscriptions,
		logAttrCancelled, summary.Cancelled,
		logAttrPaidUsers, summary.PaidUsers,
		logAttrEvents, summary.Events,
		logAttrDurationMS, toMilliseconds(time.Since(runStart)),
	)

	return summary, nil
}

// runPhases resets the sink and runs the three phases, filling summary as each phase commits.
func (p *Pipeline) runPhases(ctx context.Context, params Params, summary *Summary) error {
	now := summary.Now

	if err := p.sink.Reset(ctx); err != nil {
		p.logError(logMsgPhaseFailed, err, logAttrPhase, resetPhaseLabel)
		p.recordPhaseError(resetPhaseLabel, errTypeSink)

		return errors.Join(ErrResetFailed, err)
	}

	p.logOperation(logMsgResetCompleted)

	users, err := runPhase(ctx, p, PhaseUsers, ErrPersistingUsersFailed,
		func(streams PhaseStreams) ([]User, error) {
			return GenerateUsers(streams, now, params.UserCount, params.MaxUserAgeDays)
		},
		params.BaseSeed,
		p.sink.InsertUser,
	)
	if err != nil {
		return err
	}

	summary.Users = len(users)

	subscriptions, err := runPhase(ctx, p, PhaseSubscriptions, ErrPersistingSubscriptionsFailed,
		func(streams PhaseStreams) ([]Subscription, error) {
			return GenerateSubscriptions(streams, now, users, params.SubscriptionCount)
		},
		params.BaseSeed,
		p.sink.InsertSubscription,
	)
	if err != nil {
		return err
	}

	summary.Subscriptions = len(subscriptions)
	summary.Cancelled = countCancelled(subscriptions)
	summary.PaidUsers = len(PaidUserIDs(subscriptions))

	events, err := runPhase(ctx, p, PhaseEvents, ErrPersistingEventsFailed,
		func(streams PhaseStreams) ([]Event, error) {
			return GenerateEvents(streams, now, users, subscriptions, params.EventsPerUser)
		},
		params.BaseSeed,
		p.sink.InsertEvent,
	)
	if err != nil {
		return err
	}

	summary.Events = len(events)

	return nil
}

// runPhase generates the records of one phase from its own streams, inserts them one by one,
// and commits. The returned records are only needed as input for the following phases.
func runPhase[T any](
	ctx context.Context,
	p *Pipeline,
	phase Phase,
	phaseErr error,
	generate func(PhaseStreams) ([]T, error),
	baseSeed int64,
	insert func(context.Context, T) error,
) ([]T, error) {

	start := time.Now()

	records, err := generate(NewPhaseStreams(baseSeed, phase))
	if err != nil {
		p.logError(logMsgPhaseFailed, err, logAttrPhase, phase.String())
		p.recordPhaseError(phase.String(), errTypeGen)

		return nil, errors.Join(phaseErr, err)
	}

	for _, record := range records {
		if err = insert(ctx, record); err != nil {
			break
		}
	}

	if err == nil {
		err = p.sink.Commit(ctx)
	}

	if err != nil {
		p.logError(logMsgPhaseFailed, err, logAttrPhase, phase.String())
		p.recordPhaseError(phase.String(), errTypeSink)

		return nil, errors.Join(phaseErr, err)
	}

	duration := time.Since(start)
	p.recordPhaseMetrics(phase, len(records), duration)
	p.logOperation(
		logMsgPhaseCompleted,
		logAttrPhase, phase.String(),
		logAttrRecordCount, len(records),
		logAttrDurationMS, toMilliseconds(duration),
	)

	return records, nil
}

// GenerateDataset runs all three generators without persisting anything.
// For equal params and now, the result is identical to what Run persists.
func GenerateDataset(params Params, now time.Time) (Dataset, error) {
	if err := params.Validate(); err != nil {
		return Dataset{}, err
	}

	users, err := GenerateUsers(NewPhaseStreams(params.BaseSeed, PhaseUsers), now, params.UserCount, params.MaxUserAgeDays)
	if err != nil {
		return Dataset{}, err
	}

	subscriptions, err := GenerateSubscriptions(NewPhaseStreams(params.BaseSeed, PhaseSubscriptions), now, users, params.SubscriptionCount)
	if err != nil {
		return Dataset{}, err
	}

	events, err := GenerateEvents(NewPhaseStreams(params.BaseSeed, PhaseEvents), now, users, subscriptions, params.EventsPerUser)
	if err != nil {
		return Dataset{}, err
	}

	return Dataset{Users: users, Subscriptions: subscriptions, Events: events}, nil
}

func countCancelled(subscriptions []Subscription) int {
	n := 0

	for _, s := range subscriptions {
		if s.IsCancelled() {
			n++
		}
	}

	return n
}
