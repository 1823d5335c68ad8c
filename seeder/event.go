package seeder

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// EventName is the categorical name of a behavioral Event.
type EventName string

const (
	EventSignup            EventName = "signup"
	EventLogin             EventName = "login"
	EventFeatureUsed       EventName = "feature_used"
	EventInviteSent        EventName = "invite_sent"
	EventBillingPageViewed EventName = "billing_page_viewed"
	EventPaymentFailed     EventName = "payment_failed"
)

// Cohort groups users by whether they own a non-free subscription.
type Cohort string

const (
	CohortPaid Cohort = "paid"
	CohortFree Cohort = "free"
)

const (
	PropertyFeature = "feature"
	PropertyReason  = "reason"
)

// EventNames lists all event names in the order the weight vectors refer to.
var EventNames = []EventName{
	EventSignup,
	EventLogin,
	EventFeatureUsed,
	EventInviteSent,
	EventBillingPageViewed,
	EventPaymentFailed,
}

// PaidEventTable is the event name distribution of the paid cohort.
var PaidEventTable = MustWeightedTable(EventNames, []float64{1, 6, 7, 3, 2, 1})

// FreeEventTable is the event name distribution of the free cohort.
var FreeEventTable = MustWeightedTable(EventNames, []float64{1, 5, 4, 1, 1, 2})

// Features are the values of the "feature" property of feature_used events.
var Features = []string{"export_csv", "dashboards", "api_access", "alerts"}

// FailureReasons are the values of the "reason" property of payment_failed events.
var FailureReasons = []string{"card_declined", "insufficient_funds", "expired_card"}

// Properties is the structured payload of an Event. It is never nil for generated events.
type Properties map[string]string

// Event is one behavioral event of a user.
type Event struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       EventName
	OccurredAt time.Time
	Properties Properties
}

// EventTableFor returns the event name distribution of the cohort.
func EventTableFor(cohort Cohort) WeightedTable[EventName] {
	if cohort == CohortPaid {
		return PaidEventTable
	}

	return FreeEventTable
}

// PaidUserIDs returns the set of users owning at least one basic or pro subscription,
// regardless of the subscription status.
func PaidUserIDs(subscriptions []Subscription) map[uuid.UUID]struct{} {
	paid := make(map[uuid.UUID]struct{})

	for _, s := range subscriptions {
		if s.Plan.IsPaid() {
			paid[s.UserID] = struct{}{}
		}
	}

	return paid
}

// GenerateEvents derives the behavioral stream of every user.
//
// Per user, the number of events is uniform in eventsPerUser. Each event name is drawn from the
// distribution of the user's cohort, and each timestamp uniformly (whole seconds) from the user's
// lifetime window [CreatedAt, now]. A user created at or after now gets all events at exactly now.
func GenerateEvents(
	streams PhaseStreams,
	now time.Time,
	users []User,
	subscriptions []Subscription,
	eventsPerUser Range,
) ([]Event, error) {

	if err := eventsPerUser.Validate(); err != nil {
		return nil, err
	}

	r := streams.Rand
	paid := PaidUserIDs(subscriptions)
	events := make([]Event, 0, eventsCapacity(len(users), eventsPerUser))

	for _, user := range users {
		cohort := CohortFree
		if _, ok := paid[user.ID]; ok {
			cohort = CohortPaid
		}

		table := EventTableFor(cohort)
		numEvents := randIntInclusive(r, eventsPerUser.Min, eventsPerUser.Max)

		for j := 0; j < numEvents; j++ {
			id, err := streams.NewID()
			if err != nil {
				return nil, err
			}

			name := table.Pick(r)

			events = append(events, Event{
				ID:         id,
				UserID:     user.ID,
				Name:       name,
				OccurredAt: eventTimestamp(r, user.CreatedAt, now),
				Properties: propertiesFor(r, name),
			})
		}
	}

	return events, nil
}

// eventsCapacity estimates the number of events for preallocation, bounded by maxPrealloc.
func eventsCapacity(users int, eventsPerUser Range) int {
	mean := eventsPerUser.Min + (eventsPerUser.Max-eventsPerUser.Min)/2
	if mean == 0 {
		return 0
	}

	if users > maxPrealloc/mean {
		return maxPrealloc
	}

	return users * mean
}

func eventTimestamp(r *rand.Rand, createdAt, now time.Time) time.Time {
	windowSeconds := int64(now.Sub(createdAt) / time.Second)
	if windowSeconds <= 0 {
		return now
	}

	return createdAt.Add(time.Duration(r.Int64N(windowSeconds+1)) * time.Second)
}

// propertiesFor returns the payload for an event name. The payload shape is a pure function of the name.
func propertiesFor(r *rand.Rand, name EventName) Properties {
	switch name {
	case EventFeatureUsed:
		return Properties{PropertyFeature: pickUniform(r, Features)}
	case EventPaymentFailed:
		return Properties{PropertyReason: pickUniform(r, FailureReasons)}
	default:
		return Properties{}
	}
}
