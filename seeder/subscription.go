package seeder

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Plan is the billing plan of a Subscription.
type Plan string

const (
	PlanFree  Plan = "free"
	PlanBasic Plan = "basic"
	PlanPro   Plan = "pro"
)

// Status is the lifecycle state of a Subscription.
// Every subscription starts active; the only transition is active -> cancelled,
// decided once at creation time. Both states are terminal afterward.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

const (
	cancellationProbability = 0.22
	maxStartOffsetDays      = 10
	minCancelOffsetDays     = 7
	maxCancelOffsetDays     = 60
	day                     = 24 * time.Hour
)

// PlanTable is the plan distribution: free 45%, basic 35%, pro 20%.
var PlanTable = MustWeightedTable(
	[]Plan{PlanFree, PlanBasic, PlanPro},
	[]float64{0.45, 0.35, 0.20},
)

var planMRR = map[Plan]float64{
	PlanFree:  0,
	PlanBasic: 29,
	PlanPro:   99,
}

// MRR returns the monthly recurring revenue in USD of the plan. Unknown plans yield 0.
func (p Plan) MRR() float64 {
	return planMRR[p]
}

// IsPaid reports whether the plan is a non-free plan.
func (p Plan) IsPaid() bool {
	return p == PlanBasic || p == PlanPro
}

// Subscription is the billing state of one sampled user.
type Subscription struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Plan        Plan
	Status      Status
	StartedAt   time.Time
	CancelledAt *time.Time
	MRRUSD      float64
}

// IsCancelled reports whether the subscription ended in the cancelled state.
func (s Subscription) IsCancelled() bool {
	return s.Status == StatusCancelled
}

// GenerateSubscriptions samples min(count, len(users)) distinct users uniformly without replacement
// and derives one subscription for each of them.
//
// The start is the user's creation time plus 0-10 days. A cancellation flag is drawn for every
// subscription but only honoured for paid plans. A cancellation is placed 7-60 days after the start;
// if that lies after now, the subscription stays active and carries no cancellation time (right-censoring).
func GenerateSubscriptions(streams PhaseStreams, now time.Time, users []User, count int) ([]Subscription, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}

	r := streams.Rand
	sampled := sampleWithoutReplacement(r, len(users), min(count, len(users)))
	subscriptions := make([]Subscription, 0, len(sampled))

	for _, idx := range sampled {
		user := users[idx]

		id, err := streams.NewID()
		if err != nil {
			return nil, err
		}

		plan := PlanTable.Pick(r)
		startedAt := user.CreatedAt.Add(time.Duration(randIntInclusive(r, 0, maxStartOffsetDays)) * day)
		wantsToCancel := r.Float64() < cancellationProbability

		status, cancelledAt := resolveStatus(r, now, plan, startedAt, wantsToCancel)

		subscriptions = append(subscriptions, Subscription{
			ID:          id,
			UserID:      user.ID,
			Plan:        plan,
			Status:      status,
			StartedAt:   startedAt,
			CancelledAt: cancelledAt,
			MRRUSD:      plan.MRR(),
		})
	}

	return subscriptions, nil
}

// resolveStatus is the single transition point of the subscription state machine.
// Free plans never cancel. A cancellation that would lie in the future is censored to active.
func resolveStatus(r *rand.Rand, now time.Time, plan Plan, startedAt time.Time, wantsToCancel bool) (Status, *time.Time) {
	if !wantsToCancel || !plan.IsPaid() {
		return StatusActive, nil
	}

	cancelledAt := startedAt.Add(time.Duration(randIntInclusive(r, minCancelOffsetDays, maxCancelOffsetDays)) * day)
	if cancelledAt.After(now) {
		return StatusActive, nil
	}

	return StatusCancelled, &cancelledAt
}

// sampleWithoutReplacement returns k distinct indices of [0, n) in sampling order,
// using a partial Fisher-Yates shuffle.
func sampleWithoutReplacement(r *rand.Rand, n, k int) []int {
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}

	for i := 0; i < k; i++ {
		j := i + r.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:k]
}
