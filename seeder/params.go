package seeder

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultUserCount         = 50
	DefaultSubscriptionCount = 40
	DefaultMinEventsPerUser  = 5
	DefaultMaxEventsPerUser  = 25
	DefaultMaxUserAgeDays    = 120
)

// Range is an inclusive integer range [Min, Max].
type Range struct {
	Min int
	Max int
}

// Validate returns ErrInvalidRange unless 0 <= Min <= Max < math.MaxInt.
func (r Range) Validate() error {
	if r.Min < 0 || r.Max < r.Min || r.Max == math.MaxInt {
		return ErrInvalidRange
	}

	return nil
}

// String renders the range as "min-max".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Params are the explicit inputs of one generation run.
type Params struct {
	BaseSeed          int64
	UserCount         int
	SubscriptionCount int
	EventsPerUser     Range
	MaxUserAgeDays    int
}

// DefaultParams returns the documented defaults: seed 42, 50 users, 40 subscriptions,
// 5-25 events per user, users created within the last 120 days.
func DefaultParams() Params {
	return Params{
		BaseSeed:          DefaultBaseSeed,
		UserCount:         DefaultUserCount,
		SubscriptionCount: DefaultSubscriptionCount,
		EventsPerUser:     Range{Min: DefaultMinEventsPerUser, Max: DefaultMaxEventsPerUser},
		MaxUserAgeDays:    DefaultMaxUserAgeDays,
	}
}

// Validate checks all parameters up front, so a run is rejected before any phase starts.
// The returned error wraps ErrInvalidParams and the specific cause.
func (p Params) Validate() error {
	var errs []error

	if p.UserCount < 0 {
		errs = append(errs, fmt.Errorf("user count %d: %w", p.UserCount, ErrNegativeCount))
	}

	if p.SubscriptionCount < 0 {
		errs = append(errs, fmt.Errorf("subscription count %d: %w", p.SubscriptionCount, ErrNegativeCount))
	}

	if err := p.EventsPerUser.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("events per user %s: %w", p.EventsPerUser, err))
	}

	if p.MaxUserAgeDays < minAgeInDays || p.MaxUserAgeDays > MaxAgeDaysLimit {
		errs = append(errs, fmt.Errorf("max user age %d days: %w", p.MaxUserAgeDays, ErrInvalidMaxAge))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidParams}, errs...)...)
	}

	return nil
}
