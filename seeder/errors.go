package seeder

import (
	"errors"
)

var ErrInvalidParams = errors.New("invalid generation parameters")
var ErrNegativeCount = errors.New("count must not be negative")
var ErrInvalidRange = errors.New("range must satisfy 0 <= min <= max < MaxInt")
var ErrInvalidMaxAge = errors.New("max age in days must be between 1 and MaxAgeDaysLimit")
var ErrInvalidWeights = errors.New("weights must be non-negative with a positive sum and match the items")
var ErrNilSink = errors.New("nil sink supplied")
var ErrNilClock = errors.New("nil clock supplied")
var ErrResetFailed = errors.New("resetting the sink failed")
var ErrPersistingUsersFailed = errors.New("persisting users failed")
var ErrPersistingSubscriptionsFailed = errors.New("persisting subscriptions failed")
var ErrPersistingEventsFailed = errors.New("persisting events failed")
