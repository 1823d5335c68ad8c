package seeder_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/AntonStoeckl/warehouse-seeder-go/seeder"
)

func Test_DefaultParams_ShouldBeValid(t *testing.T) {
	// act
	params := DefaultParams()

	// assert
	assert.NoError(t, params.Validate())
	assert.Equal(t, int64(42), params.BaseSeed)
	assert.Equal(t, 50, params.UserCount)
	assert.Equal(t, 40, params.SubscriptionCount)
	assert.Equal(t, Range{Min: 5, Max: 25}, params.EventsPerUser)
	assert.Equal(t, 120, params.MaxUserAgeDays)
}

func Test_Params_Validate_ShouldReportEveryViolation(t *testing.T) {
	// arrange
	params := Params{
		UserCount:         -1,
		SubscriptionCount: -2,
		EventsPerUser:     Range{Min: 3, Max: 1},
		MaxUserAgeDays:    0,
	}

	// act
	err := params.Validate()

	// assert
	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.ErrorIs(t, err, ErrNegativeCount)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.ErrorIs(t, err, ErrInvalidMaxAge)
}

func Test_Range_Validate(t *testing.T) {
	assert.NoError(t, Range{Min: 0, Max: 0}.Validate())
	assert.NoError(t, Range{Min: 5, Max: 25}.Validate())
	assert.ErrorIs(t, Range{Min: -1, Max: 3}.Validate(), ErrInvalidRange)
	assert.ErrorIs(t, Range{Min: 4, Max: 3}.Validate(), ErrInvalidRange)
	assert.Equal(t, "5-25", Range{Min: 5, Max: 25}.String())
}

func Test_Params_Validate_ShouldRejectMaxAge_WhenItOverflowsDuration(t *testing.T) {
	// arrange
	atLimit := DefaultParams()
	atLimit.MaxUserAgeDays = MaxAgeDaysLimit
	beyondLimit := DefaultParams()
	beyondLimit.MaxUserAgeDays = MaxAgeDaysLimit + 1

	// act & assert
	assert.Equal(t, 106751, MaxAgeDaysLimit)
	assert.NoError(t, atLimit.Validate())
	assert.ErrorIs(t, beyondLimit.Validate(), ErrInvalidMaxAge)
}

func Test_Range_Validate_ShouldReject_WhenMaxIsMaxInt(t *testing.T) {
	// arrange
	params := DefaultParams()
	params.EventsPerUser = Range{Min: 0, Max: math.MaxInt}

	// act
	err := params.Validate()

	// assert
	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.NoError(t, Range{Min: 0, Max: math.MaxInt - 1}.Validate())
}
