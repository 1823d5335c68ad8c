package seeder_test

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/AntonStoeckl/warehouse-seeder-go/seeder"
	"github.com/AntonStoeckl/warehouse-seeder-go/testutil/seeder/helper"
)

func Test_GenerateUsers_ShouldProduceUsersWithinAgeWindow(t *testing.T) {
	// arrange
	now := helper.FixedNow
	const maxAgeDays = 120
	oldest := now.Add(-(maxAgeDays*24*time.Hour + 23*time.Hour))
	youngest := now.Add(-24 * time.Hour)

	// act
	users, err := GenerateUsers(NewPhaseStreams(DefaultBaseSeed, PhaseUsers), now, 500, maxAgeDays)

	// assert
	require.NoError(t, err)
	require.Len(t, users, 500)

	for i, user := range users {
		assert.Equal(t, EmailForIndex(i), user.Email)
		assert.False(t, user.CreatedAt.Before(oldest), "user %d created too early: %s", i, user.CreatedAt)
		assert.False(t, user.CreatedAt.After(youngest), "user %d created too late: %s", i, user.CreatedAt)
		assert.Zero(t, user.CreatedAt.Sub(now)%time.Hour, "age is a whole number of hours")
		assert.True(t, slices.Contains(Countries, user.Country))
		assert.True(t, slices.Contains(Sources, user.SignupSource))
	}
}

func Test_GenerateUsers_ShouldProduceUniqueIDsAndEmails(t *testing.T) {
	// act
	users, err := GenerateUsers(NewPhaseStreams(DefaultBaseSeed, PhaseUsers), helper.FixedNow, 200, 30)
	require.NoError(t, err)

	// assert
	ids := make(map[string]struct{})
	emails := make(map[string]struct{})

	for _, user := range users {
		ids[user.ID.String()] = struct{}{}
		emails[user.Email] = struct{}{}
	}

	assert.Len(t, ids, 200)
	assert.Len(t, emails, 200)
}

func Test_GenerateUsers_ShouldBeDeterministic(t *testing.T) {
	// act
	first, err := GenerateUsers(NewPhaseStreams(7, PhaseUsers), helper.FixedNow, 20, 120)
	require.NoError(t, err)
	second, err := GenerateUsers(NewPhaseStreams(7, PhaseUsers), helper.FixedNow, 20, 120)
	require.NoError(t, err)
	other, err := GenerateUsers(NewPhaseStreams(8, PhaseUsers), helper.FixedNow, 20, 120)
	require.NoError(t, err)

	// assert
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func Test_GenerateUsers_ShouldReturnEmpty_WhenCountIsZero(t *testing.T) {
	users, err := GenerateUsers(NewPhaseStreams(1, PhaseUsers), helper.FixedNow, 0, 1)

	require.NoError(t, err)
	assert.Empty(t, users)
}

func Test_GenerateUsers_ShouldFail_WhenInputIsInvalid(t *testing.T) {
	_, err := GenerateUsers(NewPhaseStreams(1, PhaseUsers), helper.FixedNow, -1, 10)
	assert.ErrorIs(t, err, ErrNegativeCount)

	_, err = GenerateUsers(NewPhaseStreams(1, PhaseUsers), helper.FixedNow, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidMaxAge)

	_, err = GenerateUsers(NewPhaseStreams(1, PhaseUsers), helper.FixedNow, 10, MaxAgeDaysLimit+1)
	assert.ErrorIs(t, err, ErrInvalidMaxAge)
}

func Test_GenerateUsers_ShouldCreateEveryUserBeforeNow_WhenMaxAgeIsAtLimit(t *testing.T) {
	// arrange
	now := helper.FixedNow

	// act
	users, err := GenerateUsers(NewPhaseStreams(DefaultBaseSeed, PhaseUsers), now, 200, MaxAgeDaysLimit)

	// assert
	require.NoError(t, err)
	require.Len(t, users, 200)
	for _, user := range users {
		assert.True(t, user.CreatedAt.Before(now), "user %s created at %s", user.Email, user.CreatedAt)
	}
}

func Test_EmailForIndex_ShouldBeOneBased(t *testing.T) {
	assert.Equal(t, "user1@demo.local", EmailForIndex(0))
	assert.Equal(t, "user50@demo.local", EmailForIndex(49))
}
