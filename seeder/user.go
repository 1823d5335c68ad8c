package seeder

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Countries are the categorical values of User.Country.
var Countries = []string{"US", "CA", "IN", "GB", "DE", "AU"}

// Sources are the categorical values of User.SignupSource.
var Sources = []string{"google", "linkedin", "github", "referral", "twitter"}

const (
	emailDomain  = "demo.local"
	hoursPerDay  = 24
	minAgeInDays = 1
	maxPrealloc  = 1 << 16
)

// MaxAgeDaysLimit is the largest max age whose day and hour offset still fits into a time.Duration.
const MaxAgeDaysLimit = int((math.MaxInt64 - (hoursPerDay-1)*int64(time.Hour)) / (hoursPerDay * int64(time.Hour)))

// User is the root entity of the dataset.
type User struct {
	ID           uuid.UUID
	Email        string
	CreatedAt    time.Time
	Country      string
	SignupSource string
}

// EmailForIndex maps the zero-based position of a user to its email address.
// The mapping is injective, which makes emails unique without any uniqueness check:
// index 0 maps to "user1@demo.local", index 1 to "user2@demo.local", and so on.
func EmailForIndex(i int) string {
	return fmt.Sprintf("user%d@%s", i+1, emailDomain)
}

// GenerateUsers produces count users created within the last maxAgeDays days relative to now.
//
// The age of each user is a uniform number of days in [1, maxAgeDays] plus a uniform number of
// hours in [0, 23]. Country and signup source are drawn uniformly and independently.
func GenerateUsers(streams PhaseStreams, now time.Time, count int, maxAgeDays int) ([]User, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}

	if maxAgeDays < minAgeInDays || maxAgeDays > MaxAgeDaysLimit {
		return nil, ErrInvalidMaxAge
	}

	users := make([]User, 0, min(count, maxPrealloc))
	r := streams.Rand

	for i := 0; i < count; i++ {
		id, err := streams.NewID()
		if err != nil {
			return nil, err
		}

		days := randIntInclusive(r, minAgeInDays, maxAgeDays)
		hours := randIntInclusive(r, 0, hoursPerDay-1)
		createdAt := now.Add(-(time.Duration(days)*hoursPerDay*time.Hour + time.Duration(hours)*time.Hour))

		users = append(users, User{
			ID:           id,
			Email:        EmailForIndex(i),
			CreatedAt:    createdAt,
			Country:      pickUniform(r, Countries),
			SignupSource: pickUniform(r, Sources),
		})
	}

	return users, nil
}

// randIntInclusive returns a uniform integer in [lo, hi].
func randIntInclusive(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func pickUniform[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}
