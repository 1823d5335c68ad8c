package seeder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_eventsCapacity_ShouldBeBounded_WhenEstimateWouldOverflow(t *testing.T) {
	assert.Equal(t, 0, eventsCapacity(50, Range{}))
	assert.Equal(t, 750, eventsCapacity(50, Range{Min: 5, Max: 25}))
	assert.Equal(t, maxPrealloc, eventsCapacity(3, Range{Min: 0, Max: math.MaxInt - 1}))
	assert.Equal(t, maxPrealloc, eventsCapacity(math.MaxInt, Range{Min: 1, Max: 1}))
}
