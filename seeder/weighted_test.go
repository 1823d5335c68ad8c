package seeder_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/AntonStoeckl/warehouse-seeder-go/seeder"
)

func Test_NewWeightedTable_ShouldFail_WhenInputIsInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		items   []string
		weights []float64
	}{
		{name: "empty", items: nil, weights: nil},
		{name: "length mismatch", items: []string{"a", "b"}, weights: []float64{1}},
		{name: "negative weight", items: []string{"a", "b"}, weights: []float64{1, -1}},
		{name: "all zero", items: []string{"a", "b"}, weights: []float64{0, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWeightedTable(tc.items, tc.weights)
			assert.ErrorIs(t, err, ErrInvalidWeights)
		})
	}
}

func Test_WeightedTable_At_ShouldMapCumulativeIntervals(t *testing.T) {
	// arrange
	table, err := NewWeightedTable([]string{"a", "b", "c"}, []float64{1, 0, 3})
	require.NoError(t, err)

	// act & assert
	assert.Equal(t, "a", table.At(0))
	assert.Equal(t, "a", table.At(0.999))
	assert.Equal(t, "c", table.At(1))
	assert.Equal(t, "c", table.At(3.999))
	assert.Equal(t, "c", table.At(4), "upper bound falls back to the last positive weight")
	assert.Equal(t, 4.0, table.Total())
	assert.InDelta(t, 0.75, table.Probability(2), 1e-12)
}

func Test_WeightedTable_Pick_ShouldNeverReturnZeroWeightItems(t *testing.T) {
	// arrange
	table := MustWeightedTable([]string{"never", "always"}, []float64{0, 1})
	r := rand.New(rand.NewPCG(1, 2))

	// act & assert
	for i := 0; i < 1000; i++ {
		require.Equal(t, "always", table.Pick(r))
	}
}

func Test_PlanTable_ShouldFollowConfiguredDistribution(t *testing.T) {
	// arrange
	r := rand.New(rand.NewPCG(42, 42))
	counts := make(map[Plan]int)
	const draws = 100_000

	// act
	for i := 0; i < draws; i++ {
		counts[PlanTable.Pick(r)]++
	}

	// assert
	assert.InDelta(t, 0.45, float64(counts[PlanFree])/draws, 0.01)
	assert.InDelta(t, 0.35, float64(counts[PlanBasic])/draws, 0.01)
	assert.InDelta(t, 0.20, float64(counts[PlanPro])/draws, 0.01)
}

func Test_MustWeightedTable_ShouldPanic_WhenInputIsInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustWeightedTable([]string{"a"}, []float64{0})
	})
}
