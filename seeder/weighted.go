package seeder

import (
	"math/rand/v2"
	"sort"
)

// WeightedTable is a categorical distribution backed by a cumulative-weight table.
// Every Pick consumes exactly one uniform draw from the supplied stream.
type WeightedTable[T any] struct {
	items      []T
	weights    []float64
	cumulative []float64
	total      float64
}

// NewWeightedTable builds a table from items and their (not necessarily normalized) weights.
// Returns ErrInvalidWeights if the lengths differ, a weight is negative, or all weights are zero.
func NewWeightedTable[T any](items []T, weights []float64) (WeightedTable[T], error) {
	if len(items) == 0 || len(items) != len(weights) {
		return WeightedTable[T]{}, ErrInvalidWeights
	}

	cumulative := make([]float64, len(weights))
	total := 0.0

	for i, w := range weights {
		if w < 0 {
			return WeightedTable[T]{}, ErrInvalidWeights
		}

		total += w
		cumulative[i] = total
	}

	if total <= 0 {
		return WeightedTable[T]{}, ErrInvalidWeights
	}

	return WeightedTable[T]{
		items:      append([]T(nil), items...),
		weights:    append([]float64(nil), weights...),
		cumulative: cumulative,
		total:      total,
	}, nil
}

// MustWeightedTable is like NewWeightedTable but panics on invalid input.
// Only meant for package-level tables with constant weights.
func MustWeightedTable[T any](items []T, weights []float64) WeightedTable[T] {
	table, err := NewWeightedTable(items, weights)
	if err != nil {
		panic(err)
	}

	return table
}

// Pick draws one item.
func (wt WeightedTable[T]) Pick(r *rand.Rand) T {
	return wt.At(r.Float64() * wt.total)
}

// At returns the item whose cumulative interval contains x, where x is in [0, total).
// Items with zero weight are never returned.
func (wt WeightedTable[T]) At(x float64) T {
	i := sort.Search(len(wt.cumulative), func(i int) bool { return wt.cumulative[i] > x })
	if i == len(wt.cumulative) {
		i = wt.lastPositive()
	}

	return wt.items[i]
}

// Probability returns the normalized weight of the item at index i.
func (wt WeightedTable[T]) Probability(i int) float64 {
	return wt.weights[i] / wt.total
}

// Items returns a copy of the table's items in declaration order.
func (wt WeightedTable[T]) Items() []T {
	return append([]T(nil), wt.items...)
}

// Total returns the sum of all weights.
func (wt WeightedTable[T]) Total() float64 {
	return wt.total
}

func (wt WeightedTable[T]) lastPositive() int {
	for i := len(wt.weights) - 1; i >= 0; i-- {
		if wt.weights[i] > 0 {
			return i
		}
	}

	return len(wt.weights) - 1
}
