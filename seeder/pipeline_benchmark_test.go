package seeder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/AntonStoeckl/warehouse-seeder-go/seeder"
	"github.com/AntonStoeckl/warehouse-seeder-go/seeder/memoryengine"
	"github.com/AntonStoeckl/warehouse-seeder-go/testutil/seeder/helper"
)

func Benchmark_Run_IntoMemory(b *testing.B) {
	// setup
	ctx := context.Background()
	sink := memoryengine.NewSink()
	pipeline, err := NewPipeline(sink, WithClock(helper.FixedClock))
	assert.NoError(b, err)

	params := DefaultParams()
	params.UserCount = 1000
	params.SubscriptionCount = 800

	// act
	b.ResetTimer()
	var runTime time.Duration

	for i := 0; i < b.N; i++ {
		start := time.Now()
		_, err = pipeline.Run(ctx, params)
		runTime += time.Since(start)

		assert.NoError(b, err)
	}

	b.ReportMetric(float64(runTime.Milliseconds())/float64(b.N), "ms/run")
}

func Benchmark_GenerateEvents(b *testing.B) {
	users, err := GenerateUsers(NewPhaseStreams(DefaultBaseSeed, PhaseUsers), helper.FixedNow, 1000, DefaultMaxUserAgeDays)
	assert.NoError(b, err)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err = GenerateEvents(NewPhaseStreams(DefaultBaseSeed, PhaseEvents), helper.FixedNow, users, nil, Range{Min: 5, Max: 25})
		assert.NoError(b, err)
	}
}
