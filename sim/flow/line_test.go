package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LearnLean/pflow/sim"
)

func referenceConfig() Config {
	return Config{
		Items:           10,
		ArrivalInterval: 2,
		ServiceMean:     1,
		ServiceStdDev:   0.3,
		MTBF:            8,
		MTTR:            1.5,
		Stations:        1,
		BufferCap:       4,
		Poll:            0.25,
		Seed:            42,
	}
}

func TestLine_SameSeed_ReproducesBitForBit(t *testing.T) {
	// GIVEN two lines built from the same config and seed
	run := func() (*Line, []float64) {
		l := Build(sim.NewClock(), referenceConfig())
		l.Run(200, true, 1)
		return l, l.Sink.CycleTimes()
	}

	// WHEN both run to the same horizon
	l1, cycles1 := run()
	l2, cycles2 := run()

	// THEN every observable matches exactly
	require.Equal(t, l1.Log.Records(), l2.Log.Records())
	assert.Equal(t, cycles1, cycles2)
	assert.Equal(t, l1.Source.Emitted, l2.Source.Emitted)
	assert.Equal(t, l1.Sink.Completed, l2.Sink.Completed)
	assert.Equal(t, l1.Stations[0].Processed, l2.Stations[0].Processed)
	assert.Equal(t, l1.Stations[0].Breakdowns, l2.Stations[0].Breakdowns)
	assert.Equal(t, l1.Clock.Delivered, l2.Clock.Delivered)
}

func TestLine_ReferenceRun_CompletesAllItems(t *testing.T) {
	// GIVEN the reference line with breakdowns enabled
	l := Build(sim.NewClock(), referenceConfig())

	// WHEN it runs well past the work content
	summary := l.Run(200, true, 1)

	// THEN every item passes through and reaches the sink
	require.Equal(t, 10, l.Source.Emitted)
	require.Equal(t, 10, l.Sink.Completed)
	assert.Equal(t, 10, l.Stations[0].Processed)
	assert.Equal(t, 10, summary.Completed)
	assert.Greater(t, summary.CycleMean, 0.0)

	// AND every injected failure was absorbed as a breakdown
	injected := 0
	for _, f := range l.Failures {
		injected += f.Injected
	}
	breakdowns := 0
	for _, st := range l.Stations {
		breakdowns += st.Breakdowns
	}
	assert.Greater(t, injected, 0)
	assert.Equal(t, injected, breakdowns)
}

func TestLine_NoFailures_ConservesItemsThroughSerialStations(t *testing.T) {
	// GIVEN a two-station line without failure injection
	cfg := Config{
		Items:           20,
		ArrivalInterval: 2,
		ServiceMean:     1,
		ServiceStdDev:   0.2,
		MTBF:            0,
		Stations:        2,
		BufferCap:       4,
		Poll:            0.25,
		Seed:            7,
	}
	l := Build(sim.NewClock(), cfg)

	// WHEN it runs long enough to drain
	l.Run(400, true, 1)

	// THEN every item visited both stations in order and completed
	require.Equal(t, 20, l.Sink.Completed)
	require.Empty(t, l.Failures)
	for _, it := range l.Sink.Items {
		assert.Equal(t, []string{"station_0", "station_1"}, it.Route)
		assert.GreaterOrEqual(t, it.Done, it.Created)
	}
	for _, st := range l.Stations {
		assert.Equal(t, 20, st.Processed)
		assert.Zero(t, st.Breakdowns)
	}
}

func TestLine_DefaultsFillMissingFields(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, 10, cfg.Items)
	assert.Equal(t, 2.0, cfg.ArrivalInterval)
	assert.Equal(t, 1.0, cfg.ServiceMean)
	assert.Equal(t, cfg.ServiceMean, cfg.MTTR)
	assert.Equal(t, 1, cfg.Stations)
	assert.Equal(t, 4, cfg.BufferCap)
	assert.Equal(t, 0.25, cfg.Poll)
}
