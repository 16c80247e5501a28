package flow

import (
	"fmt"

	"github.com/LearnLean/pflow/sim"
	"github.com/LearnLean/pflow/sim/simlog"
)

// Config describes a serial production line: one source feeding a chain of
// stations through bounded buffers, drained by one sink, with optional
// breakdown injection per station.
type Config struct {
	Items           int     // items the source emits
	ArrivalInterval float64 // fixed inter-arrival time at the source
	ServiceMean     float64 // mean station service time (clamped Gaussian)
	ServiceStdDev   float64
	MTBF            float64 // mean time between induced failures, 0 disables them
	MTTR            float64 // mean repair time
	Stations        int
	BufferCap       int
	Poll            float64 // buffer retry interval
	Seed            int64
}

// withDefaults fills unset fields with workable values.
func (cfg Config) withDefaults() Config {
	if cfg.Items <= 0 {
		cfg.Items = 10
	}
	if cfg.ArrivalInterval <= 0 {
		cfg.ArrivalInterval = 2
	}
	if cfg.ServiceMean <= 0 {
		cfg.ServiceMean = 1
	}
	if cfg.ServiceStdDev < 0 {
		cfg.ServiceStdDev = 0
	}
	if cfg.MTTR <= 0 {
		cfg.MTTR = cfg.ServiceMean
	}
	if cfg.Stations <= 0 {
		cfg.Stations = 1
	}
	if cfg.BufferCap <= 0 {
		cfg.BufferCap = 4
	}
	if cfg.Poll <= 0 {
		cfg.Poll = 0.25
	}
	return cfg
}

// Line is an assembled production line bound to a clock and a log.
type Line struct {
	Clock    *sim.Clock
	Log      *simlog.Log
	Source   *Source
	Stations []*Station
	Failures []*FailureProcess
	Sink     *Sink
}

// Build wires source → stations → sink with shared buffers and spawns every
// process on clk, in a fixed order so runs with the same seed reproduce
// bit-for-bit. Randomness is partitioned per subsystem: arrivals, one
// service stream per station, and failure injection.
func Build(clk *sim.Clock, cfg Config) *Line {
	cfg = cfg.withDefaults()
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	log := simlog.New()

	buffers := make([]*Buffer, cfg.Stations+1)
	for i := range buffers {
		buffers[i] = NewBuffer(fmt.Sprintf("buf_%d", i), cfg.BufferCap)
	}

	proc := func(name string) Process {
		return Process{clk: clk, log: log, name: name, poll: cfg.Poll}
	}

	l := &Line{Clock: clk, Log: log}
	l.Source = NewSource(proc("source"),
		buffers[0],
		Fixed{D: cfg.ArrivalInterval},
		rng.ForSubsystem(sim.SubsystemArrivals),
		cfg.Items)

	service := Gaussian{
		Mean:   cfg.ServiceMean,
		StdDev: cfg.ServiceStdDev,
		Min:    cfg.ServiceMean / 10,
		Max:    cfg.ServiceMean * 10,
	}
	for i := 0; i < cfg.Stations; i++ {
		st := NewStation(proc(fmt.Sprintf("station_%d", i)),
			buffers[i], buffers[i+1],
			service,
			Exponential{Mean: cfg.MTTR},
			rng.ForSubsystem(sim.SubsystemStation(i)))
		l.Stations = append(l.Stations, st)
	}

	l.Sink = NewSink(proc("sink"), buffers[cfg.Stations])

	if cfg.MTBF > 0 {
		failRNG := rng.ForSubsystem(sim.SubsystemFailures)
		for i, st := range l.Stations {
			f := NewFailureProcess(proc(fmt.Sprintf("failures_%d", i)),
				st,
				Exponential{Mean: cfg.MTBF},
				failRNG)
			l.Failures = append(l.Failures, f)
		}
	}

	// Spawn order is part of the deterministic event order.
	l.Source.Start()
	for _, st := range l.Stations {
		st.Start()
	}
	for _, f := range l.Failures {
		f.Start()
	}
	l.Sink.Start()

	return l
}

// Run executes the line for duration simulated time units and returns the
// summary. finish interrupts every process at the end of the run.
func (l *Line) Run(duration float64, finish bool, accuracy float64) *simlog.Summary {
	l.Clock.Run(duration, finish, accuracy)
	return simlog.Summarize(l.Log, l.Sink.CycleTimes())
}
