package flow

import (
	"math/rand"

	"github.com/LearnLean/pflow/sim"
	"github.com/LearnLean/pflow/sim/simlog"
)

// FailureProcess injects breakdowns into a target station: it holds a
// sampled time between failures, interrupts the target with a CauseFailure
// Signal, and repeats until the run interrupts it.
type FailureProcess struct {
	Process
	target  *Station
	between Sampler
	rng     *rand.Rand

	Injected int
}

// NewFailureProcess creates a breakdown injector for target.
func NewFailureProcess(p Process, target *Station, between Sampler, rng *rand.Rand) *FailureProcess {
	return &FailureProcess{Process: p, target: target, between: between, rng: rng}
}

// Start spawns the injector on its clock.
func (f *FailureProcess) Start() {
	f.start(f.run)
}

func (f *FailureProcess) run() error {
	for {
		if err := f.hold(f.between.Sample(f.rng)); err != nil {
			return err
		}
		f.clk.Interrupt(f.id, f.target.id, sim.Signal{Cause: sim.CauseFailure, Time: f.clk.Now()})
		f.Injected++
		f.record(simlog.StateFailed, 0, "injected into "+f.target.name)
	}
}
