package flow

import (
	"errors"
	"math/rand"

	"github.com/LearnLean/pflow/sim"
	"github.com/LearnLean/pflow/sim/simlog"
)

// Station models one work unit: take an item from the input buffer, hold a
// sampled service time, pass the item downstream. A failure Signal raised
// into the station triggers a sampled repair hold, after which an
// interrupted operation is rerun from scratch. Any other interruption
// (finished, custom causes) shuts the station down.
type Station struct {
	Process
	in, out *Buffer
	service Sampler
	repair  Sampler
	rng     *rand.Rand

	Processed  int
	Breakdowns int
}

// NewStation creates a station between in and out.
func NewStation(p Process, in, out *Buffer, service, repair Sampler, rng *rand.Rand) *Station {
	return &Station{Process: p, in: in, out: out, service: service, repair: repair, rng: rng}
}

// Start spawns the station on its clock.
func (st *Station) Start() {
	st.start(st.run)
}

func (st *Station) run() error {
	for {
		it, err := st.get(st.in)
		if err != nil {
			// Breakdown while waiting for work: repair and keep going.
			if err = st.recover(err); err != nil {
				return err
			}
			continue
		}
		st.record(simlog.StateBusy, it.ID, "")
		if err := st.serve(it); err != nil {
			return err
		}
		it.Route = append(it.Route, st.name)
		for {
			err := st.put(st.out, it)
			if err == nil {
				break
			}
			if err = st.recover(err); err != nil {
				return err
			}
		}
		st.Processed++
		st.record(simlog.StateIdle, it.ID, "")
	}
}

// serve holds the sampled service time, rerunning the operation after each
// repaired breakdown.
func (st *Station) serve(it *Item) error {
	for {
		err := st.hold(st.service.Sample(st.rng))
		if err == nil {
			return nil
		}
		if err = st.recover(err); err != nil {
			return err
		}
	}
}

// recover absorbs a failure interruption by holding the sampled repair time;
// every other error passes through unchanged. Further failures raised during
// the repair restart it.
func (st *Station) recover(err error) error {
	for {
		var intr *sim.Interrupted
		if !errors.As(err, &intr) || intr.Signal.Cause != sim.CauseFailure {
			return err
		}
		st.Breakdowns++
		st.record(simlog.StateFailed, 0, "breakdown")
		err = st.hold(st.repair.Sample(st.rng))
		if err == nil {
			st.record(simlog.StateRepaired, 0, "")
			return nil
		}
	}
}
