package flow

import (
	"math/rand"

	"github.com/LearnLean/pflow/sim/simlog"
)

// Source emits a fixed number of items into its output buffer at sampled
// inter-arrival times, then stops. An interruption while emitting (a
// finished broadcast at the end of a run) stops it early.
type Source struct {
	Process
	out   *Buffer
	iat   Sampler
	rng   *rand.Rand
	count int

	Emitted int
}

// NewSource creates a source emitting count items into out.
func NewSource(p Process, out *Buffer, iat Sampler, rng *rand.Rand, count int) *Source {
	return &Source{Process: p, out: out, iat: iat, rng: rng, count: count}
}

// Start spawns the source on its clock.
func (s *Source) Start() {
	s.start(s.run)
}

func (s *Source) run() error {
	for i := 1; i <= s.count; i++ {
		if err := s.hold(s.iat.Sample(s.rng)); err != nil {
			return err
		}
		it := &Item{ID: i, Created: s.clk.Now()}
		s.record(simlog.StateCreated, it.ID, "")
		if err := s.put(s.out, it); err != nil {
			return err
		}
		s.Emitted++
	}
	return nil
}
