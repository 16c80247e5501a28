package flow

import (
	"github.com/LearnLean/pflow/sim/simlog"
)

// Sink drains the final buffer, stamping each item's completion time. It
// runs until the end-of-run interruption reaches it.
type Sink struct {
	Process
	in *Buffer

	Items     []*Item
	Completed int
}

// NewSink creates a sink draining in.
func NewSink(p Process, in *Buffer) *Sink {
	return &Sink{Process: p, in: in}
}

// Start spawns the sink on its clock.
func (s *Sink) Start() {
	s.start(s.run)
}

func (s *Sink) run() error {
	for {
		it, err := s.get(s.in)
		if err != nil {
			return err
		}
		it.Done = s.clk.Now()
		s.Items = append(s.Items, it)
		s.Completed++
		s.record(simlog.StateDone, it.ID, "")
	}
}

// CycleTimes returns the cycle time of every collected item, in completion
// order.
func (s *Sink) CycleTimes() []float64 {
	out := make([]float64, 0, len(s.Items))
	for _, it := range s.Items {
		out = append(out, it.CycleTime())
	}
	return out
}
