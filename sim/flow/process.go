package flow

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/LearnLean/pflow/sim"
	"github.com/LearnLean/pflow/sim/simlog"
)

// Process binds one line activity to the clock and the log it reports to.
// Concrete processes (Source, Station, FailureProcess, Sink) embed it.
type Process struct {
	clk  *sim.Clock
	log  *simlog.Log
	id   sim.ActivityID
	name string
	poll float64 // retry interval for buffer waits
}

// Name returns the process name used in log records.
func (p *Process) Name() string { return p.name }

// ID returns the activity handle. Valid once the process has started.
func (p *Process) ID() sim.ActivityID { return p.id }

// start spawns body as a clock activity under p's handle. A terminal
// interruption is absorbed and logged as a stop; anything else is surfaced
// at warning level.
func (p *Process) start(body func() error) {
	p.clk.Spawn(func(id sim.ActivityID) {
		p.id = id
		err := body()
		var intr *sim.Interrupted
		switch {
		case err == nil:
			p.record(simlog.StateStopped, 0, "")
		case errors.As(err, &intr):
			p.record(simlog.StateStopped, 0, string(intr.Signal.Cause))
		default:
			logrus.Warnf("%s stopped with unexpected error: %v", p.name, err)
		}
	})
}

// hold suspends the process for d simulated time units.
func (p *Process) hold(d float64) error {
	_, err := p.clk.SuspendFor(p.id, d, false)
	return err
}

// put blocks until it fits into buf, polling through the clock. An
// interruption raised while waiting surfaces as the returned error.
func (p *Process) put(buf *Buffer, it *Item) error {
	for !buf.TryPut(it) {
		if err := p.hold(p.poll); err != nil {
			return err
		}
	}
	return nil
}

// get blocks until buf yields an item, polling through the clock.
func (p *Process) get(buf *Buffer) (*Item, error) {
	for {
		if it := buf.TryGet(); it != nil {
			return it, nil
		}
		if err := p.hold(p.poll); err != nil {
			return nil, err
		}
	}
}

// record appends one state change to the log, stamped with the current
// simulated time.
func (p *Process) record(state simlog.State, item int, note string) {
	p.log.Append(simlog.Record{
		Time:    p.clk.Now(),
		Process: p.name,
		State:   state,
		Item:    item,
		Note:    note,
	})
}
