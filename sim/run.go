package sim

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

// Run advances the simulation by duration units of simulated time and blocks
// until the run terminates. finish broadcasts a CauseFinished interruption
// to every still-registered activity when the run ends; accuracy is the
// heartbeat step (values <= 0 fall back to 1).
//
// The run terminates with Termination == CauseIdle when nothing is scheduled
// and no activity can run again (a modeling deadlock), or CauseDone when
// simulated time reaches the requested horizon. A CauseDone run may be
// resumed by calling Run again, provided finish was not requested.
func (c *Clock) Run(duration float64, finish bool, accuracy float64) {
	if accuracy <= 0 {
		accuracy = 1
	}
	began := time.Now()
	stop := c.time + duration
	c.Termination = ""
	c.seedHeartbeats(stop, accuracy)
	c.launch()
	logrus.Infof("run: advancing from t=%g to t=%g (accuracy %g)", c.time, stop, accuracy)

	for c.time < stop {
		c.settle()
		if c.modelPending == 0 && c.running == 0 {
			// Nothing scheduled and nothing runnable: every activity is
			// permanently blocked.
			c.Termination = CauseIdle
			break
		}
		if _, _, ok := c.pending.Min(); !ok {
			// Not even a heartbeat pending: wait for a request.
			c.handle(<-c.requests)
			continue
		}
		if !c.step(stop) {
			break
		}
	}

	c.DurationMs = time.Since(began).Milliseconds()
	c.time = stop
	if c.Termination == "" {
		c.Termination = CauseDone
	}
	if finish {
		c.finishAll()
	}
	fmt.Printf("run %s: %d events (%d delivered), t=%g, wall=%dms\n",
		c.Termination, c.EventCount, c.Delivered, c.time, c.DurationMs)
}

// seedHeartbeats posts absorb-only wake-ups at every multiple of accuracy up
// to one step past the horizon, so the loop always has a next instant to
// advance to and idle detection resolves at accuracy granularity.
func (c *Clock) seedHeartbeats(stop, accuracy float64) {
	k := int64(math.Floor(c.time/accuracy)) + 1
	for {
		t := float64(k) * accuracy
		if t > stop+accuracy {
			return
		}
		c.post(&Event{time: t, owner: heartbeatID})
		k++
	}
}

// launch starts the goroutines queued by Spawn, one at a time, letting each
// run to its first suspension point before the next starts.
func (c *Clock) launch() {
	for _, s := range c.starters {
		st := c.activities[s.id]
		if st == nil {
			continue
		}
		st.running = true
		c.running++
		go func(s starter) {
			defer c.Unregister(s.id)
			s.fn(s.id)
		}(s)
		c.settle()
	}
	c.starters = nil
}

// settle drains the inbox and keeps serving requests until no activity is
// between suspension points. Simulated time never advances while an
// activity is runnable.
func (c *Clock) settle() {
	for {
		select {
		case r := <-c.requests:
			c.handle(r)
		default:
			if c.running == 0 {
				return
			}
			c.handle(<-c.requests)
		}
	}
}

// step consumes the earliest bucket: advances the clock to its time, retires
// its bookkeeping, then resolves each event in posting order. Interruptions
// and deliveries each let the woken activity run to its next suspension
// point before the next event is resolved, preserving cooperative order.
// Returns false when the run is over.
func (c *Clock) step(stop float64) bool {
	id, t, _ := c.pending.Min()
	c.time = t
	evs := c.buckets[id]
	c.retire(id, t, evs)
	logrus.Debugf("[t=%g] stepping bucket %d with %d events", t, id, len(evs))
	for _, ev := range evs {
		c.EventCount++
		st := c.activities[ev.owner]
		live := ev.reply != nil && st != nil && st.waiting == ev.reply
		if ev.isError {
			if live {
				c.raise(ev.owner, errorSignal(ev, t))
				c.settle()
			}
			continue
		}
		if t >= stop {
			// Horizon reached mid-bucket: this wake-up is consumed without
			// being delivered and is not re-delivered by a later run.
			c.Termination = CauseDone
			return false
		}
		if !live {
			continue // cancelled, superseded, or heartbeat absorption
		}
		st.waiting = nil
		st.running = true
		c.running++
		ev.reply <- resume{value: ev.value}
		c.Delivered++
		c.settle()
	}
	return true
}

// retire drops a bucket from the queue, both indexes, and its owners'
// pending sets.
func (c *Clock) retire(id int64, t float64, evs []*Event) {
	c.pending.Remove(id)
	delete(c.timeIndex, t)
	delete(c.buckets, id)
	for _, ev := range evs {
		if st := c.activities[ev.owner]; st != nil {
			delete(st.buckets, id)
		}
		if ev.owner != heartbeatID {
			c.modelPending--
		}
	}
}

// errorSignal derives the Signal raised by an error-flagged event: the
// event's own payload when it already is a Signal, otherwise the payload
// wrapped into a CauseFailure signal at the firing time.
func errorSignal(ev *Event, t float64) Signal {
	if sig, ok := ev.value.(Signal); ok {
		return sig
	}
	return Signal{Cause: CauseFailure, Time: t, Value: ev.value}
}

// finishAll raises CauseFinished into every still-registered activity, in
// handle order, letting each run to its next suspension point. Well-behaved
// activities treat it as a shutdown signal and unregister on the way out.
func (c *Clock) finishAll() {
	ids := make([]ActivityID, 0, len(c.activities))
	for id := range c.activities {
		if id != heartbeatID {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		st := c.activities[id]
		if st == nil || st.waiting == nil {
			continue // never suspended, or already resumed
		}
		c.raise(id, Signal{Cause: CauseFinished, Time: c.time})
		c.settle()
	}
}
