package sim

import (
	"runtime"

	"github.com/sirupsen/logrus"
)

// inboxCapacity bounds the request channel. The kernel lets at most one
// activity run between suspension points, so the buffer only needs to absorb
// requests that queue up while a run is not in flight.
const inboxCapacity = 1024

// request is the union of messages an activity may send to the clock:
// a wake-up event, an interruption, or an unregistration.
type request struct {
	ev    *Event
	intr  *interruptRequest
	unreg ActivityID
}

type interruptRequest struct {
	from   ActivityID
	target ActivityID
	sig    Signal
	done   chan struct{}
}

// starter is an activity whose goroutine starts at the beginning of the next
// run, one at a time, so start-up order is part of the deterministic event
// order.
type starter struct {
	id ActivityID
	fn func(id ActivityID)
}

// activityState is the clock's bookkeeping for one registered activity.
type activityState struct {
	buckets map[int64]struct{} // pending bucket ids holding one of its events
	waiting chan resume        // live suspension channel, nil while running
	running bool               // between suspension points
}

// Clock is the simulation kernel: the single time authority every activity
// suspends against. All fields below are mutated only by the scheduling loop
// and by setup calls made before Run, never concurrently.
type Clock struct {
	time       float64
	pending    *bucketQueue
	timeIndex  map[float64]int64
	buckets    map[int64][]*Event
	activities map[ActivityID]*activityState
	starters   []starter

	nextBucket   int64
	nextActivity ActivityID
	requests     chan request

	modelPending int // pending events not owned by the heartbeat activity
	running      int // activities currently between suspension points

	// Observable post-conditions of Run.
	Termination Cause
	DurationMs  int64
	EventCount  int64 // events consumed, heartbeats included
	Delivered   int64 // normal wake-ups delivered to activities
}

// NewClock creates a kernel at simulated time zero.
func NewClock() *Clock {
	c := &Clock{
		pending:      newBucketQueue(),
		timeIndex:    make(map[float64]int64),
		buckets:      make(map[int64][]*Event),
		activities:   make(map[ActivityID]*activityState),
		nextActivity: heartbeatID + 1,
		requests:     make(chan request, inboxCapacity),
	}
	c.activities[heartbeatID] = &activityState{buckets: make(map[int64]struct{})}
	return c
}

// Now returns the current simulated time. Safe to call from a running
// activity: time only advances while every activity is suspended.
func (c *Clock) Now() float64 { return c.time }

// Register issues a fresh activity handle with an empty pending set.
// Explicit registration is only needed for activities that must be reachable
// by a forced interruption even if they never schedule anything; posting an
// event registers its owner implicitly. Setup-phase call, not safe while a
// run is in flight.
func (c *Clock) Register() ActivityID {
	id := c.nextActivity
	c.nextActivity++
	c.ensure(id)
	return id
}

// RegisterN issues n fresh handles at once, in ascending order. Setup-phase
// call, like Register.
func (c *Clock) RegisterN(n int) []ActivityID {
	ids := make([]ActivityID, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, c.Register())
	}
	return ids
}

// Spawn registers a handle for fn and schedules its goroutine to start at
// the beginning of the next run. Activities start one at a time, each
// running to its first suspension point before the next starts. The handle
// is unregistered when fn returns. Setup-phase call.
func (c *Clock) Spawn(fn func(id ActivityID)) ActivityID {
	id := c.Register()
	c.starters = append(c.starters, starter{id: id, fn: fn})
	return id
}

// Unregister retires a handle: its pending events are cancelled and the
// clock stops waiting for it. Safe to call from the activity's own goroutine
// during a run; unknown handles are ignored.
func (c *Clock) Unregister(id ActivityID) {
	if id <= heartbeatID {
		return
	}
	c.requests <- request{unreg: id}
}

// SuspendUntil blocks the calling activity until absolute simulated time t,
// then resumes it with value. With isError set, the wake-up is instead a
// forced interruption of the owner: the event's value (a Signal, or any
// payload wrapped into a CauseFailure Signal) is raised rather than
// returned. A non-nil error is always *Interrupted.
func (c *Clock) SuspendUntil(self ActivityID, t float64, value any, isError bool) (any, error) {
	ev := &Event{time: t, value: value, isError: isError, reply: make(chan resume), owner: self}
	c.requests <- request{ev: ev}
	r := <-ev.reply
	if r.interrupted {
		return nil, &Interrupted{Signal: r.sig}
	}
	return r.value, nil
}

// SuspendFor suspends the calling activity for a relative delay and resumes
// it with the absolute wake-up time as its value.
func (c *Clock) SuspendFor(self ActivityID, delay float64, isError bool) (any, error) {
	t := c.time + delay
	return c.SuspendUntil(self, t, t, isError)
}

// Interrupt cancels every pending event owned by target, raises sig into its
// control flow, and lets it run to its next suspension point before
// returning. A zero sig defaults to a CauseFinished signal. self names the
// calling activity (External when the caller is not one); the clock releases
// it from its bookkeeping while the interruption settles so control hands
// over cleanly. Only valid while a run is in flight.
func (c *Clock) Interrupt(self, target ActivityID, sig Signal) {
	if sig.Cause == "" {
		sig.Cause = CauseFinished
	}
	done := make(chan struct{})
	c.requests <- request{intr: &interruptRequest{from: self, target: target, sig: sig, done: done}}
	<-done
	runtime.Gosched()
}

// ensure registers id if needed and returns its state (first caller wins).
func (c *Clock) ensure(id ActivityID) *activityState {
	st, ok := c.activities[id]
	if !ok {
		st = &activityState{buckets: make(map[int64]struct{})}
		c.activities[id] = st
	}
	return st
}

// handle processes one drained request. Called only from the scheduling loop.
func (c *Clock) handle(r request) {
	switch {
	case r.ev != nil:
		c.post(r.ev)
	case r.intr != nil:
		c.handleInterrupt(r.intr)
	case r.unreg > heartbeatID:
		c.unregister(r.unreg)
	}
}

// post files one wake-up event: coincident times share a bucket, a new time
// allocates a fresh bucket id keyed into the pending queue.
func (c *Clock) post(ev *Event) {
	if ev.time < c.time {
		ev.time = c.time // time never decreases
	}
	st := c.ensure(ev.owner)
	if st.running {
		st.running = false
		c.running--
	}
	if ev.reply != nil {
		st.waiting = ev.reply
	}
	id, ok := c.timeIndex[ev.time]
	if !ok {
		id = c.nextBucket
		c.nextBucket++
		c.timeIndex[ev.time] = id
		c.pending.Add(id, ev.time)
	}
	c.buckets[id] = append(c.buckets[id], ev)
	st.buckets[id] = struct{}{}
	if ev.owner != heartbeatID {
		c.modelPending++
	}
	logrus.Debugf("[t=%g] posted event at t=%g for activity %d (bucket %d)", c.time, ev.time, ev.owner, id)
}

// cancelAll removes every pending event owned by id. Buckets shared with
// other activities keep their remaining entries; a bucket this empties is
// fully retired from the queue and both indexes.
func (c *Clock) cancelAll(id ActivityID) {
	st := c.activities[id]
	if st == nil {
		return
	}
	for bid := range st.buckets {
		evs, ok := c.buckets[bid]
		if !ok {
			continue
		}
		t := evs[0].time
		kept := evs[:0]
		for _, ev := range evs {
			if ev.owner == id {
				if id != heartbeatID {
					c.modelPending--
				}
				continue
			}
			kept = append(kept, ev)
		}
		if len(kept) == 0 {
			c.pending.Remove(bid)
			delete(c.timeIndex, t)
			delete(c.buckets, bid)
		} else {
			c.buckets[bid] = kept
		}
	}
	st.buckets = make(map[int64]struct{})
}

// raise cancels target's pending events and, if it is suspended, delivers
// sig as an interruption on its live reply channel. A target that is not
// suspended only loses its pending events.
func (c *Clock) raise(target ActivityID, sig Signal) {
	if sig.Time == 0 {
		sig.Time = c.time
	}
	c.cancelAll(target)
	st := c.activities[target]
	if st == nil || st.waiting == nil {
		return
	}
	ch := st.waiting
	st.waiting = nil
	st.running = true
	c.running++
	ch <- resume{sig: sig, interrupted: true}
	logrus.Debugf("[t=%g] raised %s into activity %d", c.time, sig.Cause, target)
}

// handleInterrupt services an Interrupt call: the requester is taken off the
// books while the target is interrupted and allowed to reach its next
// suspension point, then the requester is resumed.
func (c *Clock) handleInterrupt(r *interruptRequest) {
	from := c.activities[r.from]
	if r.from > heartbeatID && from != nil && from.running {
		from.running = false
		c.running--
		defer func() {
			from.running = true
			c.running++
		}()
	}
	c.raise(r.target, r.sig)
	for {
		st := c.activities[r.target]
		if st == nil || !st.running {
			break
		}
		c.handle(<-c.requests)
	}
	close(r.done)
}

// unregister drops an activity: cancels its events and stops waiting for it.
func (c *Clock) unregister(id ActivityID) {
	st := c.activities[id]
	if st == nil {
		return
	}
	c.cancelAll(id)
	if st.running {
		c.running--
	}
	delete(c.activities, id)
}
