package sim

// ActivityID is the opaque handle identifying one simulated activity.
// Handles are issued by Register and Spawn.
type ActivityID int64

// External is the pseudo-handle for callers that are not activities, such as
// a test driving Interrupt from outside the simulation.
const External ActivityID = -1

// heartbeatID is the internal activity that absorbs heartbeat wake-ups.
const heartbeatID ActivityID = 0

// resume is the tagged value delivered on an event's reply channel: either a
// normal wake-up value or an interruption Signal.
type resume struct {
	value       any
	sig         Signal
	interrupted bool
}

// Event is one scheduled wake-up request. A suspend call creates it, the
// clock owns it once posted, and it is discarded as soon as it is delivered
// or cancelled; the requesting activity retains only the reply channel it
// blocks on.
type Event struct {
	time    float64
	value   any
	isError bool
	reply   chan resume
	owner   ActivityID
}

// Time returns the absolute simulated time the event is scheduled for.
func (ev *Event) Time() float64 { return ev.time }

// Owner returns the handle of the activity the event will wake.
func (ev *Event) Owner() ActivityID { return ev.owner }
