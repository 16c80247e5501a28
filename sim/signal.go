package sim

import "fmt"

// Cause is the token carried by a Signal. The kernel reserves CauseIdle,
// CauseDone and CauseFinished; domain code is free to define its own tokens
// (CauseFailure is the conventional one for induced breakdowns).
type Cause string

const (
	// CauseIdle ends a run when nothing is scheduled and no activity can
	// ever run again: a modeling deadlock.
	CauseIdle Cause = "idle"

	// CauseDone ends a run when simulated time reaches the requested horizon.
	// A run ended this way may be resumed by calling Run again.
	CauseDone Cause = "done"

	// CauseFinished is raised into every still-registered activity when a
	// run ends with finish requested.
	CauseFinished Cause = "finished"

	// CauseFailure marks an induced breakdown. The kernel attaches it to
	// error-flagged events whose payload is not already a Signal.
	CauseFailure Cause = "failure"
)

// Signal is a typed interruption message: a cause token, the simulated time
// it was raised, and an optional payload. Signals carry no identity and are
// copied by value into deliveries.
type Signal struct {
	Cause Cause
	Time  float64
	Value any
}

// Interrupted is the error returned from a suspend call when the clock
// raises a Signal into the waiting activity instead of delivering its
// wake-up value. Callers intercept it with errors.As and decide whether the
// interruption is recoverable (a breakdown followed by a repair) or final
// (a finished broadcast).
type Interrupted struct {
	Signal Signal
}

func (e *Interrupted) Error() string {
	return fmt.Sprintf("interrupted: %s at t=%g", e.Signal.Cause, e.Signal.Time)
}
