package sim

import (
	"errors"
	"testing"
)

func TestRun_EmptyKernel_TerminatesIdle(t *testing.T) {
	// GIVEN a kernel with zero activities and zero scheduled events
	clk := NewClock()

	// WHEN it runs for a positive duration
	clk.Run(5, true, 1)

	// THEN the run ends as a deadlock, delivering nothing
	if clk.Termination != CauseIdle {
		t.Errorf("Termination: got %q, want %q", clk.Termination, CauseIdle)
	}
	if clk.Delivered != 0 {
		t.Errorf("Delivered: got %d, want 0", clk.Delivered)
	}
	if clk.Now() != 5 {
		t.Errorf("final time: got %g, want 5", clk.Now())
	}
}

func TestRun_PeriodicActivity_ReachesHorizonDone(t *testing.T) {
	// GIVEN an activity that reschedules itself forever
	clk := NewClock()
	clk.Spawn(func(id ActivityID) {
		for {
			if _, err := clk.SuspendFor(id, 3, false); err != nil {
				return
			}
		}
	})

	// WHEN the clock runs to a horizon the activity outlives
	clk.Run(10, true, 1)

	// THEN the run ends at the horizon
	if clk.Termination != CauseDone {
		t.Errorf("Termination: got %q, want %q", clk.Termination, CauseDone)
	}
	if clk.Now() != 10 {
		t.Errorf("final time: got %g, want 10", clk.Now())
	}
	if clk.DurationMs < 0 {
		t.Errorf("DurationMs: got %d, want >= 0", clk.DurationMs)
	}
	if clk.EventCount == 0 {
		t.Error("EventCount: got 0, want > 0")
	}
}

func TestRun_Resumable_ContinuesWithoutRedelivery(t *testing.T) {
	// GIVEN an activity waking every 3 time units, recording its wake-ups
	clk := NewClock()
	var wakes []float64
	clk.Spawn(func(id ActivityID) {
		for {
			if _, err := clk.SuspendFor(id, 3, false); err != nil {
				return
			}
			wakes = append(wakes, clk.Now())
		}
	})

	// WHEN the clock runs twice without finishing in between
	clk.Run(10, false, 1)
	first := len(wakes)
	firstCause := clk.Termination
	clk.Run(10, false, 1)

	// THEN the first run delivered 3, 6, 9 and ended done
	if firstCause != CauseDone {
		t.Errorf("first Termination: got %q, want %q", firstCause, CauseDone)
	}
	if first != 3 {
		t.Fatalf("first run wake count: got %d, want 3", first)
	}
	// AND the second continued with 12, 15, 18: nothing redelivered
	want := []float64{3, 6, 9, 12, 15, 18}
	if len(wakes) != len(want) {
		t.Fatalf("wakes: got %v, want %v", wakes, want)
	}
	for i := range want {
		if wakes[i] != want[i] {
			t.Fatalf("wakes: got %v, want %v", wakes, want)
		}
	}
	// AND time is non-decreasing throughout
	for i := 1; i < len(wakes); i++ {
		if wakes[i] < wakes[i-1] {
			t.Errorf("time regressed: %v", wakes)
		}
	}
	if clk.Now() != 20 {
		t.Errorf("final time: got %g, want 20", clk.Now())
	}

	// Release the activity.
	clk.Run(1, true, 1)
}

func TestRun_Finish_BroadcastsFinishedExactlyOnce(t *testing.T) {
	// GIVEN two activities suspended far beyond the horizon
	clk := NewClock()
	causes := make(map[string][]Cause)
	wait := func(name string) func(ActivityID) {
		return func(id ActivityID) {
			for {
				_, err := clk.SuspendFor(id, 100, false)
				if err == nil {
					continue
				}
				var intr *Interrupted
				if errors.As(err, &intr) {
					causes[name] = append(causes[name], intr.Signal.Cause)
				}
				return
			}
		}
	}
	clk.Spawn(wait("a"))
	clk.Spawn(wait("b"))

	// WHEN a short run ends with finish requested
	clk.Run(5, true, 1)

	// THEN each activity received exactly one finished interruption
	for _, name := range []string{"a", "b"} {
		got := causes[name]
		if len(got) != 1 || got[0] != CauseFinished {
			t.Errorf("activity %s interruptions: got %v, want [finished]", name, got)
		}
	}
	// AND nothing was delivered
	if clk.Delivered != 0 {
		t.Errorf("Delivered: got %d, want 0", clk.Delivered)
	}
}

func TestRun_EventAtHorizon_ConsumedButNeverDelivered(t *testing.T) {
	// The reference behavior: a wake-up exactly at the horizon is consumed
	// from the bookkeeping without being delivered, and is not redelivered
	// by a later run either. At-most-once, lost on purpose.
	clk := NewClock()
	var woke bool
	var finished bool
	clk.Spawn(func(id ActivityID) {
		_, err := clk.SuspendFor(id, 10, false)
		if err == nil {
			woke = true
			return
		}
		var intr *Interrupted
		if errors.As(err, &intr) && intr.Signal.Cause == CauseFinished {
			finished = true
		}
	})

	// WHEN the first run's horizon lands exactly on the wake-up
	clk.Run(10, false, 1)
	firstCause := clk.Termination

	// AND a second run continues past it
	clk.Run(5, false, 1)
	secondCause := clk.Termination

	// THEN the event was consumed by the first run without delivery
	if firstCause != CauseDone {
		t.Errorf("first Termination: got %q, want %q", firstCause, CauseDone)
	}
	if woke {
		t.Error("event at horizon was delivered, want it lost")
	}
	if clk.Delivered != 0 {
		t.Errorf("Delivered: got %d, want 0", clk.Delivered)
	}
	// AND with nothing left to schedule the second run deadlocks
	if secondCause != CauseIdle {
		t.Errorf("second Termination: got %q, want %q", secondCause, CauseIdle)
	}

	// A finishing run still reaches the stranded activity.
	clk.Run(1, true, 1)
	if !finished {
		t.Error("stranded activity never received the finished broadcast")
	}
}

func TestRun_NaturalCompletion_EndsIdle(t *testing.T) {
	// GIVEN a single activity that runs once and exits
	clk := NewClock()
	clk.Spawn(func(id ActivityID) {
		clk.SuspendFor(id, 2, false)
	})

	// WHEN the clock runs past its only event
	clk.Run(10, true, 1)

	// THEN the run ends idle: nothing scheduled, nothing waiting
	if clk.Termination != CauseIdle {
		t.Errorf("Termination: got %q, want %q", clk.Termination, CauseIdle)
	}
	if clk.Delivered != 1 {
		t.Errorf("Delivered: got %d, want 1", clk.Delivered)
	}
}
