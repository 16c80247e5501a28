// Package simlog records the state changes simulated processes report and
// turns a finished run into summary statistics and exportable tables.
package simlog

// State labels one kind of process state change.
type State string

const (
	// StateCreated marks a new item leaving its source.
	StateCreated State = "created"
	// StateBusy marks a station starting work on an item.
	StateBusy State = "busy"
	// StateIdle marks a station handing an item downstream.
	StateIdle State = "idle"
	// StateFailed marks a breakdown.
	StateFailed State = "failed"
	// StateRepaired marks the end of a repair.
	StateRepaired State = "repaired"
	// StateDone marks an item leaving the line completed.
	StateDone State = "done"
	// StateStopped marks a process shutting down.
	StateStopped State = "stopped"
)

// Record is one state-change entry reported by a process.
type Record struct {
	Time    float64
	Process string
	State   State
	Item    int // item id, 0 when the entry is not about one item
	Note    string
}
