package simlog

// Log collects state-change records in the order they were reported.
// The kernel runs at most one activity between suspension points, so
// appends never race and the log needs no locking.
type Log struct {
	records []Record
}

// New creates an empty Log ready for recording.
func New() *Log {
	return &Log{records: make([]Record, 0)}
}

// Append adds one record to the log.
func (l *Log) Append(r Record) {
	l.records = append(l.records, r)
}

// Len returns the number of records.
func (l *Log) Len() int {
	return len(l.records)
}

// Records returns the recorded entries in report order. The returned slice
// is the log's own backing store; callers must not mutate it.
func (l *Log) Records() []Record {
	return l.records
}

// ByProcess returns the records reported by one process, in report order.
func (l *Log) ByProcess(name string) []Record {
	out := make([]Record, 0)
	for _, r := range l.records {
		if r.Process == name {
			out = append(out, r)
		}
	}
	return out
}

// CountState returns how many records carry the given state.
func (l *Log) CountState(s State) int {
	n := 0
	for _, r := range l.records {
		if r.State == s {
			n++
		}
	}
	return n
}
