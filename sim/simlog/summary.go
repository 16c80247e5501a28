package simlog

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates statistics from a finished run's log.
type Summary struct {
	Records       int
	StateCounts   map[State]int
	ProcessCounts map[string]int // process name → records it reported
	Completed     int
	Makespan      float64 // time of the latest record
	CycleMean     float64
	CycleMedian   float64
	CycleP90      float64
}

// Summarize computes aggregate statistics over a log and the cycle times
// (completion minus creation) of the items that finished. Quantiles use
// gonum's empirical definition over the sorted cycle times. Safe for nil or
// empty inputs.
func Summarize(l *Log, cycles []float64) *Summary {
	s := &Summary{
		StateCounts:   make(map[State]int),
		ProcessCounts: make(map[string]int),
	}
	if l != nil {
		s.Records = l.Len()
		for _, r := range l.Records() {
			s.StateCounts[r.State]++
			s.ProcessCounts[r.Process]++
			if r.Time > s.Makespan {
				s.Makespan = r.Time
			}
		}
	}
	s.Completed = len(cycles)
	if len(cycles) > 0 {
		cs := append([]float64(nil), cycles...)
		sort.Float64s(cs)
		s.CycleMean = stat.Mean(cs, nil)
		s.CycleMedian = stat.Quantile(0.5, stat.Empirical, cs, nil)
		s.CycleP90 = stat.Quantile(0.9, stat.Empirical, cs, nil)
	}
	return s
}

// Print writes a human-readable block of the summary to stdout.
func (s *Summary) Print() {
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Log records     : %d\n", s.Records)
	fmt.Printf("Completed items : %d\n", s.Completed)
	fmt.Printf("Makespan        : %.3f\n", s.Makespan)
	if s.Completed > 0 {
		fmt.Printf("Cycle time mean : %.3f\n", s.CycleMean)
		fmt.Printf("Cycle time p50  : %.3f\n", s.CycleMedian)
		fmt.Printf("Cycle time p90  : %.3f\n", s.CycleP90)
	}
	fmt.Printf("Breakdowns      : %d\n", s.StateCounts[StateFailed])
}
