// Package flow is the production-line domain layer on top of the sim
// kernel: sources emit items, stations process them with sampled service
// times and induced breakdowns, sinks collect them. Everything runs as
// kernel activities and reports state changes into a simlog.Log.
package flow

// Item is one unit of work travelling through a line.
type Item struct {
	ID      int
	Created float64  // simulated time the source emitted it
	Done    float64  // simulated time the sink collected it, 0 while in flight
	Route   []string // stations that processed it, in order
}

// CycleTime returns the time the item spent in the line. Only meaningful
// once the sink stamped it.
func (it *Item) CycleTime() float64 {
	return it.Done - it.Created
}
