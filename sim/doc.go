// Package sim provides the cooperative discrete-event simulation kernel for PFlow.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - signal.go: Signal causes and the Interrupted error activities intercept
//   - event.go: the wake-up request posted by a suspend call
//   - clock.go: kernel state, registration, posting, cancellation, interruption
//   - run.go: the run-to-completion scheduling loop, heartbeats, termination
//
// # Architecture
//
// The Clock is the single time authority. Activities are goroutines that
// suspend themselves with SuspendUntil/SuspendFor and resume when the
// scheduling loop delivers their wake-up or raises a Signal into them.
// All kernel state is mutated only by the scheduling loop; activities talk
// to it exclusively through the request inbox and their private reply
// channels, so the kernel contains no locks.
//
// Simulated time never advances while an activity is between suspension
// points: the loop waits for every resumed activity to suspend again before
// touching the next event. Execution is therefore sequential and, together
// with PartitionedRNG (rng.go), bit-for-bit reproducible for a given seed.
//
// Activities must only block inside the kernel. A goroutine that blocks on
// anything else (or exits without unregistering) stalls the loop; Spawn
// takes care of unregistration, and the sim/flow buffers poll through the
// clock instead of blocking.
//
// Sub-packages build on the kernel:
//   - sim/flow: production-line domain layer (sources, stations, failures, sinks)
//   - sim/simlog: state-change log, summary statistics, CSV/SQLite export
package sim
