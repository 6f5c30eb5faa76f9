// Package dispatch provides the executor that runs handler callbacks off
// the caller's stack when a Channel operation asks for it: a runnable
// returned by a channel op can either be invoked inline by the caller, or
// handed to a Dispatch to run elsewhere.
//
// Two strategies mirror the teacher's worker-pool sizing choice between a
// dynamic, unbounded pool and a fixed-capacity one:
//   - NewDynamic: every Run spawns a fresh goroutine. Suitable for the
//     common case where dispatched callbacks are short and infrequent.
//   - NewFixed: bounds the number of concurrently-running dispatched
//     callbacks using a weighted semaphore, for callers who need a hard
//     cap on fan-out.
package dispatch

import (
	"context"
	"runtime"

	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/semaphore"
)

// Dispatch schedules a callback to run off the caller's stack.
type Dispatch interface {
	// Run schedules f to execute, returning immediately.
	Run(f func())
}

type dynamic struct{}

// NewDynamic returns a Dispatch that runs every callback on its own
// goroutine, unbounded.
func NewDynamic() Dispatch { return dynamic{} }

func (dynamic) Run(f func()) { go f() }

// Default is the package-level Dispatch used by a Channel constructed
// without an explicit dispatch option, matching the teacher's default of a
// dynamic (unbounded) pool.
var Default Dispatch = NewDynamic()

type fixed struct {
	sem *semaphore.Weighted
}

// NewFixed returns a Dispatch that allows at most n dispatched callbacks to
// run concurrently. Scheduling itself never blocks the caller of Run: the
// semaphore acquisition happens on the spawned goroutine, so Run returns
// immediately and the callback waits for a free slot before it starts.
func NewFixed(n uint) Dispatch {
	if n == 0 {
		panic("dispatch: NewFixed requires n > 0")
	}
	return &fixed{sem: semaphore.NewWeighted(int64(n))}
}

func (f *fixed) Run(cb func()) {
	go func() {
		_ = f.sem.Acquire(context.Background(), 1)
		defer f.sem.Release(1)
		cb()
	}()
}

// DefaultFixedSize returns a CPU-quota-aware default for NewFixed, using
// go.uber.org/automaxprocs to read the container's CPU quota (falling back
// to runtime.NumCPU when no quota applies) instead of an arbitrary
// constant.
func DefaultFixedSize() uint {
	undo, err := maxprocs.Set()
	if err == nil && undo != nil {
		defer undo()
	}
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return uint(n)
}
