// Package async provides first-class channels (rendezvous or buffered),
// a non-deterministic multi-operation alt, and a goroutine-backed task
// runtime that parks at channel operations instead of blocking an
// application thread.
//
// Constructors
//   - NewChan(opts ...ChanOption): builds a Channel, unbuffered unless
//     WithBuffer is supplied.
//   - NewTimer(d time.Duration): returns a Chan closed after d.
//   - Go(body): spawns a task and returns its result channel.
//
// Defaults
// Unless overridden via ChanOption, a new Channel is unbuffered
// (rendezvous) and dispatches asynchronous callbacks via dispatch.Default
// (a dynamic, unbounded Dispatch). The pending-handler sweep threshold
// defaults to 64 (see WithSweepThreshold).
//
// Channel lifecycle
// Close marks a Channel closed, drains its pending takers with the nil
// sentinel, and completes any pending putters on an unbuffered channel
// without transferring their value (see the documentation of
// Channel.Close). A Channel is never required to be
// closed for its memory to be reclaimed.
//
// Dispatch
//   - Dynamic dispatch (default): every scheduled callback runs on its own
//     goroutine.
//   - Fixed dispatch: caps the number of concurrently-running scheduled
//     callbacks via a weighted semaphore.
package async
