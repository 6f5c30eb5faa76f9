package async

import (
	"sync"

	"github.com/juanantonioruz/core.async/buffer"
	"github.com/juanantonioruz/core.async/dispatch"
	"github.com/juanantonioruz/core.async/metrics"
)

// waiter is a pending Handler parked on a Channel: a taker (value unused)
// or a putter (value holds what it is trying to send).
type waiter struct {
	h     Handler
	value any
}

// Channel is the rendezvous/buffered-queue core of spec.md §3-§4.2: a
// mutex-guarded optional Buffer plus ordered pending-taker and
// pending-putter queues.
//
// At any instant at most one of {pending-takers nonempty, pending-putters
// nonempty, buffer nonempty} holds for a given side; Take and Put maintain
// this invariant by always checking the buffer and the opposite queue
// before parking.
type Channel struct {
	mu sync.Mutex

	buf     buffer.Buffer
	takers  []waiter
	putters []waiter
	closed  bool

	dispatch       dispatch.Dispatch
	sweepThreshold int
	instruments    metrics.Instruments
}

// Chan is the public name for a channel handle returned by operations like
// Go and NewTimer, where "the channel" rather than "the Channel type" is
// the natural reading.
type Chan = *Channel

// NewChan builds a Channel. With no options it is an unbuffered rendezvous
// channel dispatching asynchronous callbacks via dispatch.Default.
func NewChan(opts ...ChanOption) *Channel {
	cfg := defaultChanConfig()
	for _, opt := range opts {
		if opt == nil {
			panic("async: nil ChanOption")
		}
		opt(&cfg)
	}
	return &Channel{
		buf:            cfg.buf,
		dispatch:       cfg.dispatch,
		sweepThreshold: cfg.sweepThreshold,
		instruments:    metrics.NewInstruments(cfg.metrics),
	}
}

// schedule hands f to the channel's Dispatch, recording the dispatch.runs
// instrument and debug log line for every callback run off the caller's
// stack (spec.md §9's "dispatch scheduling" logging).
func (c *Channel) schedule(f func()) {
	c.instruments.DispatchRuns.Add(1)
	logger().Debug("async: dispatch scheduled callback")
	c.dispatch.Run(f)
}

func (c *Channel) scheduleCallback(cb func(any), v any) {
	c.schedule(func() { cb(v) })
}

// Take implements spec.md §4.2 take!. If the operation can complete
// synchronously, it returns a zero-arg runnable the caller must invoke (on
// whatever stack it chooses); otherwise h is enqueued and nil is returned.
func (c *Channel) Take(h Handler) func() {
	c.mu.Lock()

	if !h.Active() {
		c.mu.Unlock()
		return nil
	}

	if c.buf != nil && c.buf.Count() > 0 {
		cb, ok := h.Commit()
		if !ok {
			c.mu.Unlock()
			return nil
		}
		v := c.buf.Remove()
		c.fillBufferFromPutterLocked()
		c.instruments.ChannelTakes.Add(1)
		c.mu.Unlock()
		logger().Debug("async: handler committed", zapOp("take-buffered"))
		return func() { cb(v) }
	}

	for len(c.putters) > 0 {
		p := c.putters[0]

		lockInOrder(h, p.h)

		if !h.ActiveLocked() {
			unlockInOrder(h, p.h)
			c.mu.Unlock()
			return nil
		}
		if !p.h.ActiveLocked() {
			unlockInOrder(h, p.h)
			c.putters = c.putters[1:]
			continue
		}

		hcb, hok := h.CommitLocked()
		if !hok {
			unlockInOrder(h, p.h)
			c.mu.Unlock()
			return nil
		}
		pcb, _ := p.h.CommitLocked()

		unlockInOrder(h, p.h)

		c.putters = c.putters[1:]
		c.instruments.ChannelTakes.Add(1)
		c.mu.Unlock()

		logger().Debug("async: handler committed", zapOp("take-matched-putter"))
		c.scheduleCallback(pcb, nil)
		return func() { hcb(p.value) }
	}

	if c.closed {
		cb, ok := h.Commit()
		if !ok {
			c.mu.Unlock()
			return nil
		}
		c.instruments.ChannelTakes.Add(1)
		c.mu.Unlock()
		logger().Debug("async: handler committed", zapOp("take-closed"))
		return func() { cb(nil) }
	}

	c.takers = append(c.takers, waiter{h: h})
	c.sweepTakersLocked()
	c.mu.Unlock()
	return nil
}

// Put implements spec.md §4.2 put!. A nil value is rejected (nil is
// reserved as the closed sentinel, per spec.md §9).
func (c *Channel) Put(v any, h Handler) (func(), error) {
	if v == nil {
		return nil, ErrInvalidArgument
	}

	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return nil, ErrPutOnClosed
	}

	if !h.Active() {
		c.mu.Unlock()
		return nil, nil
	}

	if c.buf != nil && (!c.buf.Full() || !c.buf.Blocking()) {
		cb, ok := h.Commit()
		if !ok {
			c.mu.Unlock()
			return nil, nil
		}
		c.buf.Add(v)
		c.wakeTakerFromBufferLocked()
		c.instruments.ChannelPuts.Add(1)
		c.mu.Unlock()
		logger().Debug("async: handler committed", zapOp("put-buffered"))
		return func() { cb(nil) }, nil
	}

	for len(c.takers) > 0 {
		t := c.takers[0]

		lockInOrder(h, t.h)

		if !h.ActiveLocked() {
			unlockInOrder(h, t.h)
			c.mu.Unlock()
			return nil, nil
		}
		if !t.h.ActiveLocked() {
			unlockInOrder(h, t.h)
			c.takers = c.takers[1:]
			continue
		}

		hcb, hok := h.CommitLocked()
		if !hok {
			unlockInOrder(h, t.h)
			c.mu.Unlock()
			return nil, nil
		}
		tcb, _ := t.h.CommitLocked()

		unlockInOrder(h, t.h)

		c.takers = c.takers[1:]
		c.instruments.ChannelPuts.Add(1)
		c.mu.Unlock()

		logger().Debug("async: handler committed", zapOp("put-matched-taker"))
		c.scheduleCallback(tcb, v)
		return func() { hcb(nil) }, nil
	}

	c.putters = append(c.putters, waiter{h: h, value: v})
	c.sweepPuttersLocked()
	c.mu.Unlock()
	return nil, nil
}

// Close implements spec.md §4.2 close!. It is idempotent: only the first
// call has any effect. Pending takers observe the closed sentinel (nil);
// pending putters on an unbuffered channel complete without transferring
// their value (see §9's "Put-on-closed ambiguity" resolution).
func (c *Channel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	takers := c.takers
	putters := c.putters
	c.takers = nil
	c.putters = nil
	c.instruments.ChannelCloses.Add(1)
	c.mu.Unlock()

	for _, t := range takers {
		if cb, ok := t.h.Commit(); ok {
			logger().Debug("async: handler committed", zapOp("close-taker"))
			c.scheduleCallback(cb, nil)
		}
	}
	for _, p := range putters {
		if cb, ok := p.h.Commit(); ok {
			logger().Debug("async: handler committed", zapOp("close-putter"))
			c.scheduleCallback(cb, nil)
		}
	}
}

// fillBufferFromPutterLocked dequeues at most one pending (active) putter
// into newly-freed buffer space, called after Take removes a value.
func (c *Channel) fillBufferFromPutterLocked() {
	for len(c.putters) > 0 {
		if c.buf.Full() {
			return
		}
		p := c.putters[0]
		c.putters = c.putters[1:]
		cb, ok := p.h.Commit()
		if !ok {
			continue
		}
		c.buf.Add(p.value)
		logger().Debug("async: handler committed", zapOp("put-filled-buffer"))
		c.scheduleCallback(cb, nil)
		return
	}
}

// wakeTakerFromBufferLocked dequeues at most one pending (active) taker
// and feeds it a value just added to the buffer by Put.
func (c *Channel) wakeTakerFromBufferLocked() {
	for len(c.takers) > 0 {
		t := c.takers[0]
		c.takers = c.takers[1:]
		cb, ok := t.h.Commit()
		if !ok {
			continue
		}
		if c.buf.Count() == 0 {
			return
		}
		v := c.buf.Remove()
		logger().Debug("async: handler committed", zapOp("take-drained-buffer"))
		c.scheduleCallback(cb, v)
		return
	}
}

func (c *Channel) sweepTakersLocked() {
	if len(c.takers) <= c.sweepThreshold {
		return
	}
	kept := c.takers[:0]
	dropped := 0
	for _, w := range c.takers {
		if w.h.Active() {
			kept = append(kept, w)
		} else {
			dropped++
		}
	}
	c.takers = kept
	if dropped > 0 {
		c.instruments.HandlerSweeps.Add(int64(dropped))
		logger().Debug("async: swept inactive takers", zapDropped(dropped))
	}
}

func (c *Channel) sweepPuttersLocked() {
	if len(c.putters) <= c.sweepThreshold {
		return
	}
	kept := c.putters[:0]
	dropped := 0
	for _, w := range c.putters {
		if w.h.Active() {
			kept = append(kept, w)
		} else {
			dropped++
		}
	}
	c.putters = kept
	if dropped > 0 {
		c.instruments.HandlerSweeps.Add(int64(dropped))
		logger().Debug("async: swept inactive putters", zapDropped(dropped))
	}
}
