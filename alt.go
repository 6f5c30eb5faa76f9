package async

import (
	"math/rand/v2"
	"sync"

	"github.com/juanantonioruz/core.async/metrics"
)

// altMetrics guards the package-level metrics.Provider Alt commits are
// recorded against. A single Alt call spans multiple channels, so (unlike
// Channel, which owns one Provider via WithMetrics) there is no one Channel
// to attribute the instrument to; SetAltMetrics mirrors SetLogger's
// package-wide configuration for the same reason.
var altMetrics = struct {
	mu   sync.RWMutex
	inst metrics.Instruments
}{inst: metrics.NewInstruments(metrics.NewNoopProvider())}

// SetAltMetrics installs the metrics.Provider Alt records commits against
// (alt.commits, alt.defaults). Passing nil restores the no-op default.
func SetAltMetrics(p metrics.Provider) {
	if p == nil {
		p = metrics.NewNoopProvider()
	}
	inst := metrics.NewInstruments(p)
	altMetrics.mu.Lock()
	altMetrics.inst = inst
	altMetrics.mu.Unlock()
}

func currentAltInstruments() metrics.Instruments {
	altMetrics.mu.RLock()
	defer altMetrics.mu.RUnlock()
	return altMetrics.inst
}

// Clause is one arm of an Alt call: a take or a put on a specific channel,
// or a default value delivered when no operation is immediately ready.
// Construct one with TakeClause, PutClause, or DefaultClause.
type Clause struct {
	label string
	kind  clauseKind
	port  *Channel
	value any
}

type clauseKind int

const (
	takeClause clauseKind = iota
	putClause
	defaultClause
)

// TakeClause builds an Alt clause that attempts port.Take, publishing label
// and the taken value (nil if port is closed) when it wins.
func TakeClause(label string, port *Channel) Clause {
	if port == nil {
		panic("async: TakeClause requires a non-nil port")
	}
	return Clause{label: label, kind: takeClause, port: port}
}

// PutClause builds an Alt clause that attempts port.Put(value), publishing
// label and nil when it wins. value must be non-nil.
func PutClause(label string, port *Channel, value any) Clause {
	if port == nil {
		panic("async: PutClause requires a non-nil port")
	}
	if value == nil {
		panic("async: PutClause requires a non-nil value")
	}
	return Clause{label: label, kind: putClause, port: port, value: value}
}

// DefaultClause builds the (at most one) fallback Alt delivers when no
// take/put clause is immediately ready.
func DefaultClause(label string, value any) Clause {
	return Clause{label: label, kind: defaultClause, value: value}
}

// Alt implements spec.md §4.4: it commits exactly one clause and returns
// its label and value. Candidate clauses are tried in a uniformly random
// order; if none is immediately ready and a default clause is present, the
// default wins without blocking. Otherwise Alt blocks until some clause's
// channel operation commits asynchronously.
func Alt(clauses ...Clause) (string, any) {
	type result struct {
		label string
		value any
	}
	done := make(chan result, 1)
	altDispatch(clauses, func(label string, value any) {
		done <- result{label, value}
	})
	r := <-done
	return r.label, r.value
}

// altDispatch runs the Alt algorithm, calling deliver exactly once — either
// synchronously, on whichever clause's stack commits it, or later from
// dispatch. Alt is its only caller.
func altDispatch(clauses []Clause, deliver func(label string, value any)) {
	var def *Clause
	ops := make([]Clause, 0, len(clauses))
	for i := range clauses {
		c := clauses[i]
		if c.kind == defaultClause {
			if def != nil {
				panic("async: Alt called with more than one default clause")
			}
			cc := c
			def = &cc
			continue
		}
		ops = append(ops, c)
	}

	flag := newAltFlag()
	inst := currentAltInstruments()

	won := func() {
		inst.AltCommits.Add(1)
		logger().Debug("async: alt clause committed")
	}

	for _, idx := range rand.Perm(len(ops)) {
		c := ops[idx]
		h := newAltHandler(flag, won, func(v any) { deliver(c.label, v) })

		switch c.kind {
		case takeClause:
			if run := c.port.Take(h); run != nil {
				run()
				return
			}

		case putClause:
			run, err := c.port.Put(c.value, h)
			if err != nil {
				// A put racing a close behaves like a take on a closed
				// channel: it commits immediately and publishes nil,
				// rather than surfacing ErrPutOnClosed through Alt's
				// (label, value) shape. flag.commit() here bypasses the
				// Handler.Commit path (the channel rejected the put before
				// ever touching h), so won is called explicitly.
				if flag.commit() {
					won()
					deliver(c.label, nil)
				}
				return
			}
			if run != nil {
				run()
				return
			}
		}
	}

	if def != nil {
		if flag.commit() {
			inst.AltCommits.Add(1)
			inst.AltDefaults.Add(1)
			logger().Debug("async: alt default clause committed")
			deliver(def.label, def.value)
		}
	}
}
