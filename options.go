package async

import (
	"github.com/juanantonioruz/core.async/buffer"
	"github.com/juanantonioruz/core.async/dispatch"
	"github.com/juanantonioruz/core.async/metrics"
)

// defaultSweepThreshold is the pending-queue length at which Channel
// proactively drops handlers whose Active() has gone false (spec.md §4.2,
// §9: "the sweep threshold is an implementation parameter (e.g., 64)").
const defaultSweepThreshold = 64

// ChanOption configures a Channel built by NewChan, following the same
// functional-options shape as the teacher's Option/With* constructors.
type ChanOption func(*chanConfig)

type chanConfig struct {
	buf            buffer.Buffer
	dispatch       dispatch.Dispatch
	sweepThreshold int
	metrics        metrics.Provider
}

func defaultChanConfig() chanConfig {
	return chanConfig{
		buf:            nil, // unbuffered rendezvous
		dispatch:       dispatch.Default,
		sweepThreshold: defaultSweepThreshold,
		metrics:        metrics.NewNoopProvider(),
	}
}

// WithBuffer attaches b as the channel's buffer. Omit for an unbuffered
// rendezvous channel.
func WithBuffer(b buffer.Buffer) ChanOption {
	return func(c *chanConfig) { c.buf = b }
}

// WithDispatch overrides the Dispatch used to run scheduled (non-inline)
// handler callbacks. Defaults to dispatch.Default (dynamic, unbounded).
func WithDispatch(d dispatch.Dispatch) ChanOption {
	return func(c *chanConfig) { c.dispatch = d }
}

// WithSweepThreshold overrides the pending-queue length at which inactive
// handlers are proactively dropped. Defaults to 64.
func WithSweepThreshold(n int) ChanOption {
	if n <= 0 {
		panic("async: WithSweepThreshold requires n > 0")
	}
	return func(c *chanConfig) { c.sweepThreshold = n }
}

// WithMetrics attaches a metrics.Provider the channel records
// takes/puts/closes/sweeps against. Defaults to a no-op provider.
func WithMetrics(p metrics.Provider) ChanOption {
	return func(c *chanConfig) { c.metrics = p }
}
