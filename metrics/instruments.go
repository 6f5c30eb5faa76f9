package metrics

// Instruments bundles the named counters a Channel (including its hand-offs
// to a Dispatch) and an Alt call record against a Provider. Building the instruments once at construction
// time (rather than calling Provider.Counter on every operation) avoids the
// map lookup BasicProvider and most Provider implementations would
// otherwise perform on every channel op.
type Instruments struct {
	ChannelTakes   Counter
	ChannelPuts    Counter
	ChannelCloses  Counter
	AltCommits     Counter
	AltDefaults    Counter
	DispatchRuns   Counter
	HandlerSweeps  Counter
}

// NewInstruments builds an Instruments bundle from p. Passing a nil
// Provider is not supported; use NewNoopProvider for a discard target.
func NewInstruments(p Provider) Instruments {
	return Instruments{
		ChannelTakes:  p.Counter("async.channel.takes", WithUnit("1")),
		ChannelPuts:   p.Counter("async.channel.puts", WithUnit("1")),
		ChannelCloses: p.Counter("async.channel.closes", WithUnit("1")),
		AltCommits:    p.Counter("async.alt.commits", WithUnit("1")),
		AltDefaults:   p.Counter("async.alt.defaults", WithUnit("1")),
		DispatchRuns:  p.Counter("async.dispatch.runs", WithUnit("1")),
		HandlerSweeps: p.Counter("async.channel.sweeps", WithUnit("1")),
	}
}
