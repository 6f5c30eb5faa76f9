package metrics

import "testing"

func TestNewInstruments_RecordsIndependently(t *testing.T) {
	p := NewBasicProvider()
	in := NewInstruments(p)

	in.ChannelTakes.Add(2)
	in.ChannelPuts.Add(3)

	takes := in.ChannelTakes.(*BasicCounter).Snapshot()
	puts := in.ChannelPuts.(*BasicCounter).Snapshot()

	if takes != 2 {
		t.Fatalf("ChannelTakes = %d, want 2", takes)
	}
	if puts != 3 {
		t.Fatalf("ChannelPuts = %d, want 3", puts)
	}
}

func TestNewInstruments_NoopProvider(t *testing.T) {
	in := NewInstruments(NewNoopProvider())
	// Must not panic even though NoopProvider discards everything.
	in.ChannelCloses.Add(1)
	in.AltCommits.Add(1)
	in.AltDefaults.Add(1)
	in.DispatchRuns.Add(1)
	in.HandlerSweeps.Add(1)
}
