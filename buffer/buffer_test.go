package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer_TableDriven(t *testing.T) {
	type step struct {
		add          any
		wantFull     bool
		wantCount    int
		removeExpect any
	}

	tests := []struct {
		name    string
		newBuf  func() Buffer
		steps   []step
		wantLen int
	}{
		{
			name:   "fixed: accepts up to capacity",
			newBuf: func() Buffer { return New(2) },
			steps: []step{
				{add: 1, wantCount: 1},
				{add: 2, wantCount: 2, wantFull: true},
			},
		},
		{
			name:   "dropping: discards beyond capacity, keeps oldest",
			newBuf: func() Buffer { return NewDropping(1) },
			steps: []step{
				{add: 1, wantCount: 1, wantFull: true},
				{add: 2, wantCount: 1, wantFull: true}, // 2 dropped
				{add: 3, wantCount: 1, wantFull: true}, // 3 dropped
			},
		},
		{
			name:   "sliding: evicts oldest, keeps newest",
			newBuf: func() Buffer { return NewSliding(1) },
			steps: []step{
				{add: 1, wantCount: 1, wantFull: true},
				{add: 2, wantCount: 1, wantFull: true},
				{add: 3, wantCount: 1, wantFull: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.newBuf()
			for _, s := range tt.steps {
				b.Add(s.add)
				require.Equal(t, s.wantCount, b.Count())
				require.Equal(t, s.wantFull, b.Full())
			}
		})
	}
}

func TestDroppingBuffer_KeepsFirstValue(t *testing.T) {
	b := NewDropping(1)
	b.Add(1)
	b.Add(2)
	b.Add(3)
	require.Equal(t, 1, b.Remove())
	require.Equal(t, 0, b.Count())
}

func TestSlidingBuffer_KeepsLastValue(t *testing.T) {
	b := NewSliding(1)
	b.Add(1)
	b.Add(2)
	b.Add(3)
	require.Equal(t, 3, b.Remove())
	require.Equal(t, 0, b.Count())
}

func TestSlidingBuffer_CapacityTwo_Order(t *testing.T) {
	b := NewSliding(2)
	b.Add(1)
	b.Add(2)
	b.Add(3) // evicts 1
	require.Equal(t, 2, b.Count())
	require.Equal(t, 2, b.Remove())
	require.Equal(t, 3, b.Remove())
}

func TestNew_NegativeCapacity_Panics(t *testing.T) {
	require.Panics(t, func() { New(-1) })
}

func TestNewDropping_ZeroCapacity_Panics(t *testing.T) {
	require.Panics(t, func() { NewDropping(0) })
}

func TestNewSliding_ZeroCapacity_Panics(t *testing.T) {
	require.Panics(t, func() { NewSliding(0) })
}

func TestFixedBuffer_AddOnFull_Panics(t *testing.T) {
	b := New(1)
	b.Add(1)
	require.Panics(t, func() { b.Add(2) })
}
