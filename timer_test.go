package async

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTimer_ClosesAfterDuration(t *testing.T) {
	timer := NewTimer(30 * time.Millisecond)

	start := time.Now()
	v := Take(timer)
	elapsed := time.Since(start)

	require.Nil(t, v)
	require.GreaterOrEqual(t, elapsed, 25*time.Millisecond)
}

func TestNewTimer_UsableInAltAgainstSlowProducer(t *testing.T) {
	work := NewChan()
	timer := NewTimer(20 * time.Millisecond)

	label, value := Alt(
		TakeClause("work", work),
		TakeClause("timeout", timer),
	)

	require.Equal(t, "timeout", label)
	require.Nil(t, value)
}
