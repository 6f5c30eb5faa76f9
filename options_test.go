package async

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/juanantonioruz/core.async/buffer"
	"github.com/juanantonioruz/core.async/dispatch"
)

func TestNewChan_Defaults(t *testing.T) {
	c := NewChan()
	require.Nil(t, c.buf)
	require.Equal(t, defaultSweepThreshold, c.sweepThreshold)
	require.NotNil(t, c.dispatch)
}

func TestWithBuffer_AttachesBuffer(t *testing.T) {
	b := buffer.New(3)
	c := NewChan(WithBuffer(b))
	require.Same(t, b, c.buf)
}

func TestWithDispatch_OverridesDefault(t *testing.T) {
	d := dispatch.NewFixed(2)
	c := NewChan(WithDispatch(d))
	require.Same(t, d, c.dispatch)
}

func TestWithSweepThreshold_ZeroOrNegative_Panics(t *testing.T) {
	require.Panics(t, func() { NewChan(WithSweepThreshold(0)) })
	require.Panics(t, func() { NewChan(WithSweepThreshold(-1)) })
}

func TestWithSweepThreshold_Applied(t *testing.T) {
	c := NewChan(WithSweepThreshold(8))
	require.Equal(t, 8, c.sweepThreshold)
}

func TestNewChan_NilOption_Panics(t *testing.T) {
	require.Panics(t, func() { NewChan(nil) })
}
