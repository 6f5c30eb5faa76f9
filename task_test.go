package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGo_DeliversResultThenCloses(t *testing.T) {
	result := Go(func(ctx context.Context) (any, error) {
		return 7, nil
	})

	require.Equal(t, 7, Take(result))
	require.Nil(t, Take(result))
}

func TestGo_ErrorClosesWithoutValue(t *testing.T) {
	var mu sync.Mutex
	var reported error
	done := make(chan struct{})
	SetTaskErrorHandler(func(err error) {
		mu.Lock()
		reported = err
		mu.Unlock()
		close(done)
	})
	defer SetTaskErrorHandler(nil)

	boom := errors.New("boom")
	result := Go(func(ctx context.Context) (any, error) {
		return nil, boom
	})

	require.Nil(t, Take(result))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("error handler never invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	require.ErrorIs(t, reported, boom)
}

func TestGo_PanicRecoveredAsTaskPanicked(t *testing.T) {
	var mu sync.Mutex
	var reported error
	done := make(chan struct{})
	SetTaskErrorHandler(func(err error) {
		mu.Lock()
		reported = err
		mu.Unlock()
		close(done)
	})
	defer SetTaskErrorHandler(nil)

	result := Go(func(ctx context.Context) (any, error) {
		panic("kaboom")
	})

	require.Nil(t, Take(result))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("error handler never invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	require.ErrorIs(t, reported, ErrTaskPanicked)

	taskChan, ok := ExtractTaskChan(reported)
	require.True(t, ok)
	require.Same(t, result, taskChan)
}

func TestGo_ParksOnChannelOperations(t *testing.T) {
	upstream := NewChan()
	result := Go(func(ctx context.Context) (any, error) {
		v := Take(upstream)
		return v, nil
	})

	require.NoError(t, Put(upstream, "payload"))
	require.Equal(t, "payload", Take(result))
}

func TestGoContext_BodySeesLiveContextUntilReturn(t *testing.T) {
	ctx := context.Background()

	var sawCanceled bool
	result := GoContext(ctx, func(ctx context.Context) (any, error) {
		sawCanceled = ctx.Err() != nil
		return "ok", nil
	})

	require.Equal(t, "ok", Take(result))
	require.False(t, sawCanceled)
}
