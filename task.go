package async

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/juanantonioruz/core.async/buffer"
)

// TaskMetaError exposes correlation metadata for a task body's failure.
// Adapted from the teacher's error_tagging.go: the underlying mechanism
// (a tagged wrapper satisfying errors.As) is unchanged, generalized here to
// identify tasks by their result Chan rather than a worker pool index.
type TaskMetaError interface {
	error
	Unwrap() error
	Task() Chan
}

type taskTaggedError struct {
	err  error
	task Chan
}

func newTaskTaggedError(err error, task Chan) error {
	if err == nil {
		return nil
	}
	return &taskTaggedError{err: err, task: task}
}

func (e *taskTaggedError) Error() string { return e.err.Error() }
func (e *taskTaggedError) Unwrap() error { return e.err }
func (e *taskTaggedError) Task() Chan    { return e.task }

func (e *taskTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "task: %+v", e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractTaskChan returns the result channel of the task that produced err,
// if err (or something it wraps) carries one.
func ExtractTaskChan(err error) (Chan, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.Task(), true
	}
	return nil, false
}

// taskErrorHandler receives every task body's terminal error (including
// panics recovered as ErrTaskPanicked) exactly once each. Swapped out by
// SetTaskErrorHandler; defaults to a debug log line through the package
// logger, which discards it unless SetLogger has installed a real logger.
var taskErrorHandler struct {
	mu sync.RWMutex
	f  func(error)
}

// SetTaskErrorHandler installs the package-wide callback invoked once per
// failing task body. Passing nil restores the default (log-and-drop)
// handler. Adapted from the teacher's error_forwarder.go: that type
// serialized many internal producers down to a single forward-once
// delivery; here each task forwards its own single terminal error directly,
// so no intermediate channel or cancellation plumbing is needed.
func SetTaskErrorHandler(f func(error)) {
	taskErrorHandler.mu.Lock()
	defer taskErrorHandler.mu.Unlock()
	taskErrorHandler.f = f
}

func reportTaskError(err error) {
	taskErrorHandler.mu.RLock()
	f := taskErrorHandler.f
	taskErrorHandler.mu.RUnlock()
	if f != nil {
		f(err)
		return
	}
	logger().Debug("async: task failed", zapTaskError(err))
}

// Go implements spec.md §4.6's task runtime using real goroutines rather
// than a compiler-generated state machine: body runs on its own goroutine
// and parks, per the design note, by making ordinary blocking calls into
// Take/Put/Alt on that goroutine. Its result channel C has capacity 1; on
// success the returned value is put and C is closed; on error or panic, C
// is closed without a value and the error is reported via
// SetTaskErrorHandler.
func Go(body func(context.Context) (any, error)) Chan {
	return GoContext(context.Background(), body)
}

// GoContext is Go with an explicit parent context, canceled automatically
// once the task body returns.
func GoContext(ctx context.Context, body func(context.Context) (any, error)) Chan {
	c := NewChan(WithBuffer(buffer.New(1)))
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		defer cancel()
		defer c.Close()
		defer func() {
			if r := recover(); r != nil {
				reportTaskError(newTaskTaggedError(fmt.Errorf("%w: %v", ErrTaskPanicked, r), c))
			}
		}()

		v, err := body(ctx)
		if err != nil {
			reportTaskError(newTaskTaggedError(err, c))
			return
		}
		if v != nil {
			_ = Put(c, v)
		}
	}()

	return c
}
