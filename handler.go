package async

import (
	"sync"
	"sync/atomic"
)

// Handler is a one-shot commit token wrapping a callback. At most one
// commit ever succeeds for a given Handler; Channel code relies on this to
// decide which of several racing waiters actually transfers a value.
//
// Lock/Unlock expose the same lock that guards the active/committed state.
// Single-handler call sites use Active/Commit, which take the lock
// internally. Multi-handler call sites (a channel matching two pending
// Handlers against each other) must acquire both locks via Lock, in
// ascending LockID order, and then use ActiveLocked/CommitLocked — calling
// Active/Commit while already holding the lock via Lock would self-deadlock
// on Go's non-reentrant sync.Mutex.
type Handler interface {
	// Active reports whether the handler is still eligible to fire.
	Active() bool

	// Lock and Unlock guard commit state. Code holding two Handler locks
	// simultaneously MUST acquire them in ascending LockID order.
	Lock()
	Unlock()

	// LockID returns a monotonically-ordered id used for deadlock-free
	// multi-lock acquisition. 0 means uncontended (never shared with
	// another concurrent committer).
	LockID() uint64

	// Commit atomically transitions the handler from active to inactive
	// and returns the callback to invoke. ok is false if the handler was
	// already committed by a concurrent caller.
	Commit() (cb func(any), ok bool)

	// ActiveLocked and CommitLocked behave like Active and Commit but
	// assume the caller already holds the handler's lock via Lock.
	ActiveLocked() bool
	CommitLocked() (cb func(any), ok bool)
}

// fnHandler wraps a plain callback for non-alt operations. It is never
// contended: LockID is 0, matching spec.md's "uncontended" fn-handler, and
// Lock/Unlock guard its own committed flag with a private mutex.
type fnHandler struct {
	mu        sync.Mutex
	committed bool
	f         func(any)
}

// H wraps f as a Handler for use with the public synchronous/asynchronous
// surface and with Channel.Take/Put directly.
func H(f func(any)) Handler { return &fnHandler{f: f} }

func (h *fnHandler) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ActiveLocked()
}

func (h *fnHandler) ActiveLocked() bool { return !h.committed }

func (h *fnHandler) Lock()          { h.mu.Lock() }
func (h *fnHandler) Unlock()        { h.mu.Unlock() }
func (h *fnHandler) LockID() uint64 { return 0 }

func (h *fnHandler) Commit() (func(any), bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.CommitLocked()
}

func (h *fnHandler) CommitLocked() (func(any), bool) {
	if h.committed {
		return nil, false
	}
	h.committed = true
	return h.f, true
}

// nextFlagID hands out unique, strictly-positive lock ids for alt flags, so
// every flag outranks every fnHandler (id 0) in the ascending-lock-id
// ordering rule.
var nextFlagID atomic.Uint64

// altFlag is the single commit token shared by every clause in one Alt
// call. Committing the flag commits the entire alt; only one clause (or
// the default) ever wins.
type altFlag struct {
	mu     sync.Mutex
	active bool
	id     uint64
}

func newAltFlag() *altFlag {
	return &altFlag{active: true, id: nextFlagID.Add(1)}
}

func (f *altFlag) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *altFlag) ActiveLocked() bool { return f.active }

func (f *altFlag) Lock()          { f.mu.Lock() }
func (f *altFlag) Unlock()        { f.mu.Unlock() }
func (f *altFlag) LockID() uint64 { return f.id }

// commitLocked transitions the flag to inactive, assuming the caller holds
// the lock. It reports whether this call won the race.
func (f *altFlag) commitLocked() bool {
	if !f.active {
		return false
	}
	f.active = false
	return true
}

func (f *altFlag) commit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commitLocked()
}

// altHandler is the per-clause Handler used by Alt. All per-clause
// handlers sharing a flag delegate Active/Lock/Unlock/LockID/Commit to it,
// so a single commit anywhere retires every other clause.
type altHandler struct {
	flag *altFlag
	f    func(any)
	won  func() // called on a successful commit, before f is returned
}

func newAltHandler(flag *altFlag, won func(), f func(any)) *altHandler {
	return &altHandler{flag: flag, f: f, won: won}
}

func (h *altHandler) Active() bool       { return h.flag.Active() }
func (h *altHandler) ActiveLocked() bool { return h.flag.ActiveLocked() }
func (h *altHandler) Lock()              { h.flag.Lock() }
func (h *altHandler) Unlock()            { h.flag.Unlock() }
func (h *altHandler) LockID() uint64     { return h.flag.LockID() }

func (h *altHandler) Commit() (func(any), bool) {
	if !h.flag.commit() {
		return nil, false
	}
	if h.won != nil {
		h.won()
	}
	return h.f, true
}

func (h *altHandler) CommitLocked() (func(any), bool) {
	if !h.flag.commitLocked() {
		return nil, false
	}
	if h.won != nil {
		h.won()
	}
	return h.f, true
}

// lockInOrder acquires a and b's locks in ascending LockID order,
// preventing deadlock between two concurrent alts matching on each other's
// pending handlers.
func lockInOrder(a, b Handler) {
	if a.LockID() <= b.LockID() {
		a.Lock()
		b.Lock()
	} else {
		b.Lock()
		a.Lock()
	}
}

func unlockInOrder(a, b Handler) {
	a.Unlock()
	b.Unlock()
}
