package async

import "time"

// NewTimer returns a channel that closes itself after d elapses, per
// spec.md §6's timeout(msecs): a take on it blocks until d has passed, then
// returns nil like any read from a closed channel. It is never written to.
func NewTimer(d time.Duration) *Channel {
	c := NewChan()
	time.AfterFunc(d, c.Close)
	return c
}
