package async

// Take implements spec.md §4.5 sync-take: it blocks until a value is
// available and returns it, or nil if port is (or becomes) closed.
func Take(port *Channel) any {
	result := make(chan any, 1)
	run := port.Take(H(func(v any) { result <- v }))
	if run != nil {
		run()
	}
	return <-result
}

// Put implements spec.md §4.5 sync-put: it blocks until the value is
// accepted, or returns ErrPutOnClosed immediately if port was already
// closed.
func Put(port *Channel, v any) error {
	done := make(chan struct{}, 1)
	run, err := port.Put(v, H(func(any) { done <- struct{}{} }))
	if err != nil {
		return err
	}
	if run != nil {
		run()
	}
	<-done
	return nil
}

// AsyncTake implements spec.md §4.5 async-take: f is invoked with the taken
// value (nil if closed), either on the caller's own stack when onCaller is
// true and the take completes immediately, or via the channel's dispatch
// otherwise.
func AsyncTake(port *Channel, f func(any), onCaller bool) {
	run := port.Take(H(f))
	if run == nil {
		return
	}
	if onCaller {
		run()
		return
	}
	port.schedule(run)
}

// AsyncPut implements spec.md §4.5 async-put: f is invoked (with nil) once
// the value is accepted, under the same on-caller rule as AsyncTake. It
// returns ErrPutOnClosed synchronously if port was already closed.
func AsyncPut(port *Channel, v any, f func(any), onCaller bool) error {
	run, err := port.Put(v, H(f))
	if err != nil {
		return err
	}
	if run == nil {
		return nil
	}
	if onCaller {
		run()
		return nil
	}
	port.schedule(run)
	return nil
}

// Close implements spec.md §4.5 close: idempotent channel shutdown.
func Close(port *Channel) { port.Close() }
