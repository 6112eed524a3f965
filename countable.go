package refcount

// Counted is the base contract of every managed object. It is satisfied by
// embedding one of the shape bases (Single, Multi, AtomicSingle, AtomicMulti);
// the unexported methods keep outside implementations out.
type Counted interface {
	// IncRef increments the reference count by one.
	IncRef()

	// DecRef decrements the reference count by one. The call that observes
	// the transition to zero runs the object's teardown, exactly once.
	DecRef()

	// RefCount returns the current count. For atomic variants the returned
	// value is inherently racy and only useful for diagnostics.
	RefCount() int64

	bindTeardown(teardown)
	boundTeardown() teardown
}

// Countable is the plain-integer counting core embedded by Single and Multi.
// It performs no internal synchronization: concurrent IncRef/DecRef from
// multiple goroutines is a data race unless the caller serializes them.
type Countable struct {
	refs int64
	td   teardown
}

// IncRef increments the reference count.
func (c *Countable) IncRef() {
	c.refs++
}

// DecRef decrements the reference count and runs the teardown if this call
// brought it to zero. Decrementing below zero panics: it means a Ref was
// released more times than it was acquired.
func (c *Countable) DecRef() {
	c.refs--
	switch {
	case c.refs == 0:
		td := c.td
		c.td = nil
		runTeardown(td)
	case c.refs < 0:
		panic("refcount: DecRef below zero")
	}
}

// RefCount returns the current count.
func (c *Countable) RefCount() int64 {
	return c.refs
}

func (c *Countable) bindTeardown(td teardown) {
	c.td = td
}

func (c *Countable) boundTeardown() teardown {
	return c.td
}
