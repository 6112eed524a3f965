package refcount

import "sync/atomic"

// AtomicCountable is the concurrency-safe counting core embedded by
// AtomicSingle and AtomicMulti. The count is the only state it synchronizes;
// Go's atomics are sequentially consistent, so every write made under a
// reference is visible to the goroutine whose DecRef observes zero and runs
// the teardown.
type AtomicCountable struct {
	refs atomic.Int64
	td   teardown
}

// IncRef increments the reference count. Ordering among concurrent
// increments is irrelevant; only the final count matters.
func (c *AtomicCountable) IncRef() {
	c.refs.Add(1)
}

// DecRef decrements the reference count. Exactly one caller observes the
// transition to zero and runs the teardown on its own goroutine.
// Decrementing below zero panics.
func (c *AtomicCountable) DecRef() {
	switch v := c.refs.Add(-1); {
	case v == 0:
		td := c.td
		c.td = nil
		runTeardown(td)
	case v < 0:
		panic("refcount: DecRef below zero")
	}
}

// RefCount returns the current count. The value is racy by nature and safe
// to use only for diagnostics.
func (c *AtomicCountable) RefCount() int64 {
	return c.refs.Load()
}

func (c *AtomicCountable) bindTeardown(td teardown) {
	c.td = td
}

func (c *AtomicCountable) boundTeardown() teardown {
	return c.td
}
