// Package refcount provides intrusive reference counting with deterministic
// teardown for heap objects with shared ownership.
//
// Go's garbage collector reclaims memory, but it gives no guarantee about when.
// This package exists for objects whose teardown must run at a predictable
// moment: the instant the last owner lets go. Typical candidates are pooled
// buffers, file-descriptor wrappers, and other resources where "eventually"
// is not good enough.
//
// # Object Lifecycle
//
// A managed type embeds one of the shape bases and optionally implements
// Dropper for its teardown side effect:
//
//	type Session struct {
//	    refcount.Single
//	    conn net.Conn
//	}
//
//	func (s *Session) Drop() { s.conn.Close() }
//
// Objects are created through the shape's factory, which returns a raw owning
// pointer with a reference count of zero. The caller immediately wraps it in
// a Ref, which is the only sanctioned way to touch the object afterwards:
//
//	s := refcount.New[Session](func(s *Session) { s.conn = conn })
//	ref := refcount.NewRef(s) // count is now 1
//	defer ref.Release()       // count drops to 0 on scope exit, Drop runs
//
// The count is mutated only through IncRef/DecRef; the DecRef that observes
// the transition to zero runs the teardown, exactly once.
//
// # Allocation Shapes
//
// Two shapes exist, fixed at allocation time:
//
//	Single / AtomicSingle - one instance, torn down with one Drop call
//	Multi / AtomicMulti   - a contiguous run, torn down element by element
//
// Array objects are created with NewArray and accessed through Slice:
//
//	type Frame struct {
//	    refcount.Multi
//	    data int
//	}
//
//	first := refcount.NewArray[Frame](3)
//	arr := refcount.NewRef(first)
//	refcount.Slice(arr.Get())[0].data = 10
//
// The reference count lives in the first element; releasing the last Ref to
// it tears down every element of the run, in index order.
//
// # Handles
//
// Ref implements shared ownership with explicit copy and move semantics:
//
//	b := a.Clone()  // share: count goes up
//	c := a.Move()   // transfer: count unchanged, a becomes empty
//	b.Release()     // scope exit: count goes down
//
// Go has no copy constructors, so duplicating a Ref with plain assignment
// bypasses the count. Ref carries a vet-visible guard against that; use
// Clone, Move, CopyFrom or MoveFrom instead.
//
// # Thread Safety
//
// Single and Multi keep a plain integer count and require external mutual
// exclusion. AtomicSingle and AtomicMulti keep an atomic count and may be
// shared across goroutines freely; the count is the only state this package
// synchronizes. The payload of a managed object is never protected here -
// concurrent access to its own fields needs the caller's synchronization.
//
// # Cycles
//
// Counting is not tracing: an ownership graph with a cycle never reaches
// zero and leaks permanently. An acyclic ownership graph is a precondition,
// not something this package detects. Enable leak tracking during tests to
// find objects that were never released.
package refcount
