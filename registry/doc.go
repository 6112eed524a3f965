// Package registry maps opaque integer handles to reference-counted objects.
//
// Subsystems that cannot exchange typed pointers (a protocol boundary, a
// plugin, a callback registered with C) can exchange handles instead. The
// registry holds one counted reference per entry, so an object stays alive
// for as long as its handle is registered, whatever its other owners do.
//
// # Handle Lifecycle
//
//	reg := registry.New()
//
//	// Register takes one reference; the handle now keeps the object alive.
//	h, err := reg.Register(obj)
//
//	// Get borrows without touching the count.
//	obj, ok := reg.Get(h)
//
//	// Release drops the registry's reference and frees the handle. If the
//	// registry held the last reference, the teardown runs here.
//	err = reg.Release(h)
//
// Handle 0 is reserved and always invalid. Freed handles are recycled.
//
// # Borrows
//
// Borrow/Return bracket a window during which Release is refused, for
// callers that hold a raw pointer across a call boundary and cannot afford
// the entry disappearing underneath them:
//
//	reg.Borrow(h)
//	defer reg.Return(h)
//
// # Observers
//
// Subscribe to lifecycle events to audit handle traffic:
//
//	reg.Subscribe(obs) // Registered, Released, Borrowed, Returned
//
// The registry is safe for concurrent use. The objects it stores follow
// their own counting rules: entries shared across goroutines need the
// atomic shape bases.
package registry
