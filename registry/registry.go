package registry

import (
	"errors"
	"sync"

	"github.com/wippyai/refcount"
)

var (
	ErrClosed            = errors.New("registry closed")
	ErrInvalidHandle     = errors.New("invalid handle")
	ErrOutstandingBorrow = errors.New("cannot release entry with outstanding borrows")
)

// Handle is an opaque reference to a registered object.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a handle lifecycle event.
type EventType uint8

const (
	EventRegistered EventType = iota
	EventReleased
	EventBorrowed
	EventReturned
)

// Event describes a handle lifecycle event.
type Event struct {
	Object refcount.Counted
	Handle Handle
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnRegistryEvent(Event)
}

type entry struct {
	obj     refcount.Counted
	borrows uint32
	valid   bool
}

// Registry is a slab of handles over reference-counted objects. It holds
// one counted reference per entry and recycles freed slots.
type Registry struct {
	entries   []entry
	freeList  []Handle
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Register stores obj, takes one reference on it, and returns its handle.
func (r *Registry) Register(obj refcount.Counted) (Handle, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return 0, ErrClosed
	}

	obj.IncRef()
	e := entry{obj: obj, valid: true}

	var h Handle
	if len(r.freeList) > 0 {
		h = r.freeList[len(r.freeList)-1]
		r.freeList = r.freeList[:len(r.freeList)-1]
		r.entries[h-1] = e
	} else {
		r.entries = append(r.entries, e)
		h = Handle(len(r.entries))
	}
	r.mu.Unlock()

	r.notify(Event{Type: EventRegistered, Handle: h, Object: obj})
	return h, nil
}

// Get borrows the object behind h without changing its count. The result is
// only guaranteed alive while the handle stays registered.
func (r *Registry) Get(h Handle) (refcount.Counted, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.lookup(h)
	if !ok {
		return nil, false
	}
	return e.obj, true
}

// Retain increments the count of the object behind h through the table. The
// caller now owns a reference and is responsible for releasing it.
func (r *Registry) Retain(h Handle) (refcount.Counted, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookup(h)
	if !ok {
		return nil, false
	}
	e.obj.IncRef()
	return e.obj, true
}

// Borrow marks h as borrowed; Release refuses entries with outstanding
// borrows. Returns false for invalid handles.
func (r *Registry) Borrow(h Handle) bool {
	r.mu.Lock()
	e, ok := r.lookup(h)
	if !ok {
		r.mu.Unlock()
		return false
	}
	e.borrows++
	obj := e.obj
	r.mu.Unlock()

	r.notify(Event{Type: EventBorrowed, Handle: h, Object: obj})
	return true
}

// Return ends one borrow on h. Returns false for invalid handles and for
// entries with no outstanding borrow.
func (r *Registry) Return(h Handle) bool {
	r.mu.Lock()
	e, ok := r.lookup(h)
	if !ok || e.borrows == 0 {
		r.mu.Unlock()
		return false
	}
	e.borrows--
	obj := e.obj
	r.mu.Unlock()

	r.notify(Event{Type: EventReturned, Handle: h, Object: obj})
	return true
}

// Release frees the handle and drops the registry's reference; if it was
// the last one, the object's teardown runs here. Entries with outstanding
// borrows are refused.
func (r *Registry) Release(h Handle) error {
	r.mu.Lock()
	e, ok := r.lookup(h)
	if !ok {
		r.mu.Unlock()
		return ErrInvalidHandle
	}
	if e.borrows > 0 {
		r.mu.Unlock()
		return ErrOutstandingBorrow
	}

	obj := e.obj
	e.valid = false
	e.obj = nil
	r.freeList = append(r.freeList, h)
	r.mu.Unlock()

	// DecRef outside the lock: it may run a user teardown.
	obj.DecRef()
	r.notify(Event{Type: EventReleased, Handle: h, Object: obj})
	return nil
}

// Len returns the number of registered objects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for i := range r.entries {
		if r.entries[i].valid {
			count++
		}
	}
	return count
}

// Each iterates over all registered objects until fn returns false.
func (r *Registry) Each(fn func(Handle, refcount.Counted) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].valid {
			if !fn(Handle(i+1), r.entries[i].obj) {
				break
			}
		}
	}
}

// Clear releases every entry. Entries with outstanding borrows survive.
func (r *Registry) Clear() {
	// Collect handles first to avoid holding the lock across teardowns.
	var handles []Handle
	r.Each(func(h Handle, _ refcount.Counted) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		_ = r.Release(h)
	}
}

// Subscribe adds an observer for handle lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Close releases every entry, borrowed or not, and rejects further
// registrations. Closing twice is a no-op.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true

	var objs []refcount.Counted
	for i := range r.entries {
		if r.entries[i].valid {
			objs = append(objs, r.entries[i].obj)
			r.entries[i].valid = false
			r.entries[i].obj = nil
		}
	}
	r.entries = nil
	r.freeList = nil
	r.mu.Unlock()

	for _, obj := range objs {
		obj.DecRef()
	}
	return nil
}

// lookup resolves h to its entry. Callers hold r.mu.
func (r *Registry) lookup(h Handle) (*entry, bool) {
	if h == 0 || int(h) > len(r.entries) {
		return nil, false
	}
	e := &r.entries[h-1]
	if !e.valid {
		return nil, false
	}
	return e, true
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnRegistryEvent(e)
	}
}
