package refcount

import (
	"fmt"

	"go.uber.org/zap"
)

// Dropper is optionally implemented by managed types that need a teardown
// side effect. Drop is invoked by the shape's teardown path, never directly
// by clients.
type Dropper interface {
	Drop()
}

// Shape identifies how an object was allocated. It is fixed at allocation
// time and must match at teardown time.
type Shape uint8

const (
	// ShapeUnknown means the object was not created through a factory and
	// has no teardown bound.
	ShapeUnknown Shape = iota

	// ShapeSingle marks a lone instance created with New.
	ShapeSingle

	// ShapeArray marks a contiguous run created with NewArray.
	ShapeArray
)

func (s Shape) String() string {
	switch s {
	case ShapeSingle:
		return "single"
	case ShapeArray:
		return "array"
	default:
		return "unknown"
	}
}

// ShapeOf reports the allocation shape of a managed object.
func ShapeOf(c Counted) Shape {
	if td := c.boundTeardown(); td != nil {
		return td.shape()
	}
	return ShapeUnknown
}

// teardown is the capability a Countable dispatches through when its count
// reaches zero. Two variants exist, one per allocation shape, selected by
// the factory and fixed for the object's lifetime. The handle only ever
// sees the base contract, never the concrete shape.
type teardown interface {
	destroy()
	shape() Shape
	goType() string
}

// singleTeardown tears down a lone instance: one Drop call, if implemented.
type singleTeardown struct {
	obj any
}

func (t *singleTeardown) destroy() {
	if d, ok := t.obj.(Dropper); ok {
		d.Drop()
	}
}

func (t *singleTeardown) shape() Shape { return ShapeSingle }

func (t *singleTeardown) goType() string { return fmt.Sprintf("%T", t.obj) }

// arrayTeardown tears down a contiguous run: one Drop call per element, in
// index order. It retains the backing slice; Slice recovers it.
type arrayTeardown[T any] struct {
	elems []T
}

func (t *arrayTeardown[T]) destroy() {
	for i := range t.elems {
		if d, ok := any(&t.elems[i]).(Dropper); ok {
			d.Drop()
		}
	}
}

func (t *arrayTeardown[T]) shape() Shape { return ShapeArray }

func (t *arrayTeardown[T]) goType() string {
	var zero *T
	return fmt.Sprintf("%T", zero)
}

// runTeardown is the single exit point of the count-to-zero transition.
func runTeardown(td teardown) {
	if td == nil {
		return
	}
	untrack(td)
	Logger().Debug("refcount: teardown",
		zap.String("type", td.goType()),
		zap.Stringer("shape", td.shape()))
	td.destroy()
}

// Single is the embeddable base for types allocated one instance at a time
// with New. The count is a plain integer; see Countable for the
// synchronization rules.
type Single struct {
	Countable
}

func (*Single) singleShaped() {}

// Multi is the embeddable base for types allocated as a contiguous run with
// NewArray. The count lives in the first element of the run.
type Multi struct {
	Countable
}

func (*Multi) arrayShaped() {}

// AtomicSingle is Single with an atomic count, safe for concurrent
// IncRef/DecRef without external locking.
type AtomicSingle struct {
	AtomicCountable
}

func (*AtomicSingle) singleShaped() {}

// AtomicMulti is Multi with an atomic count.
type AtomicMulti struct {
	AtomicCountable
}

func (*AtomicMulti) arrayShaped() {}
