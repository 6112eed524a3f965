package refcount

import "go.uber.org/zap"

// SingleObject constrains a pointer type to concrete types embedding Single
// or AtomicSingle. Passing any other type fails to compile, which is the
// whole point: the shape of an allocation is checked before the program runs.
type SingleObject[T any] interface {
	*T
	Counted
	singleShaped()
}

// ArrayObject constrains a pointer type to concrete types embedding Multi or
// AtomicMulti.
type ArrayObject[T any] interface {
	*T
	Counted
	arrayShaped()
}

// New allocates one instance of T, runs init on it if non-nil, and returns
// the raw owning pointer with a reference count of zero. The caller must
// wrap the result in a Ref before sharing it; until then nothing accounts
// for the object.
func New[T any, PT SingleObject[T]](init func(PT)) PT {
	obj := PT(new(T))
	if init != nil {
		init(obj)
	}
	td := &singleTeardown{obj: obj}
	obj.bindTeardown(td)
	track(td)
	Logger().Debug("refcount: allocated",
		zap.String("type", td.goType()),
		zap.Stringer("shape", ShapeSingle))
	return obj
}

// NewArray allocates a contiguous run of n zero-valued elements and returns
// a pointer to the first one, with a reference count of zero. The count and
// the teardown live in the first element; releasing the last Ref to it tears
// down every element of the run. Use Slice to reach the other elements.
//
// n == 0 returns a nil pointer that must not be dereferenced or wrapped.
// Negative n panics.
func NewArray[T any, PT ArrayObject[T]](n int) PT {
	if n < 0 {
		panic("refcount: negative array length")
	}
	var zero PT
	if n == 0 {
		return zero
	}
	elems := make([]T, n)
	first := PT(&elems[0])
	td := &arrayTeardown[T]{elems: elems}
	first.bindTeardown(td)
	track(td)
	Logger().Debug("refcount: allocated",
		zap.String("type", td.goType()),
		zap.Stringer("shape", ShapeArray),
		zap.Int("len", n))
	return first
}

// Slice returns the contiguous run backing an array allocation, given the
// first-element pointer a factory or Ref handed out. It returns nil if p is
// nil or was not allocated with NewArray, so a shape mismatch surfaces as a
// visible failure instead of corruption.
func Slice[T any, PT ArrayObject[T]](p PT) []T {
	var zero PT
	if p == zero {
		return nil
	}
	td, ok := p.boundTeardown().(*arrayTeardown[T])
	if !ok {
		return nil
	}
	return td.elems
}

// ArrayLen returns the element count of an array allocation, or zero for
// nil and non-array objects.
func ArrayLen[T any, PT ArrayObject[T]](p PT) int {
	return len(Slice[T, PT](p))
}
