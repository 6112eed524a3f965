package refcount

// Managed constrains Ref to pointer types embedding one of the shape bases.
type Managed interface {
	comparable
	Counted
}

// noCopy makes `go vet` flag plain struct copies of Ref.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Ref is an owning handle to a managed object. It is either empty or holds
// one counted reference; Clone shares, Move transfers, Release lets go.
// The zero Ref is empty and ready to use.
//
// A Ref must not be duplicated by assignment - the copy would not be
// accounted for and its release would over-decrement the count. Use Clone
// or Move, and pass Refs by pointer.
type Ref[T Managed] struct {
	obj T
	_   noCopy
}

// NewRef wraps a raw owning pointer, incrementing its count. Wrapping the
// zero value yields an empty Ref.
func NewRef[T Managed](obj T) Ref[T] {
	var zero T
	if obj != zero {
		obj.IncRef()
	}
	return Ref[T]{obj: obj}
}

// Clone returns a new Ref sharing ownership: the count goes up by one.
func (r *Ref[T]) Clone() Ref[T] {
	if !r.Empty() {
		r.obj.IncRef()
	}
	return Ref[T]{obj: r.obj}
}

// Move transfers ownership into the returned Ref without touching the
// count. r becomes empty; its later Release is a no-op.
func (r *Ref[T]) Move() Ref[T] {
	obj := r.obj
	var zero T
	r.obj = zero
	return Ref[T]{obj: obj}
}

// CopyFrom makes r share src's object, releasing whatever r held before.
// Copying a Ref onto itself is a no-op.
func (r *Ref[T]) CopyFrom(src *Ref[T]) {
	if r == src {
		return
	}
	var zero T
	if r.obj != zero {
		r.obj.DecRef()
	}
	r.obj = src.obj
	if r.obj != zero {
		r.obj.IncRef()
	}
}

// MoveFrom transfers src's object into r, releasing whatever r held before.
// src becomes empty. Moving a Ref onto itself is a no-op.
func (r *Ref[T]) MoveFrom(src *Ref[T]) {
	if r == src {
		return
	}
	var zero T
	if r.obj != zero {
		r.obj.DecRef()
	}
	r.obj = src.obj
	src.obj = zero
}

// Release drops r's reference and empties it. The DecRef that brings the
// count to zero tears the object down. Releasing an empty Ref is a no-op,
// so `defer r.Release()` is safe even after a Move.
func (r *Ref[T]) Release() {
	var zero T
	if r.obj == zero {
		return
	}
	obj := r.obj
	r.obj = zero
	obj.DecRef()
}

// Get returns the held pointer, or the zero value if r is empty. The caller
// must not retain the result beyond r's lifetime without cloning.
func (r *Ref[T]) Get() T {
	return r.obj
}

// Empty reports whether r holds nothing.
func (r *Ref[T]) Empty() bool {
	var zero T
	return r.obj == zero
}
