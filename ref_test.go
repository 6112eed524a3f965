package refcount

import "testing"

func TestRef_CopyThenReleaseInOrder(t *testing.T) {
	drops := 0
	a := NewRef(New[widget](func(w *widget) {
		w.value = 42
		w.drops = &drops
	}))

	if a.Get().value != 42 {
		t.Fatalf("Expected value 42, got %d", a.Get().value)
	}

	b := a.Clone()
	if got := a.Get().RefCount(); got != 2 {
		t.Fatalf("Expected count 2 after clone, got %d", got)
	}

	a.Release()
	if drops != 0 {
		t.Fatal("Object torn down while b still owns it")
	}
	if !a.Empty() {
		t.Fatal("Expected a empty after release")
	}

	b.Release()
	if drops != 1 {
		t.Fatalf("Expected exactly 1 teardown, got %d", drops)
	}
}

func TestRef_ReleaseOrderIrrelevant(t *testing.T) {
	// Whatever order N handles go away in, the last one tears down.
	orders := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2},
		{1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	for _, order := range orders {
		drops := 0
		first := NewRef(New[widget](func(w *widget) { w.drops = &drops }))
		refs := []*Ref[*widget]{&first}
		for i := 0; i < 2; i++ {
			r := first.Clone()
			refs = append(refs, &r)
		}

		for i, idx := range order {
			refs[idx].Release()
			if i < len(order)-1 && drops != 0 {
				t.Fatalf("order %v: teardown after %d releases", order, i+1)
			}
		}
		if drops != 1 {
			t.Fatalf("order %v: expected 1 teardown, got %d", order, drops)
		}
	}
}

func TestRef_MoveTransfersWithoutCounting(t *testing.T) {
	drops := 0
	a := NewRef(New[widget](func(w *widget) { w.drops = &drops }))

	b := a.Move()
	if !a.Empty() {
		t.Fatal("Expected source empty after move")
	}
	if got := b.Get().RefCount(); got != 1 {
		t.Fatalf("Expected count 1 after move, got %d", got)
	}

	// The source's release must be a no-op.
	a.Release()
	if drops != 0 {
		t.Fatal("Teardown triggered by moved-from handle")
	}

	b.Release()
	if drops != 1 {
		t.Fatalf("Expected exactly 1 teardown, got %d", drops)
	}
}

func TestRef_SelfAssignment(t *testing.T) {
	drops := 0
	a := NewRef(New[widget](func(w *widget) { w.drops = &drops }))
	obj := a.Get()

	a.CopyFrom(&a)
	if a.Get() != obj || a.Get().RefCount() != 1 || drops != 0 {
		t.Fatal("Self copy-assignment changed the handle or the count")
	}

	a.MoveFrom(&a)
	if a.Get() != obj || a.Get().RefCount() != 1 || drops != 0 {
		t.Fatal("Self move-assignment changed the handle or the count")
	}

	a.Release()
	if drops != 1 {
		t.Fatalf("Expected exactly 1 teardown, got %d", drops)
	}
}

func TestRef_CopyFromReleasesPrevious(t *testing.T) {
	drops1, drops2 := 0, 0
	a := NewRef(New[widget](func(w *widget) { w.drops = &drops1 }))
	b := NewRef(New[widget](func(w *widget) { w.drops = &drops2 }))

	// a lets go of its object and shares b's.
	a.CopyFrom(&b)
	if drops1 != 1 {
		t.Fatalf("Expected previous object torn down, got %d", drops1)
	}
	if got := b.Get().RefCount(); got != 2 {
		t.Fatalf("Expected count 2 after copy-assign, got %d", got)
	}

	a.Release()
	b.Release()
	if drops2 != 1 {
		t.Fatalf("Expected exactly 1 teardown, got %d", drops2)
	}
}

func TestRef_MoveFromReleasesPrevious(t *testing.T) {
	drops1, drops2 := 0, 0
	a := NewRef(New[widget](func(w *widget) { w.drops = &drops1 }))
	b := NewRef(New[widget](func(w *widget) { w.drops = &drops2 }))

	a.MoveFrom(&b)
	if drops1 != 1 {
		t.Fatalf("Expected previous object torn down, got %d", drops1)
	}
	if !b.Empty() {
		t.Fatal("Expected source empty after move-assign")
	}
	if got := a.Get().RefCount(); got != 1 {
		t.Fatalf("Expected count 1 after move-assign, got %d", got)
	}

	a.Release()
	if drops2 != 1 {
		t.Fatalf("Expected exactly 1 teardown, got %d", drops2)
	}
}

func TestRef_EmptyHandleIsInert(t *testing.T) {
	var r Ref[*widget]
	if !r.Empty() {
		t.Fatal("Expected zero Ref to be empty")
	}
	if r.Get() != nil {
		t.Fatal("Expected nil from empty Get")
	}

	// Releasing an empty handle, repeatedly, is a no-op.
	r.Release()
	r.Release()

	// Wrapping nil yields an empty handle.
	r = NewRef[*widget](nil)
	if !r.Empty() {
		t.Fatal("Expected NewRef(nil) to be empty")
	}
}

func TestRef_ArrayScenario(t *testing.T) {
	drops := 0
	arr := NewRef(NewArray[frame](3))

	elems := Slice(arr.Get())
	for i := range elems {
		elems[i].drops = &drops
	}
	elems[0].data = 10
	elems[1].data = 20

	got := Slice(arr.Get())
	if got[0].data != 10 || got[1].data != 20 {
		t.Fatalf("Expected mutations visible through handle, got %d and %d", got[0].data, got[1].data)
	}

	arr.Release()
	if drops != 3 {
		t.Fatalf("Expected 3 teardown calls, got %d", drops)
	}
}
