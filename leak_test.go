package refcount

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLeakTracking_CountsLiveObjects(t *testing.T) {
	EnableLeakTracking()
	defer DisableLeakTracking()

	a := NewRef(New[widget](nil))
	b := NewRef(New[widget](nil))
	arr := NewRef(NewArray[frame](2))

	if got := LeakCount(); got != 3 {
		t.Fatalf("Expected 3 live objects, got %d", got)
	}

	a.Release()
	arr.Release()
	if got := LeakCount(); got != 1 {
		t.Fatalf("Expected 1 live object, got %d", got)
	}

	b.Release()
	if got := LeakCount(); got != 0 {
		t.Fatalf("Expected 0 live objects, got %d", got)
	}
}

func TestLeakTracking_LogsSurvivors(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	EnableLeakTracking()
	defer DisableLeakTracking()

	leaked := NewRef(New[widget](nil))

	if got := LogLeaks(); got != 1 {
		t.Fatalf("Expected 1 leak, got %d", got)
	}
	entries := logs.FilterMessage("refcount: leaked object").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["type"] != "*refcount.widget" {
		t.Fatalf("Expected type field *refcount.widget, got %v", fields["type"])
	}
	if fields["shape"] != "single" {
		t.Fatalf("Expected shape field single, got %v", fields["shape"])
	}

	leaked.Release()
	if got := LogLeaks(); got != 0 {
		t.Fatalf("Expected 0 leaks after release, got %d", got)
	}
}

func TestLeakTracking_DisabledAddsNothing(t *testing.T) {
	r := NewRef(New[widget](nil))
	defer r.Release()

	if got := LeakCount(); got != 0 {
		t.Fatalf("Expected 0 tracked objects while disabled, got %d", got)
	}
}
