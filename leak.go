package refcount

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Leak tracking registers every factory-created object and removes it when
// its teardown runs. Counting cannot see ownership cycles or forgotten
// releases, so this is the way to find them in tests. It is off by default
// and adds a mutex-protected map update to every allocation and teardown
// while enabled.

type leakRecord struct {
	goType string
	shape  Shape
}

var (
	leakTracking atomic.Bool
	leakMu       sync.Mutex
	liveObjects  map[teardown]leakRecord
)

// EnableLeakTracking starts recording live objects. Objects allocated while
// tracking was off are not seen.
func EnableLeakTracking() {
	leakMu.Lock()
	defer leakMu.Unlock()
	if liveObjects == nil {
		liveObjects = make(map[teardown]leakRecord)
	}
	leakTracking.Store(true)
}

// DisableLeakTracking stops recording and forgets everything recorded so far.
func DisableLeakTracking() {
	leakMu.Lock()
	defer leakMu.Unlock()
	leakTracking.Store(false)
	liveObjects = nil
}

// LeakCount returns the number of tracked objects that are still alive.
func LeakCount() int {
	leakMu.Lock()
	defer leakMu.Unlock()
	return len(liveObjects)
}

// LogLeaks writes one warning per live tracked object to the package logger
// and returns how many there were.
func LogLeaks() int {
	leakMu.Lock()
	defer leakMu.Unlock()
	for _, rec := range liveObjects {
		Logger().Warn("refcount: leaked object",
			zap.String("type", rec.goType),
			zap.Stringer("shape", rec.shape))
	}
	return len(liveObjects)
}

func track(td teardown) {
	if !leakTracking.Load() {
		return
	}
	leakMu.Lock()
	defer leakMu.Unlock()
	if liveObjects != nil {
		liveObjects[td] = leakRecord{goType: td.goType(), shape: td.shape()}
	}
}

func untrack(td teardown) {
	if !leakTracking.Load() {
		return
	}
	leakMu.Lock()
	defer leakMu.Unlock()
	delete(liveObjects, td)
}
