package hooks

import (
	"runtime"
	"sync"

	"github.com/vango-dev/vhook/internal/errors"
)

// activeStores maps goroutine IDs to the store bound on that goroutine.
// Independent trees rendering on different goroutines never see each
// other's store.
var activeStores sync.Map

// getGoroutineID returns a unique identifier for the current goroutine.
// This uses the runtime stack to extract the goroutine ID.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack starts with "goroutine <id> "
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// Enter binds s as the active store of the calling goroutine and returns a
// function restoring the previous binding.
func Enter(s *Store) (restore func()) {
	gid := getGoroutineID()
	prev, hadPrev := activeStores.Load(gid)
	activeStores.Store(gid, s)

	return func() {
		if hadPrev {
			activeStores.Store(gid, prev)
		} else {
			activeStores.Delete(gid)
		}
	}
}

// Current returns the store bound on the calling goroutine, or nil.
func Current() *Store {
	if s, ok := activeStores.Load(getGoroutineID()); ok {
		return s.(*Store)
	}
	return nil
}

func mustCurrent(hook string) *Store {
	s := Current()
	if s == nil {
		panic(errors.New("E001").WithDetail(hook + " was called with no component rendering on this goroutine"))
	}
	return s
}
