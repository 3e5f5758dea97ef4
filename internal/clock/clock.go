package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Now returns the local wall clock in epoch milliseconds, the unit every
// protocol timestamp uses.
func Now() int64 {
	return time.Now().UnixMilli()
}

// OffsetTracker holds this process's estimate of serverTime - localTime.
// It is established once per connection and read-only afterwards; no
// re-synchronization happens mid-session.
type OffsetTracker struct {
	once   sync.Once
	offset atomic.Int64
}

// Establish records the offset from one server clock sample. Later calls are
// ignored; a reconnect uses a fresh tracker.
func (t *OffsetTracker) Establish(serverMillis, localMillis int64) {
	t.once.Do(func() {
		t.offset.Store(serverMillis - localMillis)
	})
}

func (t *OffsetTracker) Offset() int64 {
	return t.offset.Load()
}

// ToServerFrame projects a local timestamp into the shared server frame.
func (t *OffsetTracker) ToServerFrame(localMillis int64) int64 {
	return localMillis + t.Offset()
}
