package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialScheduler(t *testing.T) {
	t.Run("Callbacks run while holding the lock", func(t *testing.T) {
		// Given: a scheduler bound to a mutex
		var mu sync.Mutex
		scheduler := NewSerialScheduler(&mu)
		held := make(chan bool, 1)

		// When: a callback fires
		scheduler.AfterFunc(time.Millisecond, func() {
			held <- !mu.TryLock()
		})

		// Then: the lock was taken for it
		select {
		case locked := <-held:
			assert.True(t, locked)
		case <-time.After(time.Second):
			require.FailNow(t, "callback did not fire")
		}
	})

	t.Run("A callback waits for the current holder", func(t *testing.T) {
		// Given: the lock is held
		var mu sync.Mutex
		scheduler := NewSerialScheduler(&mu)
		fired := make(chan struct{})

		mu.Lock()
		scheduler.AfterFunc(time.Millisecond, func() { close(fired) })

		// Then: the callback does not run until the lock is released
		select {
		case <-fired:
			require.FailNow(t, "callback ran while the lock was held")
		case <-time.After(50 * time.Millisecond):
		}

		mu.Unlock()

		select {
		case <-fired:
		case <-time.After(time.Second):
			require.FailNow(t, "callback did not fire")
		}
	})

	t.Run("A stopped timer never fires", func(t *testing.T) {
		// Given: a scheduled callback
		var mu sync.Mutex
		scheduler := NewSerialScheduler(&mu)
		fired := make(chan struct{}, 1)

		timer := scheduler.AfterFunc(20*time.Millisecond, func() { fired <- struct{}{} })

		// When: it is stopped in time
		stopped := timer.Stop()

		// Then: it never runs
		assert.True(t, stopped)
		select {
		case <-fired:
			require.FailNow(t, "stopped callback fired")
		case <-time.After(60 * time.Millisecond):
		}
	})
}

func TestStopTimer(t *testing.T) {
	// stopping nothing is allowed
	assert.NotPanics(t, func() { stopTimer(nil) })
}
