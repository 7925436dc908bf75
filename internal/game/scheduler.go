package game

import (
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs a callback once after a delay. Rooms own the timers they get from it.
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func()) Timer
}

// SerialScheduler fires callbacks while holding the session lock, so a timer
// callback never interleaves with an intent being handled.
type SerialScheduler struct {
	locker sync.Locker
}

func NewSerialScheduler(locker sync.Locker) *SerialScheduler {
	return &SerialScheduler{locker: locker}
}

func (that *SerialScheduler) AfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, func() {
		that.locker.Lock()
		defer that.locker.Unlock()

		fn()
	})
}

func stopTimer(timer Timer) {
	if timer != nil {
		timer.Stop()
	}
}
