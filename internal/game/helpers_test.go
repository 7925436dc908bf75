package game

import (
	"sort"
	"testing"
	"time"

	"github.com/rocketscienceinc/doodle-backend/internal/entity"
)

// manualScheduler fires callbacks only when the test moves its clock.
// With lateStops set, Stop reports failure and the callback still runs, the way
// an AfterFunc that already fired and waits on the session lock behaves.
type manualScheduler struct {
	now       time.Duration
	timers    []*manualTimer
	lateStops bool
}

type manualTimer struct {
	at      time.Duration
	seq     int
	fn      func()
	late    bool
	stopped bool
	fired   bool
}

func (that *manualTimer) Stop() bool {
	if that.stopped || that.fired || that.late {
		return false
	}

	that.stopped = true
	return true
}

func (that *manualScheduler) AfterFunc(delay time.Duration, fn func()) Timer {
	timer := &manualTimer{at: that.now + delay, seq: len(that.timers), fn: fn, late: that.lateStops}
	that.timers = append(that.timers, timer)

	return timer
}

// Advance runs, in due order, every live timer that falls within d.
func (that *manualScheduler) Advance(d time.Duration) {
	target := that.now + d

	for {
		due := that.due(target)
		if due == nil {
			break
		}

		that.now = due.at
		due.fired = true
		due.fn()
	}

	that.now = target
}

func (that *manualScheduler) due(target time.Duration) *manualTimer {
	pending := make([]*manualTimer, 0, len(that.timers))
	for _, timer := range that.timers {
		if !timer.stopped && !timer.fired && timer.at <= target {
			pending = append(pending, timer)
		}
	}

	if len(pending) == 0 {
		return nil
	}

	sort.Slice(pending, func(i, j int) bool {
		if pending[i].at == pending[j].at {
			return pending[i].seq < pending[j].seq
		}
		return pending[i].at < pending[j].at
	})

	return pending[0]
}

// Scheduled counts every timer ever handed out.
func (that *manualScheduler) Scheduled() int {
	return len(that.timers)
}

func (that *manualScheduler) Pending() int {
	count := 0
	for _, timer := range that.timers {
		if !timer.stopped && !timer.fired {
			count++
		}
	}

	return count
}

type recordingNotifier struct {
	events []Event
}

func (that *recordingNotifier) Notify(_ string, event Event) {
	that.events = append(that.events, event)
}

func (that *recordingNotifier) Reset() {
	that.events = nil
}

func eventsOf[T Event](notifier *recordingNotifier) []T {
	var found []T
	for _, event := range notifier.events {
		if typed, ok := event.(T); ok {
			found = append(found, typed)
		}
	}

	return found
}

// sequenceWords hands out its words in order, over and over.
type sequenceWords struct {
	words []string
	next  int
}

func (that *sequenceWords) Next() string {
	word := that.words[that.next%len(that.words)]
	that.next++

	return word
}

type roomFixture struct {
	room      *Room
	registry  *Registry
	scheduler *manualScheduler
	notifier  *recordingNotifier
}

func (that *roomFixture) player(t *testing.T, id entity.ConnectionID) *entity.Player {
	t.Helper()

	player, ok := that.registry.Get(id)
	if !ok {
		t.Fatalf("player %s is not registered", id)
	}

	return player
}

func newRoomFixture(t *testing.T, settings Settings, members ...entity.ConnectionID) *roomFixture {
	t.Helper()

	fixture := &roomFixture{
		registry:  NewRegistry(),
		scheduler: &manualScheduler{},
		notifier:  &recordingNotifier{},
	}

	fixture.room = NewRoom("room-1", "Test room", settings, Deps{
		Players:   fixture.registry,
		Words:     &sequenceWords{words: []string{"cat", "dog", "tree"}},
		Scheduler: fixture.scheduler,
		Notifier:  fixture.notifier,
		Now:       func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) },
	})

	for _, id := range members {
		fixture.registry.Register(id, string(id))
		if err := fixture.room.AddMember(id); err != nil {
			t.Fatalf("could not add member %s: %v", id, err)
		}
	}

	return fixture
}
