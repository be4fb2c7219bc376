package runner

import "github.com/vovakirdan/lane-runner/internal/core"

// Event is a notification emitted by the world during a frame and
// delivered to listeners after the frame commits.
type Event interface {
	runnerEvent()
}

// DamageEvent is emitted when a damage source hits a vulnerable player.
type DamageEvent struct {
	Source Kind
	Pos    core.Vec3
}

func (DamageEvent) runnerEvent() {}

// DamageFlashEvent asks presentation to flash the screen.
type DamageFlashEvent struct{}

func (DamageFlashEvent) runnerEvent() {}

// GemCollectedEvent is emitted when a gem is picked up.
type GemCollectedEvent struct {
	Points int
	Pos    core.Vec3
}

func (GemCollectedEvent) runnerEvent() {}

// LetterCollectedEvent is emitted when a letter is picked up.
type LetterCollectedEvent struct {
	Index int
	Pos   core.Vec3
}

func (LetterCollectedEvent) runnerEvent() {}

// EnterShopEvent is emitted when the player crosses a shop portal.
type EnterShopEvent struct{}

func (EnterShopEvent) runnerEvent() {}

// DistanceEvent carries the total distance after a frame.
type DistanceEvent struct {
	Distance float64
}

func (DistanceEvent) runnerEvent() {}

// BurstEvent is a visual effect request for every consumed entity.
type BurstEvent struct {
	Pos   core.Vec3
	Color core.Color
}

func (BurstEvent) runnerEvent() {}

// FaultEvent is emitted when a frame panicked and the run was halted.
type FaultEvent struct {
	Err error
}

func (FaultEvent) runnerEvent() {}

// Listener receives events. Listeners run on the stepping goroutine after
// the frame commits and must not block.
type Listener func(Event)

// EventQueue buffers events produced during one frame.
type EventQueue struct {
	events []Event
}

// Push appends an event.
func (q *EventQueue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain returns all pending events in FIFO order and empties the queue.
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}
