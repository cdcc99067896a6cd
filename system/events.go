package system

import "github.com/milk9111/lightcycle/component"

// EventType names an event on the world queue.
type EventType string

const (
	EventBikeEliminated EventType = "bike_eliminated"
	EventRoundStarted   EventType = "round_started"
	EventRoundEnded     EventType = "round_ended"
	EventMatchEnded     EventType = "match_ended"
	EventSuspended      EventType = "suspended"
)

// Event is a queued notification for the host.
type Event struct {
	Type EventType
	Tick uint64
	Slot component.Slot
	Data any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len reports queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
