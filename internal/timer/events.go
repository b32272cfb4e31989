package timer

import "github.com/balkashynov/focus/internal/models"

// EventKind classifies an engine update.
type EventKind string

const (
	EventTick        EventKind = "tick"
	EventStateChange EventKind = "state_change"
	EventCompletion  EventKind = "completion"
)

// Event is an engine update for observers.
type Event struct {
	Kind       EventKind
	State      models.TimerState
	Completion *Completion
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than stall the engine.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.subscribers = append(e.subscribers, ch)
	return ch
}

func (e *Engine) emit(kind EventKind) {
	event := Event{Kind: kind, State: e.state.Clone(), Completion: e.pending}
	for _, ch := range e.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (e *Engine) closeSubscribers() {
	for _, ch := range e.subscribers {
		close(ch)
	}
	e.subscribers = nil
}
