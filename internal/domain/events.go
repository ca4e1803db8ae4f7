package domain

// EventKind tags an outcome emitted by an engine
type EventKind int

const (
	EventStepped EventKind = iota
	EventFound
	EventNotFound
	EventCutoff
	EventOverflowRejected
	EventUnderflowRejected
)

func (k EventKind) String() string {
	switch k {
	case EventStepped:
		return "stepped"
	case EventFound:
		return "found"
	case EventNotFound:
		return "not-found"
	case EventCutoff:
		return "cutoff"
	case EventOverflowRejected:
		return "overflow-rejected"
	case EventUnderflowRejected:
		return "underflow-rejected"
	default:
		return "unknown"
	}
}

// Terminal reports whether the event ends a search
func (k EventKind) Terminal() bool {
	return k == EventFound || k == EventNotFound || k == EventCutoff
}

// Rejected reports whether the event is a refused linear operation
func (k EventKind) Rejected() bool {
	return k == EventOverflowRejected || k == EventUnderflowRejected
}

// Event is delivered to observers after every accepted or rejected call.
// Presentation layers subscribe to it instead of the engine playing sounds
// or toasts itself.
type Event struct {
	Kind    EventKind
	Step    int
	Value   string
	Message string
}

// Observer receives engine events
type Observer func(Event)

type observers []Observer

func (o observers) emit(e Event) {
	for _, fn := range o {
		fn(e)
	}
}
