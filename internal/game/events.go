package game

type EventType int

const (
	EventSpawn EventType = iota
	EventGoodHit
	EventBadHit
	EventGameOver
)

// Event is an effect request. Handlers run synchronously inside Emit, so a
// hit event is delivered while the hit visual still exists.
type Event struct {
	Type  EventType
	Shape ShapeRef
	Kind  ShapeKind
	Color RGB
	Score int
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
