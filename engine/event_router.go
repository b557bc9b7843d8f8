package engine

import "github.com/lixenwraith/skybastion/event"

// EventHandler processes specific event types
type EventHandler interface {
	// HandleEvent processes a single event
	// Called synchronously during the dispatch phase, before World.Update()
	HandleEvent(ev event.GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []event.EventType
}

// EventRouter dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch, no concurrent World mutation
//   - Handlers for one type run in registration order
//   - Every dispatched event is forwarded to the world Notifier after its handlers
//   - All pending events are consumed before World.Update() runs
type EventRouter struct {
	world    *World
	handlers map[event.EventType][]EventHandler
	queue    *event.EventQueue
}

// NewEventRouter creates a router attached to the world event queue
func NewEventRouter(world *World) *EventRouter {
	return &EventRouter{
		world:    world,
		handlers: make(map[event.EventType][]EventHandler),
		queue:    world.Resources.Event.Queue,
	}
}

// Register adds a handler for its declared event types
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending events and routes them in FIFO order
// Events pushed by handlers during dispatch wait for the next tick
// Returns the number of events dispatched
func (r *EventRouter) DispatchAll() int {
	events := r.queue.Consume()
	notifier := r.world.Resources.Notifier
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
		if notifier != nil {
			notifier.Notify(ev)
		}
	}
	return len(events)
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *EventRouter) HasHandlers(t event.EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *EventRouter) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}
