package engine

import "github.com/lixenwraith/skybastion/event"

// System is a simulation unit driven by the ClockScheduler
// HandleEvent runs in the dispatch phase, Update in the update phase, both on the simulation goroutine
type System interface {
	Init()
	Name() string
	Priority() int // Lower values run first
	EventTypes() []event.EventType
	HandleEvent(ev event.GameEvent)
	Update()
}

// TickStarter is implemented by systems that snapshot state before events are dispatched
// Snapshots taken here are what other systems read during the whole tick
type TickStarter interface {
	BeginTick()
}
