package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
	"github.com/lixenwraith/skybastion/status"
)

// Resource holds singleton simulation resources, accessed via World.Resources
type Resource struct {
	Time  *TimeResource
	Event *EventQueueResource

	// Tuning is the runtime combat parameter set
	Tuning *parameter.Tuning

	// Telemetry
	Status *status.Registry

	// Log is the base logger; systems derive a child with their name
	Log zerolog.Logger

	// Collaborators
	Raycaster Raycaster
	Spawner   Spawner
	Notifier  Notifier
}

// NewResource creates resources with default tuning, a disabled logger and no-op collaborators
func NewResource() *Resource {
	return &Resource{
		Time:     &TimeResource{},
		Event:    &EventQueueResource{Queue: event.NewEventQueue()},
		Tuning:   parameter.DefaultTuning(),
		Status:   status.NewRegistry(),
		Log:      zerolog.Nop(),
		Spawner:  NopSpawner{},
		Notifier: NopNotifier{},
	}
}

// SystemLogger returns a child logger tagged with the system name
func (r *Resource) SystemLogger(name string) zerolog.Logger {
	return r.Log.With().Str("system", name).Logger()
}

// TimeResource wraps time data for systems
// Updated by the ClockScheduler at the start of a tick
type TimeResource struct {
	// GameTime is accumulated simulated time
	GameTime time.Duration

	// DeltaTime is the duration of the current tick
	DeltaTime time.Duration

	// FrameNumber is the current tick count
	FrameNumber int64
}

// Update modifies TimeResource fields in-place
// Must be called under the world update lock
func (tr *TimeResource) Update(deltaTime time.Duration, frameNumber int64) {
	tr.GameTime += deltaTime
	tr.DeltaTime = deltaTime
	tr.FrameNumber = frameNumber
}

// EventQueueResource wraps the event queue for systems access
type EventQueueResource struct {
	Queue *event.EventQueue
}
