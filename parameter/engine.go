package parameter

import "time"

// Simulation Timing
const (
	// GameUpdateInterval is the fixed simulation tick used by the real-time loop
	GameUpdateInterval = 20 * time.Millisecond

	// MaxStepDelta caps a single step so a stalled host does not fast-forward every timer at once
	MaxStepDelta = 250 * time.Millisecond
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047

	// InitialEntityCapacity pre-sizes the entity arena
	InitialEntityCapacity = 256
)
