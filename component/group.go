package component

import (
	"time"

	"github.com/lixenwraith/skybastion/core"
)

// GroupComponent is the scheduler state of one emplacement class on one hull
type GroupComponent struct {
	Class WeaponClass

	// Anchor is the owning hull; its position centers turret assignment range
	Anchor core.Entity

	// Members are weak emplacement handles, pruned on recount
	Members []core.Entity

	AliveCount int
	MaxCount   int

	// GateAlive is the enabled count at the start of the current tick, read by damage gates
	GateAlive int

	ReviveDelay     time.Duration
	ReviveArmed     bool
	ReviveRemaining time.Duration

	// Turret assignment
	PerPlayerCap      int
	AssignRange       float64
	ReassignRemaining time.Duration
}
