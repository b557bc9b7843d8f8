package component

import "github.com/lixenwraith/skybastion/core"

// LockComponent is the per-player target lock state
type LockComponent struct {
	// Locked is the weak handle of the authoritative locked entity, zero when unlocked
	Locked core.Entity

	LockCircleRadius float64
	MissileRange     float64
	HalfFOV          float64
	Aspect           float64
	RequireLOS       bool

	// LockCount and LostCount are lifetime transition counters
	LockCount int
	LostCount int
}
