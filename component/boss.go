package component

import "github.com/lixenwraith/skybastion/core"

// BossComponent holds boss-only progression state, attached alongside HullComponent
type BossComponent struct {
	// Escorts are the current escort formation hulls; destroyed handles count as dead
	Escorts []core.Entity

	// LastBand is the last observed hit point band floor
	LastBand int

	// Checkpoints are descending escort respawn thresholds
	Checkpoints []int
	// CheckpointIndex is the next checkpoint to fire, monotonic
	CheckpointIndex int

	// ShieldActive mirrors escort presence for presentation
	ShieldActive bool

	// Formation bookkeeping for respawns
	FormationSize   int
	FormationRadius float64
	Respawns        int
}
