package event

import (
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/vmath"
)

// MetaSystemCommandPayload toggles a system
type MetaSystemCommandPayload struct {
	SystemName string
	Enabled    bool
}

// DamageRequestPayload carries damage toward a target
// Target may be a part; the owning system resolves it
type DamageRequestPayload struct {
	Source core.Entity
	Target core.Entity
	Amount int
}

// HealthChangedPayload carries a new hit point reading
type HealthChangedPayload struct {
	Entity    core.Entity
	HitPoints int
	Max       int
}

// HullDestroyedPayload identifies a dead hull
type HullDestroyedPayload struct {
	Hull     core.Entity
	Position vmath.Vec3F
	Boss     bool
}

// ShieldPayload identifies the boss whose shield changed
type ShieldPayload struct {
	Boss core.Entity
}

// EscortFormationPayload describes a respawned escort formation
type EscortFormationPayload struct {
	Boss       core.Entity
	Escorts    []core.Entity
	Checkpoint int
}

// EmplacementPayload identifies an emplacement and its group
type EmplacementPayload struct {
	Emplacement core.Entity
	Group       core.Entity
}

// ShotPayload describes one discrete shot
type ShotPayload struct {
	Emplacement core.Entity
	Target      core.Entity
	Origin      vmath.Vec3F
	Direction   vmath.Vec3F
}

// GroupPayload identifies a group
type GroupPayload struct {
	Group core.Entity
}

// LockPayload carries a lock transition
type LockPayload struct {
	Player core.Entity
	Target core.Entity
}

// PlayerPayload identifies a player
type PlayerPayload struct {
	Player core.Entity
}

// PlayerTogglePayload switches a continuous player action
type PlayerTogglePayload struct {
	Player core.Entity
	On     bool
}

// MissileLaunchedPayload describes a launched missile
type MissileLaunchedPayload struct {
	Player core.Entity
	Target core.Entity
	Origin vmath.Vec3F
}

// GaugePayload identifies a gauge and its owner
type GaugePayload struct {
	Gauge core.Entity
	Owner core.Entity
}
