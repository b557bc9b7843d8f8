package component

import (
	"time"

	"github.com/lixenwraith/skybastion/core"
)

// HullKind selects the damage-gate policy of a hull
type HullKind uint8

const (
	// HullRegular is a hostile hull gated by its weapon groups
	HullRegular HullKind = iota
	// HullBoss is gated by its weapon groups and its escort hulls
	HullBoss
	// HullEscort is an escort ship, ungated unless groups are attached
	HullEscort
	// HullPlayer is a player craft, gated only by DamageEnabled
	HullPlayer
)

// HullComponent is a hit-point container with a damage gate
// HitPoints stays in [0, MaxHitPoints]; zero is terminal
type HullComponent struct {
	Kind HullKind

	MaxHitPoints int
	HitPoints    int

	// Groups are the weapon group entities this hull depends on for its gate
	Groups []core.Entity

	// DamageEnabled is the external enable flag for hulls without weapon groups
	DamageEnabled bool

	// Force-revive countdown, armed once all groups are down
	ForceReviveArmed     bool
	ForceReviveRemaining time.Duration
}

// IsDead reports whether the hull reached zero hit points
func (h *HullComponent) IsDead() bool {
	return h.HitPoints <= 0
}
