package component

import (
	"time"

	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/vmath"
)

// PlayerWeaponComponent tracks player special weapons
// Missiles need a lock, laser and thruster draw from their gauge entities
type PlayerWeaponComponent struct {
	LaserGauge    core.Entity
	ThrusterGauge core.Entity

	MissileCooldown time.Duration
	MissilesFired   int

	LaserFiring bool
	LaserTimer  time.Duration
	LaserEnd    vmath.Vec3F

	Boosting bool
}
