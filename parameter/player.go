package parameter

import (
	"math"
	"time"
)

// DegToRad converts degrees to radians
const DegToRad = math.Pi / 180

// Lock Controller
const (
	// LockCircleRadius is the lock circle radius in normalized view space (1.0 = frustum edge)
	LockCircleRadius = 0.35

	// LockMissileRange is the missile lock range (world units)
	LockMissileRange = 3000.0

	// LockHalfFOVDegrees is the vertical half field of view
	LockHalfFOVDegrees = 35.0

	// LockHalfFOV is LockHalfFOVDegrees in radians
	LockHalfFOV = LockHalfFOVDegrees * DegToRad

	// LockAspect is the view width/height ratio
	LockAspect = 16.0 / 9.0

	// LockRequireLineOfSight enables the LOS check on lock
	LockRequireLineOfSight = true
)

// Resource Gauges
const (
	// GaugeChargePeriod is the time to spend or regain one charge
	GaugeChargePeriod = 1 * time.Second

	// GaugeLaserCharges is the starting laser charge count
	GaugeLaserCharges = 3

	// GaugeLaserLevelCap is the max laser charges reachable through level ups
	GaugeLaserLevelCap = 8

	// GaugeThrusterCharges is the thruster fuel charge count
	GaugeThrusterCharges = 5
)

// Player Weapons
const (
	// MissileCooldown is the delay between missile launches
	MissileCooldown = 1500 * time.Millisecond

	// MissileDamage is damage per missile hit
	MissileDamage = 20_000

	// LaserRange is the player laser reach (world units)
	LaserRange = 1500.0

	// LaserTickInterval is the player laser damage tick period
	LaserTickInterval = 100 * time.Millisecond

	// LaserDamageTick is damage per laser tick
	LaserDamageTick = 1_200

	// GunDamage is damage per cannon round of the player craft
	GunDamage = 60
)
