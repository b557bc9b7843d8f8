package parameter

import (
	"math"
	"time"
)

// Hull Hit Points
const (
	// CombatHPBoss is boss hull hit points, several escort checkpoints and 100k bands below it
	CombatHPBoss = 1_000_000

	// CombatHPEscort is escort hull hit points
	CombatHPEscort = 4_000

	// CombatHPFortress is a regular gated hostile hull (carrier, fortress)
	CombatHPFortress = 60_000

	// CombatHPPlayer is player craft hit points
	CombatHPPlayer = 1_000
)

// Emplacement Hit Points
const (
	CombatHPTurret      = 300
	CombatHPSmallCannon = 800
	CombatHPBigCannon   = 2_000
)

// Emplacement Damage
const (
	// CombatDamageTurret is damage per turret shot
	CombatDamageTurret = 4

	// CombatDamageSmallCannon is damage per small cannon shell
	CombatDamageSmallCannon = 15

	// CombatDamageBeamTick is damage per big cannon beam tick
	CombatDamageBeamTick = 6
)

// Emplacement Ranges (world units)
const (
	CombatRangeTurret      = 900.0
	CombatRangeSmallCannon = 1400.0
	CombatRangeBigCannon   = 2200.0
)

// Emplacement Fire Cadence
const (
	CombatIntervalTurret      = 250 * time.Millisecond
	CombatIntervalSmallCannon = 1200 * time.Millisecond
	CombatIntervalBeamTick    = 200 * time.Millisecond
)

// Emplacement Rotation Limits (radians) and Turn Rates (radians/sec)
const (
	CombatYawMaxTurret        = math.Pi
	CombatPitchMaxTurret      = 80 * math.Pi / 180
	CombatYawMaxSmallCannon   = 120 * math.Pi / 180
	CombatPitchMaxSmallCannon = 45 * math.Pi / 180
	CombatYawMaxBigCannon     = 60 * math.Pi / 180
	CombatPitchMaxBigCannon   = 30 * math.Pi / 180

	CombatTurnRateTurret      = 3.0
	CombatTurnRateSmallCannon = 1.5
	CombatTurnRateBigCannon   = 0.6
)

// Emplacement Aim Timers
const (
	// AimSearchInterval throttles default target searches
	AimSearchInterval = 1 * time.Second

	// AimMaxFailedSearches puts an emplacement to sleep until woken
	AimMaxFailedSearches = 10

	// AimMinLockDwell is how long all lock conditions must hold before Locked
	AimMinLockDwell = 300 * time.Millisecond

	// AimHysteresis tolerates condition loss while Locked
	AimHysteresis = 500 * time.Millisecond

	// AimHoldDuration blocks reacquisition after the target left rotation limits
	AimHoldDuration = 1 * time.Second

	// AimLockTimeout drops a lock that stayed out of range this long
	AimLockTimeout = 3 * time.Second
)

// Group Scheduler
const (
	// GroupReviveDelay is the partial-loss revive countdown
	GroupReviveDelay = 60 * time.Second

	// GroupForceReviveDelay is the hull-level countdown once all its weapons are down
	GroupForceReviveDelay = 45 * time.Second

	// GroupTurretPerPlayerCap is the max turrets assigned to one player per tick
	GroupTurretPerPlayerCap = 4

	// GroupTurretAssignRange is the max distance from the group anchor for a player to draw fire
	GroupTurretAssignRange = 2500.0

	// GroupReassignInterval is the period of the full reset-and-reassign pass
	GroupReassignInterval = 5 * time.Second
)

// Boss
const (
	// BossBand is the hit point band size whose crossing force-revives every boss weapon
	BossBand = 100_000

	// BossEscortCount is the escort formation size
	BossEscortCount = 4

	// BossEscortFormationRadius is the escort ring radius around the boss
	BossEscortFormationRadius = 400.0
)

// BossEscortCheckpoints are the descending escort respawn checkpoints
var BossEscortCheckpoints = []int{750_000, 500_000, 250_000, 100_000}

// Collision radii
const (
	ColliderRadiusBoss        = 250.0
	ColliderRadiusEscort      = 60.0
	ColliderRadiusFortress    = 180.0
	ColliderRadiusEmplacement = 12.0
	ColliderRadiusPlayer      = 8.0
)

// Boss encounter layout
const (
	// ScenarioTurrets is the boss turret group size
	ScenarioTurrets = 8

	// ScenarioSmallCannons is the boss small cannon group size
	ScenarioSmallCannons = 4

	// ScenarioBigCannons is the boss big cannon group size
	ScenarioBigCannons = 2

	// ScenarioPlayerDistance is the player spawn distance from the boss
	ScenarioPlayerDistance = 1800.0
)
