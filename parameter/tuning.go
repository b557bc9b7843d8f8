package parameter

import "time"

// Tuning holds the runtime-adjustable subset of combat parameters
// Defaults mirror the constants; config.Config overrides them at startup
type Tuning struct {
	// Emplacement aim
	SearchInterval    time.Duration
	MaxFailedSearches int
	MinLockDwell      time.Duration
	AimHysteresis     time.Duration
	AimHoldDuration   time.Duration
	LockTimeout       time.Duration

	// Groups
	ReviveDelay      time.Duration
	ForceReviveDelay time.Duration
	PerPlayerCap     int
	AssignRange      float64
	ReassignInterval time.Duration

	// Boss
	BossBand          int
	EscortCheckpoints []int
	EscortCount       int
	EscortRadius      float64

	// Lock controller
	LockCircleRadius float64
	MissileRange     float64
	HalfFOV          float64
	Aspect           float64
	RequireLOS       bool

	// Gauges
	ChargePeriod    time.Duration
	LaserCharges    int
	LaserLevelCap   int
	ThrusterCharges int
}

// DefaultTuning returns tuning populated from package constants
func DefaultTuning() *Tuning {
	checkpoints := make([]int, len(BossEscortCheckpoints))
	copy(checkpoints, BossEscortCheckpoints)

	return &Tuning{
		SearchInterval:    AimSearchInterval,
		MaxFailedSearches: AimMaxFailedSearches,
		MinLockDwell:      AimMinLockDwell,
		AimHysteresis:     AimHysteresis,
		AimHoldDuration:   AimHoldDuration,
		LockTimeout:       AimLockTimeout,

		ReviveDelay:      GroupReviveDelay,
		ForceReviveDelay: GroupForceReviveDelay,
		PerPlayerCap:     GroupTurretPerPlayerCap,
		AssignRange:      GroupTurretAssignRange,
		ReassignInterval: GroupReassignInterval,

		BossBand:          BossBand,
		EscortCheckpoints: checkpoints,
		EscortCount:       BossEscortCount,
		EscortRadius:      BossEscortFormationRadius,

		LockCircleRadius: LockCircleRadius,
		MissileRange:     LockMissileRange,
		HalfFOV:          LockHalfFOV,
		Aspect:           LockAspect,
		RequireLOS:       LockRequireLineOfSight,

		ChargePeriod:    GaugeChargePeriod,
		LaserCharges:    GaugeLaserCharges,
		LaserLevelCap:   GaugeLaserLevelCap,
		ThrusterCharges: GaugeThrusterCharges,
	}
}
