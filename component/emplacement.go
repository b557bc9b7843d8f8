package component

import (
	"time"

	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/vmath"
)

// WeaponClass identifies an emplacement class; one group holds one class
type WeaponClass uint8

const (
	WeaponTurret WeaponClass = iota
	WeaponSmallCannon
	WeaponBigCannon
)

// String returns the class name used in logs and telemetry keys
func (c WeaponClass) String() string {
	switch c {
	case WeaponTurret:
		return "turret"
	case WeaponSmallCannon:
		return "small_cannon"
	case WeaponBigCannon:
		return "big_cannon"
	default:
		return "unknown"
	}
}

// AimState is the fire-control state of an emplacement
type AimState uint8

const (
	AimIdle AimState = iota
	AimAcquiring
	AimLocked
)

// String returns the state name
func (s AimState) String() string {
	switch s {
	case AimIdle:
		return "idle"
	case AimAcquiring:
		return "acquiring"
	case AimLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// RotationLimits bounds emplacement rotation relative to its rest orientation (radians)
type RotationLimits struct {
	BodyYawMax    float64
	JointPitchMax float64
}

// EmplacementComponent is one turret or cannon instance
// Disabled at zero hit points, never destroyed; the owning group revives it
type EmplacementComponent struct {
	Class WeaponClass
	Group core.Entity

	MaxHitPoints int
	HitPoints    int
	Enabled      bool

	// Aim state and weak target handle
	Aim    AimState
	Target core.Entity
	// Tracked is the target the aim timers were accumulated against
	Tracked core.Entity

	// SchedulerDriven emplacements take targets from their group and never self-search
	SchedulerDriven bool

	// Geometry
	Limits          RotationLimits
	TurnRate        float64 // radians/sec
	InstantTracking bool
	Yaw, Pitch      float64 // current aim relative to rest

	// Fire control
	FireRange    float64
	FireInterval time.Duration
	FireCooldown time.Duration
	Damage       int

	// Beam weapons deal periodic ticks instead of discrete shots
	Beam      bool
	BeamTimer time.Duration
	BeamEnd   vmath.Vec3F
	BeamOn    bool
	// BeamVisual is the spawner id of the beam presentation object
	BeamVisual uint64

	// Aim timers
	Dwell          time.Duration // conditions held while Acquiring
	LostFor        time.Duration // conditions lost while Locked
	UnrangedFor    time.Duration // out of range while Locked
	HoldRemaining  time.Duration // reacquisition block after leaving rotation limits
	SearchCooldown time.Duration
	FailedSearches int
	Dormant        bool
}
