package engine

import (
	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/vmath"
)

// RayHit is the nearest surface hit by a ray
type RayHit struct {
	Point    vmath.Vec3F
	Distance float64
	Entity   core.Entity
}

// Raycaster answers line-of-sight queries
// dir is normalized; only colliders whose mask intersects mask are considered
type Raycaster interface {
	Raycast(origin, dir vmath.Vec3F, maxDist float64, mask component.Category) (RayHit, bool)
}

// SpawnKind identifies a transient presentation object
type SpawnKind uint8

const (
	SpawnProjectile SpawnKind = iota
	SpawnMissile
	SpawnBeam
	SpawnDeathEffect
	SpawnEscortWarp
)

// String returns the kind name
func (k SpawnKind) String() string {
	switch k {
	case SpawnProjectile:
		return "projectile"
	case SpawnMissile:
		return "missile"
	case SpawnBeam:
		return "beam"
	case SpawnDeathEffect:
		return "death_effect"
	case SpawnEscortWarp:
		return "escort_warp"
	default:
		return "unknown"
	}
}

// Spawner creates and removes transient presentation objects
// Ids are opaque to the core; zero means nothing was spawned
type Spawner interface {
	Spawn(kind SpawnKind, pos, dir vmath.Vec3F) uint64
	Despawn(id uint64)
}

// Notifier receives every dispatched event for presentation (bars, lock markers, cues)
type Notifier interface {
	Notify(ev event.GameEvent)
}

// NopSpawner discards spawn requests
type NopSpawner struct{}

func (NopSpawner) Spawn(SpawnKind, vmath.Vec3F, vmath.Vec3F) uint64 { return 0 }
func (NopSpawner) Despawn(uint64)                                   {}

// NopNotifier discards notifications
type NopNotifier struct{}

func (NopNotifier) Notify(event.GameEvent) {}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ev event.GameEvent)

func (f NotifierFunc) Notify(ev event.GameEvent) { f(ev) }

// MultiNotifier fans a notification out to several notifiers in order
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ev event.GameEvent) {
	for _, n := range m {
		if n != nil {
			n.Notify(ev)
		}
	}
}
