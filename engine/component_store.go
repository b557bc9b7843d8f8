package engine

import (
	"github.com/lixenwraith/skybastion/component"
)

// ComponentStore provides cached pointers to typed component stores
// Initialized once with the world; pointers remain valid for the world lifetime
type ComponentStore struct {
	// Spatial
	Transform *Store[component.TransformComponent]
	Collider  *Store[component.ColliderComponent]
	Category  *Store[component.CategoryComponent]
	Part      *Store[component.PartComponent]

	// Combat
	Hull        *Store[component.HullComponent]
	Boss        *Store[component.BossComponent]
	Emplacement *Store[component.EmplacementComponent]
	Group       *Store[component.GroupComponent]

	// Player
	Lock         *Store[component.LockComponent]
	Gauge        *Store[component.GaugeComponent]
	PlayerWeapon *Store[component.PlayerWeaponComponent]
}

func newComponentStore() ComponentStore {
	return ComponentStore{
		Transform: NewStore[component.TransformComponent](),
		Collider:  NewStore[component.ColliderComponent](),
		Category:  NewStore[component.CategoryComponent](),
		Part:      NewStore[component.PartComponent](),

		Hull:        NewStore[component.HullComponent](),
		Boss:        NewStore[component.BossComponent](),
		Emplacement: NewStore[component.EmplacementComponent](),
		Group:       NewStore[component.GroupComponent](),

		Lock:         NewStore[component.LockComponent](),
		Gauge:        NewStore[component.GaugeComponent](),
		PlayerWeapon: NewStore[component.PlayerWeaponComponent](),
	}
}

// all returns every store for uniform lifecycle operations
func (cs *ComponentStore) all() []AnyStore {
	return []AnyStore{
		cs.Transform, cs.Collider, cs.Category, cs.Part,
		cs.Hull, cs.Boss, cs.Emplacement, cs.Group,
		cs.Lock, cs.Gauge, cs.PlayerWeapon,
	}
}
