package component

import "github.com/lixenwraith/skybastion/core"

// Category is a bitmask tag used for category lookups
type Category uint16

const (
	CategoryNone Category = 0

	// CategoryPlayer marks player craft
	CategoryPlayer Category = 1 << iota
	// CategorySeekTarget marks entities that self-driven emplacements search for
	CategorySeekTarget
	// CategoryLockable marks entities players may missile-lock (hulls, emplacements, parts)
	CategoryLockable
	// CategoryHostile marks hostile structures
	CategoryHostile
	// CategoryEscort marks boss escort hulls
	CategoryEscort
	// CategoryEmplacement marks weapon emplacements
	CategoryEmplacement
)

// Has reports whether every bit of flag is set
func (c Category) Has(flag Category) bool {
	return c&flag == flag
}

// CategoryComponent tags an entity for category lookups
type CategoryComponent struct {
	Mask Category
}

// PartComponent marks a sub-collider that resolves to an authoritative owner
// Hits and locks on a part are attributed to Owner
type PartComponent struct {
	Owner core.Entity
}

// ColliderComponent is a collision sphere around the entity transform
type ColliderComponent struct {
	Radius float64
	Mask   Category
}
