package system

import (
	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/engine"
	"github.com/lixenwraith/skybastion/vmath"
)

// maxPartDepth bounds part-to-owner chains
const maxPartDepth = 4

// Collider masks used for line-of-sight probes
const (
	// losMaskEmplacement is what can block an emplacement shot
	losMaskEmplacement = component.CategoryHostile | component.CategoryPlayer
	// losMaskPlayer is what can block a player lock or laser
	losMaskPlayer = component.CategoryHostile | component.CategoryEmplacement
)

// ownerOf follows part links to the top-level entity without validity checks
func ownerOf(w *engine.World, e core.Entity) core.Entity {
	for i := 0; i < maxPartDepth; i++ {
		part, ok := w.Components.Part.GetComponent(e)
		if !ok {
			return e
		}
		e = part.Owner
	}
	return e
}

// ResolveTarget resolves an entity to its authoritative combat entity
// Parts resolve to their owner; only live hulls and enabled emplacements are valid
// Locks, hit tests and "is this my target" queries all go through here so they agree
func ResolveTarget(w *engine.World, e core.Entity) (core.Entity, bool) {
	if e.IsNull() {
		return 0, false
	}
	owner := ownerOf(w, e)
	if !w.Alive(owner) {
		return 0, false
	}

	if hull, ok := w.Components.Hull.GetComponent(owner); ok {
		if hull.IsDead() {
			return 0, false
		}
		return owner, true
	}
	if emp, ok := w.Components.Emplacement.GetComponent(owner); ok {
		if !emp.Enabled {
			return 0, false
		}
		return owner, true
	}
	return 0, false
}

// HitPoints returns current and max hit points of a hull or emplacement
func HitPoints(w *engine.World, e core.Entity) (cur, max int, ok bool) {
	if !w.Alive(e) {
		return 0, 0, false
	}
	if hull, found := w.Components.Hull.GetComponent(e); found {
		return hull.HitPoints, hull.MaxHitPoints, true
	}
	if emp, found := w.Components.Emplacement.GetComponent(e); found {
		return emp.HitPoints, emp.MaxHitPoints, true
	}
	return 0, 0, false
}

// activePosition returns the position of a live, active entity
func activePosition(w *engine.World, e core.Entity) (vmath.Vec3F, bool) {
	if !w.Alive(e) {
		return vmath.V3FZero, false
	}
	tr, ok := w.Components.Transform.GetComponent(e)
	if !ok || !tr.Active {
		return vmath.V3FZero, false
	}
	return tr.Position, true
}

// lineOfSight reports whether nothing but the target blocks the segment from origin to targetPos
// A missing raycaster counts as clear
func lineOfSight(w *engine.World, origin vmath.Vec3F, target core.Entity, targetPos vmath.Vec3F, mask component.Category) bool {
	rc := w.Resources.Raycaster
	if rc == nil {
		return true
	}
	d := vmath.V3FSub(targetPos, origin)
	dist := vmath.V3FMag(d)
	if dist == 0 {
		return true
	}
	hit, ok := rc.Raycast(origin, vmath.V3FScale(d, 1/dist), dist, mask)
	if !ok {
		return true
	}
	return ownerOf(w, hit.Entity) == ownerOf(w, target)
}
