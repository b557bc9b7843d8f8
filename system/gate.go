package system

import (
	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/engine"
)

// GateCoordinator decides whether a hull may currently take damage
// Stateless: reads group snapshots, live member state and escort hit points, never mutates
type GateCoordinator struct {
	world *engine.World
}

func NewGateCoordinator(world *engine.World) *GateCoordinator {
	return &GateCoordinator{world: world}
}

// CanAcceptDamage evaluates the damage gate of a hull
//   - DamageEnabled false always closes the gate
//   - hull with weapon groups: no group has an enabled member, at tick start or now
//   - boss: additionally every escort is dead or gone
//   - hull without groups: open
func (g *GateCoordinator) CanAcceptDamage(hull core.Entity) bool {
	if !g.world.Alive(hull) {
		return false
	}
	h, ok := g.world.Components.Hull.GetComponent(hull)
	if !ok || h.IsDead() || !h.DamageEnabled {
		return false
	}

	if !g.GroupsDown(&h) {
		return false
	}

	if h.Kind == component.HullBoss {
		if boss, ok := g.world.Components.Boss.GetComponent(hull); ok && !g.EscortsDown(&boss) {
			return false
		}
	}
	return true
}

// GroupsDown reports whether every weapon group of the hull is disabled
// A loss only counts from the next tick's snapshot; a revive counts at once
// Missing groups count as disabled
func (g *GateCoordinator) GroupsDown(h *component.HullComponent) bool {
	for _, ge := range h.Groups {
		if !g.world.Alive(ge) {
			continue
		}
		grp, ok := g.world.Components.Group.GetComponent(ge)
		if !ok {
			continue
		}
		if grp.GateAlive > 0 || enabledMembers(g.world, grp.Members) > 0 {
			return false
		}
	}
	return true
}

// EscortsDown reports whether every escort hull is dead or destroyed
func (g *GateCoordinator) EscortsDown(b *component.BossComponent) bool {
	for _, e := range b.Escorts {
		if !g.world.Alive(e) {
			continue
		}
		if h, ok := g.world.Components.Hull.GetComponent(e); ok && !h.IsDead() {
			return false
		}
	}
	return true
}

// enabledMembers counts live members whose emplacement is enabled
func enabledMembers(w *engine.World, members []core.Entity) int {
	n := 0
	for _, m := range members {
		if !w.Alive(m) {
			continue
		}
		if emp, ok := w.Components.Emplacement.GetComponent(m); ok && emp.Enabled {
			n++
		}
	}
	return n
}
