package system

import "github.com/lixenwraith/skybastion/engine"

// Combat holds the wired combat systems of one world
// Cross-system references are passed through constructors; nothing is looked up globally
type Combat struct {
	Gate         *GateCoordinator
	Groups       *GroupSystem
	Emplacements *EmplacementSystem
	Hulls        *HullSystem
	Locks        *LockSystem
	Gauges       *GaugeSystem
	PlayerWeapon *PlayerWeaponSystem
}

// NewCombat constructs every combat system and adds it to the world
// Build the ClockScheduler afterwards so the router registers them
func NewCombat(w *engine.World) *Combat {
	c := &Combat{Gate: NewGateCoordinator(w)}

	c.Groups = NewGroupSystem(w)
	c.Emplacements = NewEmplacementSystem(w, c.Groups)
	c.Hulls = NewHullSystem(w, c.Gate)
	c.Locks = NewLockSystem(w)
	c.Gauges = NewGaugeSystem(w)
	c.PlayerWeapon = NewPlayerWeaponSystem(w, c.Locks, c.Gauges)

	w.AddSystem(c.Groups)
	w.AddSystem(c.Emplacements)
	w.AddSystem(c.Hulls)
	w.AddSystem(c.Locks)
	w.AddSystem(c.PlayerWeapon)
	w.AddSystem(c.Gauges)
	return c
}
