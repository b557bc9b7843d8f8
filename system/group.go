package system

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/engine"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
	"github.com/lixenwraith/skybastion/vmath"
)

// GroupSystem schedules emplacement groups: alive counts, revive timers and turret target assignment
// Snapshots enabled counts at tick start for the damage gate
type GroupSystem struct {
	world *engine.World
	log   zerolog.Logger

	// Telemetry
	statGroups  *atomic.Int64
	statAlive   *atomic.Int64
	statArmed   *atomic.Int64
	statRevives *atomic.Int64

	enabled bool
}

// NewGroupSystem creates the weapon group system
func NewGroupSystem(world *engine.World) *GroupSystem {
	s := &GroupSystem{
		world: world,
		log:   world.Resources.SystemLogger("group"),
	}

	s.statGroups = world.Resources.Status.Ints.Get("group.count")
	s.statAlive = world.Resources.Status.Ints.Get("group.alive")
	s.statArmed = world.Resources.Status.Ints.Get("group.armed")
	s.statRevives = world.Resources.Status.Ints.Get("group.revives")

	s.Init()
	return s
}

// Init resets session state for new game
func (s *GroupSystem) Init() {
	s.statGroups.Store(0)
	s.statAlive.Store(0)
	s.statArmed.Store(0)
	s.statRevives.Store(0)
	s.enabled = true
}

// Name returns system's name
func (s *GroupSystem) Name() string {
	return "group"
}

// Priority returns the system's priority
func (s *GroupSystem) Priority() int {
	return parameter.PriorityGroup
}

// EventTypes returns the event types GroupSystem handles
func (s *GroupSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGroupReviveRequest,
		event.EventMetaSystemCommandRequest,
		event.EventGameReset,
	}
}

// HandleEvent processes forced revive requests
func (s *GroupSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
		return
	}

	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
	}

	if !s.enabled {
		return
	}

	switch ev.Type {
	case event.EventGroupReviveRequest:
		if payload, ok := ev.Payload.(*event.GroupPayload); ok {
			s.log.Debug().Uint64("group", uint64(payload.Group)).Msg("forced revive")
			s.ReviveAll(payload.Group)
		}
	}
}

// BeginTick records each group's enabled count before any damage of this tick lands
// The damage gate reads this snapshot, so a weapon lost during tick t opens the gate from t+1
func (s *GroupSystem) BeginTick() {
	for _, g := range s.world.Components.Group.GetAllEntities() {
		grp, ok := s.world.Components.Group.GetComponent(g)
		if !ok {
			continue
		}
		grp.GateAlive = enabledMembers(s.world, grp.Members)
		s.world.Components.Group.SetComponent(g, grp)
	}
}

// Update maintains group counts and revive timers, then assigns turrets
func (s *GroupSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime
	groups := s.world.Components.Group.GetAllEntities()

	var alive, armed int64
	for _, g := range groups {
		s.Recount(g)
		s.tickRevive(g, dt)

		grp, ok := s.world.Components.Group.GetComponent(g)
		if !ok {
			continue
		}
		if grp.Class == component.WeaponTurret {
			s.assignTurrets(g, &grp, dt)
			s.world.Components.Group.SetComponent(g, grp)
		}

		alive += int64(grp.AliveCount)
		if grp.ReviveArmed {
			armed++
		}
	}

	s.statGroups.Store(int64(len(groups)))
	s.statAlive.Store(alive)
	s.statArmed.Store(armed)
}

// Recount prunes stale member handles and recomputes the alive count
// A full restock disarms the revive timer
func (s *GroupSystem) Recount(g core.Entity) {
	grp, ok := s.world.Components.Group.GetComponent(g)
	if !ok {
		return
	}

	kept := grp.Members[:0]
	for _, m := range grp.Members {
		if s.world.Alive(m) && s.world.Components.Emplacement.HasComponent(m) {
			kept = append(kept, m)
		}
	}
	grp.Members = kept
	grp.MaxCount = len(kept)
	grp.AliveCount = enabledMembers(s.world, kept)

	if grp.ReviveArmed && grp.AliveCount == grp.MaxCount {
		grp.ReviveArmed = false
		grp.ReviveRemaining = 0
	}
	s.world.Components.Group.SetComponent(g, grp)
}

// OnMemberDestroyed records a member loss and arms the revive timer if idle
func (s *GroupSystem) OnMemberDestroyed(g core.Entity) {
	grp, ok := s.world.Components.Group.GetComponent(g)
	if !ok {
		return
	}

	grp.AliveCount--
	if grp.AliveCount < 0 {
		grp.AliveCount = 0
	}
	if !grp.ReviveArmed {
		grp.ReviveArmed = true
		grp.ReviveRemaining = grp.ReviveDelay
		s.log.Debug().Uint64("group", uint64(g)).Str("class", grp.Class.String()).Dur("delay", grp.ReviveDelay).Msg("revive armed")
	}
	s.world.Components.Group.SetComponent(g, grp)
}

// tickRevive counts down an armed timer; expiry revives only a partial loss
// A full wipe is left to the hull force-revive
func (s *GroupSystem) tickRevive(g core.Entity, dt time.Duration) {
	grp, ok := s.world.Components.Group.GetComponent(g)
	if !ok || !grp.ReviveArmed {
		return
	}

	grp.ReviveRemaining -= dt
	if grp.ReviveRemaining > 0 {
		s.world.Components.Group.SetComponent(g, grp)
		return
	}

	grp.ReviveArmed = false
	grp.ReviveRemaining = 0
	s.world.Components.Group.SetComponent(g, grp)

	if grp.AliveCount > 0 {
		s.ReviveAll(g)
	} else {
		s.log.Debug().Uint64("group", uint64(g)).Msg("revive expired on full wipe")
	}
}

// ReviveAll restores every member to full hit points and re-enables it
func (s *GroupSystem) ReviveAll(g core.Entity) {
	grp, ok := s.world.Components.Group.GetComponent(g)
	if !ok {
		return
	}

	revived := 0
	for _, m := range grp.Members {
		if !s.world.Alive(m) {
			continue
		}
		emp, ok := s.world.Components.Emplacement.GetComponent(m)
		if !ok {
			continue
		}
		wasDown := !emp.Enabled || emp.HitPoints < emp.MaxHitPoints

		if !emp.Enabled {
			resetAim(&emp)
			emp.Target = 0
		}
		emp.HitPoints = emp.MaxHitPoints
		emp.Enabled = true
		emp.Dormant = false
		emp.FailedSearches = 0
		emp.SearchCooldown = 0
		s.world.Components.Emplacement.SetComponent(m, emp)

		if wasDown {
			revived++
			s.world.PushEvent(event.EventEmplacementRevived, &event.EmplacementPayload{Emplacement: m, Group: g})
			s.world.PushEvent(event.EventHealthChanged, &event.HealthChangedPayload{Entity: m, HitPoints: emp.HitPoints, Max: emp.MaxHitPoints})
		}
	}

	grp.AliveCount = enabledMembers(s.world, grp.Members)
	grp.MaxCount = len(grp.Members)
	grp.ReviveArmed = false
	grp.ReviveRemaining = 0
	s.world.Components.Group.SetComponent(g, grp)

	s.world.PushEvent(event.EventGroupRevived, &event.GroupPayload{Group: g})
	s.statRevives.Add(1)
	s.log.Debug().Uint64("group", uint64(g)).Str("class", grp.Class.String()).Int("revived", revived).Msg("group revived")
}

// AliveCount returns the current alive and max counts of a group
func (s *GroupSystem) AliveCount(g core.Entity) (alive, max int) {
	grp, ok := s.world.Components.Group.GetComponent(g)
	if !ok {
		return 0, 0
	}
	return grp.AliveCount, grp.MaxCount
}

// memberDist pairs a member with its distance to the player being served
type memberDist struct {
	entity core.Entity
	distSq float64
}

// assignTurrets greedily hands the nearest free turrets to each in-range player
// Players are served in enumeration order; equal distances keep member enumeration order
// Unassigned members get no target and return to rest
func (s *GroupSystem) assignTurrets(g core.Entity, grp *component.GroupComponent, dt time.Duration) {
	grp.ReassignRemaining -= dt
	if grp.ReassignRemaining <= 0 {
		grp.ReassignRemaining = s.world.Resources.Tuning.ReassignInterval
		for _, m := range grp.Members {
			s.setTarget(m, 0)
		}
	}

	anchorPos, ok := activePosition(s.world, grp.Anchor)
	if !ok {
		return
	}

	// Enabled members with positions, in enumeration order
	var members []core.Entity
	positions := make(map[core.Entity]vmath.Vec3F, len(grp.Members))
	for _, m := range grp.Members {
		emp, ok := s.world.Components.Emplacement.GetComponent(m)
		if !ok || !emp.Enabled {
			continue
		}
		pos, ok := activePosition(s.world, m)
		if !ok {
			continue
		}
		members = append(members, m)
		positions[m] = pos
	}

	rangeSq := grp.AssignRange * grp.AssignRange
	assigned := make(map[core.Entity]core.Entity, len(members))

	for _, p := range s.world.FindByCategory(component.CategoryPlayer) {
		if hull, ok := s.world.Components.Hull.GetComponent(p); ok && hull.IsDead() {
			continue
		}
		ppos, ok := activePosition(s.world, p)
		if !ok || vmath.V3FDistSq(ppos, anchorPos) > rangeSq {
			continue
		}

		cands := make([]memberDist, 0, len(members))
		for _, m := range members {
			cands = append(cands, memberDist{entity: m, distSq: vmath.V3FDistSq(positions[m], ppos)})
		}
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].distSq < cands[j].distSq })

		taken := 0
		for _, c := range cands {
			if taken >= grp.PerPlayerCap {
				break
			}
			if _, busy := assigned[c.entity]; busy {
				continue
			}
			assigned[c.entity] = p
			taken++
		}
	}

	for _, m := range members {
		s.setTarget(m, assigned[m])
	}
}

func (s *GroupSystem) setTarget(m, target core.Entity) {
	emp, ok := s.world.Components.Emplacement.GetComponent(m)
	if !ok || emp.Target == target {
		return
	}
	emp.Target = target
	s.world.Components.Emplacement.SetComponent(m, emp)
}
