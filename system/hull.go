package system

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/engine"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
	"github.com/lixenwraith/skybastion/status"
	"github.com/lixenwraith/skybastion/vmath"
)

// HullSystem owns hull hit points, death, the force-revive countdown and boss progression
// Damage passes through the GateCoordinator; hulls never read emplacement state directly
type HullSystem struct {
	world *engine.World
	gate  *GateCoordinator
	log   zerolog.Logger

	// Telemetry
	statCount        *atomic.Int64
	statBossHP       *atomic.Int64
	statBossRatio    *status.Float
	statDestroyed    *atomic.Int64
	statForceRevives *atomic.Int64
	statCheckpoint   *atomic.Int64
	statShield       *atomic.Bool

	enabled bool
}

// NewHullSystem creates the hull system bound to a damage gate
func NewHullSystem(world *engine.World, gate *GateCoordinator) *HullSystem {
	s := &HullSystem{
		world: world,
		gate:  gate,
		log:   world.Resources.SystemLogger("hull"),
	}

	s.statCount = world.Resources.Status.Ints.Get("hull.count")
	s.statBossHP = world.Resources.Status.Ints.Get("hull.boss_hp")
	s.statBossRatio = world.Resources.Status.Floats.Get("hull.boss_hp_ratio")
	s.statDestroyed = world.Resources.Status.Ints.Get("hull.destroyed")
	s.statForceRevives = world.Resources.Status.Ints.Get("hull.force_revives")
	s.statCheckpoint = world.Resources.Status.Ints.Get("boss.checkpoint")
	s.statShield = world.Resources.Status.Bools.Get("boss.shield")

	s.Init()
	return s
}

// Init resets session state for new game
func (s *HullSystem) Init() {
	s.statCount.Store(0)
	s.statBossHP.Store(0)
	s.statBossRatio.Store(0)
	s.statDestroyed.Store(0)
	s.statForceRevives.Store(0)
	s.statCheckpoint.Store(0)
	s.statShield.Store(false)
	s.enabled = true
}

// Name returns system's name
func (s *HullSystem) Name() string {
	return "hull"
}

// Priority returns the system's priority
func (s *HullSystem) Priority() int {
	return parameter.PriorityHull
}

// EventTypes returns the event types HullSystem handles
func (s *HullSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventDamageRequest,
		event.EventMetaSystemCommandRequest,
		event.EventGameReset,
	}
}

// HandleEvent routes damage requests to hulls
func (s *HullSystem) HandleEvent(ev event.GameEvent) {
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
	case event.EventDamageRequest:
		if payload, ok := ev.Payload.(*event.DamageRequestPayload); ok {
			target := ownerOf(s.world, payload.Target)
			if s.world.Components.Hull.HasComponent(target) {
				s.TakeDamage(target, payload.Amount)
			}
		}
	}
}

// Update runs force-revive countdowns and boss shield bookkeeping
func (s *HullSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime
	tuning := s.world.Resources.Tuning

	hulls := s.world.Components.Hull.GetAllEntities()
	count := 0
	for _, e := range hulls {
		hull, ok := s.world.Components.Hull.GetComponent(e)
		if !ok || hull.IsDead() {
			continue
		}
		count++

		if len(hull.Groups) > 0 {
			s.updateForceRevive(e, &hull, dt, tuning)
			s.world.Components.Hull.SetComponent(e, hull)
		}

		if hull.Kind == component.HullBoss {
			s.updateBoss(e, &hull)
		}
	}
	s.statCount.Store(int64(count))
}

// CanAcceptDamage exposes the gate for a hull
func (s *HullSystem) CanAcceptDamage(e core.Entity) bool {
	return s.gate.CanAcceptDamage(e)
}

// TakeDamage applies damage through the gate
// Returns false when ignored: non-positive amount, dead or missing hull, gate closed
func (s *HullSystem) TakeDamage(e core.Entity, amount int) bool {
	if amount <= 0 {
		return false
	}
	hull, ok := s.world.Components.Hull.GetComponent(e)
	if !ok || hull.IsDead() || !s.gate.CanAcceptDamage(e) {
		return false
	}

	hull.HitPoints -= amount
	if hull.HitPoints < 0 {
		hull.HitPoints = 0
	}

	// Damage taken restarts the force-revive countdown
	if hull.ForceReviveArmed {
		hull.ForceReviveRemaining = s.world.Resources.Tuning.ForceReviveDelay
	}
	s.world.Components.Hull.SetComponent(e, hull)

	s.world.PushEvent(event.EventHealthChanged, &event.HealthChangedPayload{
		Entity:    e,
		HitPoints: hull.HitPoints,
		Max:       hull.MaxHitPoints,
	})

	if hull.Kind == component.HullBoss {
		if boss, ok := s.world.Components.Boss.GetComponent(e); ok {
			s.checkThresholdCrossing(e, &hull, &boss)
			s.checkEscortRespawnThresholds(e, &hull, &boss)
			s.world.Components.Boss.SetComponent(e, boss)
		}
		s.storeBossHP(&hull)
	}

	if hull.HitPoints == 0 {
		s.die(e, &hull)
	}
	return true
}

// SetDamageEnabled toggles the external damage-enable flag
func (s *HullSystem) SetDamageEnabled(e core.Entity, on bool) {
	if hull, ok := s.world.Components.Hull.GetComponent(e); ok {
		hull.DamageEnabled = on
		s.world.Components.Hull.SetComponent(e, hull)
	}
}

// updateForceRevive arms the countdown once every group is down, disarms on natural revival, fires on expiry
func (s *HullSystem) updateForceRevive(e core.Entity, hull *component.HullComponent, dt time.Duration, tuning *parameter.Tuning) {
	down := s.gate.GroupsDown(hull)

	if !hull.ForceReviveArmed {
		if down {
			hull.ForceReviveArmed = true
			hull.ForceReviveRemaining = tuning.ForceReviveDelay
			s.log.Debug().Uint64("hull", uint64(e)).Dur("delay", tuning.ForceReviveDelay).Msg("force revive armed")
		}
		return
	}

	// A weapon came back on its own
	if !down {
		hull.ForceReviveArmed = false
		hull.ForceReviveRemaining = 0
		s.log.Debug().Uint64("hull", uint64(e)).Msg("force revive disarmed")
		return
	}

	hull.ForceReviveRemaining -= dt
	if hull.ForceReviveRemaining > 0 {
		return
	}

	hull.ForceReviveArmed = false
	hull.ForceReviveRemaining = 0
	s.requestGroupRevive(hull.Groups)
	s.statForceRevives.Add(1)
	s.log.Debug().Uint64("hull", uint64(e)).Int("groups", len(hull.Groups)).Msg("force revive fired")
}

// requestGroupRevive asks the group scheduler to revive every listed group regardless of its own timer
func (s *HullSystem) requestGroupRevive(groups []core.Entity) {
	for _, g := range groups {
		s.world.PushEvent(event.EventGroupReviveRequest, &event.GroupPayload{Group: g})
	}
}

// updateBoss tracks the shield and fires escort checkpoints reached while escorts were still up
func (s *HullSystem) updateBoss(e core.Entity, hull *component.HullComponent) {
	boss, ok := s.world.Components.Boss.GetComponent(e)
	if !ok {
		return
	}

	if boss.ShieldActive && s.gate.EscortsDown(&boss) {
		boss.ShieldActive = false
		s.world.PushEvent(event.EventShieldDisengaged, &event.ShieldPayload{Boss: e})
		s.log.Debug().Uint64("boss", uint64(e)).Msg("shield down")
	}

	s.checkEscortRespawnThresholds(e, hull, &boss)
	s.world.Components.Boss.SetComponent(e, boss)

	s.storeBossHP(hull)
	s.statShield.Store(boss.ShieldActive)
	s.statCheckpoint.Store(int64(boss.CheckpointIndex))
}

func (s *HullSystem) storeBossHP(hull *component.HullComponent) {
	s.statBossHP.Store(int64(hull.HitPoints))
	if hull.MaxHitPoints > 0 {
		s.statBossRatio.Store(float64(hull.HitPoints) / float64(hull.MaxHitPoints))
	}
}

// checkThresholdCrossing force-revives every boss group when hit points fall into a lower band
// One revive per band regardless of how many bands a single hit crosses
func (s *HullSystem) checkThresholdCrossing(e core.Entity, hull *component.HullComponent, boss *component.BossComponent) {
	band := BandFloor(hull.HitPoints, s.world.Resources.Tuning.BossBand)
	if band >= boss.LastBand {
		return
	}
	boss.LastBand = band
	if hull.HitPoints == 0 {
		return
	}
	s.requestGroupRevive(hull.Groups)
	s.log.Debug().Uint64("boss", uint64(e)).Int("band", band).Msg("band crossed, groups revived")
}

// checkEscortRespawnThresholds respawns the escort formation at each descending checkpoint
// Checkpoints fire in order through a monotonic index, only while every escort is down
func (s *HullSystem) checkEscortRespawnThresholds(e core.Entity, hull *component.HullComponent, boss *component.BossComponent) {
	for boss.CheckpointIndex < len(boss.Checkpoints) &&
		hull.HitPoints > 0 &&
		hull.HitPoints <= boss.Checkpoints[boss.CheckpointIndex] &&
		s.gate.EscortsDown(boss) {

		checkpoint := boss.Checkpoints[boss.CheckpointIndex]
		s.respawnEscorts(e, boss, checkpoint)
		boss.CheckpointIndex++
		s.statCheckpoint.Store(int64(boss.CheckpointIndex))
	}
}

// respawnEscorts replaces the escort formation and re-engages the shield
func (s *HullSystem) respawnEscorts(e core.Entity, boss *component.BossComponent, checkpoint int) {
	tr, ok := s.world.Components.Transform.GetComponent(e)
	if !ok {
		return
	}

	for _, old := range boss.Escorts {
		s.world.DestroyEntity(old)
	}

	size := boss.FormationSize
	if size <= 0 {
		size = s.world.Resources.Tuning.EscortCount
	}
	radius := boss.FormationRadius
	if radius <= 0 {
		radius = s.world.Resources.Tuning.EscortRadius
	}

	boss.Escorts = CreateEscortFormation(s.world, tr.Position, tr.Forward, size, radius)
	for _, esc := range boss.Escorts {
		if et, ok := s.world.Components.Transform.GetComponent(esc); ok {
			s.world.Resources.Spawner.Spawn(engine.SpawnEscortWarp, et.Position, et.Forward)
		}
	}
	boss.ShieldActive = true
	boss.Respawns++

	escorts := make([]core.Entity, len(boss.Escorts))
	copy(escorts, boss.Escorts)
	s.world.PushEvent(event.EventEscortFormationSpawned, &event.EscortFormationPayload{
		Boss:       e,
		Escorts:    escorts,
		Checkpoint: checkpoint,
	})
	s.world.PushEvent(event.EventShieldEngaged, &event.ShieldPayload{Boss: e})
	s.log.Debug().Uint64("boss", uint64(e)).Int("checkpoint", checkpoint).Int("escorts", size).Msg("escort formation respawned")
}

// die runs the one-time death sequence and removes the hull with its weapon groups
func (s *HullSystem) die(e core.Entity, hull *component.HullComponent) {
	pos := vmath.V3FZero
	if tr, ok := s.world.Components.Transform.GetComponent(e); ok {
		pos = tr.Position
	}
	s.world.Resources.Spawner.Spawn(engine.SpawnDeathEffect, pos, vmath.V3FUp)
	s.world.PushEvent(event.EventHullDestroyed, &event.HullDestroyedPayload{
		Hull:     e,
		Position: pos,
		Boss:     hull.Kind == component.HullBoss,
	})

	for _, g := range hull.Groups {
		if grp, ok := s.world.Components.Group.GetComponent(g); ok {
			for _, m := range grp.Members {
				s.world.DestroyEntity(m)
			}
		}
		s.world.DestroyEntity(g)
	}
	s.world.DestroyEntity(e)
	s.statDestroyed.Add(1)

	s.log.Debug().Uint64("hull", uint64(e)).Msg("hull destroyed")
}
