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
	"github.com/lixenwraith/skybastion/vmath"
)

// PlayerWeaponSystem fires player specials
// Missiles need a lock and an elapsed cooldown; laser and thruster draw from their gauges
type PlayerWeaponSystem struct {
	world  *engine.World
	locks  *LockSystem
	gauges *GaugeSystem
	log    zerolog.Logger

	// Telemetry
	statMissiles *atomic.Int64
	statLaser    *atomic.Int64

	enabled bool
}

// NewPlayerWeaponSystem creates the player weapon system on top of locks and gauges
func NewPlayerWeaponSystem(world *engine.World, locks *LockSystem, gauges *GaugeSystem) *PlayerWeaponSystem {
	s := &PlayerWeaponSystem{
		world:  world,
		locks:  locks,
		gauges: gauges,
		log:    world.Resources.SystemLogger("player_weapon"),
	}

	s.statMissiles = world.Resources.Status.Ints.Get("player.missiles")
	s.statLaser = world.Resources.Status.Ints.Get("player.laser_ticks")

	s.Init()
	return s
}

// Init resets session state for new game
func (s *PlayerWeaponSystem) Init() {
	s.statMissiles.Store(0)
	s.statLaser.Store(0)
	s.enabled = true
}

// Name returns system's name
func (s *PlayerWeaponSystem) Name() string {
	return "player_weapon"
}

// Priority returns the system's priority
func (s *PlayerWeaponSystem) Priority() int {
	return parameter.PriorityPlayerWeapon
}

// EventTypes returns the event types PlayerWeaponSystem handles
func (s *PlayerWeaponSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMissileLaunchRequest,
		event.EventLaserRequest,
		event.EventBoostRequest,
		event.EventGaugeDepleted,
		event.EventMetaSystemCommandRequest,
		event.EventGameReset,
	}
}

// HandleEvent processes special weapon requests and gauge depletion
func (s *PlayerWeaponSystem) HandleEvent(ev event.GameEvent) {
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
	case event.EventMissileLaunchRequest:
		if payload, ok := ev.Payload.(*event.PlayerPayload); ok {
			s.LaunchMissile(payload.Player)
		}

	case event.EventLaserRequest:
		if payload, ok := ev.Payload.(*event.PlayerTogglePayload); ok {
			s.SetLaser(payload.Player, payload.On)
		}

	case event.EventBoostRequest:
		if payload, ok := ev.Payload.(*event.PlayerTogglePayload); ok {
			s.SetBoost(payload.Player, payload.On)
		}

	case event.EventGaugeDepleted:
		if payload, ok := ev.Payload.(*event.GaugePayload); ok {
			s.onDepleted(payload.Owner, payload.Gauge)
		}
	}
}

// Update drives lasers and boost drain for every player
func (s *PlayerWeaponSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime
	for _, p := range s.world.Components.PlayerWeapon.GetAllEntities() {
		pw, ok := s.world.Components.PlayerWeapon.GetComponent(p)
		if !ok {
			continue
		}

		if pw.MissileCooldown > 0 {
			pw.MissileCooldown -= dt
		}

		if pw.LaserFiring {
			if !s.gauges.CanConsume(pw.LaserGauge) {
				pw.LaserFiring = false
				s.gauges.SetConsuming(pw.LaserGauge, false)
			} else {
				s.tickLaser(p, &pw, dt)
			}
		}

		if pw.Boosting && !s.gauges.CanConsume(pw.ThrusterGauge) {
			pw.Boosting = false
			s.gauges.SetConsuming(pw.ThrusterGauge, false)
		}

		s.world.Components.PlayerWeapon.SetComponent(p, pw)
	}
}

// LaunchMissile fires at the current lock; ignored without a lock or during cooldown
func (s *PlayerWeaponSystem) LaunchMissile(p core.Entity) bool {
	pw, ok := s.world.Components.PlayerWeapon.GetComponent(p)
	if !ok || pw.MissileCooldown > 0 {
		return false
	}
	target, ok := s.locks.LockedTarget(p)
	if !ok {
		return false
	}
	view, ok := s.world.Components.Transform.GetComponent(p)
	if !ok || !view.Active {
		return false
	}

	pw.MissileCooldown = parameter.MissileCooldown
	pw.MissilesFired++
	s.world.Components.PlayerWeapon.SetComponent(p, pw)

	s.world.Resources.Spawner.Spawn(engine.SpawnMissile, view.Position, view.Frame().Forward)
	s.world.PushEvent(event.EventDamageRequest, &event.DamageRequestPayload{Source: p, Target: target, Amount: parameter.MissileDamage})
	s.world.PushEvent(event.EventMissileLaunched, &event.MissileLaunchedPayload{Player: p, Target: target, Origin: view.Position})
	s.statMissiles.Add(1)
	return true
}

// SetLaser starts or stops the laser; starting needs a consumable gauge
func (s *PlayerWeaponSystem) SetLaser(p core.Entity, on bool) {
	pw, ok := s.world.Components.PlayerWeapon.GetComponent(p)
	if !ok {
		return
	}
	if on && !s.gauges.CanConsume(pw.LaserGauge) {
		return
	}
	pw.LaserFiring = on
	pw.LaserTimer = 0
	s.gauges.SetConsuming(pw.LaserGauge, on)
	s.world.Components.PlayerWeapon.SetComponent(p, pw)
}

// SetBoost starts or stops the thruster boost; starting needs a consumable gauge
func (s *PlayerWeaponSystem) SetBoost(p core.Entity, on bool) {
	pw, ok := s.world.Components.PlayerWeapon.GetComponent(p)
	if !ok {
		return
	}
	if on && !s.gauges.CanConsume(pw.ThrusterGauge) {
		return
	}
	pw.Boosting = on
	s.gauges.SetConsuming(pw.ThrusterGauge, on)
	s.world.Components.PlayerWeapon.SetComponent(p, pw)
}

func (s *PlayerWeaponSystem) onDepleted(p, gauge core.Entity) {
	pw, ok := s.world.Components.PlayerWeapon.GetComponent(p)
	if !ok {
		return
	}
	switch gauge {
	case pw.LaserGauge:
		pw.LaserFiring = false
	case pw.ThrusterGauge:
		pw.Boosting = false
	default:
		return
	}
	s.world.Components.PlayerWeapon.SetComponent(p, pw)
}

// tickLaser probes forward and applies damage ticks to whatever the beam touches
func (s *PlayerWeaponSystem) tickLaser(p core.Entity, pw *component.PlayerWeaponComponent, dt time.Duration) {
	view, ok := s.world.Components.Transform.GetComponent(p)
	if !ok || !view.Active {
		return
	}
	fwd := view.Frame().Forward

	pw.LaserEnd = vmath.V3FMulAdd(view.Position, fwd, parameter.LaserRange)
	var hitEntity core.Entity
	if rc := s.world.Resources.Raycaster; rc != nil {
		if hit, ok := rc.Raycast(view.Position, fwd, parameter.LaserRange, losMaskPlayer); ok {
			pw.LaserEnd = hit.Point
			hitEntity = hit.Entity
		}
	}

	pw.LaserTimer += dt
	for pw.LaserTimer >= parameter.LaserTickInterval {
		pw.LaserTimer -= parameter.LaserTickInterval
		if hitEntity.IsNull() {
			continue
		}
		s.world.PushEvent(event.EventDamageRequest, &event.DamageRequestPayload{Source: p, Target: hitEntity, Amount: parameter.LaserDamageTick})
		s.statLaser.Add(1)
	}
}
