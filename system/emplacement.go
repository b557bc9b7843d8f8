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

// MemberLossHandler is told when a group member is disabled
type MemberLossHandler interface {
	OnMemberDestroyed(group core.Entity)
}

// EmplacementSystem runs aim and fire control for every turret and cannon
//
// Aim state machine:
//   - Idle: waits out a reacquisition hold, then enters Acquiring once the target is reachable and in range
//   - Acquiring: all conditions must hold for MinLockDwell; leaving rotation limits sets a hold and drops to Idle
//   - Locked: fires while conditions hold; loss longer than AimHysteresis, or LockTimeout spent out of range, drops to Acquiring
type EmplacementSystem struct {
	world  *engine.World
	groups MemberLossHandler
	log    zerolog.Logger

	// Telemetry
	statEnabled *atomic.Int64
	statLocked  *atomic.Int64
	statDormant *atomic.Int64
	statShots   *atomic.Int64

	enabled bool
}

// NewEmplacementSystem creates the emplacement system reporting losses to groups
func NewEmplacementSystem(world *engine.World, groups MemberLossHandler) *EmplacementSystem {
	s := &EmplacementSystem{
		world:  world,
		groups: groups,
		log:    world.Resources.SystemLogger("emplacement"),
	}

	s.statEnabled = world.Resources.Status.Ints.Get("emplacement.enabled")
	s.statLocked = world.Resources.Status.Ints.Get("emplacement.locked")
	s.statDormant = world.Resources.Status.Ints.Get("emplacement.dormant")
	s.statShots = world.Resources.Status.Ints.Get("emplacement.shots")

	s.Init()
	return s
}

// Init resets session state for new game
func (s *EmplacementSystem) Init() {
	s.statEnabled.Store(0)
	s.statLocked.Store(0)
	s.statDormant.Store(0)
	s.statShots.Store(0)
	s.enabled = true
}

// Name returns system's name
func (s *EmplacementSystem) Name() string {
	return "emplacement"
}

// Priority returns the system's priority
func (s *EmplacementSystem) Priority() int {
	return parameter.PriorityEmplacement
}

// EventTypes returns the event types EmplacementSystem handles
func (s *EmplacementSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventDamageRequest,
		event.EventEmplacementWakeRequest,
		event.EventMetaSystemCommandRequest,
		event.EventGameReset,
	}
}

// HandleEvent applies damage and wake requests to emplacements
func (s *EmplacementSystem) HandleEvent(ev event.GameEvent) {
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
			if s.world.Components.Emplacement.HasComponent(target) {
				s.TakeDamage(target, payload.Amount)
			}
		}

	case event.EventEmplacementWakeRequest:
		if payload, ok := ev.Payload.(*event.EmplacementPayload); ok {
			s.Wake(payload.Emplacement)
		}
	}
}

// Update steps the aim state machine of every enabled emplacement
func (s *EmplacementSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime
	tuning := s.world.Resources.Tuning

	var enabledCount, lockedCount, dormantCount int64
	for _, e := range s.world.Components.Emplacement.GetAllEntities() {
		emp, ok := s.world.Components.Emplacement.GetComponent(e)
		if !ok {
			continue
		}
		if !emp.Enabled {
			continue
		}
		enabledCount++
		if emp.Dormant {
			dormantCount++
			continue
		}

		tr, ok := s.world.Components.Transform.GetComponent(e)
		if !ok || !tr.Active {
			continue
		}

		s.step(e, &emp, &tr, dt, tuning)
		s.world.Components.Emplacement.SetComponent(e, emp)

		if emp.Aim == component.AimLocked {
			lockedCount++
		}
	}

	s.statEnabled.Store(enabledCount)
	s.statLocked.Store(lockedCount)
	s.statDormant.Store(dormantCount)
}

// step advances one emplacement by one tick
func (s *EmplacementSystem) step(e core.Entity, emp *component.EmplacementComponent, tr *component.TransformComponent, dt time.Duration, tuning *parameter.Tuning) {
	targetPos, valid := s.targetPosition(emp.Target)
	if !valid {
		emp.Target = 0
		if emp.Tracked != 0 {
			s.stopBeam(emp)
			resetAim(emp)
		}
		if emp.SchedulerDriven {
			s.rotate(emp, 0, 0, dt)
			return
		}
		if !s.search(e, emp, tr, dt, tuning) {
			return
		}
		if targetPos, valid = s.targetPosition(emp.Target); !valid {
			return
		}
	}

	// New assignment restarts the aim timers
	if emp.Target != emp.Tracked {
		s.stopBeam(emp)
		resetAim(emp)
		emp.Tracked = emp.Target
	}

	frame := tr.Frame()
	yaw, pitch, reachable := aimAt(emp, frame, tr.Position, targetPos)
	inRange := vmath.V3FDist(tr.Position, targetPos) <= emp.FireRange
	clear := reachable && inRange && lineOfSight(s.world, tr.Position, emp.Target, targetPos, losMaskEmplacement)

	s.rotate(emp, yaw, pitch, dt)

	switch emp.Aim {
	case component.AimIdle:
		if emp.HoldRemaining > 0 {
			emp.HoldRemaining -= dt
			return
		}
		if reachable && inRange {
			emp.Aim = component.AimAcquiring
			emp.Dwell = 0
			return
		}
		// Self-driven emplacements drop a target they cannot engage and search again
		if !emp.SchedulerDriven {
			emp.Target = 0
		}

	case component.AimAcquiring:
		if clear {
			emp.Dwell += dt
			if emp.Dwell >= tuning.MinLockDwell {
				emp.Aim = component.AimLocked
				emp.LostFor = 0
				emp.UnrangedFor = 0
				emp.FireCooldown = 0
			}
			return
		}
		emp.Dwell = 0
		switch {
		case !reachable:
			emp.HoldRemaining = tuning.AimHoldDuration
			emp.Aim = component.AimIdle
		case !inRange:
			emp.Aim = component.AimIdle
		}

	case component.AimLocked:
		if clear {
			emp.LostFor = 0
			s.fire(e, emp, tr, frame, dt)
			return
		}

		s.stopBeam(emp)
		emp.LostFor += dt
		if !inRange {
			emp.UnrangedFor += dt
		}
		if emp.LostFor > tuning.AimHysteresis || emp.UnrangedFor > tuning.LockTimeout {
			emp.Aim = component.AimAcquiring
			emp.Dwell = 0
			emp.LostFor = 0
			emp.UnrangedFor = 0
			if !reachable {
				emp.HoldRemaining = tuning.AimHoldDuration
				emp.Aim = component.AimIdle
			}
		}
	}
}

// targetPosition validates the weak target handle
func (s *EmplacementSystem) targetPosition(target core.Entity) (vmath.Vec3F, bool) {
	if target.IsNull() {
		return vmath.V3FZero, false
	}
	if _, ok := ResolveTarget(s.world, target); !ok {
		return vmath.V3FZero, false
	}
	return activePosition(s.world, target)
}

// search picks a seek target on the throttled interval
// Returns true when a target was found; too many misses put the emplacement to sleep
func (s *EmplacementSystem) search(e core.Entity, emp *component.EmplacementComponent, tr *component.TransformComponent, dt time.Duration, tuning *parameter.Tuning) bool {
	emp.SearchCooldown -= dt
	if emp.SearchCooldown > 0 {
		return false
	}
	emp.SearchCooldown = tuning.SearchInterval

	if target, ok := s.bestTarget(e, emp, tr); ok {
		emp.Target = target
		emp.FailedSearches = 0
		return true
	}

	emp.FailedSearches++
	if emp.FailedSearches >= tuning.MaxFailedSearches {
		emp.Dormant = true
		s.log.Debug().Uint64("emplacement", uint64(e)).Int("failed", emp.FailedSearches).Msg("dormant")
	}
	return false
}

// bestTarget returns the nearest seek target, ranking engageable candidates first
// Rank order: within limits and range, within limits only, anything else; ties keep enumeration order
func (s *EmplacementSystem) bestTarget(e core.Entity, emp *component.EmplacementComponent, tr *component.TransformComponent) (core.Entity, bool) {
	frame := tr.Frame()

	var best core.Entity
	bestRank, bestDistSq := 0, 0.0
	found := false
	for _, c := range s.world.FindByCategory(component.CategorySeekTarget) {
		if c == e {
			continue
		}
		if hull, ok := s.world.Components.Hull.GetComponent(c); ok && hull.IsDead() {
			continue
		}
		pos, ok := activePosition(s.world, c)
		if !ok {
			continue
		}

		d := vmath.V3FDistSq(tr.Position, pos)
		rank := 2
		if _, _, reachable := aimAt(emp, frame, tr.Position, pos); reachable {
			rank = 1
			if d <= emp.FireRange*emp.FireRange {
				rank = 0
			}
		}
		if !found || rank < bestRank || (rank == bestRank && d < bestDistSq) {
			best, bestRank, bestDistSq, found = c, rank, d, true
		}
	}
	return best, found
}

// aimAt returns the clamped yaw and pitch toward pos and whether no clamp was needed
func aimAt(emp *component.EmplacementComponent, frame vmath.Frame, origin, pos vmath.Vec3F) (yaw, pitch float64, reachable bool) {
	yaw, pitch = frame.YawPitch(vmath.V3FSub(pos, origin))
	yaw, yawClamped := vmath.ClampAngle(yaw, emp.Limits.BodyYawMax)
	pitch, pitchClamped := vmath.ClampAngle(pitch, emp.Limits.JointPitchMax)
	return yaw, pitch, !yawClamped && !pitchClamped
}

// rotate turns toward the requested aim, snapping in instant tracking mode
func (s *EmplacementSystem) rotate(emp *component.EmplacementComponent, yaw, pitch float64, dt time.Duration) {
	if emp.InstantTracking {
		emp.Yaw, emp.Pitch = yaw, pitch
		return
	}
	step := emp.TurnRate * dt.Seconds()
	emp.Yaw = vmath.StepAngle(emp.Yaw, yaw, step)
	emp.Pitch = vmath.StepAngle(emp.Pitch, pitch, step)
}

// fire runs discrete shots on FireInterval or beam ticks with a forward probe
func (s *EmplacementSystem) fire(e core.Entity, emp *component.EmplacementComponent, tr *component.TransformComponent, frame vmath.Frame, dt time.Duration) {
	muzzle := frame.Direction(emp.Yaw, emp.Pitch)

	if emp.Beam {
		if !emp.BeamOn {
			emp.BeamOn = true
			emp.BeamTimer = 0
			emp.BeamVisual = s.world.Resources.Spawner.Spawn(engine.SpawnBeam, tr.Position, muzzle)
		}

		emp.BeamEnd = vmath.V3FMulAdd(tr.Position, muzzle, emp.FireRange)
		if rc := s.world.Resources.Raycaster; rc != nil {
			if hit, ok := rc.Raycast(tr.Position, muzzle, emp.FireRange, losMaskEmplacement); ok {
				emp.BeamEnd = hit.Point
			}
		}

		emp.BeamTimer += dt
		for emp.FireInterval > 0 && emp.BeamTimer >= emp.FireInterval {
			emp.BeamTimer -= emp.FireInterval
			s.world.PushEvent(event.EventDamageRequest, &event.DamageRequestPayload{Source: e, Target: emp.Target, Amount: emp.Damage})
		}
		return
	}

	emp.FireCooldown -= dt
	if emp.FireCooldown > 0 {
		return
	}
	emp.FireCooldown += emp.FireInterval
	if emp.FireCooldown < 0 {
		emp.FireCooldown = emp.FireInterval
	}

	s.world.Resources.Spawner.Spawn(engine.SpawnProjectile, tr.Position, muzzle)
	s.world.PushEvent(event.EventDamageRequest, &event.DamageRequestPayload{Source: e, Target: emp.Target, Amount: emp.Damage})
	s.world.PushEvent(event.EventShotFired, &event.ShotPayload{Emplacement: e, Target: emp.Target, Origin: tr.Position, Direction: muzzle})
	s.statShots.Add(1)
}

func (s *EmplacementSystem) stopBeam(emp *component.EmplacementComponent) {
	if !emp.BeamOn {
		return
	}
	emp.BeamOn = false
	emp.BeamTimer = 0
	if emp.BeamVisual != 0 {
		s.world.Resources.Spawner.Despawn(emp.BeamVisual)
		emp.BeamVisual = 0
	}
}

// TakeDamage applies damage to an enabled emplacement
// At zero hit points it disables itself and reports to its group; it is never removed
func (s *EmplacementSystem) TakeDamage(e core.Entity, amount int) bool {
	if amount <= 0 || !s.world.Alive(e) {
		return false
	}
	emp, ok := s.world.Components.Emplacement.GetComponent(e)
	if !ok || !emp.Enabled {
		return false
	}

	emp.HitPoints -= amount
	if emp.HitPoints < 0 {
		emp.HitPoints = 0
	}
	s.world.PushEvent(event.EventHealthChanged, &event.HealthChangedPayload{Entity: e, HitPoints: emp.HitPoints, Max: emp.MaxHitPoints})

	if emp.HitPoints > 0 {
		s.world.Components.Emplacement.SetComponent(e, emp)
		return true
	}

	emp.Enabled = false
	s.stopBeam(&emp)
	resetAim(&emp)
	emp.Target = 0
	s.world.Components.Emplacement.SetComponent(e, emp)

	pos := vmath.V3FZero
	if tr, ok := s.world.Components.Transform.GetComponent(e); ok {
		pos = tr.Position
	}
	s.world.Resources.Spawner.Spawn(engine.SpawnDeathEffect, pos, vmath.V3FUp)
	s.world.PushEvent(event.EventEmplacementDestroyed, &event.EmplacementPayload{Emplacement: e, Group: emp.Group})
	if s.groups != nil {
		s.groups.OnMemberDestroyed(emp.Group)
	}
	return true
}

// Wake re-enables a dormant emplacement's search
func (s *EmplacementSystem) Wake(e core.Entity) {
	emp, ok := s.world.Components.Emplacement.GetComponent(e)
	if !ok {
		return
	}
	emp.Dormant = false
	emp.FailedSearches = 0
	emp.SearchCooldown = 0
	s.world.Components.Emplacement.SetComponent(e, emp)
}

// resetAim returns the aim state machine to Idle with cleared timers
// Beam state is owned by stopBeam
func resetAim(emp *component.EmplacementComponent) {
	emp.Aim = component.AimIdle
	emp.Tracked = 0
	emp.Dwell = 0
	emp.LostFor = 0
	emp.UnrangedFor = 0
	emp.HoldRemaining = 0
	emp.FireCooldown = 0
}
