package system

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/engine"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
	"github.com/lixenwraith/skybastion/vmath"
)

// LockChange describes a lock transition; Previous is set on loss, Current on acquisition
type LockChange struct {
	Player   core.Entity
	Previous core.Entity
	Current  core.Entity
}

// LockListener receives lock transitions synchronously on the simulation goroutine
type LockListener func(LockChange)

type lockSubscriber struct {
	id uint64
	fn LockListener
}

// LockSystem runs the per-player missile lock state machine
// Unlocked scans lockable candidates in enumeration order; Locked re-validates every tick
type LockSystem struct {
	world *engine.World
	log   zerolog.Logger

	subMu       sync.Mutex
	subscribers []lockSubscriber
	nextSubID   uint64

	// Telemetry
	statLocked *atomic.Int64
	statLost   *atomic.Int64

	enabled bool
}

// NewLockSystem creates the player lock system
func NewLockSystem(world *engine.World) *LockSystem {
	s := &LockSystem{
		world: world,
		log:   world.Resources.SystemLogger("lock"),
	}

	s.statLocked = world.Resources.Status.Ints.Get("lock.locked")
	s.statLost = world.Resources.Status.Ints.Get("lock.lost")

	s.Init()
	return s
}

// Init resets session state for new game
func (s *LockSystem) Init() {
	s.statLocked.Store(0)
	s.statLost.Store(0)
	s.enabled = true
}

// Name returns system's name
func (s *LockSystem) Name() string {
	return "lock"
}

// Priority returns the system's priority
func (s *LockSystem) Priority() int {
	return parameter.PriorityLock
}

// EventTypes returns the event types LockSystem handles
func (s *LockSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMetaSystemCommandRequest,
		event.EventGameReset,
	}
}

// HandleEvent processes system toggle and reset events
func (s *LockSystem) HandleEvent(ev event.GameEvent) {
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
}

// Update re-evaluates each player lock
func (s *LockSystem) Update() {
	if !s.enabled {
		return
	}

	var locked int64
	for _, p := range s.world.Components.Lock.GetAllEntities() {
		lock, ok := s.world.Components.Lock.GetComponent(p)
		if !ok {
			continue
		}
		view, ok := s.world.Components.Transform.GetComponent(p)
		if !ok || !view.Active {
			if lock.Locked != 0 {
				s.lose(p, &lock)
				s.world.Components.Lock.SetComponent(p, lock)
			}
			continue
		}

		if lock.Locked != 0 {
			if !s.eligible(p, &lock, &view, lock.Locked) {
				s.lose(p, &lock)
			}
		}
		if lock.Locked == 0 {
			s.acquire(p, &lock, &view)
		}
		s.world.Components.Lock.SetComponent(p, lock)

		if lock.Locked != 0 {
			locked++
		}
	}
	s.statLocked.Store(locked)
}

// acquire locks the first eligible candidate in enumeration order
func (s *LockSystem) acquire(p core.Entity, lock *component.LockComponent, view *component.TransformComponent) {
	for _, c := range s.world.FindByCategory(component.CategoryLockable) {
		target, ok := ResolveTarget(s.world, c)
		if !ok || target == p {
			continue
		}
		if !s.eligible(p, lock, view, target) {
			continue
		}

		lock.Locked = target
		lock.LockCount++
		s.world.PushEvent(event.EventTargetLocked, &event.LockPayload{Player: p, Target: target})
		s.notify(LockChange{Player: p, Current: target})
		s.log.Debug().Uint64("player", uint64(p)).Uint64("target", uint64(target)).Msg("target locked")
		return
	}
}

func (s *LockSystem) lose(p core.Entity, lock *component.LockComponent) {
	prev := lock.Locked
	lock.Locked = 0
	lock.LostCount++
	s.statLost.Add(1)
	s.world.PushEvent(event.EventTargetLost, &event.LockPayload{Player: p, Target: prev})
	s.notify(LockChange{Player: p, Previous: prev})
	s.log.Debug().Uint64("player", uint64(p)).Uint64("target", uint64(prev)).Msg("target lost")
}

// eligible checks validity, missile range, view frustum, lock circle and optional line of sight
func (s *LockSystem) eligible(p core.Entity, lock *component.LockComponent, view *component.TransformComponent, target core.Entity) bool {
	resolved, ok := ResolveTarget(s.world, target)
	if !ok || resolved != target {
		return false
	}
	pos, ok := activePosition(s.world, target)
	if !ok {
		return false
	}

	toTarget := vmath.V3FSub(pos, view.Position)
	if vmath.V3FMagSq(toTarget) > lock.MissileRange*lock.MissileRange {
		return false
	}

	nx, ny, front := ViewProject(view.Frame(), toTarget, lock.HalfFOV, lock.Aspect)
	if !front || math.Abs(nx) > 1 || math.Abs(ny) > 1 {
		return false
	}
	if math.Hypot(nx, ny) > lock.LockCircleRadius {
		return false
	}

	if lock.RequireLOS && !lineOfSight(s.world, view.Position, target, pos, losMaskPlayer) {
		return false
	}
	return true
}

// ViewProject maps a view-relative direction to normalized view space
// (0,0) is the view center, ±1 the frustum edges; front is false behind the viewer
func ViewProject(view vmath.Frame, dir vmath.Vec3F, halfFOV, aspect float64) (nx, ny float64, front bool) {
	x, y, z := view.Local(dir)
	if z <= 0 {
		return 0, 0, false
	}
	tanV := math.Tan(halfFOV)
	if tanV <= 0 || aspect <= 0 {
		return 0, 0, false
	}
	return x / (z * tanV * aspect), y / (z * tanV), true
}

// Subscribe registers a lock-change listener and returns its unsubscribe function
func (s *LockSystem) Subscribe(fn LockListener) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, lockSubscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subscribers {
				if sub.id == id {
					s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *LockSystem) notify(change LockChange) {
	s.subMu.Lock()
	subs := make([]lockSubscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(change)
	}
}

// HasTarget reports whether the player holds a lock
func (s *LockSystem) HasTarget(p core.Entity) bool {
	_, ok := s.LockedTarget(p)
	return ok
}

// LockedTarget returns the player's locked entity if its handle is still live
func (s *LockSystem) LockedTarget(p core.Entity) (core.Entity, bool) {
	lock, ok := s.world.Components.Lock.GetComponent(p)
	if !ok || lock.Locked == 0 || !s.world.Alive(lock.Locked) {
		return 0, false
	}
	return lock.Locked, true
}

// IsTargetInRange reports whether the locked target is within rng of the player
func (s *LockSystem) IsTargetInRange(p core.Entity, rng float64) bool {
	target, ok := s.LockedTarget(p)
	if !ok {
		return false
	}
	ppos, ok := activePosition(s.world, p)
	if !ok {
		return false
	}
	tpos, ok := activePosition(s.world, target)
	if !ok {
		return false
	}
	return vmath.V3FDistSq(ppos, tpos) <= rng*rng
}

// IsCurrentTarget reports whether x, resolved through its part chain, is the player's lock
func (s *LockSystem) IsCurrentTarget(p, x core.Entity) bool {
	target, ok := s.LockedTarget(p)
	if !ok {
		return false
	}
	resolved, ok := ResolveTarget(s.world, x)
	return ok && resolved == target
}
