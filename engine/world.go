package engine

import (
	"sync"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
)

// World contains all entities and their components using typed stores
// Entities are generational handles; a destroyed slot is recycled with a bumped generation
type World struct {
	mu          sync.RWMutex
	generations []uint32 // slot 0 reserved for the null handle
	live        []bool
	free        []uint32
	liveCount   int

	Components ComponentStore
	Resources  *Resource

	allStores []AnyStore

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a world with default resources
// Raycaster defaults to sphere casts over colliders, Spawner and Notifier to no-ops
func NewWorld() *World {
	w := &World{
		generations: make([]uint32, 1, parameter.InitialEntityCapacity),
		live:        make([]bool, 1, parameter.InitialEntityCapacity),
		Components:  newComponentStore(),
		systems:     make([]System, 0),
	}
	w.allStores = w.Components.all()
	w.Resources = NewResource()
	w.Resources.Raycaster = NewSphereRaycaster(w)
	return w
}

// CreateEntity allocates a handle, reusing freed slots
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.generations))
		w.generations = append(w.generations, 0)
		w.live = append(w.live, false)
	}
	w.live[idx] = true
	w.liveCount++
	return core.MakeEntity(idx, w.generations[idx])
}

// Alive reports whether the handle still refers to a live entity
func (w *World) Alive(e core.Entity) bool {
	if e.IsNull() {
		return false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	idx := e.Index()
	if int(idx) >= len(w.generations) {
		return false
	}
	return w.live[idx] && w.generations[idx] == e.Generation()
}

// DestroyEntity removes all components and invalidates every outstanding handle to e
// Stale or null handles are ignored
func (w *World) DestroyEntity(e core.Entity) {
	if !w.Alive(e) {
		return
	}
	for _, s := range w.allStores {
		s.RemoveComponent(e)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	idx := e.Index()
	w.live[idx] = false
	w.generations[idx]++
	w.free = append(w.free, idx)
	w.liveCount--
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.liveCount
}

// Clear removes all entities and components
// Generations survive so handles issued before Clear stay invalid
func (w *World) Clear() {
	for _, s := range w.allStores {
		s.ClearAllComponent()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.free = w.free[:0]
	for i := len(w.live) - 1; i > 0; i-- {
		if w.live[i] {
			w.live[i] = false
			w.generations[i]++
		}
		w.free = append(w.free, uint32(i))
	}
	w.liveCount = 0
}

// FindByCategory returns live entities whose category mask contains every bit of mask, in enumeration order
func (w *World) FindByCategory(mask component.Category) []core.Entity {
	var out []core.Entity
	for _, e := range w.Components.Category.GetAllEntities() {
		cat, ok := w.Components.Category.GetComponent(e)
		if !ok || !cat.Mask.Has(mask) || !w.Alive(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AddSystem adds a system to the world and sorts by priority
// Equal priorities keep registration order
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Bubble sort, small N, stable
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems in priority order
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// System returns the registered system with the given name
func (w *World) System(name string) (System, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, s := range w.systems {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Update runs all systems sequentially
func (w *World) Update() {
	w.RunSafe(w.UpdateLocked)
}

// UpdateLocked runs all systems assuming the caller already holds the update lock
func (w *World) UpdateLocked() {
	for _, system := range w.Systems() {
		system.Update()
	}
}

// PushEvent emits a game event stamped with the current frame
func (w *World) PushEvent(eventType event.EventType, payload any) {
	if w.Resources == nil || w.Resources.Event == nil {
		return
	}
	var frame int64
	if w.Resources.Time != nil {
		frame = w.Resources.Time.FrameNumber
	}
	w.Resources.Event.Queue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   frame,
	})
}
