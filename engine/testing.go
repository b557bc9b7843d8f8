package engine

import (
	"sync"

	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/vmath"
)

// NewTestWorld creates a world with recording collaborators for tests
// Systems are added by the caller before building a ClockScheduler
func NewTestWorld() (*World, *RecordingSpawner, *RecordingNotifier) {
	w := NewWorld()
	sp := &RecordingSpawner{}
	nt := &RecordingNotifier{}
	w.Resources.Spawner = sp
	w.Resources.Notifier = nt
	return w, sp, nt
}

// SpawnRecord is one recorded spawn call
type SpawnRecord struct {
	ID   uint64
	Kind SpawnKind
	Pos  vmath.Vec3F
	Dir  vmath.Vec3F
}

// RecordingSpawner records spawn and despawn calls
type RecordingSpawner struct {
	mu        sync.Mutex
	nextID    uint64
	Spawned   []SpawnRecord
	Despawned []uint64
}

func (r *RecordingSpawner) Spawn(kind SpawnKind, pos, dir vmath.Vec3F) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.Spawned = append(r.Spawned, SpawnRecord{ID: r.nextID, Kind: kind, Pos: pos, Dir: dir})
	return r.nextID
}

func (r *RecordingSpawner) Despawn(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Despawned = append(r.Despawned, id)
}

// Count returns the number of spawns of the given kind
func (r *RecordingSpawner) Count(kind SpawnKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.Spawned {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// RecordingNotifier records every notified event
type RecordingNotifier struct {
	mu     sync.Mutex
	Events []event.GameEvent
}

func (r *RecordingNotifier) Notify(ev event.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, ev)
}

// Of returns recorded events of the given type in order
func (r *RecordingNotifier) Of(t event.EventType) []event.GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.GameEvent
	for _, ev := range r.Events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// Count returns the number of recorded events of the given type
func (r *RecordingNotifier) Count(t event.EventType) int {
	return len(r.Of(t))
}

// Reset drops recorded events
func (r *RecordingNotifier) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = nil
}
