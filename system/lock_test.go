package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
	"github.com/lixenwraith/skybastion/vmath"
)

var ahead = vmath.Vec3F{Z: 1000}

func (h *harness) drone(pos vmath.Vec3F) core.Entity {
	return CreateHull(h.w, component.HullRegular, pos, vmath.V3FForward, 60_000, 60)
}

func (h *harness) locked(p core.Entity) core.Entity {
	h.t.Helper()
	lock, ok := h.w.Components.Lock.GetComponent(p)
	require.True(h.t, ok)
	return lock.Locked
}

func TestLock_AcquiresOnceAndHolds(t *testing.T) {
	h := newHarness(t)
	player := addPlayerAt(h, vmath.V3FZero)
	target := h.drone(ahead)

	h.step()
	assert.Equal(t, target, h.locked(player))
	assert.True(t, h.Locks.HasTarget(player))

	h.steps(20)
	assert.Equal(t, 1, h.nt.Count(event.EventTargetLocked))
	assert.Zero(t, h.nt.Count(event.EventTargetLost))

	ev := h.nt.Of(event.EventTargetLocked)[0].Payload.(*event.LockPayload)
	assert.Equal(t, player, ev.Player)
	assert.Equal(t, target, ev.Target)
}

func TestLock_LeavingCircleLosesOnce(t *testing.T) {
	h := newHarness(t)
	player := addPlayerAt(h, vmath.V3FZero)
	target := h.drone(ahead)
	h.step()
	require.Equal(t, target, h.locked(player))

	// In the frustum but outside the lock circle
	h.moveTo(target, vmath.Vec3F{Y: 300, Z: 1000})
	h.steps(10)
	assert.Equal(t, core.Entity(0), h.locked(player))
	assert.Equal(t, 1, h.nt.Count(event.EventTargetLost))

	lost := h.nt.Of(event.EventTargetLost)[0].Payload.(*event.LockPayload)
	assert.Equal(t, target, lost.Target)

	h.moveTo(target, ahead)
	h.step()
	lock, _ := h.w.Components.Lock.GetComponent(player)
	assert.Equal(t, target, lock.Locked)
	assert.Equal(t, 2, lock.LockCount)
	assert.Equal(t, 1, lock.LostCount)
}

func TestLock_RejectsOutOfRangeAndBehind(t *testing.T) {
	h := newHarness(t)
	player := addPlayerAt(h, vmath.V3FZero)
	h.drone(vmath.Vec3F{Z: parameter.LockMissileRange + 500})
	h.drone(vmath.Vec3F{Z: -1000})

	h.steps(5)
	assert.Equal(t, core.Entity(0), h.locked(player))
	assert.Zero(t, h.nt.Count(event.EventTargetLocked))
}

func TestLock_OccludedCandidateSkipped(t *testing.T) {
	h := newHarness(t)
	player := addPlayerAt(h, vmath.V3FZero)
	far := h.drone(ahead)
	blocker := h.drone(vmath.Vec3F{Z: 500})

	h.step()
	assert.Equal(t, blocker, h.locked(player))
	assert.NotEqual(t, far, h.locked(player))
}

func TestLock_DestroyedTargetLost(t *testing.T) {
	h := newHarness(t)
	player := addPlayerAt(h, vmath.V3FZero)
	target := h.drone(ahead)
	h.step()

	h.w.DestroyEntity(target)
	assert.False(t, h.Locks.HasTarget(player), "stale handle is not a lock")

	h.steps(3)
	assert.Equal(t, 1, h.nt.Count(event.EventTargetLost))
}

func TestLock_DisabledEmplacementNotLockable(t *testing.T) {
	h := newHarness(t)
	player := addPlayerAt(h, vmath.V3FZero)
	hull := CreateHull(h.w, component.HullRegular, vmath.Vec3F{Z: 1000, Y: -600}, vmath.V3FForward, 60_000, 10)
	group := CreateGroup(h.w, hull, component.WeaponSmallCannon, []Placement{
		{Offset: vmath.Vec3F{Y: 600}, Forward: vmath.V3FUp, Up: vmath.V3FForward},
	}, h.w.Resources.Tuning)
	m := h.group(group).Members[0]

	h.step()
	require.Equal(t, m, h.locked(player))

	h.Emplacements.TakeDamage(m, 100_000)
	h.step()
	assert.NotEqual(t, m, h.locked(player))
}

func TestLock_QueriesResolveParts(t *testing.T) {
	h := newHarness(t)
	player := addPlayerAt(h, vmath.V3FZero)
	target := h.drone(ahead)
	other := h.drone(vmath.Vec3F{X: 5000})
	part := h.w.CreateEntity()
	h.w.Components.Part.SetComponent(part, component.PartComponent{Owner: target})

	assert.False(t, h.Locks.IsCurrentTarget(player, target))

	h.step()
	assert.True(t, h.Locks.IsCurrentTarget(player, target))
	assert.True(t, h.Locks.IsCurrentTarget(player, part))
	assert.False(t, h.Locks.IsCurrentTarget(player, other))

	assert.True(t, h.Locks.IsTargetInRange(player, 1500))
	assert.False(t, h.Locks.IsTargetInRange(player, 500))
}

func TestLock_SubscribeAndUnsubscribe(t *testing.T) {
	h := newHarness(t)
	player := addPlayerAt(h, vmath.V3FZero)
	target := h.drone(ahead)

	var changes []LockChange
	unsubscribe := h.Locks.Subscribe(func(c LockChange) { changes = append(changes, c) })

	h.step()
	require.Len(t, changes, 1)
	assert.Equal(t, LockChange{Player: player, Current: target}, changes[0])

	h.moveTo(target, vmath.Vec3F{Y: 300, Z: 1000})
	h.step()
	require.Len(t, changes, 2)
	assert.Equal(t, LockChange{Player: player, Previous: target}, changes[1])

	unsubscribe()
	unsubscribe()
	h.moveTo(target, ahead)
	h.step()
	assert.Len(t, changes, 2)
}

func TestViewProject(t *testing.T) {
	frame := vmath.NewFrame(vmath.V3FForward, vmath.V3FUp)
	half := math.Pi / 4

	nx, ny, front := ViewProject(frame, vmath.V3FForward, half, 1)
	assert.True(t, front)
	assert.InDelta(t, 0, nx, 1e-9)
	assert.InDelta(t, 0, ny, 1e-9)

	_, ny, front = ViewProject(frame, vmath.Vec3F{Y: 1, Z: 1}, half, 1)
	assert.True(t, front)
	assert.InDelta(t, 1, ny, 1e-9)

	nx, _, _ = ViewProject(frame, vmath.Vec3F{X: 1, Z: 1}, half, 2)
	assert.InDelta(t, 0.5, nx, 1e-9)

	_, _, front = ViewProject(frame, vmath.Vec3F{Z: -1}, half, 1)
	assert.False(t, front)
}
