package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/engine"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/vmath"
)

// newBoss builds a boss with one disabled turret group and no living escorts, ready to take damage
func newBoss(t *testing.T, h *harness, hp int, checkpoints []int) (boss, group core.Entity) {
	t.Helper()
	h.w.Resources.Tuning.EscortCheckpoints = checkpoints
	boss = CreateBoss(h.w, vmath.V3FZero, vmath.V3FForward, h.w.Resources.Tuning)
	group = CreateGroup(h.w, boss, component.WeaponTurret, ringPlacements(2, 250), h.w.Resources.Tuning)

	b, ok := h.w.Components.Boss.GetComponent(boss)
	require.True(t, ok)
	for _, e := range b.Escorts {
		h.w.DestroyEntity(e)
	}
	b.LastBand = BandFloor(hp, h.w.Resources.Tuning.BossBand)
	h.w.Components.Boss.SetComponent(boss, b)

	hull := h.hull(boss)
	hull.HitPoints = hp
	h.w.Components.Hull.SetComponent(boss, hull)

	h.disableAll(group)
	h.step()
	require.True(t, h.Gate.CanAcceptDamage(boss))
	h.nt.Reset()
	return boss, group
}

func TestBoss_GatedByEscorts(t *testing.T) {
	h := newHarness(t)
	boss := CreateBoss(h.w, vmath.V3FZero, vmath.V3FForward, h.w.Resources.Tuning)
	h.step()

	b, _ := h.w.Components.Boss.GetComponent(boss)
	require.Len(t, b.Escorts, h.w.Resources.Tuning.EscortCount)
	assert.False(t, h.Gate.CanAcceptDamage(boss))

	for _, e := range b.Escorts[:len(b.Escorts)-1] {
		h.Hulls.TakeDamage(e, 1_000_000)
	}
	assert.False(t, h.Gate.CanAcceptDamage(boss), "one escort still up")

	h.Hulls.TakeDamage(b.Escorts[len(b.Escorts)-1], 1_000_000)
	assert.True(t, h.Gate.CanAcceptDamage(boss))

	h.step()
	h.step()
	assert.Equal(t, 1, h.nt.Count(event.EventShieldDisengaged))
}

func TestBoss_BandCrossingIdempotent(t *testing.T) {
	h := newHarness(t)
	boss, group := newBoss(t, h, 300_000, nil)

	// 300,000 -> 299,999 crosses into the 200k band once
	require.True(t, h.Hulls.TakeDamage(boss, 1))
	require.True(t, h.Hulls.TakeDamage(boss, 100))
	require.True(t, h.Hulls.TakeDamage(boss, 50_000))
	assert.Equal(t, 249_899, h.hull(boss).HitPoints)

	h.step()
	reqs := h.nt.Of(event.EventGroupReviveRequest)
	require.Len(t, reqs, 1)
	assert.Equal(t, group, reqs[0].Payload.(*event.GroupPayload).Group)
	assert.Equal(t, 2, h.group(group).AliveCount, "crossing force-revives the group")

	b, _ := h.w.Components.Boss.GetComponent(boss)
	assert.Equal(t, 200_000, b.LastBand)
}

func TestBoss_BandCrossingMultipleBandsRevivesOnce(t *testing.T) {
	h := newHarness(t)
	boss, _ := newBoss(t, h, 450_000, nil)

	require.True(t, h.Hulls.TakeDamage(boss, 250_000))
	h.step()
	assert.Equal(t, 1, h.nt.Count(event.EventGroupReviveRequest))

	b, _ := h.w.Components.Boss.GetComponent(boss)
	assert.Equal(t, 200_000, b.LastBand)
}

func TestBoss_EscortCheckpointsInOrder(t *testing.T) {
	h := newHarness(t)
	boss, _ := newBoss(t, h, 260_000, []int{250_000, 100_000})

	// Skip straight past both checkpoints in one hit
	require.True(t, h.Hulls.TakeDamage(boss, 170_000))
	assert.Equal(t, 90_000, h.hull(boss).HitPoints)

	b, _ := h.w.Components.Boss.GetComponent(boss)
	assert.Equal(t, 1, b.CheckpointIndex, "only the first checkpoint fires while the new formation lives")
	assert.True(t, b.ShieldActive)
	require.Len(t, b.Escorts, h.w.Resources.Tuning.EscortCount)
	assert.False(t, h.Gate.CanAcceptDamage(boss))

	h.step()
	spawned := h.nt.Of(event.EventEscortFormationSpawned)
	require.Len(t, spawned, 1)
	assert.Equal(t, 250_000, spawned[0].Payload.(*event.EscortFormationPayload).Checkpoint)
	assert.Equal(t, 1, h.nt.Count(event.EventShieldEngaged))

	// Clearing the new formation lets the next checkpoint fire
	for _, e := range b.Escorts {
		h.Hulls.TakeDamage(e, 1_000_000)
	}
	h.step()
	h.step()

	b, _ = h.w.Components.Boss.GetComponent(boss)
	assert.Equal(t, 2, b.CheckpointIndex)
	spawned = h.nt.Of(event.EventEscortFormationSpawned)
	require.Len(t, spawned, 2)
	assert.Equal(t, 100_000, spawned[1].Payload.(*event.EscortFormationPayload).Checkpoint)

	// Exhausted: killing the third formation spawns nothing
	for _, e := range b.Escorts {
		h.Hulls.TakeDamage(e, 1_000_000)
	}
	h.step()
	h.step()
	assert.Len(t, h.nt.Of(event.EventEscortFormationSpawned), 2)
	assert.Equal(t, 2, h.sp.Count(engine.SpawnEscortWarp)/h.w.Resources.Tuning.EscortCount)
}
