package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/engine"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
	"github.com/lixenwraith/skybastion/vmath"
)

// battery creates one upward-facing emplacement on a small hull at origin
func (h *harness) battery(class component.WeaponClass) (group, member core.Entity) {
	hull := CreateHull(h.w, component.HullRegular, vmath.V3FZero, vmath.V3FForward, 60_000, 10)
	group = CreateGroup(h.w, hull, class, []Placement{
		{Offset: vmath.Vec3F{Y: 20}, Forward: vmath.V3FUp, Up: vmath.V3FForward},
	}, h.w.Resources.Tuning)
	return group, h.group(group).Members[0]
}

func (h *harness) moveTo(e core.Entity, pos vmath.Vec3F) {
	tr, ok := h.w.Components.Transform.GetComponent(e)
	require.True(h.t, ok)
	tr.Position = pos
	h.w.Components.Transform.SetComponent(e, tr)
}

func (h *harness) steps(n int) {
	for i := 0; i < n; i++ {
		h.step()
	}
}

var (
	overhead = vmath.Vec3F{Y: 800}
	// outside every cannon pitch limit for an upward-facing battery
	abeam = vmath.Vec3F{Y: 20, Z: 800}
)

func TestEmplacement_AcquiresAfterDwell(t *testing.T) {
	h := newHarness(t)
	_, m := h.battery(component.WeaponSmallCannon)
	player := addPlayerAt(h, overhead)

	h.step()
	emp := h.emp(m)
	require.Equal(t, player, emp.Target)
	require.Equal(t, component.AimAcquiring, emp.Aim)

	// MinLockDwell of 300ms needs 15 clear ticks after entering Acquiring
	h.steps(14)
	assert.Equal(t, component.AimAcquiring, h.emp(m).Aim)
	h.steps(1)
	assert.Equal(t, component.AimLocked, h.emp(m).Aim)
}

func TestEmplacement_LockedFiresOnInterval(t *testing.T) {
	h := newHarness(t)
	_, m := h.battery(component.WeaponSmallCannon)
	player := addPlayerAt(h, overhead)

	h.steps(16)
	require.Equal(t, component.AimLocked, h.emp(m).Aim)
	assert.Zero(t, h.sp.Count(engine.SpawnProjectile))

	h.step()
	assert.Equal(t, 1, h.sp.Count(engine.SpawnProjectile), "first shot the tick after lock")

	h.advance(parameter.CombatIntervalSmallCannon)
	assert.Equal(t, 2, h.sp.Count(engine.SpawnProjectile))

	shots := h.nt.Of(event.EventShotFired)
	require.NotEmpty(t, shots)
	shot := shots[0].Payload.(*event.ShotPayload)
	assert.Equal(t, m, shot.Emplacement)
	assert.Equal(t, player, shot.Target)

	hull := h.hull(player)
	assert.Equal(t, parameter.CombatHPPlayer-2*parameter.CombatDamageSmallCannon, hull.HitPoints)
}

func TestEmplacement_UnreachableWhileAcquiringHolds(t *testing.T) {
	h := newHarness(t)
	_, m := h.battery(component.WeaponSmallCannon)
	player := addPlayerAt(h, overhead)

	h.steps(2)
	require.Equal(t, component.AimAcquiring, h.emp(m).Aim)

	h.moveTo(player, abeam)
	h.step()
	emp := h.emp(m)
	assert.Equal(t, component.AimIdle, emp.Aim)
	assert.Equal(t, h.w.Resources.Tuning.AimHoldDuration, emp.HoldRemaining)

	// Back in reach but still held
	h.moveTo(player, overhead)
	h.advance(h.w.Resources.Tuning.AimHoldDuration / 2)
	assert.Equal(t, component.AimIdle, h.emp(m).Aim)

	h.advance(h.w.Resources.Tuning.AimHoldDuration)
	assert.NotEqual(t, component.AimIdle, h.emp(m).Aim)
}

func TestEmplacement_LockSurvivesShortLoss(t *testing.T) {
	h := newHarness(t)
	_, m := h.battery(component.WeaponSmallCannon)
	player := addPlayerAt(h, overhead)
	h.steps(16)
	require.Equal(t, component.AimLocked, h.emp(m).Aim)

	h.moveTo(player, abeam)
	h.advance(h.w.Resources.Tuning.AimHysteresis / 2)
	assert.Equal(t, component.AimLocked, h.emp(m).Aim)

	h.moveTo(player, overhead)
	h.step()
	emp := h.emp(m)
	assert.Equal(t, component.AimLocked, emp.Aim)
	assert.Zero(t, emp.LostFor)
}

func TestEmplacement_LockDropsAfterHysteresis(t *testing.T) {
	h := newHarness(t)
	_, m := h.battery(component.WeaponSmallCannon)
	player := addPlayerAt(h, overhead)
	h.steps(16)

	h.moveTo(player, abeam)
	h.advance(h.w.Resources.Tuning.AimHysteresis + 2*testTick)

	emp := h.emp(m)
	assert.Equal(t, component.AimIdle, emp.Aim)
	assert.Positive(t, emp.HoldRemaining)
	assert.Equal(t, player, emp.Target, "target handle survives the drop")
}

func TestEmplacement_InvalidTargetResets(t *testing.T) {
	h := newHarness(t)
	_, m := h.battery(component.WeaponSmallCannon)
	player := addPlayerAt(h, overhead)
	h.steps(16)

	h.w.DestroyEntity(player)
	h.step()

	emp := h.emp(m)
	assert.Equal(t, core.Entity(0), emp.Target)
	assert.Equal(t, component.AimIdle, emp.Aim)
	assert.Equal(t, core.Entity(0), emp.Tracked)
}

func TestEmplacement_DormantAfterFailedSearchesAndWake(t *testing.T) {
	h := newHarness(t)
	h.w.Resources.Tuning.SearchInterval = 100 * time.Millisecond
	h.w.Resources.Tuning.MaxFailedSearches = 3
	_, m := h.battery(component.WeaponSmallCannon)

	h.advance(time.Second)
	emp := h.emp(m)
	require.True(t, emp.Dormant)
	assert.Equal(t, 3, emp.FailedSearches)

	player := addPlayerAt(h, overhead)
	h.advance(time.Second)
	assert.Equal(t, core.Entity(0), h.emp(m).Target, "dormant emplacement does not search")

	h.w.PushEvent(event.EventEmplacementWakeRequest, &event.EmplacementPayload{Emplacement: m})
	h.step()
	emp = h.emp(m)
	assert.False(t, emp.Dormant)
	assert.Equal(t, player, emp.Target)
}

func TestEmplacement_SchedulerDrivenReturnsToRest(t *testing.T) {
	h := newHarness(t)
	_, m := h.battery(component.WeaponTurret)

	emp := h.emp(m)
	emp.Yaw = 0.5
	h.w.Components.Emplacement.SetComponent(m, emp)

	h.advance(time.Second)
	emp = h.emp(m)
	assert.Zero(t, emp.Yaw)
	assert.Zero(t, emp.FailedSearches, "scheduler-driven members never self-search")
	assert.False(t, emp.Dormant)
}

func TestEmplacement_TakeDamageDisablesAndReports(t *testing.T) {
	h := newHarness(t)
	group, m := h.battery(component.WeaponSmallCannon)

	assert.False(t, h.Emplacements.TakeDamage(m, 0))
	assert.False(t, h.Emplacements.TakeDamage(m, -5))

	assert.True(t, h.Emplacements.TakeDamage(m, 100))
	assert.Equal(t, parameter.CombatHPSmallCannon-100, h.emp(m).HitPoints)

	assert.True(t, h.Emplacements.TakeDamage(m, 10_000))
	emp := h.emp(m)
	assert.False(t, emp.Enabled)
	assert.Zero(t, emp.HitPoints)
	assert.True(t, h.w.Alive(m), "disabled emplacements stay in the world")

	grp := h.group(group)
	assert.Zero(t, grp.AliveCount)
	assert.True(t, grp.ReviveArmed)

	// Disabled is terminal for damage
	assert.False(t, h.Emplacements.TakeDamage(m, 10))
	_, ok := ResolveTarget(h.w, m)
	assert.False(t, ok)

	h.step()
	assert.Equal(t, 1, h.sp.Count(engine.SpawnDeathEffect))
	assert.Equal(t, 1, h.nt.Count(event.EventEmplacementDestroyed))
}

func TestEmplacement_BeamTicksAndDespawns(t *testing.T) {
	h := newHarness(t)
	_, m := h.battery(component.WeaponBigCannon)
	player := addPlayerAt(h, overhead)

	h.steps(17)
	emp := h.emp(m)
	require.Equal(t, component.AimLocked, emp.Aim)
	require.True(t, emp.BeamOn)
	require.NotZero(t, emp.BeamVisual)
	assert.Equal(t, 1, h.sp.Count(engine.SpawnBeam))

	h.advance(time.Second)
	assert.Less(t, h.hull(player).HitPoints, parameter.CombatHPPlayer)
	assert.Equal(t, 1, h.sp.Count(engine.SpawnBeam), "beam visual spawned once")

	visual := h.emp(m).BeamVisual
	h.moveTo(player, abeam)
	h.step()
	emp = h.emp(m)
	assert.False(t, emp.BeamOn)
	assert.Zero(t, emp.BeamVisual)
	assert.Contains(t, h.sp.Despawned, visual)
}

// behind is nearer than overhead but outside an upward-facing battery's limits
var behind = vmath.Vec3F{Y: 20, Z: -100}

func TestEmplacement_SearchPrefersEngageableTarget(t *testing.T) {
	h := newHarness(t)
	_, m := h.battery(component.WeaponSmallCannon)
	addPlayerAt(h, behind)
	front := addPlayerAt(h, overhead)

	h.advance(2 * time.Second)
	emp := h.emp(m)
	assert.Equal(t, front, emp.Target)
	assert.Equal(t, component.AimLocked, emp.Aim)
	assert.Positive(t, h.sp.Count(engine.SpawnProjectile))
}

func TestEmplacement_SelfDrivenDropsUnreachableTarget(t *testing.T) {
	h := newHarness(t)
	_, m := h.battery(component.WeaponSmallCannon)
	addPlayerAt(h, behind)

	h.step()
	emp := h.emp(m)
	assert.Equal(t, component.AimIdle, emp.Aim)
	assert.Equal(t, core.Entity(0), emp.Target, "unreachable target released for the next search")
	assert.Zero(t, emp.FailedSearches)

	front := addPlayerAt(h, overhead)
	h.advance(h.w.Resources.Tuning.SearchInterval + time.Second)
	emp = h.emp(m)
	assert.Equal(t, front, emp.Target)
	assert.Equal(t, component.AimLocked, emp.Aim)
	assert.Positive(t, h.sp.Count(engine.SpawnProjectile))
}
