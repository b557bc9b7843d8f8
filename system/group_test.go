package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
	"github.com/lixenwraith/skybastion/vmath"
)

func TestGroup_PartialLossRevivesAfterDelay(t *testing.T) {
	h := newHarness(t)
	h.w.Resources.Tuning.ReviveDelay = 60 * time.Second
	_, group := h.fortress(component.WeaponTurret, 5)
	members := h.group(group).Members
	h.step()

	for _, m := range members[:3] {
		h.damage(m, 1_000)
	}
	h.step()

	grp := h.group(group)
	require.Equal(t, 2, grp.AliveCount)
	require.True(t, grp.ReviveArmed)

	h.advance(60 * time.Second)
	h.step()

	grp = h.group(group)
	assert.Equal(t, 5, grp.AliveCount)
	assert.False(t, grp.ReviveArmed)
	for _, m := range members {
		emp := h.emp(m)
		assert.True(t, emp.Enabled)
		assert.Equal(t, parameter.CombatHPTurret, emp.HitPoints)
	}
	assert.Equal(t, 3, h.nt.Count(event.EventEmplacementRevived))
	assert.Equal(t, 1, h.nt.Count(event.EventGroupRevived))
}

func TestGroup_TimerArmedOncePerLoss(t *testing.T) {
	h := newHarness(t)
	h.w.Resources.Tuning.ReviveDelay = 10 * time.Second
	_, group := h.fortress(component.WeaponTurret, 3)
	members := h.group(group).Members

	h.damage(members[0], 1_000)
	h.step()
	h.advance(4 * time.Second)
	remaining := h.group(group).ReviveRemaining

	// A second loss does not restart the countdown
	h.damage(members[1], 1_000)
	h.step()
	assert.Equal(t, remaining-testTick, h.group(group).ReviveRemaining)
}

func TestGroup_FullWipeLeftToHull(t *testing.T) {
	h := newHarness(t)
	h.w.Resources.Tuning.ReviveDelay = time.Second
	h.w.Resources.Tuning.ForceReviveDelay = time.Hour
	_, group := h.fortress(component.WeaponTurret, 3)

	h.disableAll(group)
	h.advance(2 * time.Second)

	grp := h.group(group)
	assert.Equal(t, 0, grp.AliveCount)
	assert.False(t, grp.ReviveArmed, "expired timer disarms without reviving a full wipe")
}

func TestGroup_RecountSelfHeals(t *testing.T) {
	h := newHarness(t)
	_, group := h.fortress(component.WeaponSmallCannon, 6)
	members := append([]core.Entity(nil), h.group(group).Members...)

	// Destroyed and disabled outside the scheduler API
	h.w.DestroyEntity(members[0])
	h.w.DestroyEntity(members[3])
	emp := h.emp(members[4])
	emp.Enabled = false
	h.w.Components.Emplacement.SetComponent(members[4], emp)

	h.Groups.Recount(group)

	grp := h.group(group)
	assert.Equal(t, 4, grp.MaxCount)
	assert.Len(t, grp.Members, 4)
	assert.Equal(t, 3, grp.AliveCount)
	assert.NotContains(t, grp.Members, members[0])

	enabled := 0
	for _, m := range grp.Members {
		if h.emp(m).Enabled {
			enabled++
		}
	}
	assert.Equal(t, enabled, grp.AliveCount)
}

func TestGroup_RecountFullRestockDisarms(t *testing.T) {
	h := newHarness(t)
	_, group := h.fortress(component.WeaponTurret, 2)
	members := h.group(group).Members

	h.Emplacements.TakeDamage(members[0], 1_000)
	require.True(t, h.group(group).ReviveArmed)

	emp := h.emp(members[0])
	emp.Enabled = true
	emp.HitPoints = emp.MaxHitPoints
	h.w.Components.Emplacement.SetComponent(members[0], emp)

	h.Groups.Recount(group)
	assert.False(t, h.group(group).ReviveArmed)
}

func TestGroup_OnMemberDestroyedFloorsAtZero(t *testing.T) {
	h := newHarness(t)
	_, group := h.fortress(component.WeaponTurret, 1)

	h.Groups.OnMemberDestroyed(group)
	h.Groups.OnMemberDestroyed(group)
	alive, max := h.Groups.AliveCount(group)
	assert.Equal(t, 0, alive)
	assert.Equal(t, 1, max)
}

func addPlayerAt(h *harness, pos vmath.Vec3F) core.Entity {
	return CreatePlayer(h.w, pos, vmath.V3FForward, h.w.Resources.Tuning)
}

// lineGroup places turrets along +X at the given offsets on top of a hull at origin
func lineGroup(h *harness, xs []float64) (core.Entity, []core.Entity) {
	hull := CreateHull(h.w, component.HullRegular, vmath.V3FZero, vmath.V3FForward, 60_000, 10)
	var ps []Placement
	for _, x := range xs {
		ps = append(ps, Placement{Offset: vmath.Vec3F{X: x, Y: 20}, Forward: vmath.V3FUp, Up: vmath.V3FForward})
	}
	g := CreateGroup(h.w, hull, component.WeaponTurret, ps, h.w.Resources.Tuning)
	return g, h.group(g).Members
}

func TestGroup_TurretAssignmentGreedyPerPlayer(t *testing.T) {
	h := newHarness(t)
	h.w.Resources.Tuning.PerPlayerCap = 2
	group, m := lineGroup(h, []float64{-300, -200, -100, 100, 200, 300})

	right := addPlayerAt(h, vmath.Vec3F{X: 1000, Y: 20})
	left := addPlayerAt(h, vmath.Vec3F{X: -1000, Y: 20})
	h.step()

	assert.Equal(t, right, h.emp(m[5]).Target)
	assert.Equal(t, right, h.emp(m[4]).Target)
	assert.Equal(t, left, h.emp(m[0]).Target)
	assert.Equal(t, left, h.emp(m[1]).Target)
	assert.Equal(t, core.Entity(0), h.emp(m[2]).Target, "over cap members get no target")
	assert.Equal(t, core.Entity(0), h.emp(m[3]).Target)
	assert.Len(t, h.group(group).Members, 6)
}

func TestGroup_TurretAssignmentSkipsTakenAndBreaksTiesByEnumeration(t *testing.T) {
	h := newHarness(t)
	h.w.Resources.Tuning.PerPlayerCap = 1
	_, m := lineGroup(h, []float64{-100, 100, 500})

	// First player is equidistant from m[0] and m[1]; enumeration order wins
	first := addPlayerAt(h, vmath.Vec3F{Y: 20})
	// Second player is also equidistant; m[0] is taken so it gets m[1]
	second := addPlayerAt(h, vmath.Vec3F{Y: 20, Z: 1})
	h.step()

	assert.Equal(t, first, h.emp(m[0]).Target)
	assert.Equal(t, second, h.emp(m[1]).Target)
	assert.Equal(t, core.Entity(0), h.emp(m[2]).Target)
}

func TestGroup_TurretAssignmentRangeAndDisabled(t *testing.T) {
	h := newHarness(t)
	h.w.Resources.Tuning.AssignRange = 500
	_, m := lineGroup(h, []float64{-100, 100})

	far := addPlayerAt(h, vmath.Vec3F{X: 5000})
	h.step()
	assert.Equal(t, core.Entity(0), h.emp(m[0]).Target)
	assert.Equal(t, core.Entity(0), h.emp(m[1]).Target)

	near := addPlayerAt(h, vmath.Vec3F{X: 300, Y: 20})
	h.Emplacements.TakeDamage(m[1], 1_000)
	h.step()
	assert.Equal(t, near, h.emp(m[0]).Target)
	assert.Equal(t, core.Entity(0), h.emp(m[1]).Target)
	assert.NotEqual(t, far, h.emp(m[0]).Target)
}

func TestGroup_PeriodicResetClearsDisabledMembers(t *testing.T) {
	h := newHarness(t)
	h.w.Resources.Tuning.ReassignInterval = time.Second
	_, m := lineGroup(h, []float64{-100, 100})

	// A disabled member carrying a stale target
	emp := h.emp(m[1])
	emp.Enabled = false
	emp.Target = m[0]
	h.w.Components.Emplacement.SetComponent(m[1], emp)

	h.step() // first tick runs the reset pass
	assert.Equal(t, core.Entity(0), h.emp(m[1]).Target)
}
