package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skybastion/engine"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
	"github.com/lixenwraith/skybastion/vmath"
)

func TestPlayerWeapon_MissileNeedsLockAndCooldown(t *testing.T) {
	h := newHarness(t)
	player := addPlayerAt(h, vmath.V3FZero)

	assert.False(t, h.PlayerWeapon.LaunchMissile(player), "no lock")

	target := h.drone(ahead)
	h.step()
	require.True(t, h.Locks.HasTarget(player))

	assert.True(t, h.PlayerWeapon.LaunchMissile(player))
	assert.False(t, h.PlayerWeapon.LaunchMissile(player), "cooling down")

	h.step()
	assert.Equal(t, 60_000-parameter.MissileDamage, h.hull(target).HitPoints)
	assert.Equal(t, 1, h.sp.Count(engine.SpawnMissile))
	assert.Equal(t, 1, h.nt.Count(event.EventMissileLaunched))

	h.advance(parameter.MissileCooldown)
	h.w.PushEvent(event.EventMissileLaunchRequest, &event.PlayerPayload{Player: player})
	h.step()
	h.step()
	assert.Equal(t, 2, h.sp.Count(engine.SpawnMissile))
	assert.Equal(t, 60_000-2*parameter.MissileDamage, h.hull(target).HitPoints)

	pw, _ := h.w.Components.PlayerWeapon.GetComponent(player)
	assert.Equal(t, 2, pw.MissilesFired)
}

func TestPlayerWeapon_LaserDrainsGaugeAndStops(t *testing.T) {
	h := newHarness(t)
	player := addPlayerAt(h, vmath.V3FZero)
	target := h.drone(ahead)
	pw, ok := h.w.Components.PlayerWeapon.GetComponent(player)
	require.True(t, ok)

	h.PlayerWeapon.SetLaser(player, true)
	charges := h.w.Resources.Tuning.LaserCharges
	h.advance(time.Duration(charges)*h.w.Resources.Tuning.ChargePeriod + 2*testTick)

	pw, _ = h.w.Components.PlayerWeapon.GetComponent(player)
	assert.False(t, pw.LaserFiring)
	assert.False(t, h.Gauges.CanConsume(pw.LaserGauge))

	ticks := int(time.Duration(charges) * h.w.Resources.Tuning.ChargePeriod / parameter.LaserTickInterval)
	assert.Equal(t, 60_000-ticks*parameter.LaserDamageTick, h.hull(target).HitPoints)

	// Restart refused until the gauge refills completely
	h.PlayerWeapon.SetLaser(player, true)
	pw, _ = h.w.Components.PlayerWeapon.GetComponent(player)
	assert.False(t, pw.LaserFiring)

	h.advance(time.Duration(charges) * h.w.Resources.Tuning.ChargePeriod)
	h.w.PushEvent(event.EventLaserRequest, &event.PlayerTogglePayload{Player: player, On: true})
	h.step()
	pw, _ = h.w.Components.PlayerWeapon.GetComponent(player)
	assert.True(t, pw.LaserFiring)
}

func TestPlayerWeapon_LaserOffKeepsCharges(t *testing.T) {
	h := newHarness(t)
	player := addPlayerAt(h, vmath.V3FZero)
	pw, _ := h.w.Components.PlayerWeapon.GetComponent(player)

	h.PlayerWeapon.SetLaser(player, true)
	h.advance(h.w.Resources.Tuning.ChargePeriod + testTick)
	h.PlayerWeapon.SetLaser(player, false)

	cur, max := h.Gauges.Charges(pw.LaserGauge)
	assert.Equal(t, max-1, cur)
	assert.True(t, h.Gauges.CanConsume(pw.LaserGauge))
}

func TestPlayerWeapon_BoostRunsOutOfFuel(t *testing.T) {
	h := newHarness(t)
	player := addPlayerAt(h, vmath.V3FZero)

	h.w.PushEvent(event.EventBoostRequest, &event.PlayerTogglePayload{Player: player, On: true})
	h.step()
	pw, _ := h.w.Components.PlayerWeapon.GetComponent(player)
	require.True(t, pw.Boosting)

	h.advance(time.Duration(h.w.Resources.Tuning.ThrusterCharges)*h.w.Resources.Tuning.ChargePeriod + 2*testTick)
	pw, _ = h.w.Components.PlayerWeapon.GetComponent(player)
	assert.False(t, pw.Boosting)
	assert.Equal(t, 1, h.nt.Count(event.EventGaugeDepleted))
}
