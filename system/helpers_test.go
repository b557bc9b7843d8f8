package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/engine"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/vmath"
)

const testTick = 20 * time.Millisecond

type harness struct {
	t  *testing.T
	w  *engine.World
	cs *engine.ClockScheduler
	sp *engine.RecordingSpawner
	nt *engine.RecordingNotifier
	*Combat
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	w, sp, nt := engine.NewTestWorld()
	c := NewCombat(w)
	cs := engine.NewClockScheduler(w, engine.NewManualClock(time.Unix(0, 0)))
	return &harness{t: t, w: w, cs: cs, sp: sp, nt: nt, Combat: c}
}

func (h *harness) step() {
	h.cs.Step(testTick)
}

func (h *harness) advance(d time.Duration) {
	h.cs.Advance(d, testTick)
}

func (h *harness) hull(e core.Entity) component.HullComponent {
	h.t.Helper()
	hull, ok := h.w.Components.Hull.GetComponent(e)
	require.True(h.t, ok, "hull %d missing", e)
	return hull
}

func (h *harness) emp(e core.Entity) component.EmplacementComponent {
	h.t.Helper()
	emp, ok := h.w.Components.Emplacement.GetComponent(e)
	require.True(h.t, ok, "emplacement %d missing", e)
	return emp
}

func (h *harness) group(e core.Entity) component.GroupComponent {
	h.t.Helper()
	grp, ok := h.w.Components.Group.GetComponent(e)
	require.True(h.t, ok, "group %d missing", e)
	return grp
}

func (h *harness) damage(target core.Entity, amount int) {
	h.w.PushEvent(event.EventDamageRequest, &event.DamageRequestPayload{Target: target, Amount: amount})
}

// ringPlacements lays out n emplacements on top of a hull of the given radius, facing up
func ringPlacements(n int, radius float64) []Placement {
	out := make([]Placement, 0, n)
	for _, pos := range FormationPositions(vmath.Vec3F{Y: radius}, n, radius/2) {
		out = append(out, Placement{Offset: pos, Forward: vmath.V3FUp, Up: vmath.V3FForward})
	}
	return out
}

// fortress creates a regular hostile hull with one weapon group
func (h *harness) fortress(class component.WeaponClass, n int) (hull, group core.Entity) {
	hull = CreateHull(h.w, component.HullRegular, vmath.V3FZero, vmath.V3FForward, 60_000, 180)
	group = CreateGroup(h.w, hull, class, ringPlacements(n, 180), h.w.Resources.Tuning)
	return hull, group
}

// disableAll kills every member of a group through the damage path
func (h *harness) disableAll(group core.Entity) {
	for _, m := range h.group(group).Members {
		h.Emplacements.TakeDamage(m, 1_000_000)
	}
}
