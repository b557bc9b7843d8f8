package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/vmath"
)

func addSphere(w *World, pos vmath.Vec3F, radius float64, mask component.Category) core.Entity {
	e := w.CreateEntity()
	w.Components.Transform.SetComponent(e, component.TransformComponent{Position: pos, Forward: vmath.V3FForward, Up: vmath.V3FUp, Active: true})
	w.Components.Collider.SetComponent(e, component.ColliderComponent{Radius: radius, Mask: mask})
	return e
}

func TestSphereRaycaster_NearestHit(t *testing.T) {
	w := NewWorld()
	far := addSphere(w, vmath.Vec3F{Z: 100}, 10, component.CategoryHostile)
	near := addSphere(w, vmath.Vec3F{Z: 50}, 10, component.CategoryHostile)

	hit, ok := w.Resources.Raycaster.Raycast(vmath.V3FZero, vmath.V3FForward, 1000, component.CategoryHostile)
	require.True(t, ok)
	assert.Equal(t, near, hit.Entity)
	assert.InDelta(t, 40, hit.Distance, 1e-9)
	assert.InDelta(t, 40, hit.Point.Z, 1e-9)

	// Max distance short of the first surface
	_, ok = w.Resources.Raycaster.Raycast(vmath.V3FZero, vmath.V3FForward, 30, component.CategoryHostile)
	assert.False(t, ok)

	w.DestroyEntity(near)
	hit, ok = w.Resources.Raycaster.Raycast(vmath.V3FZero, vmath.V3FForward, 1000, component.CategoryHostile)
	require.True(t, ok)
	assert.Equal(t, far, hit.Entity)
}

func TestSphereRaycaster_MaskAndOriginInside(t *testing.T) {
	w := NewWorld()
	addSphere(w, vmath.V3FZero, 50, component.CategoryHostile) // contains the origin
	player := addSphere(w, vmath.Vec3F{Z: 200}, 8, component.CategoryPlayer)

	hit, ok := w.Resources.Raycaster.Raycast(vmath.V3FZero, vmath.V3FForward, 1000, component.CategoryHostile|component.CategoryPlayer)
	require.True(t, ok)
	assert.Equal(t, player, hit.Entity)

	_, ok = w.Resources.Raycaster.Raycast(vmath.V3FZero, vmath.V3FForward, 1000, component.CategoryEscort)
	assert.False(t, ok)
}
