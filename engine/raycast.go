package engine

import (
	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/vmath"
)

// SphereRaycaster casts rays against ColliderComponent spheres
// Colliders containing the ray origin are skipped, so a ray never hits the body it starts in
type SphereRaycaster struct {
	world *World
}

func NewSphereRaycaster(world *World) *SphereRaycaster {
	return &SphereRaycaster{world: world}
}

// Raycast returns the nearest collider hit within maxDist
func (r *SphereRaycaster) Raycast(origin, dir vmath.Vec3F, maxDist float64, mask component.Category) (RayHit, bool) {
	var best RayHit
	found := false

	cs := r.world.Components
	for _, e := range cs.Collider.GetAllEntities() {
		col, ok := cs.Collider.GetComponent(e)
		if !ok || col.Mask&mask == 0 {
			continue
		}
		tr, ok := cs.Transform.GetComponent(e)
		if !ok || !tr.Active {
			continue
		}
		if vmath.V3FDistSq(origin, tr.Position) <= col.Radius*col.Radius {
			continue
		}
		t, hit := vmath.RaySphere(origin, dir, tr.Position, col.Radius)
		if !hit || t > maxDist {
			continue
		}
		if !found || t < best.Distance {
			best = RayHit{Point: vmath.V3FMulAdd(origin, dir, t), Distance: t, Entity: e}
			found = true
		}
	}
	return best, found
}
