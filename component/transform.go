package component

import "github.com/lixenwraith/skybastion/vmath"

// TransformComponent is the world pose of an entity
// Forward and Up describe the rest orientation for emplacements and the view for players
type TransformComponent struct {
	Position vmath.Vec3F
	Forward  vmath.Vec3F
	Up       vmath.Vec3F

	// Active is false while the host deactivates the entity without destroying it
	Active bool
}

// Frame returns the orthonormal basis of the transform
func (t TransformComponent) Frame() vmath.Frame {
	return vmath.NewFrame(t.Forward, t.Up)
}
