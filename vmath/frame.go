package vmath

import "math"

// Frame is an orthonormal orientation basis
// Forward and Up are supplied, Right is derived as Up x Forward
type Frame struct {
	Forward Vec3F
	Up      Vec3F
	Right   Vec3F
}

// NewFrame builds an orthonormal frame from forward and an approximate up
// Degenerate input (parallel or zero vectors) falls back to world axes
func NewFrame(forward, up Vec3F) Frame {
	f := V3FNormalize(forward)
	if f == V3FZero {
		f = V3FForward
	}
	r := V3FNormalize(V3FCross(up, f))
	if r == V3FZero {
		// Forward parallel to up: pick any perpendicular
		r = V3FNormalize(V3FCross(V3FForward, f))
		if r == V3FZero {
			r = V3FRight
		}
	}
	u := V3FCross(f, r)
	return Frame{Forward: f, Up: u, Right: r}
}

// Local expresses a world-space direction in frame coordinates (right, up, forward)
func (fr Frame) Local(dir Vec3F) (x, y, z float64) {
	return V3FDot(dir, fr.Right), V3FDot(dir, fr.Up), V3FDot(dir, fr.Forward)
}

// World converts frame coordinates back to a world-space direction
func (fr Frame) World(x, y, z float64) Vec3F {
	return V3FAdd(V3FAdd(V3FScale(fr.Right, x), V3FScale(fr.Up, y)), V3FScale(fr.Forward, z))
}

// YawPitch decomposes a world direction into yaw about Up and pitch about Right, in radians
// Yaw is positive toward Right, pitch positive toward Up
func (fr Frame) YawPitch(dir Vec3F) (yaw, pitch float64) {
	x, y, z := fr.Local(dir)
	yaw = math.Atan2(x, z)
	pitch = math.Atan2(y, math.Hypot(x, z))
	return yaw, pitch
}

// Direction returns the world direction for a yaw/pitch pair relative to the frame
func (fr Frame) Direction(yaw, pitch float64) Vec3F {
	cp := math.Cos(pitch)
	return fr.World(math.Sin(yaw)*cp, math.Sin(pitch), math.Cos(yaw)*cp)
}

// ClampAngle limits a to [-limit, limit] and reports whether clamping occurred
func ClampAngle(a, limit float64) (float64, bool) {
	if a > limit {
		return limit, true
	}
	if a < -limit {
		return -limit, true
	}
	return a, false
}

// WrapAngle normalizes an angle to (-π, π]
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// StepAngle moves current toward target by at most maxStep, taking the short way round
func StepAngle(current, target, maxStep float64) float64 {
	delta := WrapAngle(target - current)
	if math.Abs(delta) <= maxStep {
		return target
	}
	if delta > 0 {
		return current + maxStep
	}
	return current - maxStep
}
