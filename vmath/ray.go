package vmath

import "math"

// RaySphere intersects a ray with a sphere
// dir must be normalized. Returns the nearest non-negative hit distance
// A ray starting inside the sphere hits at distance 0
func RaySphere(origin, dir, center Vec3F, radius float64) (float64, bool) {
	oc := V3FSub(origin, center)
	b := V3FDot(oc, dir)
	c := V3FMagSq(oc) - radius*radius
	if c <= 0 {
		return 0, true
	}
	// Origin outside and pointing away
	if b > 0 {
		return 0, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		t = 0
	}
	return t, true
}
