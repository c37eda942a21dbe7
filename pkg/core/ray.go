package core

import "math"

// RayEpsilon is the minimum hit distance accepted by primitives. It keeps
// secondary rays from re-hitting the surface they start on.
const RayEpsilon = 1e-4

// Ray represents a ray with an origin, a direction and the farthest
// distance along it that still counts as a hit. Primitives shrink TMax
// when they report a hit so later candidates only win if they are closer.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMax      float64
}

// NewRay creates a new ray with an unbounded extent
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMax: math.Inf(1)}
}

// NewRaySegment creates a ray that only reports hits closer than tMax
func NewRaySegment(origin, direction Vec3, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMax: tMax}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
