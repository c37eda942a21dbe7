package core

// HitRecord contains information about a ray-primitive intersection
type HitRecord struct {
	Point     Vec3      // Point of intersection
	Normal    Vec3      // Surface normal at intersection, facing the ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Primitive Primitive // The innermost primitive that was hit
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Primitive is anything that can be bounded and intersected by rays.
// Shapes, meshes and whole acceleration structures all satisfy it.
type Primitive interface {
	// WorldBound returns the world-space bounds of the primitive.
	WorldBound() AABB

	// Intersect reports the hit closest to the ray origin with
	// RayEpsilon < t < ray.TMax. On a hit it sets ray.TMax to the hit
	// distance, so that testing further primitives against the same ray
	// only reports closer surfaces.
	Intersect(ray *Ray) (*HitRecord, bool)

	// IntersectTest reports whether Intersect would find a hit, without
	// computing the hit record.
	IntersectTest(ray Ray) bool
}
