package geometry

import (
	"math"

	"github.com/df07/raycore/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Normal vector (computed from U × V)
	Color  core.Vec3
	d      float64   // Plane equation constant: ax + by + cz = d
	w      core.Vec3 // Cached cross product for barycentric coordinates
	bbox   core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, color core.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		Color:  color,
		d:      normal.Dot(corner),
		w:      normal.Multiply(1.0 / normal.Dot(cross)),
		bbox: core.NewAABBFromPoints(
			corner,
			corner.Add(u),
			corner.Add(v),
			corner.Add(u).Add(v),
		),
	}
}

func (q *Quad) solve(ray core.Ray) (float64, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray is parallel to the quad
	if math.Abs(denominator) < 1e-12 {
		return 0, false
	}

	t := (q.d - ray.Origin.Dot(q.Normal)) / denominator
	if !inRange(ray, t) {
		return 0, false
	}

	// Check the hit point against the edges using barycentric coordinates
	hitVector := ray.At(t).Subtract(q.Corner)
	alpha := q.w.Dot(hitVector.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return 0, false
	}
	return t, true
}

// Intersect tests if a ray intersects with the quad
func (q *Quad) Intersect(ray *core.Ray) (*core.HitRecord, bool) {
	t, ok := q.solve(*ray)
	if !ok {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Primitive: q,
	}
	hitRecord.SetFaceNormal(*ray, q.Normal)

	ray.TMax = t
	return hitRecord, true
}

func (q *Quad) IntersectTest(ray core.Ray) bool {
	_, ok := q.solve(ray)
	return ok
}

// WorldBound returns the bounds of the four corners. Axis-aligned quads
// produce a flat box, which the slab test handles without padding.
func (q *Quad) WorldBound() core.AABB {
	return q.bbox
}

func (q *Quad) Albedo() core.Vec3 {
	return q.Color
}
