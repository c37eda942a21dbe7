package geometry

import (
	"github.com/df07/raycore/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	Color      core.Vec3
	normal     core.Vec3 // Cached normal vector
	bbox       core.AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, color core.Vec3) *Triangle {
	t := &Triangle{
		V0:    v0,
		V1:    v1,
		V2:    v2,
		Color: color,
	}

	t.computeNormal()
	t.computeBoundingBox()

	return t
}

// NewTriangleWithNormal creates a new triangle from three vertices with a custom normal
func NewTriangleWithNormal(v0, v1, v2 core.Vec3, normal core.Vec3, color core.Vec3) *Triangle {
	t := &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		Color:  color,
		normal: normal.Normalize(),
	}

	// Only compute bounding box, normal is provided
	t.computeBoundingBox()

	return t
}

// computeNormal calculates and caches the triangle's normal vector
func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

func (t *Triangle) computeBoundingBox() {
	t.bbox = core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// solve runs the Möller-Trumbore test and returns the hit distance
func (t *Triangle) solve(ray core.Ray) (float64, bool) {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	tHit := f * edge2.Dot(q)
	if !inRange(ray, tHit) {
		return 0, false
	}
	return tHit, true
}

// Intersect tests if a ray intersects with the triangle
func (t *Triangle) Intersect(ray *core.Ray) (*core.HitRecord, bool) {
	tHit, ok := t.solve(*ray)
	if !ok {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:         tHit,
		Point:     ray.At(tHit),
		Primitive: t,
	}
	hitRecord.SetFaceNormal(*ray, t.normal)

	ray.TMax = tHit
	return hitRecord, true
}

func (t *Triangle) IntersectTest(ray core.Ray) bool {
	_, ok := t.solve(ray)
	return ok
}

// WorldBound returns the axis-aligned bounding box for this triangle
func (t *Triangle) WorldBound() core.AABB {
	return t.bbox
}

// Normal returns the triangle's normal vector
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

func (t *Triangle) Albedo() core.Vec3 {
	return t.Color
}
