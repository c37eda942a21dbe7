package geometry

import (
	"math"

	"github.com/df07/raycore/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
	Color  core.Vec3
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, color core.Vec3) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		Color:  color,
	}
}

// solve returns the nearest root of the ray/sphere quadratic inside the ray extent
func (s *Sphere) solve(ray core.Ray) (float64, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !inRange(ray, root) {
		root = (-halfB + sqrtD) / a
		if !inRange(ray, root) {
			return 0, false
		}
	}
	return root, true
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray *core.Ray) (*core.HitRecord, bool) {
	root, ok := s.solve(*ray)
	if !ok {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:         root,
		Point:     ray.At(root),
		Primitive: s,
	}

	// Calculate outward normal (from center to hit point)
	outwardNormal := hitRecord.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	hitRecord.SetFaceNormal(*ray, outwardNormal)

	ray.TMax = root
	return hitRecord, true
}

// IntersectTest reports whether the ray hits the sphere
func (s *Sphere) IntersectTest(ray core.Ray) bool {
	_, ok := s.solve(ray)
	return ok
}

// WorldBound returns the axis-aligned bounding box for this sphere
func (s *Sphere) WorldBound() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

func (s *Sphere) Albedo() core.Vec3 {
	return s.Color
}
