package accel

import (
	"math"
	"math/rand"

	"github.com/df07/raycore/pkg/core"
)

// mockBox only reports bounds. Intersection calls are counted and never hit.
type mockBox struct {
	bounds core.AABB
	tests  *int
}

func (m *mockBox) WorldBound() core.AABB { return m.bounds }

func (m *mockBox) Intersect(ray *core.Ray) (*core.HitRecord, bool) {
	if m.tests != nil {
		*m.tests++
	}
	return nil, false
}

func (m *mockBox) IntersectTest(ray core.Ray) bool {
	if m.tests != nil {
		*m.tests++
	}
	return false
}

func newMockBox(min, max core.Vec3) *mockBox {
	return &mockBox{bounds: core.NewAABB(min, max)}
}

// mockSphere is an analytic sphere used to compare traversal against a linear scan
type mockSphere struct {
	center core.Vec3
	radius float64
}

func (s *mockSphere) WorldBound() core.AABB {
	r := core.NewVec3(s.radius, s.radius, s.radius)
	return core.NewAABB(s.center.Subtract(r), s.center.Add(r))
}

func (s *mockSphere) hit(ray core.Ray) (float64, bool) {
	oc := ray.Origin.Subtract(s.center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.radius*s.radius
	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root <= core.RayEpsilon || root >= ray.TMax {
		root = (-halfB + sqrtD) / a
		if root <= core.RayEpsilon || root >= ray.TMax {
			return 0, false
		}
	}
	return root, true
}

func (s *mockSphere) Intersect(ray *core.Ray) (*core.HitRecord, bool) {
	t, ok := s.hit(*ray)
	if !ok {
		return nil, false
	}
	ray.TMax = t
	hit := &core.HitRecord{T: t, Point: ray.At(t), Primitive: s}
	hit.SetFaceNormal(*ray, hit.Point.Subtract(s.center).Multiply(1/s.radius))
	return hit, true
}

func (s *mockSphere) IntersectTest(ray core.Ray) bool {
	_, ok := s.hit(ray)
	return ok
}

// randomSpheres scatters n spheres with centers in [-10, 10]^3
func randomSpheres(random *rand.Rand, n int) []core.Primitive {
	prims := make([]core.Primitive, n)
	for i := range prims {
		prims[i] = &mockSphere{
			center: core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10),
			radius: 0.5 + random.Float64()*2.5,
		}
	}
	return prims
}

func bruteForceIntersect(ray *core.Ray, prims []core.Primitive) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	for _, prim := range prims {
		if hit, ok := prim.Intersect(ray); ok {
			closest = hit
		}
	}
	return closest, closest != nil
}

func bruteForceIntersectTest(ray core.Ray, prims []core.Primitive) bool {
	for _, prim := range prims {
		if prim.IntersectTest(ray) {
			return true
		}
	}
	return false
}

var allSplitMethods = []SplitMethod{SplitMiddle, SplitEqualCounts, SplitSAH}
