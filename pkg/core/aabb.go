package core

import "math"

// machineEpsilon is half the float64 ULP at 1, the bound on relative
// rounding error of a single operation.
const machineEpsilon = 0x1p-53

// gamma bounds the relative error accumulated over n floating point operations
func gamma(n float64) float64 {
	return (n * machineEpsilon) / (1 - n*machineEpsilon)
}

// slabScale widens the far slab distance to absorb rounding error in the
// slab computation, so rays grazing a box edge are never culled.
var slabScale = 1 + 2*gamma(3)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns the box that contains nothing. Its corners are inverted
// infinities so that a union with any other box yields that box.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, point := range points {
		box = box.UnionPoint(point)
	}
	return box
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: aabb.Min.Min(other.Min),
		Max: aabb.Max.Max(other.Max),
	}
}

// UnionPoint returns an AABB grown to contain p
func (aabb AABB) UnionPoint(p Vec3) AABB {
	return AABB{
		Min: aabb.Min.Min(p),
		Max: aabb.Max.Max(p),
	}
}

// Centroid returns the center point of the AABB
func (aabb AABB) Centroid() Vec3 {
	return aabb.Min.Add(aabb.Size().Multiply(0.5))
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB, zero for an empty box
func (aabb AABB) SurfaceArea() float64 {
	if aabb.IsEmpty() {
		return 0
	}
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// MaximumExtent returns the axis with the longest extent. An axis only wins
// when it is strictly longer than the remaining ones, so ties fall to Z.
func (aabb AABB) MaximumExtent() Axis {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return AxisX
	}
	if size.Y > size.Z {
		return AxisY
	}
	return AxisZ
}

// IsPoint reports whether the box has collapsed to a single point
func (aabb AABB) IsPoint() bool {
	return aabb.Min == aabb.Max
}

// IsEmpty reports whether the box is inverted along any axis
func (aabb AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X ||
		aabb.Min.Y > aabb.Max.Y ||
		aabb.Min.Z > aabb.Max.Z
}

// Contains reports whether p lies inside the box, boundary included
func (aabb AABB) Contains(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}

// Offset returns the position of p relative to the box corners: 0 at Min
// and 1 at Max on every axis with a positive extent.
func (aabb AABB) Offset(p Vec3) Vec3 {
	o := p.Subtract(aabb.Min)
	if aabb.Max.X > aabb.Min.X {
		o.X /= aabb.Max.X - aabb.Min.X
	}
	if aabb.Max.Y > aabb.Min.Y {
		o.Y /= aabb.Max.Y - aabb.Min.Y
	}
	if aabb.Max.Z > aabb.Min.Z {
		o.Z /= aabb.Max.Z - aabb.Min.Z
	}
	return o
}

// NormalizedBy rescales the box into the unit cube spanned by world
func (aabb AABB) NormalizedBy(world AABB) AABB {
	return AABB{
		Min: world.Offset(aabb.Min),
		Max: world.Offset(aabb.Max),
	}
}

// IntersectP clips the ray against the box using the slab method and
// returns the parametric range [t0, t1] inside it, limited to [0, ray.TMax].
func (aabb AABB) IntersectP(ray Ray) (t0, t1 float64, ok bool) {
	t0, t1 = 0, ray.TMax
	for axis := AxisX; axis <= AxisZ; axis++ {
		invDirection := 1 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		tNear := (aabb.Min.Axis(axis) - origin) * invDirection
		tFar := (aabb.Max.Axis(axis) - origin) * invDirection
		if invDirection < 0 {
			tNear, tFar = tFar, tNear
		}
		tFar *= slabScale

		// NaN from 0*Inf (origin on a slab plane of a parallel ray) fails
		// both comparisons and leaves the interval untouched.
		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}
		if t0 > t1 || math.IsInf(t0, 1) {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// HitInv is the traversal form of IntersectP. invDir and dirIsNeg are
// computed once per ray; dirIsNeg must be derived from invDir so that a
// negative zero direction selects the swapped slab planes.
func (aabb AABB) HitInv(ray Ray, invDir Vec3, dirIsNeg [3]bool) bool {
	t0, t1 := 0.0, ray.TMax
	for axis := AxisX; axis <= AxisZ; axis++ {
		near, far := aabb.Min.Axis(axis), aabb.Max.Axis(axis)
		if dirIsNeg[axis] {
			near, far = far, near
		}
		origin := ray.Origin.Axis(axis)
		inv := invDir.Axis(axis)

		tNear := (near - origin) * inv
		tFar := (far - origin) * inv * slabScale
		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}
		if t0 > t1 {
			return false
		}
	}
	return !math.IsInf(t0, 1)
}
