package core

import (
	"cmp"
	"slices"
)

// mortonBits is the fixed point precision per axis; three axes fit in a uint32.
const mortonBits = 10

// Morton3 interleaves the bits of a point in the unit cube into a 30-bit
// Morton (Z-order) code. Coordinates outside [0, 1) are clamped.
func Morton3(p Vec3) uint32 {
	xx := expandBits(toFixedPoint(p.X))
	yy := expandBits(toFixedPoint(p.Y))
	zz := expandBits(toFixedPoint(p.Z))
	return (xx << 2) | (yy << 1) | zz
}

// toFixedPoint maps [0, 1) to a 10-bit integer
func toFixedPoint(v float64) uint32 {
	const scale = 1 << mortonBits
	f := v * scale
	if !(f > 0) {
		return 0
	}
	if f >= scale-1 {
		return scale - 1
	}
	return uint32(f)
}

// expandBits spreads the low 10 bits of v so two zero bits follow each one
func expandBits(v uint32) uint32 {
	v &= 0x3FF
	v = (v * 0x00010001) & 0xFF0000FF
	v = (v * 0x00000101) & 0x0F00F00F
	v = (v * 0x00000011) & 0xC30C30C3
	v = (v * 0x00000005) & 0x49249249
	return v
}

// MortonOrder returns the permutation that sorts prims by the Morton code
// of their centroids, normalized to the bounds of all centroids. Pass the
// result to ApplyPermutation to reorder the slice.
func MortonOrder(prims []Primitive) []int {
	centroids := make([]Vec3, len(prims))
	centroidBounds := EmptyAABB()
	for i, prim := range prims {
		centroids[i] = prim.WorldBound().Centroid()
		centroidBounds = centroidBounds.UnionPoint(centroids[i])
	}

	codes := make([]uint32, len(prims))
	order := make([]int, len(prims))
	for i, c := range centroids {
		codes[i] = Morton3(centroidBounds.Offset(c))
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(codes[a], codes[b])
	})
	return order
}
