package accel

import (
	"github.com/df07/raycore/pkg/core"
)

const errStackOverflow = "accel: traversal stack overflow, tree deeper than builder limit"

// traversalState holds the per-ray values shared by both walks
type traversalState struct {
	invDir   core.Vec3
	dirIsNeg [3]bool
}

func newTraversalState(ray core.Ray) traversalState {
	invDir := ray.Direction.Reciprocal()
	return traversalState{
		invDir: invDir,
		// Taken from the reciprocal so -0 counts as negative, matching the
		// sign of the infinities the slab test divides by.
		dirIsNeg: [3]bool{invDir.X < 0, invDir.Y < 0, invDir.Z < 0},
	}
}

// Intersect finds the closest primitive hit along the ray. On a hit,
// ray.TMax is left at the hit distance.
func (bvh *BVH) Intersect(ray *core.Ray) (*core.HitRecord, bool) {
	if len(bvh.nodes) == 0 {
		return nil, false
	}

	state := newTraversalState(*ray)
	var stack [maxTreeDepth]uint32
	sp := 0
	current := uint32(0)

	var closest *core.HitRecord
	for {
		node := &bvh.nodes[current]
		if node.Bounds.HitInv(*ray, state.invDir, state.dirIsNeg) {
			if node.nPrims == 0 {
				if sp == len(stack) {
					panic(errStackOverflow)
				}
				// Visit the child on the near side of the split first
				if state.dirIsNeg[node.axis] {
					stack[sp] = current + 1
					current = node.offset
				} else {
					stack[sp] = node.offset
					current++
				}
				sp++
				continue
			}

			// Each hit shrinks ray.TMax, so later hits are always closer
			for _, prim := range bvh.prims[node.offset : node.offset+uint32(node.nPrims)] {
				if hit, ok := prim.Intersect(ray); ok {
					closest = hit
				}
			}
		}

		if sp == 0 {
			break
		}
		sp--
		current = stack[sp]
	}

	return closest, closest != nil
}

// IntersectTest reports whether the ray hits any primitive. It returns on
// the first hit found rather than the closest.
func (bvh *BVH) IntersectTest(ray core.Ray) bool {
	if len(bvh.nodes) == 0 {
		return false
	}

	state := newTraversalState(ray)
	var stack [maxTreeDepth]uint32
	sp := 0
	current := uint32(0)

	for {
		node := &bvh.nodes[current]
		if node.Bounds.HitInv(ray, state.invDir, state.dirIsNeg) {
			if node.nPrims == 0 {
				if sp == len(stack) {
					panic(errStackOverflow)
				}
				if state.dirIsNeg[node.axis] {
					stack[sp] = current + 1
					current = node.offset
				} else {
					stack[sp] = node.offset
					current++
				}
				sp++
				continue
			}

			for _, prim := range bvh.prims[node.offset : node.offset+uint32(node.nPrims)] {
				if prim.IntersectTest(ray) {
					return true
				}
			}
		}

		if sp == 0 {
			break
		}
		sp--
		current = stack[sp]
	}

	return false
}
