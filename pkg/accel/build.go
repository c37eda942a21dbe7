package accel

import (
	"math"

	"github.com/df07/raycore/pkg/core"
)

const (
	// maxTreeDepth bounds the depth of any tree the builder produces and is
	// the capacity of the traversal stack.
	maxTreeDepth = 64

	// Below this depth the configured split method is used. Deeper nodes
	// are split at the median, which halves the primitive count per level,
	// so a subtree over at most 2^32 primitives stays within maxTreeDepth.
	equalCountsDepth = maxTreeDepth - 32

	// Leaf primitive counts are stored in 16 bits
	maxPrimsInLeaf = math.MaxUint16

	sahBuckets       = 12
	sahTraversalCost = 0.125
)

// primInfo is the per-primitive record the builder sorts and partitions
type primInfo struct {
	index    int
	bounds   core.AABB
	centroid core.Vec3
}

func newPrimInfo(index int, bounds core.AABB) primInfo {
	return primInfo{index: index, bounds: bounds, centroid: bounds.Centroid()}
}

// buildNode is a node of the intermediate tree. Nodes live in the builder's
// arena slice and refer to their children by index; the arena is dropped
// as soon as the tree has been flattened.
type buildNode struct {
	bounds          core.AABB
	children        [2]int32
	firstPrimOffset uint32
	nPrims          uint16 // 0 for interior nodes
	splitAxis       core.Axis
}

type builder struct {
	method SplitMethod
	nodes  []buildNode

	// ordering collects original primitive indices in leaf order
	ordering []int

	// scratch backs the stable partitions
	scratch []primInfo

	leaves   int
	maxDepth int
}

func newBuilder(nPrims int, method SplitMethod) *builder {
	return &builder{
		method:   method,
		nodes:    make([]buildNode, 0, 2*nPrims-1),
		ordering: make([]int, 0, nPrims),
		scratch:  make([]primInfo, 0, nPrims),
	}
}

// recursiveBuild builds the subtree over info and returns its arena index.
// info is reordered in place.
func (b *builder) recursiveBuild(info []primInfo, depth int) int32 {
	if depth > b.maxDepth {
		b.maxDepth = depth
	}

	nodeBounds := core.EmptyAABB()
	centroidBounds := core.EmptyAABB()
	for i := range info {
		nodeBounds = nodeBounds.Union(info[i].bounds)
		centroidBounds = centroidBounds.UnionPoint(info[i].centroid)
	}

	n := len(info)
	if n == 1 || (centroidBounds.IsPoint() && n <= maxPrimsInLeaf) {
		return b.makeLeaf(info, nodeBounds)
	}

	axis := centroidBounds.MaximumExtent()
	mid := b.split(info, axis, centroidBounds, nodeBounds, depth)

	left := b.recursiveBuild(info[:mid], depth+1)
	right := b.recursiveBuild(info[mid:], depth+1)
	return b.makeInterior(axis, left, right)
}

// split partitions info along axis and returns the size of the first
// part. Both parts are always non-empty.
func (b *builder) split(info []primInfo, axis core.Axis, centroidBounds, nodeBounds core.AABB, depth int) int {
	method := b.method
	if depth >= equalCountsDepth {
		method = SplitEqualCounts
	}

	switch method {
	case SplitMiddle:
		midpoint := (centroidBounds.Min.Axis(axis) + centroidBounds.Max.Axis(axis)) / 2
		mid := b.partition(info, func(p *primInfo) bool {
			return p.centroid.Axis(axis) < midpoint
		})
		if mid > 0 && mid < len(info) {
			return mid
		}
		// Clustered centroids can leave one side empty; the median split
		// always makes progress.

	case SplitSAH:
		if mid, ok := b.partitionSAH(info, axis, centroidBounds, nodeBounds); ok {
			return mid
		}
	}

	return partitionEqualCounts(info, axis)
}

// partition moves the elements satisfying pred to the front of info,
// preserving relative order on both sides, and returns their count.
func (b *builder) partition(info []primInfo, pred func(*primInfo) bool) int {
	rest := b.scratch[:0]
	n := 0
	for i := range info {
		if pred(&info[i]) {
			info[n] = info[i]
			n++
		} else {
			rest = append(rest, info[i])
		}
	}
	copy(info[n:], rest)
	b.scratch = rest[:0]
	return n
}

// partitionEqualCounts places the median centroid along axis at len/2,
// with no greater centroid before it and no smaller one after it.
func partitionEqualCounts(info []primInfo, axis core.Axis) int {
	mid := len(info) / 2
	nthElement(info, mid, axis)
	return mid
}

// nthElement is a Hoare-style quickselect. It handles runs of equal keys
// without degrading and leaves info[k] in its sorted position.
func nthElement(info []primInfo, k int, axis core.Axis) {
	key := func(i int) float64 {
		return info[i].centroid.Axis(axis)
	}

	lo, hi := 0, len(info)-1
	for lo < hi {
		pivot := medianOfThree(key(lo), key(lo+(hi-lo)/2), key(hi))

		i, j := lo, hi
		for i <= j {
			for key(i) < pivot {
				i++
			}
			for key(j) > pivot {
				j--
			}
			if i <= j {
				info[i], info[j] = info[j], info[i]
				i++
				j--
			}
		}

		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			return
		}
	}
}

func medianOfThree(a, b, c float64) float64 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		b = a
	}
	return b
}

type sahBucket struct {
	count  int
	bounds core.AABB
}

// partitionSAH evaluates splits between equal-width centroid buckets and
// applies the cheapest one. It reports false when no split is cheaper than
// intersecting every primitive in a single leaf.
func (b *builder) partitionSAH(info []primInfo, axis core.Axis, centroidBounds, nodeBounds core.AABB) (int, bool) {
	n := len(info)
	if n <= 2 {
		return 0, false
	}

	lo := centroidBounds.Min.Axis(axis)
	extent := centroidBounds.Max.Axis(axis) - lo
	bucketOf := func(p *primInfo) int {
		i := int(sahBuckets * (p.centroid.Axis(axis) - lo) / extent)
		if i >= sahBuckets {
			i = sahBuckets - 1
		}
		if i < 0 {
			i = 0
		}
		return i
	}

	var buckets [sahBuckets]sahBucket
	for i := range buckets {
		buckets[i].bounds = core.EmptyAABB()
	}
	for i := range info {
		bucket := &buckets[bucketOf(&info[i])]
		bucket.count++
		bucket.bounds = bucket.bounds.Union(info[i].bounds)
	}

	nodeArea := nodeBounds.SurfaceArea()
	bestCost := math.Inf(1)
	bestSplit := -1
	for split := 0; split < sahBuckets-1; split++ {
		below, above := core.EmptyAABB(), core.EmptyAABB()
		countBelow, countAbove := 0, 0
		for i := 0; i <= split; i++ {
			below = below.Union(buckets[i].bounds)
			countBelow += buckets[i].count
		}
		for i := split + 1; i < sahBuckets; i++ {
			above = above.Union(buckets[i].bounds)
			countAbove += buckets[i].count
		}
		if countBelow == 0 || countAbove == 0 {
			continue
		}

		cost := sahTraversalCost +
			(float64(countBelow)*below.SurfaceArea()+float64(countAbove)*above.SurfaceArea())/nodeArea
		if cost < bestCost {
			bestCost = cost
			bestSplit = split
		}
	}

	leafCost := float64(n)
	if bestSplit < 0 || !(bestCost < leafCost) {
		return 0, false
	}

	mid := b.partition(info, func(p *primInfo) bool {
		return bucketOf(p) <= bestSplit
	})
	return mid, true
}

func (b *builder) makeLeaf(info []primInfo, bounds core.AABB) int32 {
	first := len(b.ordering)
	for i := range info {
		b.ordering = append(b.ordering, info[i].index)
	}
	b.leaves++

	b.nodes = append(b.nodes, buildNode{
		bounds:          bounds,
		firstPrimOffset: uint32(first),
		nPrims:          uint16(len(info)),
	})
	return int32(len(b.nodes) - 1)
}

func (b *builder) makeInterior(axis core.Axis, left, right int32) int32 {
	b.nodes = append(b.nodes, buildNode{
		bounds:    b.nodes[left].bounds.Union(b.nodes[right].bounds),
		children:  [2]int32{left, right},
		splitAxis: axis,
	})
	return int32(len(b.nodes) - 1)
}
