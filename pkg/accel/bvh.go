// Package accel provides a bounding volume hierarchy over core.Primitive
// values. A BVH is built once, flattened into a depth-first node array and
// is read-only afterwards, so a single instance can be traversed from any
// number of goroutines.
package accel

import (
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/df07/raycore/pkg/core"
)

// SplitMethod selects how the builder partitions primitives at interior nodes
type SplitMethod int

const (
	// SplitMiddle partitions at the midpoint of the centroid bounds
	SplitMiddle SplitMethod = iota
	// SplitEqualCounts partitions at the median centroid
	SplitEqualCounts
	// SplitSAH picks the cheapest of a set of bucketed candidate splits
	// according to the surface area heuristic
	SplitSAH
)

// String returns the configuration name of the split method
func (m SplitMethod) String() string {
	switch m {
	case SplitMiddle:
		return "middle"
	case SplitEqualCounts:
		return "equal_counts"
	case SplitSAH:
		return "sah"
	default:
		return "unknown"
	}
}

// ParseSplitMethod parses a split method name as produced by String
func ParseSplitMethod(name string) (SplitMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "middle":
		return SplitMiddle, nil
	case "equal_counts", "equalcounts", "median":
		return SplitEqualCounts, nil
	case "sah":
		return SplitSAH, nil
	default:
		return SplitMiddle, errors.Errorf("unknown split method %q", name)
	}
}

// LinearNode is a node of the flattened tree. Interior nodes store their
// first child in the next array slot, so only the second child's index is
// kept. The struct fits in a single 64-byte cache line.
type LinearNode struct {
	Bounds core.AABB
	offset uint32    // first primitive for leaves, second child for interior nodes
	nPrims uint16    // 0 for interior nodes
	axis   core.Axis // split axis of interior nodes
}

// IsLeaf reports whether the node references primitives
func (n LinearNode) IsLeaf() bool {
	return n.nPrims > 0
}

// PrimitiveRange returns the first primitive index and primitive count of a leaf
func (n LinearNode) PrimitiveRange() (first, count int) {
	return int(n.offset), int(n.nPrims)
}

// SecondChild returns the array index of an interior node's second child
func (n LinearNode) SecondChild() int {
	return int(n.offset)
}

// SplitAxis returns the axis an interior node was split on
func (n LinearNode) SplitAxis() core.Axis {
	return n.axis
}

// BVH is a bounding volume hierarchy. It is immutable after Build.
type BVH struct {
	prims       []core.Primitive
	bounds      core.AABB
	nodes       []LinearNode
	splitMethod SplitMethod
}

type options struct {
	splitMethod SplitMethod
	logger      *zap.Logger
}

// Option configures Build
type Option func(*options)

// WithSplitMethod selects the partitioning strategy
func WithSplitMethod(method SplitMethod) Option {
	return func(o *options) {
		o.splitMethod = method
	}
}

// WithLogger reports build statistics to logger at debug level
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New builds a BVH with the default middle split
func New(prims []core.Primitive) *BVH {
	return Build(prims)
}

// Build constructs a BVH over prims. The slice itself is not modified; the
// BVH keeps its own copy, reordered so that every leaf references a
// contiguous run of primitives.
func Build(prims []core.Primitive, opts ...Option) *BVH {
	o := options{
		splitMethod: SplitMiddle,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if len(prims) == 0 {
		return &BVH{bounds: core.EmptyAABB(), splitMethod: o.splitMethod}
	}
	if uint64(len(prims)) > math.MaxUint32 {
		panic("accel: too many primitives for 32-bit node offsets")
	}

	start := time.Now()

	info := make([]primInfo, len(prims))
	for i, prim := range prims {
		info[i] = newPrimInfo(i, prim.WorldBound())
	}

	b := newBuilder(len(prims), o.splitMethod)
	root := b.recursiveBuild(info, 0)

	ordered := make([]core.Primitive, len(prims))
	copy(ordered, prims)
	core.ApplyPermutation(ordered, b.ordering)

	nodes := flattenTree(b.nodes, root)

	o.logger.Debug("bvh built",
		zap.Int("primitives", len(prims)),
		zap.Stringer("split", o.splitMethod),
		zap.Int("nodes", len(nodes)),
		zap.Int("leaves", b.leaves),
		zap.Int("maxDepth", b.maxDepth),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &BVH{
		prims:       ordered,
		bounds:      b.nodes[root].bounds,
		nodes:       nodes,
		splitMethod: o.splitMethod,
	}
}

// WorldBound returns the bounds of every primitive in the hierarchy
func (bvh *BVH) WorldBound() core.AABB {
	return bvh.bounds
}

// Primitives returns the primitives in leaf order. The slice is shared and must not be modified.
func (bvh *BVH) Primitives() []core.Primitive {
	return bvh.prims
}

// Nodes returns the flattened nodes in depth-first order. The slice is shared and must not be modified.
func (bvh *BVH) Nodes() []LinearNode {
	return bvh.nodes
}

// SplitMethod returns the strategy the BVH was built with
func (bvh *BVH) SplitMethod() SplitMethod {
	return bvh.splitMethod
}
