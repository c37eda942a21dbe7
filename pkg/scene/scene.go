// Package scene assembles primitives into a renderable scene: it generates
// procedural geometry, optionally presorts it and builds the BVH over it.
package scene

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/df07/raycore/pkg/accel"
	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
)

// Presort selects an ordering applied to primitives before the BVH is built
type Presort int

const (
	PresortNone Presort = iota
	// PresortMorton orders primitives along a Z-order curve over their centroids
	PresortMorton
)

func (p Presort) String() string {
	switch p {
	case PresortMorton:
		return "morton"
	default:
		return "none"
	}
}

// ParsePresort parses a presort name as produced by String
func ParsePresort(name string) (Presort, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return PresortNone, nil
	case "morton":
		return PresortMorton, nil
	default:
		return PresortNone, errors.Errorf("unknown presort %q", name)
	}
}

// Scene contains the primitives to render and the hierarchy built over them
type Scene struct {
	Name       string
	Primitives []core.Primitive // Top-level primitives, in presorted order
	BVH        *accel.BVH

	// Bounding sphere of the whole scene
	Center core.Vec3
	Radius float64

	BuildTime time.Duration
}

// Options controls how a scene's hierarchy is built
type Options struct {
	SplitMethod accel.SplitMethod
	Presort     Presort
	Logger      *zap.Logger
}

// New presorts prims as requested and builds the scene BVH over them.
// prims is reordered in place when a presort is selected.
func New(name string, prims []core.Primitive, opts Options) *Scene {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.Presort == PresortMorton && len(prims) > 1 {
		core.ApplyPermutation(prims, core.MortonOrder(prims))
	}

	start := time.Now()
	bvh := accel.Build(prims,
		accel.WithSplitMethod(opts.SplitMethod),
		accel.WithLogger(logger.With(zap.String("scene", name))),
	)
	buildTime := time.Since(start)

	s := &Scene{
		Name:       name,
		Primitives: prims,
		BVH:        bvh,
		BuildTime:  buildTime,
	}
	s.Center, s.Radius = BoundingSphere(bvh.WorldBound())

	logger.Info("scene ready",
		zap.String("scene", name),
		zap.Int("primitives", s.PrimitiveCount()),
		zap.Stringer("presort", opts.Presort),
		zap.Duration("build", buildTime),
	)
	return s
}

// BoundingSphere returns a sphere enclosing bounds. Empty bounds give a
// zero sphere at the origin.
func BoundingSphere(bounds core.AABB) (core.Vec3, float64) {
	if bounds.IsEmpty() {
		return core.Vec3{}, 0
	}
	center := bounds.Centroid()
	return center, bounds.Max.Subtract(center).Length()
}

// PrimitiveCount returns the total number of primitive objects in the scene,
// counting every triangle of a mesh
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, prim := range s.Primitives {
		count += countPrimitives(prim)
	}
	return count
}

// countPrimitives counts primitives in a single shape, handling aggregates
func countPrimitives(prim core.Primitive) int {
	switch obj := prim.(type) {
	case *geometry.TriangleMesh:
		return obj.TriangleCount()
	case *accel.BVH:
		count := 0
		for _, inner := range obj.Primitives() {
			count += countPrimitives(inner)
		}
		return count
	default:
		return 1
	}
}

// NewGroundQuad creates a horizontal square centered at the given point
// with its normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, color core.Vec3) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, color)
}
