package geometry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/df07/raycore/pkg/accel"
	"github.com/df07/raycore/pkg/core"
)

// TriangleMesh represents a collection of triangles with efficient ray intersection.
// It uses an internal BVH for fast intersection tests and is itself a
// primitive, so a mesh can be placed inside a scene-level BVH.
type TriangleMesh struct {
	triangles []core.Primitive
	bvh       *accel.BVH
	color     core.Vec3
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals     []core.Vec3 // Optional custom normals (one per triangle)
	Colors      []core.Vec3 // Optional per-triangle colors
	Rotation    *core.Vec3  // Optional rotation to apply to vertices
	Center      *core.Vec3  // Optional center point for rotation
	SplitMethod accel.SplitMethod
	Logger      *zap.Logger
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices
// vertices: array of 3D points
// faces: array of triangle indices (each group of 3 indices forms a triangle)
// color: default color for all triangles
// options: optional parameters (can be nil for basic mesh)
func NewTriangleMesh(vertices []core.Vec3, faces []int, color core.Vec3, options *TriangleMeshOptions) *TriangleMesh {
	if len(faces)%3 != 0 {
		panic("geometry: face indices must be a multiple of 3")
	}

	numTriangles := len(faces) / 3
	if options == nil {
		options = &TriangleMeshOptions{}
	}
	if options.Normals != nil && len(options.Normals) != numTriangles {
		panic("geometry: number of normals must match number of triangles")
	}
	if options.Colors != nil && len(options.Colors) != numTriangles {
		panic("geometry: number of colors must match number of triangles")
	}

	// Translate to center, rotate, then translate back
	workingVertices := vertices
	if options.Rotation != nil {
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = vertex.Rotate(*options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
			workingVertices[i] = vertex
		}
	}

	triangles := make([]core.Primitive, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(workingVertices) {
				panic(fmt.Sprintf("geometry: face %d references vertex %d of %d", i, idx, len(workingVertices)))
			}
		}

		triangleColor := color
		if options.Colors != nil {
			triangleColor = options.Colors[i]
		}

		if options.Normals != nil {
			triangles[i] = NewTriangleWithNormal(workingVertices[i0], workingVertices[i1], workingVertices[i2], options.Normals[i], triangleColor)
		} else {
			triangles[i] = NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2], triangleColor)
		}
	}

	buildOpts := []accel.Option{accel.WithSplitMethod(options.SplitMethod)}
	if options.Logger != nil {
		buildOpts = append(buildOpts, accel.WithLogger(options.Logger.With(zap.String("mesh", "triangles"))))
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       accel.Build(triangles, buildOpts...),
		color:     color,
	}
}

// Intersect tests if a ray intersects with any triangle in the mesh.
// The hit record names the triangle that was hit.
func (tm *TriangleMesh) Intersect(ray *core.Ray) (*core.HitRecord, bool) {
	return tm.bvh.Intersect(ray)
}

func (tm *TriangleMesh) IntersectTest(ray core.Ray) bool {
	return tm.bvh.IntersectTest(ray)
}

// WorldBound returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) WorldBound() core.AABB {
	return tm.bvh.WorldBound()
}

func (tm *TriangleMesh) Albedo() core.Vec3 {
	return tm.color
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Triangles returns the individual triangles in their original order
func (tm *TriangleMesh) Triangles() []core.Primitive {
	return tm.triangles
}

// BVH returns the mesh's internal hierarchy
func (tm *TriangleMesh) BVH() *accel.BVH {
	return tm.bvh
}
