package scene

import (
	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
)

func meshOptions(center, rotation core.Vec3, p Params) *geometry.TriangleMeshOptions {
	opts := &geometry.TriangleMeshOptions{
		SplitMethod: p.SplitMethod,
		Logger:      p.Logger,
	}
	if rotation != (core.Vec3{}) {
		opts.Rotation = &rotation
		opts.Center = &center
	}
	return opts
}

// newPyramidMesh creates a square-based pyramid centered on center
func newPyramidMesh(center core.Vec3, baseSize, height float64, rotation, color core.Vec3, p Params) *geometry.TriangleMesh {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-halfBase, -halfHeight, -halfBase)), // 0: left-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, -halfBase)), // 1: right-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, +halfBase)), // 2: right-front
		center.Add(core.NewVec3(-halfBase, -halfHeight, +halfBase)), // 3: left-front
		center.Add(core.NewVec3(0, +halfHeight, 0)),                 // 4: apex
	}

	faces := []int{
		// Base
		0, 2, 1, 0, 3, 2,
		// Sides
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
	}

	return geometry.NewTriangleMesh(vertices, faces, color, meshOptions(center, rotation, p))
}

// newIcosahedronMesh creates a 20-sided polyhedron with its vertices at radius from center
func newIcosahedronMesh(center core.Vec3, radius float64, rotation, color core.Vec3, p Params) *geometry.TriangleMesh {
	const phi = 1.618033988749895 // (1 + sqrt(5)) / 2

	// Unscaled vertices lie at distance sqrt(1 + phi²) from the origin
	scale := radius / 1.902113032590307

	unit := []core.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	vertices := make([]core.Vec3, len(unit))
	for i, v := range unit {
		vertices[i] = center.Add(v.Multiply(scale))
	}

	faces := []int{
		// 5 faces around point 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// 5 adjacent faces
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// 5 faces around point 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// 5 adjacent faces
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return geometry.NewTriangleMesh(vertices, faces, color, meshOptions(center, rotation, p))
}
