package scene

import (
	"math"
	"math/rand"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
)

// Mixed places Count objects of assorted kinds over a terrain mesh:
// analytic spheres, rotated boxes, pyramids and icosahedra. Meshes are
// aggregates with their own hierarchy, so the scene BVH nests them.
func Mixed(p Params) []core.Primitive {
	count := orDefault(p.Count, 200)
	extent := orDefault(p.Radius, 10.0)
	random := rand.New(rand.NewSource(orDefault(p.Seed, 1)))
	sampler := core.NewRandomSampler(random)

	terrainParams := p
	terrainParams.Radius = extent
	terrainParams.GridSize = orDefault(p.GridSize, 32)

	prims := make([]core.Primitive, 0, count+1)
	prims = append(prims, newTerrainMesh(terrainParams))

	// Objects float in a slab above the highest possible terrain point
	volume := core.NewAABB(
		core.NewVec3(-extent, extent*0.3, -extent),
		core.NewVec3(extent, extent, extent),
	)
	size := extent * 0.5 / math.Sqrt(float64(count))

	for i := 0; i < count; i++ {
		center := core.SampleInBox(volume, sampler.Get3D())
		color := oklchToRGB(0.7, 0.15, sampler.Get1D()*360)
		rotation := sampler.Get3D().Multiply(math.Pi)
		scale := size * (0.5 + sampler.Get1D())

		switch i % 4 {
		case 0:
			prims = append(prims, geometry.NewSphere(center, scale, color))
		case 1:
			prims = append(prims, geometry.NewBox(center, core.NewVec3(scale, scale*0.6, scale*0.8), rotation, color))
		case 2:
			prims = append(prims, newPyramidMesh(center, scale*2, scale*2, rotation, color, p))
		case 3:
			prims = append(prims, newIcosahedronMesh(center, scale, rotation, color, p))
		}
	}

	shuffle(random, prims)
	return prims
}
