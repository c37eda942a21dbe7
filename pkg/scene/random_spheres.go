package scene

import (
	"math"
	"math/rand"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
)

// RandomSpheres scatters Count spheres through a cube of half-width Radius.
// Sphere sizes shrink as the count grows so density stays comparable.
func RandomSpheres(p Params) []core.Primitive {
	count := orDefault(p.Count, 1000)
	extent := orDefault(p.Radius, 10.0)
	sampler := core.NewSeededSampler(orDefault(p.Seed, 1))

	volume := core.NewAABB(
		core.NewVec3(-extent, -extent, -extent),
		core.NewVec3(extent, extent, extent),
	)

	// Total sphere volume stays roughly constant as the count grows
	meanRadius := extent * 0.3 / math.Cbrt(float64(count))

	prims := make([]core.Primitive, count)
	for i := range prims {
		center := core.SampleInBox(volume, sampler.Get3D())
		radius := meanRadius * (0.5 + sampler.Get1D())
		color := core.NewVec3(0.2, 0.2, 0.2).Add(sampler.Get3D().Multiply(0.8))
		prims[i] = geometry.NewSphere(center, radius, color)
	}
	return prims
}

// shuffle is used by generators mixing several kinds of shapes so that
// input order carries no spatial coherence
func shuffle(random *rand.Rand, prims []core.Primitive) {
	random.Shuffle(len(prims), func(i, j int) {
		prims[i], prims[j] = prims[j], prims[i]
	})
}
