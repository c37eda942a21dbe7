package accel

import (
	"math/rand"
	"testing"

	"github.com/df07/raycore/pkg/core"
)

func BenchmarkBuild(b *testing.B) {
	prims := randomSpheres(rand.New(rand.NewSource(1)), 10000)

	for _, method := range allSplitMethods {
		b.Run(method.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Build(prims, WithSplitMethod(method))
			}
		})
	}
}

func BenchmarkIntersect(b *testing.B) {
	random := rand.New(rand.NewSource(1))
	prims := randomSpheres(random, 10000)

	rays := make([]core.Ray, 1024)
	for i := range rays {
		direction := core.SampleOnUnitSphere(random.Float64(), random.Float64())
		rays[i] = core.NewRay(core.NewVec3(0, 0, 0), direction)
	}

	for _, method := range allSplitMethods {
		bvh := Build(prims, WithSplitMethod(method))
		b.Run(method.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ray := rays[i%len(rays)]
				bvh.Intersect(&ray)
			}
		})
		b.Run(method.String()+"/test", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				bvh.IntersectTest(rays[i%len(rays)])
			}
		})
	}
}
