package cmd

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/scene"
)

// VerifyFlags are the flags of the verify command.
var VerifyFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "rays, r",
		Value: 10000,
		Usage: "number of random rays to check",
	},
	cli.Int64Flag{
		Name:  "ray-seed",
		Value: 7,
		Usage: "random seed for ray generation",
	},
}

// verifyReport counts disagreements between the BVH and a linear scan.
type verifyReport struct {
	Rays              int
	Hits              int
	HitMismatches     int // Intersect disagreed on whether or where a hit is
	OcclusionMismatch int // IntersectTest disagreed
}

func (r verifyReport) ok() bool {
	return r.HitMismatches == 0 && r.OcclusionMismatch == 0
}

// verifyScene casts random rays from inside the scene's bounding sphere and
// compares the hierarchy against testing every top-level primitive.
func verifyScene(s *scene.Scene, rays int, seed int64) verifyReport {
	sampler := core.NewSeededSampler(seed)
	radius := math.Max(s.Radius, 1)
	report := verifyReport{Rays: rays}

	for i := 0; i < rays; i++ {
		origin := s.Center.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(radius))
		direction := core.SampleOnUnitSphere(sampler.Get2D())

		ray := core.NewRay(origin, direction)
		hit, isHit := s.BVH.Intersect(&ray)

		linear := core.NewRay(origin, direction)
		var expected *core.HitRecord
		for _, prim := range s.Primitives {
			if h, ok := prim.Intersect(&linear); ok {
				expected = h
			}
		}

		if isHit {
			report.Hits++
		}
		switch {
		case isHit != (expected != nil):
			report.HitMismatches++
		case isHit && math.Abs(hit.T-expected.T) > 1e-9*math.Max(1, expected.T):
			report.HitMismatches++
		}

		test := core.NewRay(origin, direction)
		if s.BVH.IntersectTest(test) != (expected != nil) {
			report.OcclusionMismatch++
		}
	}
	return report
}

// Verify checks the configured scene's BVH against a linear scan and fails
// if any random ray gets a different answer.
func Verify(ctx *cli.Context) error {
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer env.log.Sync()

	if ctx.Int("rays") <= 0 {
		return errors.Errorf("rays must be positive, got %d", ctx.Int("rays"))
	}

	s, err := env.buildScene()
	if err != nil {
		return err
	}

	report := verifyScene(s, ctx.Int("rays"), ctx.Int64("ray-seed"))
	env.log.Info("verification finished",
		zap.Int("rays", report.Rays),
		zap.Int("hits", report.Hits),
		zap.Int("hit_mismatches", report.HitMismatches),
		zap.Int("occlusion_mismatches", report.OcclusionMismatch))

	fmt.Fprintf(ctx.App.Writer, "%d rays, %d hits, %d hit mismatches, %d occlusion mismatches\n",
		report.Rays, report.Hits, report.HitMismatches, report.OcclusionMismatch)
	if !report.ok() {
		return errors.Errorf("bvh disagrees with linear scan on %d of %d rays",
			max(report.HitMismatches, report.OcclusionMismatch), report.Rays)
	}
	return nil
}
