package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/raycore/pkg/accel"
	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
	"github.com/df07/raycore/pkg/renderer"
	"github.com/df07/raycore/pkg/scene"
)

// brokenPrimitive reports hits through Intersect but never through IntersectTest
type brokenPrimitive struct {
	*geometry.Sphere
}

func (b brokenPrimitive) IntersectTest(ray core.Ray) bool { return false }

func TestVerifyScene_Agrees(t *testing.T) {
	for _, method := range []accel.SplitMethod{accel.SplitMiddle, accel.SplitEqualCounts, accel.SplitSAH} {
		t.Run(method.String(), func(t *testing.T) {
			prims, err := scene.Generate("random_spheres", scene.Params{Count: 200, Seed: 5})
			require.NoError(t, err)
			s := scene.New("verify", prims, scene.Options{SplitMethod: method})

			report := verifyScene(s, 1000, 3)
			assert.True(t, report.ok(), "%+v", report)
			assert.Equal(t, 1000, report.Rays)
			assert.Positive(t, report.Hits)
		})
	}
}

func TestVerifyScene_DetectsDisagreement(t *testing.T) {
	prims := []core.Primitive{brokenPrimitive{geometry.NewSphere(core.NewVec3(0, 0, 0), 5, geometry.DefaultAlbedo)}}
	s := scene.New("broken", prims, scene.Options{})

	report := verifyScene(s, 100, 1)
	assert.False(t, report.ok())
	assert.Positive(t, report.Hits)
	assert.Zero(t, report.HitMismatches)
	assert.Equal(t, report.Hits, report.OcclusionMismatch)
}

func TestFmtBytes(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{64 * 1500, "93.8 KiB"},
		{3 << 20, "3.0 MiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, fmtBytes(tt.n))
	}
}

func TestWriteTables(t *testing.T) {
	s := scene.New("grid", scene.SphereGrid(scene.Params{GridSize: 2}), scene.Options{SplitMethod: accel.SplitSAH})

	var buf bytes.Buffer
	writeSceneTable(&buf, s)
	assert.Contains(t, buf.String(), "sah")
	assert.Regexp(t, `Primitive objects\s*\|\s*5\s`, buf.String())

	buf.Reset()
	writeRenderTable(&buf, renderer.RenderStats{
		TotalPixels: 100,
		Tiles:       4,
		Workers:     2,
		PrimaryRays: 100,
		Hits:        25,
		Elapsed:     time.Second,
	})
	assert.Contains(t, buf.String(), "100 (25.0% hit)")
	assert.Contains(t, buf.String(), "4 on 2 workers")
}
