package renderer

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/df07/raycore/pkg/accel"
	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
)

var gray = core.NewVec3(0.7, 0.7, 0.7)

// topDownCamera looks straight down at the origin from y=10
func topDownCamera(size int) *Camera {
	return NewCamera(CameraConfig{
		Center: core.NewVec3(0, 10, 0),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 0, -1),
		Width:  size,
		Height: size,
		VFov:   20,
	})
}

func groundQuad() *geometry.Quad {
	return geometry.NewQuad(core.NewVec3(-10, 0, -10), core.NewVec3(0, 0, 20), core.NewVec3(20, 0, 0), gray)
}

func lightConfig() Config {
	config := DefaultConfig()
	config.LightDirection = core.NewVec3(1, 1, 0)
	config.TileSize = 4
	config.NumWorkers = 2
	return config
}

func TestRender_ShadowRays(t *testing.T) {
	// The occluder sits on the light path from the origin but outside the view
	occluder := geometry.NewSphere(core.NewVec3(3, 3, 0), 1, gray)
	lit := accel.Build([]core.Primitive{groundQuad()})
	shadowed := accel.Build([]core.Primitive{groundQuad(), occluder})

	camera := topDownCamera(9)
	litImage, litStats, err := Render(context.Background(), lit, camera, lightConfig(), nil)
	require.NoError(t, err)
	shadowImage, shadowStats, err := Render(context.Background(), shadowed, camera, lightConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, 81, litStats.Hits)
	assert.Equal(t, 81, shadowStats.Hits)
	assert.Equal(t, 81, litStats.ShadowRays)
	assert.Zero(t, litStats.Occluded)
	assert.Positive(t, shadowStats.Occluded)

	center := litImage.RGBAAt(4, 4)
	shadowCenter := shadowImage.RGBAAt(4, 4)
	assert.Greater(t, center.R, shadowCenter.R)

	// In shadow only the ambient term remains
	assert.Equal(t, vec3ToColor(gray.Multiply(0.1)), shadowCenter)
}

func TestRender_Background(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		Width:  16,
		Height: 16,
		VFov:   90,
	})

	img, stats, err := Render(context.Background(), accel.Build(nil), camera, DefaultConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
	assert.Equal(t, 256, stats.PrimaryRays)
	assert.Equal(t, 256, stats.TotalPixels)
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.ShadowRays)
	assert.Zero(t, stats.HitRate())

	// Default gradient goes from white at the bottom to blue at the top
	top := img.RGBAAt(8, 0)
	bottom := img.RGBAAt(8, 15)
	assert.Less(t, top.R, bottom.R)
	assert.GreaterOrEqual(t, top.B, uint8(254))
}

func TestRender_Stats(t *testing.T) {
	prims := []core.Primitive{groundQuad(), geometry.NewSphere(core.NewVec3(0, 1, 0), 1, gray)}
	camera := topDownCamera(20)

	config := lightConfig()
	config.TileSize = 8
	_, stats, err := Render(context.Background(), accel.Build(prims), camera, config, nil)
	require.NoError(t, err)

	assert.Equal(t, 9, stats.Tiles)
	assert.Equal(t, 2, stats.Workers)
	assert.Equal(t, 400, stats.PrimaryRays)
	assert.Equal(t, 400, stats.Hits)
	assert.InDelta(t, 1.0, stats.HitRate(), 1e-12)
	assert.Equal(t, stats.PrimaryRays+stats.ShadowRays, stats.TotalRays())
	assert.Positive(t, stats.Elapsed)
	assert.GreaterOrEqual(t, stats.SlowestTile, stats.TileP95)
	assert.GreaterOrEqual(t, stats.SlowestTile, stats.TileMean)
}

func TestRender_MatchesAcrossWorkerCounts(t *testing.T) {
	prims := []core.Primitive{groundQuad(), geometry.NewSphere(core.NewVec3(0.5, 1, 0), 1, core.NewVec3(0.9, 0.2, 0.1))}
	bvh := accel.Build(prims, accel.WithSplitMethod(accel.SplitSAH))
	camera := topDownCamera(24)

	serial := lightConfig()
	serial.NumWorkers = 1
	parallel := lightConfig()
	parallel.NumWorkers = 8
	parallel.TileSize = 5

	a, _, err := Render(context.Background(), bvh, camera, serial, nil)
	require.NoError(t, err)
	b, _, err := Render(context.Background(), bvh, camera, parallel, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Pix, b.Pix)
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, stats, err := Render(ctx, accel.Build([]core.Primitive{groundQuad()}), topDownCamera(8), lightConfig(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, img)
	assert.Zero(t, stats.Tiles)
}

func TestRender_InvalidConfig(t *testing.T) {
	target := accel.Build(nil)

	config := DefaultConfig()
	config.TileSize = 0
	_, _, err := Render(context.Background(), target, topDownCamera(4), config, nil)
	assert.Error(t, err)

	config = DefaultConfig()
	config.Ambient = 1.5
	_, _, err = Render(context.Background(), target, topDownCamera(4), config, nil)
	assert.Error(t, err)

	_, _, err = Render(context.Background(), target, topDownCamera(0), DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestRender_Logs(t *testing.T) {
	observed, logs := observer.New(zap.DebugLevel)

	_, _, err := Render(context.Background(), accel.Build(nil), topDownCamera(4), DefaultConfig(), zap.New(observed))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("render started").Len())
	complete := logs.FilterMessage("render complete").All()
	require.Len(t, complete, 1)
	assert.Equal(t, int64(16), complete[0].ContextMap()["pixels"])
}

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		input    core.Vec3
		expected color.RGBA
	}{
		{core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{core.NewVec3(0, 0, 0), color.RGBA{0, 0, 0, 255}},
		{core.NewVec3(0.25, 0.25, 0.25), color.RGBA{127, 127, 127, 255}},
		{core.NewVec3(2, -1, 0), color.RGBA{255, 0, 0, 255}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, vec3ToColor(tt.input), "%v", tt.input)
	}
}

func TestSummarizeTiles(t *testing.T) {
	results := []TileResult{
		{TileID: 0, PrimaryRays: 10, ShadowRays: 4, Hits: 6, Occluded: 1, Duration: 1 * time.Second},
		{TileID: 1, PrimaryRays: 10, ShadowRays: 2, Hits: 3, Duration: 2 * time.Second},
		{TileID: 2}, // never rendered
		{TileID: 3, PrimaryRays: 10, Duration: 3 * time.Second},
		{TileID: 4, PrimaryRays: 10, ShadowRays: 4, Hits: 5, Occluded: 2, Duration: 4 * time.Second},
	}

	stats := summarizeTiles(results, 2*time.Second)

	assert.Equal(t, 4, stats.Tiles)
	assert.Equal(t, 40, stats.PrimaryRays)
	assert.Equal(t, 10, stats.ShadowRays)
	assert.Equal(t, 14, stats.Hits)
	assert.Equal(t, 3, stats.Occluded)
	assert.Equal(t, 2500*time.Millisecond, stats.TileMean)
	assert.InDelta(t, 1.2910, stats.TileStdDev.Seconds(), 1e-4)
	assert.Equal(t, 4*time.Second, stats.TileP95)
	assert.Equal(t, 4*time.Second, stats.SlowestTile)
	assert.InDelta(t, 25.0, stats.RaysPerSecond, 1e-12)
}

func TestSummarizeTiles_Empty(t *testing.T) {
	stats := summarizeTiles(nil, time.Second)
	assert.Zero(t, stats.Tiles)
	assert.Zero(t, stats.TileMean)
	assert.Zero(t, stats.RaysPerSecond)

	single := summarizeTiles([]TileResult{{PrimaryRays: 1, Duration: time.Millisecond}}, time.Millisecond)
	assert.Zero(t, single.TileStdDev)
}

func TestCalculateAverageLuminance(t *testing.T) {
	// Red, green, blue and black average to (0.2126 + 0.7152 + 0.0722) / 4
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	assert.InDelta(t, 0.25, CalculateAverageLuminance(img), 1e-4)
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	assert.InDelta(t, 1.0, CalculateAverageLuminance(img), 1e-4)
	assert.Zero(t, CalculateAverageLuminance(image.NewRGBA(image.Rect(0, 0, 0, 0))))
}
