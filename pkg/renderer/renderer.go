// Package renderer turns an acceleration structure into an image. It casts
// one primary ray per pixel and one shadow ray per lit hit, and shades with
// a single directional light. Tiles are rendered in parallel and share the
// scene read-only.
package renderer

import (
	"context"
	"image"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/df07/raycore/pkg/core"
)

// Config controls how an image is rendered
type Config struct {
	TileSize       int       // Tile edge in pixels
	NumWorkers     int       // Parallel workers (0 = auto-detect CPU count)
	LightDirection core.Vec3 // Direction towards the light
	Ambient        float64   // Fraction of albedo visible without direct light
	TopColor       core.Vec3 // Background color straight up
	BottomColor    core.Vec3 // Background color straight down
}

// DefaultConfig returns the default render configuration
func DefaultConfig() Config {
	return Config{
		TileSize:       32,
		NumWorkers:     0,
		LightDirection: core.NewVec3(-0.4, 1, 0.3),
		Ambient:        0.1,
		TopColor:       core.NewVec3(0.5, 0.7, 1.0),
		BottomColor:    core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Validate checks that the configuration can be rendered
func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return errors.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	if c.LightDirection.LengthSquared() == 0 {
		return errors.New("light direction must be non-zero")
	}
	if c.Ambient < 0 || c.Ambient > 1 {
		return errors.Errorf("ambient must be within [0, 1], got %g", c.Ambient)
	}
	return nil
}

// Render draws target as seen from camera. On cancellation the partially
// rendered image is returned along with the context error.
func Render(ctx context.Context, target core.Primitive, camera *Camera, config Config, logger *zap.Logger) (*image.RGBA, RenderStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := config.Validate(); err != nil {
		return nil, RenderStats{}, errors.Wrap(err, "invalid render config")
	}

	width, height := camera.Config().Width, camera.Config().Height
	if width <= 0 || height <= 0 {
		return nil, RenderStats{}, errors.Errorf("invalid image size %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	tiles := NewTileGrid(width, height, config.TileSize)
	pool := NewWorkerPool(config.NumWorkers)
	tileRenderer := NewTileRenderer(target, camera, config, img)

	logger.Debug("render started",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("tiles", len(tiles)),
		zap.Int("workers", pool.GetNumWorkers()))

	start := time.Now()
	results, err := pool.Run(ctx, tiles, tileRenderer.RenderTile)
	stats := summarizeTiles(results, time.Since(start))
	stats.Workers = pool.GetNumWorkers()
	if err != nil {
		logger.Warn("render interrupted", zap.Error(err), zap.Int("primary_rays", stats.PrimaryRays))
		return img, stats, err
	}

	logger.Info("render complete",
		zap.Int("pixels", stats.TotalPixels),
		zap.Int("rays", stats.TotalRays()),
		zap.Duration("elapsed", stats.Elapsed),
		zap.Float64("rays_per_second", stats.RaysPerSecond))

	return img, stats, nil
}
