// Package config loads run settings for the raycore command.
package config

import (
	"github.com/pkg/errors"

	"github.com/df07/raycore/internal/logger"
	"github.com/df07/raycore/pkg/accel"
	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/renderer"
	"github.com/df07/raycore/pkg/scene"
)

// Config holds all run settings.
type Config struct {
	Accel   AccelConfig   `yaml:"accel"`
	Scene   SceneConfig   `yaml:"scene"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// AccelConfig holds hierarchy construction settings.
type AccelConfig struct {
	SplitMethod string `yaml:"split_method"`
}

// SceneConfig selects and parameterizes a procedural scene.
type SceneConfig struct {
	Generator string  `yaml:"generator"`
	Count     int     `yaml:"count"`
	Seed      int64   `yaml:"seed"`
	Radius    float64 `yaml:"radius"`
	GridSize  int     `yaml:"grid_size"`
	Presort   string  `yaml:"presort"`
}

// RenderConfig holds camera and image settings.
type RenderConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	TileSize int     `yaml:"tile_size"`
	Workers  int     `yaml:"workers"` // 0 = one per CPU
	VFov     float64 `yaml:"vfov"`
	LookFrom Vec3    `yaml:"look_from,flow"`
	LookAt   Vec3    `yaml:"look_at,flow"`
	LightDir Vec3    `yaml:"light_dir,flow"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Vec3 is a vector written as a three element YAML sequence.
type Vec3 [3]float64

// Vec converts to a core vector.
func (v Vec3) Vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Accel: AccelConfig{
			SplitMethod: accel.SplitSAH.String(),
		},
		Scene: SceneConfig{
			Generator: "mixed",
			Count:     200,
			Seed:      1,
			Presort:   scene.PresortNone.String(),
		},
		Render: RenderConfig{
			Width:    640,
			Height:   360,
			TileSize: 32,
			Workers:  0,
			VFov:     40,
			LookFrom: Vec3{0, 14, 24},
			LookAt:   Vec3{0, 2, 0},
			LightDir: Vec3{-0.4, 1, 0.3},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SplitMethod returns the parsed split method.
func (c *Config) SplitMethod() (accel.SplitMethod, error) {
	return accel.ParseSplitMethod(c.Accel.SplitMethod)
}

// Presort returns the parsed presort mode.
func (c *Config) Presort() (scene.Presort, error) {
	return scene.ParsePresort(c.Scene.Presort)
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if _, err := c.SplitMethod(); err != nil {
		return errors.Wrap(err, "accel.split_method")
	}

	if _, ok := scene.LookupGenerator(c.Scene.Generator); !ok {
		return errors.Errorf("scene.generator: unknown generator %q", c.Scene.Generator)
	}
	if c.Scene.Count < 0 {
		return errors.Errorf("scene.count must not be negative, got %d", c.Scene.Count)
	}
	if c.Scene.Radius < 0 {
		return errors.Errorf("scene.radius must not be negative, got %g", c.Scene.Radius)
	}
	if c.Scene.GridSize < 0 {
		return errors.Errorf("scene.grid_size must not be negative, got %d", c.Scene.GridSize)
	}
	if _, err := c.Presort(); err != nil {
		return errors.Wrap(err, "scene.presort")
	}

	r := c.Render
	if r.Width <= 0 || r.Height <= 0 {
		return errors.Errorf("render size must be positive, got %dx%d", r.Width, r.Height)
	}
	if r.Workers < 0 {
		return errors.Errorf("render.workers must not be negative, got %d", r.Workers)
	}
	if r.VFov <= 0 || r.VFov >= 180 {
		return errors.Errorf("render.vfov must be within (0, 180), got %g", r.VFov)
	}
	if r.LookFrom == r.LookAt {
		return errors.New("render.look_from and render.look_at must differ")
	}
	if err := c.RendererConfig().Validate(); err != nil {
		return errors.Wrap(err, "render")
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, "logging.level")
	}
	return nil
}

// SceneParams converts the scene section to generator parameters. The
// split method must already be valid.
func (c *Config) SceneParams() scene.Params {
	method, _ := c.SplitMethod()
	return scene.Params{
		Count:       c.Scene.Count,
		Seed:        c.Scene.Seed,
		Radius:      c.Scene.Radius,
		GridSize:    c.Scene.GridSize,
		SplitMethod: method,
	}
}

// CameraConfig converts the render section to a camera.
func (c *Config) CameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center: c.Render.LookFrom.Vec(),
		LookAt: c.Render.LookAt.Vec(),
		Up:     core.NewVec3(0, 1, 0),
		Width:  c.Render.Width,
		Height: c.Render.Height,
		VFov:   c.Render.VFov,
	}
}

// RendererConfig converts the render section to renderer settings.
func (c *Config) RendererConfig() renderer.Config {
	config := renderer.DefaultConfig()
	config.TileSize = c.Render.TileSize
	config.NumWorkers = c.Render.Workers
	config.LightDirection = c.Render.LightDir.Vec()
	return config
}
