// Package cmd implements the raycore command line actions.
package cmd

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/df07/raycore/internal/config"
	"github.com/df07/raycore/internal/logger"
	"github.com/df07/raycore/pkg/scene"
)

// SceneFlags are shared by every command that assembles a scene.
var SceneFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "generator, g",
		Usage: "scene generator (sphere_grid, random_spheres, terrain, mixed)",
	},
	cli.IntFlag{
		Name:  "count, n",
		Usage: "number of scattered objects",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed",
	},
	cli.IntFlag{
		Name:  "grid-size",
		Usage: "cells per side for grid generators",
	},
	cli.StringFlag{
		Name:  "split, s",
		Usage: "BVH split method (middle, equal_counts, sah)",
	},
	cli.StringFlag{
		Name:  "presort",
		Usage: "primitive presort before building (none, morton)",
	},
}

// environment is what every action needs after flag handling.
type environment struct {
	cfg *config.Config
	log *zap.Logger
}

// setup loads the config file, applies flag overrides, validates the
// result and initializes logging.
func setup(ctx *cli.Context) (*environment, error) {
	cfg, err := config.Load(ctx.GlobalString("config"))
	if err != nil {
		return nil, err
	}
	applyFlags(ctx, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, errors.Wrap(err, "initializing logger")
	}

	return &environment{cfg: cfg, log: logger.New("raycore")}, nil
}

// applyFlags overrides config values with flags given on the command line.
func applyFlags(ctx *cli.Context, cfg *config.Config) {
	if ctx.GlobalBool("v") {
		cfg.Logging.Level = "info"
	}
	if ctx.GlobalBool("vv") {
		cfg.Logging.Level = "debug"
	}
	if ctx.GlobalIsSet("log-file") {
		cfg.Logging.LogFile = ctx.GlobalString("log-file")
	}

	if ctx.IsSet("generator") {
		cfg.Scene.Generator = ctx.String("generator")
	}
	if ctx.IsSet("count") {
		cfg.Scene.Count = ctx.Int("count")
	}
	if ctx.IsSet("seed") {
		cfg.Scene.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("grid-size") {
		cfg.Scene.GridSize = ctx.Int("grid-size")
	}
	if ctx.IsSet("split") {
		cfg.Accel.SplitMethod = ctx.String("split")
	}
	if ctx.IsSet("presort") {
		cfg.Scene.Presort = ctx.String("presort")
	}

	if ctx.IsSet("width") {
		cfg.Render.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Render.Height = ctx.Int("height")
	}
	if ctx.IsSet("workers") {
		cfg.Render.Workers = ctx.Int("workers")
	}
}

// buildScene generates the configured scene and builds its hierarchy.
func (env *environment) buildScene() (*scene.Scene, error) {
	params := env.cfg.SceneParams()
	params.Logger = env.log

	prims, err := scene.Generate(env.cfg.Scene.Generator, params)
	if err != nil {
		return nil, err
	}

	method, _ := env.cfg.SplitMethod()
	presort, _ := env.cfg.Presort()
	return scene.New(env.cfg.Scene.Generator, prims, scene.Options{
		SplitMethod: method,
		Presort:     presort,
		Logger:      env.log,
	}), nil
}
