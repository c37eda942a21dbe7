package main

import (
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/df07/raycore/cmd"
	"github.com/df07/raycore/internal/logger"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "raycore"
	app.Usage = "build, inspect and render bounding volume hierarchies over procedural scenes"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "raycore.yaml",
			Usage: "YAML config file; missing files fall back to defaults",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "also write logs to this rotating file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "build a scene BVH and print its statistics",
			Description: `
Generate a procedural scene, optionally presort its primitives along a Morton
curve, build the BVH with the selected split method and print a summary of
the resulting tree.`,
			Flags:  cmd.SceneFlags,
			Action: cmd.Build,
		},
		{
			Name:   "render",
			Usage:  "render a scene to a PNG image",
			Flags:  append(append([]cli.Flag{}, cmd.SceneFlags...), cmd.RenderFlags...),
			Action: cmd.Render,
		},
		{
			Name:  "verify",
			Usage: "compare BVH traversal against a linear scan",
			Description: `
Cast random rays from inside the scene bounds and check that the BVH reports
the same closest hit and occlusion result as testing every primitive.`,
			Flags:  append(append([]cli.Flag{}, cmd.SceneFlags...), cmd.VerifyFlags...),
			Action: cmd.Verify,
		},
	}
	return app
}

func main() {
	// Errors before the config is loaded still need somewhere to go
	_ = logger.Init("warn", "")

	if err := newApp().Run(os.Args); err != nil {
		logger.Log.Error("command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
