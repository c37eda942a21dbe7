package cmd

import (
	"context"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/df07/raycore/pkg/renderer"
)

// RenderFlags are the flags of the render command.
var RenderFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "workers, w",
		Usage: "parallel render workers (0 = one per CPU)",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "render.png",
		Usage: "image filename for the rendered frame",
	},
}

// Render builds the configured scene and writes a shaded image as PNG.
// Interrupting the process stops rendering after the tiles in flight.
func Render(ctx *cli.Context) error {
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer env.log.Sync()

	s, err := env.buildScene()
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	camera := renderer.NewCamera(env.cfg.CameraConfig())
	img, stats, err := renderer.Render(runCtx, s.BVH, camera, env.cfg.RendererConfig(), env.log.Named("render"))
	if err != nil {
		return errors.Wrap(err, "rendering")
	}

	out := ctx.String("out")
	if err := writePNG(out, img); err != nil {
		return err
	}
	env.log.Info("image written", zap.String("path", out))

	writeRenderTable(ctx.App.Writer, stats)
	return nil
}

func writePNG(path string, img *image.RGBA) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating image file")
	}
	defer file.Close()

	return errors.Wrapf(png.Encode(file, img), "encoding %s", path)
}
