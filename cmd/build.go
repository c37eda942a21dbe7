package cmd

import (
	"github.com/urfave/cli"
)

// Build assembles the configured scene and prints statistics about its BVH.
func Build(ctx *cli.Context) error {
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer env.log.Sync()

	s, err := env.buildScene()
	if err != nil {
		return err
	}

	writeSceneTable(ctx.App.Writer, s)
	return nil
}
