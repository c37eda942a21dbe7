package renderer

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// TileFunc renders a single tile
type TileFunc func(ctx context.Context, tile Tile) (TileResult, error)

// WorkerPool renders tiles in parallel. All workers share the scene
// read-only; each tile writes a disjoint region of the output image.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Zero or negative selects one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every tile and returns the results indexed like tiles. The
// first error, or cancellation of ctx, stops the remaining tiles from
// starting; tiles already in flight run to completion.
func (wp *WorkerPool) Run(ctx context.Context, tiles []Tile, render TileFunc) ([]TileResult, error) {
	results := make([]TileResult, len(tiles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for i, tile := range tiles {
		if ctx.Err() != nil {
			break
		}
		i, tile := i, tile
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := render(ctx, tile)
			if err != nil {
				return errors.Wrapf(err, "tile %d", tile.ID)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	// The loop may have stopped early without any worker seeing the cancellation
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
