package renderer

import (
	"image"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/df07/raycore/pkg/core"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	TotalPixels   int
	Tiles         int
	Workers       int
	PrimaryRays   int
	ShadowRays    int
	Hits          int
	Occluded      int
	TileMean      time.Duration // Mean time spent on one tile
	TileStdDev    time.Duration
	TileP95       time.Duration
	SlowestTile   time.Duration
	Elapsed       time.Duration // Wall-clock time of the whole render
	RaysPerSecond float64
}

// TotalRays returns the number of primary and shadow rays cast
func (s RenderStats) TotalRays() int {
	return s.PrimaryRays + s.ShadowRays
}

// HitRate returns the fraction of primary rays that hit the scene
func (s RenderStats) HitRate() float64 {
	if s.PrimaryRays == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.PrimaryRays)
}

// summarizeTiles folds per-tile results into render statistics
func summarizeTiles(results []TileResult, elapsed time.Duration) RenderStats {
	stats := RenderStats{Elapsed: elapsed}

	seconds := make([]float64, 0, len(results))
	for _, r := range results {
		if r.PrimaryRays == 0 {
			continue // Never rendered
		}
		stats.PrimaryRays += r.PrimaryRays
		stats.ShadowRays += r.ShadowRays
		stats.Hits += r.Hits
		stats.Occluded += r.Occluded
		seconds = append(seconds, r.Duration.Seconds())
	}
	stats.Tiles = len(seconds)
	stats.TotalPixels = stats.PrimaryRays
	if len(seconds) == 0 {
		return stats
	}

	mean, stdDev := stat.MeanStdDev(seconds, nil)
	if len(seconds) < 2 {
		stdDev = 0 // Undefined for a single sample
	}
	slices.Sort(seconds) // Quantile requires sorted data
	stats.TileMean = toDuration(mean)
	stats.TileStdDev = toDuration(stdDev)
	stats.TileP95 = toDuration(stat.Quantile(0.95, stat.Empirical, seconds, nil))
	stats.SlowestTile = toDuration(floats.Max(seconds))

	if elapsed > 0 {
		stats.RaysPerSecond = float64(stats.TotalRays()) / elapsed.Seconds()
	}
	return stats
}

func toDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image
// with channels normalized to [0, 1]. Gamma is not undone.
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return 0.0
	}

	totalLuminance := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			totalLuminance += core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Multiply(1.0 / 255.0).Luminance()
		}
	}

	return totalLuminance / float64(bounds.Dx()*bounds.Dy())
}
