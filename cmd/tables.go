package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/raycore/pkg/renderer"
	"github.com/df07/raycore/pkg/scene"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}

// writeSceneTable prints the shape of a scene's hierarchy.
func writeSceneTable(w io.Writer, s *scene.Scene) {
	stats := s.BVH.Stats()

	table := newTable(w, "Property", "Value")
	table.Append([]string{"Scene", s.Name})
	table.Append([]string{"Split method", stats.SplitMethod.String()})
	table.Append([]string{"Top-level primitives", fmt.Sprint(len(s.Primitives))})
	table.Append([]string{"Primitive objects", fmt.Sprint(s.PrimitiveCount())})
	table.Append([]string{"Nodes", fmt.Sprintf("%d (%d interior, %d leaves)", stats.Nodes, stats.Interior, stats.Leaves)})
	table.Append([]string{"Max depth", fmt.Sprint(stats.MaxDepth)})
	table.Append([]string{"Avg leaf depth", fmt.Sprintf("%.2f", stats.AvgLeafDepth)})
	table.Append([]string{"Leaf primitives", fmt.Sprintf("avg %.2f, max %d", stats.AvgLeafPrims, stats.MaxLeafPrims)})
	table.Append([]string{"Node memory", fmtBytes(stats.NodeBytes)})
	table.Append([]string{"Bounding sphere", fmt.Sprintf("center %v, radius %.3f", s.Center, s.Radius)})
	table.SetFooter([]string{"Build time", s.BuildTime.Round(time.Microsecond).String()})
	table.Render()
}

// writeRenderTable prints render counters and tile timings.
func writeRenderTable(w io.Writer, stats renderer.RenderStats) {
	table := newTable(w, "Metric", "Value")
	table.Append([]string{"Pixels", fmt.Sprint(stats.TotalPixels)})
	table.Append([]string{"Tiles", fmt.Sprintf("%d on %d workers", stats.Tiles, stats.Workers)})
	table.Append([]string{"Primary rays", fmt.Sprintf("%d (%.1f%% hit)", stats.PrimaryRays, 100*stats.HitRate())})
	table.Append([]string{"Shadow rays", fmt.Sprintf("%d (%d occluded)", stats.ShadowRays, stats.Occluded)})
	table.Append([]string{"Tile time", fmt.Sprintf("mean %v, stddev %v", stats.TileMean.Round(time.Microsecond), stats.TileStdDev.Round(time.Microsecond))})
	table.Append([]string{"Tile time p95", stats.TileP95.Round(time.Microsecond).String()})
	table.Append([]string{"Slowest tile", stats.SlowestTile.Round(time.Microsecond).String()})
	table.Append([]string{"Throughput", fmt.Sprintf("%.2f Mrays/s", stats.RaysPerSecond/1e6)})
	table.SetFooter([]string{"Elapsed", stats.Elapsed.Round(time.Millisecond).String()})
	table.Render()
}

// fmtBytes formats a byte count with a binary unit suffix.
func fmtBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
