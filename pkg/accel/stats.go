package accel

import "unsafe"

// Stats contains statistics about the BVH structure
type Stats struct {
	Nodes        int
	Leaves       int
	Interior     int
	MaxDepth     int
	AvgLeafDepth float64
	Primitives   int
	MaxLeafPrims int
	AvgLeafPrims float64
	NodeBytes    int // memory used by the flattened node array
	SplitMethod  SplitMethod
	WorldArea    float64 // surface area of the root bounds
}

// Stats walks the flattened tree and summarizes its shape
func (bvh *BVH) Stats() Stats {
	stats := Stats{
		SplitMethod: bvh.splitMethod,
		NodeBytes:   len(bvh.nodes) * int(unsafe.Sizeof(LinearNode{})),
	}
	if len(bvh.nodes) == 0 {
		return stats
	}

	stats.WorldArea = bvh.bounds.SurfaceArea()
	bvh.collectStats(0, 0, &stats)

	// Calculate averages after collecting all data
	if stats.Leaves > 0 {
		stats.AvgLeafDepth /= float64(stats.Leaves)
		stats.AvgLeafPrims = float64(stats.Primitives) / float64(stats.Leaves)
	}

	return stats
}

// collectStats recursively collects statistics for the subtree at idx
func (bvh *BVH) collectStats(idx int, depth int, stats *Stats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	node := bvh.nodes[idx]
	if node.IsLeaf() {
		_, count := node.PrimitiveRange()
		stats.Leaves++
		stats.Primitives += count
		stats.AvgLeafDepth += float64(depth) // Accumulate depth for average calculation
		if count > stats.MaxLeafPrims {
			stats.MaxLeafPrims = count
		}
		return
	}

	stats.Interior++
	bvh.collectStats(idx+1, depth+1, stats)
	bvh.collectStats(node.SecondChild(), depth+1, stats)
}
