package scene

import (
	"math"
	"math/rand"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
)

// heightField is periodic value noise over an integer lattice, summed over a few octaves
type heightField struct {
	lattice [][]float64
}

func newHeightField(random *rand.Rand, size int) *heightField {
	lattice := make([][]float64, size)
	for i := range lattice {
		lattice[i] = make([]float64, size)
		for j := range lattice[i] {
			lattice[i][j] = random.Float64()
		}
	}
	return &heightField{lattice: lattice}
}

// sample returns the smoothly interpolated noise at (u, v). The lattice
// repeats every unit in both directions.
func (h *heightField) sample(u, v float64) float64 {
	size := len(h.lattice)
	x := u * float64(size)
	y := v * float64(size)
	x0, y0 := math.Floor(x), math.Floor(y)
	fx := smoothstep(x - x0)
	fy := smoothstep(y - y0)

	i0, j0 := wrap(int(x0), size), wrap(int(y0), size)
	i1, j1 := wrap(i0+1, size), wrap(j0+1, size)

	top := lerp(h.lattice[i0][j0], h.lattice[i1][j0], fx)
	bottom := lerp(h.lattice[i0][j1], h.lattice[i1][j1], fx)
	return lerp(top, bottom, fy)
}

func (h *heightField) octaves(u, v float64, n int) float64 {
	total, amplitude, norm := 0.0, 1.0, 0.0
	scale := 1.0
	for o := 0; o < n; o++ {
		total += amplitude * h.sample(u*scale, v*scale)
		norm += amplitude
		amplitude *= 0.5
		scale *= 2
	}
	return total / norm
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// terrainColor shades by height: green lowlands, brown slopes and white peaks
func terrainColor(height float64) core.Vec3 {
	switch {
	case height < 0.35:
		return core.NewVec3(0.25, 0.45, 0.2)
	case height < 0.7:
		return core.NewVec3(0.45, 0.35, 0.25)
	default:
		return core.NewVec3(0.9, 0.9, 0.92)
	}
}

// Terrain builds a GridSize x GridSize height field spanning [-Radius, Radius]
// in X and Z as a single triangle mesh, two triangles per cell.
func Terrain(p Params) []core.Primitive {
	return []core.Primitive{newTerrainMesh(p)}
}

func newTerrainMesh(p Params) *geometry.TriangleMesh {
	gridSize := orDefault(p.GridSize, 64)
	extent := orDefault(p.Radius, 10.0)
	random := rand.New(rand.NewSource(orDefault(p.Seed, 1)))
	field := newHeightField(random, 8)
	maxHeight := extent * 0.25

	heights := make([]float64, 0, (gridSize+1)*(gridSize+1))
	vertices := make([]core.Vec3, 0, (gridSize+1)*(gridSize+1))
	for j := 0; j <= gridSize; j++ {
		for i := 0; i <= gridSize; i++ {
			u := float64(i) / float64(gridSize)
			v := float64(j) / float64(gridSize)
			h := field.octaves(u, v, 4)
			heights = append(heights, h)
			vertices = append(vertices, core.NewVec3(
				-extent+2*extent*u,
				h*maxHeight,
				-extent+2*extent*v,
			))
		}
	}

	faces := make([]int, 0, gridSize*gridSize*6)
	colors := make([]core.Vec3, 0, gridSize*gridSize*2)
	row := gridSize + 1
	for j := 0; j < gridSize; j++ {
		for i := 0; i < gridSize; i++ {
			v00 := j*row + i
			v10 := v00 + 1
			v01 := v00 + row
			v11 := v01 + 1

			// Wound so the normals point up
			faces = append(faces, v00, v01, v10, v10, v01, v11)

			cellHeight := (heights[v00] + heights[v10] + heights[v01] + heights[v11]) / 4
			color := terrainColor(cellHeight)
			colors = append(colors, color, color)
		}
	}

	return geometry.NewTriangleMesh(vertices, faces, geometry.DefaultAlbedo, &geometry.TriangleMeshOptions{
		Colors:      colors,
		SplitMethod: p.SplitMethod,
		Logger:      p.Logger,
	})
}
