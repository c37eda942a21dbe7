package renderer

import (
	"context"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
)

// TileResult contains the counters gathered while rendering one tile
type TileResult struct {
	TileID      int
	PrimaryRays int
	ShadowRays  int
	Hits        int // Primary rays that hit the scene
	Occluded    int // Shadow rays that were blocked
	Duration    time.Duration
}

// TileRenderer shades pixels of a shared target into a shared image.
// Tiles must not overlap, so concurrent RenderTile calls never write the
// same pixel.
type TileRenderer struct {
	target core.Primitive
	camera *Camera
	config Config
	image  *image.RGBA
	light  core.Vec3 // Unit vector pointing towards the light
}

// NewTileRenderer creates a tile renderer that writes into img
func NewTileRenderer(target core.Primitive, camera *Camera, config Config, img *image.RGBA) *TileRenderer {
	return &TileRenderer{
		target: target,
		camera: camera,
		config: config,
		image:  img,
		light:  config.LightDirection.Normalize(),
	}
}

// RenderTile renders every pixel within the tile bounds. The context is
// checked once per row.
func (tr *TileRenderer) RenderTile(ctx context.Context, tile Tile) (TileResult, error) {
	start := time.Now()
	result := TileResult{TileID: tile.ID}

	bounds := tile.Bounds
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			c := tr.shadePixel(i, j, &result)
			tr.image.SetRGBA(i, j, vec3ToColor(c))
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// shadePixel traces the primary ray through pixel (i, j) and, on a hit, one
// shadow ray towards the light.
func (tr *TileRenderer) shadePixel(i, j int, result *TileResult) core.Vec3 {
	ray := tr.camera.GetRay(i, j)
	result.PrimaryRays++

	hit, isHit := tr.target.Intersect(&ray)
	if !isHit {
		return tr.backgroundGradient(ray)
	}
	result.Hits++

	albedo := geometry.DefaultAlbedo
	if surface, ok := hit.Primitive.(geometry.Surface); ok {
		albedo = surface.Albedo()
	}

	cosine := math.Max(0, hit.Normal.Dot(tr.light))
	if cosine > 0 {
		result.ShadowRays++
		shadow := core.NewRay(hit.Point, tr.light)
		if tr.target.IntersectTest(shadow) {
			result.Occluded++
			cosine = 0
		}
	}

	ambient := tr.config.Ambient
	return albedo.Multiply(ambient + (1-ambient)*cosine)
}

// backgroundGradient returns a vertical gradient between the bottom and top colors
func (tr *TileRenderer) backgroundGradient(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return tr.config.BottomColor.Multiply(1.0 - t).Add(tr.config.TopColor.Multiply(t))
}

// vec3ToColor converts a linear color to a gamma-corrected 8-bit pixel
func vec3ToColor(c core.Vec3) color.RGBA {
	corrected := c.GammaCorrect(2.0).Clamp(0, 1)
	return color.RGBA{
		R: uint8(255 * corrected.X),
		G: uint8(255 * corrected.Y),
		B: uint8(255 * corrected.Z),
		A: 255,
	}
}
