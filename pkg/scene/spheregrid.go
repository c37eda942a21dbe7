package scene

import (
	"math"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// SphereGrid lays GridSize x GridSize spheres on a ground quad, centered
// on the origin. Spheres are scaled so the grid always covers the same area.
func SphereGrid(p Params) []core.Primitive {
	gridSize := orDefault(p.GridSize, 20)
	targetArea := 9.0
	spacing := targetArea
	if gridSize > 1 {
		spacing = targetArea / float64(gridSize-1)
	}

	sphereRadius := p.Radius
	if sphereRadius == 0 {
		// 35% of spacing, kept within a visible range
		sphereRadius = math.Max(0.02, math.Min(0.35, spacing*0.35))
	}

	prims := make([]core.Primitive, 0, gridSize*gridSize+1)
	prims = append(prims, NewGroundQuad(core.NewVec3(0, 0, 0), targetArea*2, geometry.DefaultAlbedo))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	denom := math.Max(1, float64(gridSize-1))
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0
			z := float64(j)*spacing - targetArea/2.0
			position := core.NewVec3(x, sphereRadius, z) // Sphere sits on the ground

			// Hue varies across X, chroma across Z
			hue := (float64(i) / denom) * 360.0
			chroma := minChroma + (float64(j)/denom)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			prims = append(prims, geometry.NewSphere(position, sphereRadius, oklchToRGB(lightness, chroma, hue)))
		}
	}

	return prims
}
