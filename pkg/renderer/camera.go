package renderer

import (
	"math"

	"github.com/df07/raycore/pkg/core"
)

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
	VFov   float64   // Vertical field of view in degrees
}

// Camera generates primary rays through pixel centers
type Camera struct {
	config     CameraConfig
	center     core.Vec3
	upperLeft  core.Vec3 // Top-left corner of the viewport at unit distance
	horizontal core.Vec3 // Viewport extent along image X
	vertical   core.Vec3 // Viewport extent along image Y (pointing up)
	forward    core.Vec3
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := viewportHeight * float64(config.Width) / float64(config.Height)

	// Orthonormal basis: w points backwards, u right and v up
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	upperLeft := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Add(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		config:     config,
		center:     config.Center,
		upperLeft:  upperLeft,
		horizontal: horizontal,
		vertical:   vertical,
		forward:    w.Negate(),
	}
}

// GetRay returns the ray through the center of pixel (i, j). Row 0 is the
// top of the image.
func (c *Camera) GetRay(i, j int) core.Ray {
	s := (float64(i) + 0.5) / float64(c.config.Width)
	t := (float64(j) + 0.5) / float64(c.config.Height)

	direction := c.upperLeft.
		Add(c.horizontal.Multiply(s)).
		Subtract(c.vertical.Multiply(t)).
		Subtract(c.center)

	return core.NewRay(c.center, direction.Normalize())
}

// GetCameraForward returns the direction the camera is looking
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
