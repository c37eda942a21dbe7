package renderer

import (
	"math"
	"testing"

	"github.com/df07/raycore/pkg/core"
)

func newTestCamera(width, height int) *Camera {
	return NewCamera(CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		Width:  width,
		Height: height,
		VFov:   90.0,
	})
}

func TestCameraGetCameraForward(t *testing.T) {
	camera := newTestCamera(400, 400)

	forward := camera.GetCameraForward()
	expected := core.NewVec3(0, 0, -1)

	if forward.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestCameraGetRay_CenterPixel(t *testing.T) {
	// Odd dimensions put a pixel center exactly on the optical axis
	camera := newTestCamera(9, 5)
	ray := camera.GetRay(4, 2)

	if ray.Origin != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected ray to start at the camera center, got %v", ray.Origin)
	}
	if ray.Direction.Subtract(camera.GetCameraForward()).Length() > 1e-9 {
		t.Errorf("Expected center ray along forward, got %v", ray.Direction)
	}
	if !math.IsInf(ray.TMax, 1) {
		t.Errorf("Expected unbounded primary ray, got TMax %v", ray.TMax)
	}
}

func TestCameraGetRay_Orientation(t *testing.T) {
	camera := newTestCamera(100, 50)

	tests := []struct {
		name   string
		i, j   int
		checkX func(float64) bool
		checkY func(float64) bool
	}{
		{"top left", 0, 0, func(x float64) bool { return x < 0 }, func(y float64) bool { return y > 0 }},
		{"top right", 99, 0, func(x float64) bool { return x > 0 }, func(y float64) bool { return y > 0 }},
		{"bottom left", 0, 49, func(x float64) bool { return x < 0 }, func(y float64) bool { return y < 0 }},
		{"bottom right", 99, 49, func(x float64) bool { return x > 0 }, func(y float64) bool { return y < 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := camera.GetRay(tt.i, tt.j).Direction
			if math.Abs(dir.Length()-1) > 1e-9 {
				t.Errorf("Expected normalized direction, got length %v", dir.Length())
			}
			if !tt.checkX(dir.X) || !tt.checkY(dir.Y) {
				t.Errorf("Unexpected direction %v for pixel (%d,%d)", dir, tt.i, tt.j)
			}
			if dir.Z >= 0 {
				t.Errorf("Expected ray to point into the scene, got %v", dir)
			}
		})
	}
}

func TestCameraGetRay_FieldOfView(t *testing.T) {
	// With a 90 degree vertical fov the viewport spans y in [-1, 1] at unit distance,
	// so the top row of a 2-pixel-high image is at y=0.5
	camera := newTestCamera(1, 2)
	dir := camera.GetRay(0, 0).Direction

	expected := core.NewVec3(0, 0.5, -1).Normalize()
	if dir.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, dir)
	}
}
