// Package geometry provides the concrete primitives scenes are built from.
package geometry

import "github.com/df07/raycore/pkg/core"

// Surface is a primitive with a diffuse reflectance for shading
type Surface interface {
	core.Primitive
	Albedo() core.Vec3
}

// DefaultAlbedo is used by shapes created without an explicit color
var DefaultAlbedo = core.NewVec3(0.7, 0.7, 0.7)

// inRange reports whether t lies strictly inside the ray's valid extent
func inRange(ray core.Ray, t float64) bool {
	return t > core.RayEpsilon && t < ray.TMax
}
