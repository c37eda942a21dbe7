package geometry

import (
	"github.com/df07/raycore/pkg/core"
)

// Box represents a rectangular box made up of 6 quads with optional rotation
type Box struct {
	Center   core.Vec3 // Center point of the box
	Size     core.Vec3 // Half-extents along each axis
	Rotation core.Vec3 // Rotation angles in radians (X, Y, Z)
	Color    core.Vec3
	faces    [6]*Quad
	bbox     core.AABB
}

// NewBox creates a new box with the given center, half-extents, rotation and color.
// Rotation is in radians around X, Y, Z axes (applied in that order)
func NewBox(center, size, rotation core.Vec3, color core.Vec3) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		Rotation: rotation,
		Color:    color,
	}
	box.generateFaces()
	return box
}

// NewAxisAlignedBox creates a new axis-aligned box (no rotation)
func NewAxisAlignedBox(center, size core.Vec3, color core.Vec3) *Box {
	return NewBox(center, size, core.NewVec3(0, 0, 0), color)
}

// boxFaces lists each face as corner, u end and v end indices into the unit cube corners
var boxFaces = [6][3]int{
	{4, 5, 7}, // front (Z+)
	{1, 0, 2}, // back (Z-)
	{5, 1, 6}, // right (X+)
	{0, 4, 3}, // left (X-)
	{3, 7, 2}, // top (Y+)
	{4, 0, 5}, // bottom (Y-)
}

func (b *Box) generateFaces() {
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}

	for i := range corners {
		corners[i] = corners[i].MultiplyVec(b.Size).Rotate(b.Rotation).Add(b.Center)
	}

	for i, face := range boxFaces {
		corner := corners[face[0]]
		b.faces[i] = NewQuad(
			corner,
			corners[face[1]].Subtract(corner),
			corners[face[2]].Subtract(corner),
			b.Color,
		)
	}

	b.bbox = core.NewAABBFromPoints(corners[:]...)
}

// Intersect finds the closest face hit. Each face hit shortens the ray,
// so the last face reported is the nearest.
func (b *Box) Intersect(ray *core.Ray) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	for _, face := range b.faces {
		if hit, ok := face.Intersect(ray); ok {
			closest = hit
		}
	}
	return closest, closest != nil
}

func (b *Box) IntersectTest(ray core.Ray) bool {
	for _, face := range b.faces {
		if face.IntersectTest(ray) {
			return true
		}
	}
	return false
}

// WorldBound returns the axis-aligned bounding box for this box
func (b *Box) WorldBound() core.AABB {
	return b.bbox
}

func (b *Box) Albedo() core.Vec3 {
	return b.Color
}

// Faces returns the six quads making up the box
func (b *Box) Faces() [6]*Quad {
	return b.faces
}
