package core

import "testing"

type boxPrimitive struct {
	bounds AABB
}

func (b boxPrimitive) WorldBound() AABB                      { return b.bounds }
func (b boxPrimitive) Intersect(ray *Ray) (*HitRecord, bool) { return nil, false }
func (b boxPrimitive) IntersectTest(ray Ray) bool            { return false }

func TestMorton3(t *testing.T) {
	got := Morton3(NewVec3(0.9999, 0, 0.9999))
	var expected uint32 = 0b00_101101101101101101101101101101
	if got != expected {
		t.Errorf("Expected %030b, got %030b", expected, got)
	}

	if code := Morton3(NewVec3(0, 0, 0)); code != 0 {
		t.Errorf("Expected origin to map to 0, got %d", code)
	}
}

func TestExpandBits(t *testing.T) {
	var expected uint32 = 0b00_001001001001001001001001001001
	if got := expandBits(0x3FF); got != expected {
		t.Errorf("Expected %030b, got %030b", expected, got)
	}
}

func TestToFixedPoint(t *testing.T) {
	tests := []struct {
		value    float64
		expected uint32
	}{
		{0.99999, 0x3FF},
		{0.0, 0},
		{0.5, 512},
		{1.0, 0x3FF}, // clamped
		{-0.25, 0},   // clamped
	}

	for _, tt := range tests {
		if got := toFixedPoint(tt.value); got != tt.expected {
			t.Errorf("toFixedPoint(%v): expected %d, got %d", tt.value, tt.expected, got)
		}
	}
}

func TestMortonOrder(t *testing.T) {
	unit := func(x, y, z float64) Primitive {
		min := NewVec3(x, y, z)
		return boxPrimitive{NewAABB(min, min.Add(NewVec3(1, 1, 1)))}
	}

	prims := []Primitive{
		unit(10, 10, 10),
		unit(0, 0, 0),
		unit(10, 0, 0),
		unit(0, 0, 10),
	}

	order := MortonOrder(prims)
	ApplyPermutation(prims, order)

	expected := []Vec3{
		NewVec3(0, 0, 0),
		NewVec3(0, 0, 10),
		NewVec3(10, 0, 0),
		NewVec3(10, 10, 10),
	}
	for i, prim := range prims {
		if prim.WorldBound().Min != expected[i] {
			t.Errorf("Position %d: expected %v, got %v", i, expected[i], prim.WorldBound().Min)
		}
	}
}
