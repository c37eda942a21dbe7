package core

import (
	"math"
	"testing"
)

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(11)
	b := NewSeededSampler(11)

	for i := 0; i < 10; i++ {
		if a.Get3D() != b.Get3D() {
			t.Fatalf("samplers with the same seed diverged at sample %d", i)
		}
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(3)
	for i := 0; i < 100; i++ {
		dir := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(dir.Length()-1) > 1e-12 {
			t.Errorf("Expected unit direction, got length %v", dir.Length())
		}
	}

	if up := SampleOnUnitSphere(0, 0.3); up.Subtract(NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Expected u=0 to map to +Z, got %v", up)
	}
}

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(5)
	for i := 0; i < 100; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1+1e-12 {
			t.Errorf("Point %v lies outside the unit sphere", p)
		}
	}
}

func TestSampleInBox(t *testing.T) {
	box := NewAABB(NewVec3(-1, 2, 3), NewVec3(1, 4, 7))

	if p := SampleInBox(box, NewVec3(0, 0, 0)); p != box.Min {
		t.Errorf("Expected min corner, got %v", p)
	}
	if p := SampleInBox(box, NewVec3(0.5, 0.5, 0.5)); p != box.Centroid() {
		t.Errorf("Expected centroid %v, got %v", box.Centroid(), p)
	}

	sampler := NewSeededSampler(9)
	for i := 0; i < 100; i++ {
		if p := SampleInBox(box, sampler.Get3D()); !box.Contains(p) {
			t.Errorf("Point %v lies outside %v", p, box)
		}
	}
}
