package bv

import (
	"testing"

	"github.com/go-collide/collide/pkg/mathx"
)

func TestAABBMerge(t *testing.T) {
	a := New(mathx.Vec3{0, 0, 0}, mathx.Vec3{1, 1, 1})
	b := New(mathx.Vec3{-1, 0.5, 2}, mathx.Vec3{0.5, 3, 4})

	merged := a.Merge(b)
	want := New(mathx.Vec3{-1, 0, 0}, mathx.Vec3{1, 3, 4})
	if merged != want {
		t.Fatalf("Merge() = %v, want %v", merged, want)
	}
}

func TestAABBMergeIdempotent(t *testing.T) {
	a := New(mathx.Vec3{0, 0, 0}, mathx.Vec3{2, 2, 2})
	if a.Merge(a) != a {
		t.Fatalf("Merge with self should be identity, got %v", a.Merge(a))
	}
}

func TestAABBIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b AABB
		want bool
	}{
		{"overlapping", New(mathx.Vec3{0, 0, 0}, mathx.Vec3{2, 2, 2}), New(mathx.Vec3{1, 1, 1}, mathx.Vec3{3, 3, 3}), true},
		{"touching face", New(mathx.Vec3{0, 0, 0}, mathx.Vec3{1, 1, 1}), New(mathx.Vec3{1, 0, 0}, mathx.Vec3{2, 1, 1}), true},
		{"disjoint", New(mathx.Vec3{0, 0, 0}, mathx.Vec3{1, 1, 1}), New(mathx.Vec3{5, 5, 5}, mathx.Vec3{6, 6, 6}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABBContains(t *testing.T) {
	outer := New(mathx.Vec3{0, 0, 0}, mathx.Vec3{10, 10, 10})
	inner := New(mathx.Vec3{1, 1, 1}, mathx.Vec3{2, 2, 2})

	if !outer.Contains(inner) {
		t.Error("expected outer to contain inner")
	}
	if inner.Contains(outer) {
		t.Error("expected inner not to contain outer")
	}
}

func TestAABBLongestAxis(t *testing.T) {
	a := New(mathx.Vec3{0, 0, 0}, mathx.Vec3{1, 5, 2})
	if got := a.LongestAxis(); got != 1 {
		t.Errorf("LongestAxis() = %d, want 1", got)
	}
}

func TestAABBLoosenContainsOriginal(t *testing.T) {
	a := New(mathx.Vec3{0, 0, 0}, mathx.Vec3{1, 1, 1})
	loose := a.Loosen(0.5)
	if !loose.Contains(a) {
		t.Error("loosened AABB should contain the original")
	}
}

func TestAABBTightenShrinksWithinOriginal(t *testing.T) {
	a := New(mathx.Vec3{0, 0, 0}, mathx.Vec3{2, 2, 2})
	tight, ok := a.Tighten(0.5)
	if !ok {
		t.Fatal("expected Tighten to succeed")
	}
	if !a.Contains(tight) {
		t.Error("tightened AABB should be contained by the original")
	}
	want := New(mathx.Vec3{0.5, 0.5, 0.5}, mathx.Vec3{1.5, 1.5, 1.5})
	if tight != want {
		t.Errorf("Tighten(0.5) = %v, want %v", tight, want)
	}
}

func TestAABBTightenRejectsOverlargeMargin(t *testing.T) {
	a := New(mathx.Vec3{0, 0, 0}, mathx.Vec3{1, 1, 1})
	_, ok := a.Tighten(10)
	if ok {
		t.Error("expected Tighten to reject a margin that inverts the box")
	}
}

func TestAABBIntersectsRay(t *testing.T) {
	box := New(mathx.Vec3{-1, -1, -1}, mathx.Vec3{1, 1, 1})
	ray := mathx.NewRay(mathx.Vec3{0, 0, 5}, mathx.Vec3{0, 0, -1})

	tMin, _, hit := box.IntersectsRay(ray, 0.001, 1000)
	if !hit {
		t.Fatal("expected ray to hit box")
	}
	if tMin < 3.9 || tMin > 4.1 {
		t.Errorf("expected tMin near 4.0, got %f", tMin)
	}
}

func TestAABBIntersectsRayMiss(t *testing.T) {
	box := New(mathx.Vec3{-1, -1, -1}, mathx.Vec3{1, 1, 1})
	ray := mathx.NewRay(mathx.Vec3{5, 5, 5}, mathx.Vec3{0, 0, -1})

	_, _, hit := box.IntersectsRay(ray, 0.001, 1000)
	if hit {
		t.Error("expected ray to miss box")
	}
}

func TestBoundingSphereMergeContainment(t *testing.T) {
	outer := BoundingSphere{Center: mathx.Vec3{0, 0, 0}, Radius: 10}
	inner := BoundingSphere{Center: mathx.Vec3{1, 0, 0}, Radius: 1}

	merged := outer.Merge(inner)
	if merged != outer {
		t.Errorf("merging a contained sphere should be a no-op, got %v", merged)
	}
}

func TestBoundingSphereMergeDisjoint(t *testing.T) {
	a := BoundingSphere{Center: mathx.Vec3{-5, 0, 0}, Radius: 1}
	b := BoundingSphere{Center: mathx.Vec3{5, 0, 0}, Radius: 1}

	merged := a.Merge(b)
	if !merged.Contains(a) || !merged.Contains(b) {
		t.Errorf("merged sphere %v should contain both inputs", merged)
	}
}
