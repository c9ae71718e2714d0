package mathx

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestIsometryRoundTrip(t *testing.T) {
	iso := FromRotationTranslation(mgl64.QuatRotate(math.Pi/2, Vec3{0, 0, 1}), Vec3{1, 2, 3})

	p := Vec3{1, 0, 0}
	world := iso.TransformPoint(p)
	back := iso.InverseTransformPoint(world)

	if back.Sub(p).Len() > 1e-9 {
		t.Fatalf("round trip mismatch: got %v want %v", back, p)
	}
}

func TestIsometryIdentity(t *testing.T) {
	p := Vec3{4, -2, 7}
	if Identity.TransformPoint(p) != p {
		t.Fatalf("identity transform changed point: %v", Identity.TransformPoint(p))
	}
}

func TestIsometryInverseComposesToIdentity(t *testing.T) {
	iso := FromRotationTranslation(mgl64.QuatRotate(1.1, Vec3{1, 1, 0}.Normalize()), Vec3{-3, 5, 0.5})
	composed := iso.Mul(iso.Inverse())

	p := Vec3{2, 2, 2}
	got := composed.TransformPoint(p)
	if got.Sub(p).Len() > 1e-9 {
		t.Fatalf("iso * iso^-1 should be identity, got transform of p = %v", got)
	}
}

func TestSafeNormalizeFallback(t *testing.T) {
	fallback := Vec3{0, 1, 0}
	got := SafeNormalize(Vec3{0, 0, 0}, fallback)
	if got != fallback {
		t.Fatalf("expected fallback %v, got %v", fallback, got)
	}

	unit := SafeNormalize(Vec3{3, 0, 0}, fallback)
	if math.Abs(unit.Len()-1) > 1e-12 {
		t.Fatalf("expected unit length, got %v", unit)
	}
}
