package shape

import (
	"math"
	"testing"

	"github.com/go-collide/collide/pkg/mathx"
)

func TestBallCastRayFrontFace(t *testing.T) {
	ball := NewBall(1.0)
	ray := mathx.NewRay(mathx.Vec3{0, 0, 2}, mathx.Vec3{0, 0, -1})

	hit, ok := ball.CastRay(mathx.Identity, ray, 1000, false)
	if !ok {
		t.Fatal("expected hit, got miss")
	}
	if math.Abs(hit.TOI-1.0) > 1e-9 {
		t.Errorf("expected TOI 1.0, got %f", hit.TOI)
	}
	want := mathx.Vec3{0, 0, 1}
	if hit.Normal.Sub(want).Len() > 1e-9 {
		t.Errorf("expected normal %v, got %v", want, hit.Normal)
	}
}

// TestBallCastRaySolidFromInside matches ncollide's solid_ray_cast2d.rs
// convention (adapted to a ball): a solid cast from an interior origin
// reports an immediate toi=0 rather than the far exit root.
func TestBallCastRaySolidFromInside(t *testing.T) {
	ball := NewBall(1.0)
	ray := mathx.NewRay(mathx.Vec3{0, 0, 0}, mathx.Vec3{0, 0, 1})

	hit, ok := ball.CastRay(mathx.Identity, ray, 1000, true)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.TOI != 0 {
		t.Errorf("expected solid cast from inside to report TOI 0, got %f", hit.TOI)
	}
}

// TestBallCastRayNonSolidFromInside is the non-solid counterpart: the
// near root is behind the origin, so the cast must report the far (exit)
// root instead of missing.
func TestBallCastRayNonSolidFromInside(t *testing.T) {
	ball := NewBall(1.0)
	ray := mathx.NewRay(mathx.Vec3{0, 0, 0}, mathx.Vec3{0, 0, 1})

	hit, ok := ball.CastRay(mathx.Identity, ray, 1000, false)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.TOI-1.0) > 1e-9 {
		t.Errorf("expected the exit TOI 1.0, got %f", hit.TOI)
	}
}

func TestBallCastRayMiss(t *testing.T) {
	ball := NewBall(1.0)
	ray := mathx.NewRay(mathx.Vec3{2, 0, 0}, mathx.Vec3{0, 1, 0})

	if _, ok := ball.CastRay(mathx.Identity, ray, 1000, false); ok {
		t.Error("expected miss")
	}
}

func TestBallSupportPointAlongAxis(t *testing.T) {
	ball := NewBall(2.0)
	got := ball.SupportPoint(mathx.Identity, mathx.Vec3{1, 0, 0})
	want := mathx.Vec3{2, 0, 0}
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("SupportPoint = %v, want %v", got, want)
	}
}

func TestBallSupportRespectsPose(t *testing.T) {
	ball := NewBall(1.0)
	pose := mathx.Translation(mathx.Vec3{5, 0, 0})
	got := ball.SupportPoint(pose, mathx.Vec3{1, 0, 0})
	want := mathx.Vec3{6, 0, 0}
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("SupportPoint = %v, want %v", got, want)
	}
}

func TestCuboidSupportPoint(t *testing.T) {
	box := NewCuboid(mathx.Vec3{1, 2, 3})
	got := box.SupportPoint(mathx.Identity, mathx.Vec3{1, -1, 1})
	want := mathx.Vec3{1, -2, 3}
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("SupportPoint = %v, want %v", got, want)
	}
}

func TestCuboidCastRayHitsFace(t *testing.T) {
	box := NewCuboid(mathx.Vec3{1, 1, 1})
	ray := mathx.NewRay(mathx.Vec3{0, 0, 5}, mathx.Vec3{0, 0, -1})

	hit, ok := box.CastRay(mathx.Identity, ray, 1000, false)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.TOI-4.0) > 1e-9 {
		t.Errorf("expected TOI 4.0, got %f", hit.TOI)
	}
}

// TestCuboidCastRaySolidAndNonSolidFromInside reproduces ncollide's
// solid_ray_cast2d.rs example directly: a (1, 2, 1) half-extent cuboid, a
// ray from the origin along +y. Solid cast must report toi=0; non-solid
// must report the exit toi=2.0.
func TestCuboidCastRaySolidAndNonSolidFromInside(t *testing.T) {
	box := NewCuboid(mathx.Vec3{1, 2, 1})
	ray := mathx.NewRay(mathx.Vec3{0, 0, 0}, mathx.Vec3{0, 1, 0})

	solidHit, ok := box.CastRay(mathx.Identity, ray, 1000, true)
	if !ok {
		t.Fatal("expected solid cast to hit")
	}
	if solidHit.TOI != 0 {
		t.Errorf("expected solid cast from inside to report TOI 0, got %f", solidHit.TOI)
	}

	nonSolidHit, ok := box.CastRay(mathx.Identity, ray, 1000, false)
	if !ok {
		t.Fatal("expected non-solid cast to hit")
	}
	if math.Abs(nonSolidHit.TOI-2.0) > 1e-9 {
		t.Errorf("expected non-solid cast from inside to report TOI 2.0, got %f", nonSolidHit.TOI)
	}
}

// TestCuboidCastRayMissesWhenRayPointsAway reproduces a ray that starts
// beyond every face of the box and points further away from it: a
// (1, 2, 1) half-extent cuboid at the origin, a ray from (2, 2, 2) along
// (1, 1, 1), non-solid cast. The ray never re-enters the box's slabs, so
// the cast must report a miss.
func TestCuboidCastRayMissesWhenRayPointsAway(t *testing.T) {
	box := NewCuboid(mathx.Vec3{1, 2, 1})
	ray := mathx.NewRay(mathx.Vec3{2, 2, 2}, mathx.Vec3{1, 1, 1})

	if _, ok := box.CastRay(mathx.Identity, ray, 1000, false); ok {
		t.Error("expected miss")
	}
}

func TestCapsuleBoundingSphereCoversEndpoints(t *testing.T) {
	cap := NewCapsule(2.0, 0.5)
	sphere := cap.BoundingSphere(mathx.Identity)
	if sphere.Radius < 2.5-1e-9 {
		t.Errorf("expected bounding sphere radius >= 2.5, got %f", sphere.Radius)
	}
}

func TestTriangleClosestPointInsideFace(t *testing.T) {
	tri := NewTriangle(mathx.Vec3{0, 0, 0}, mathx.Vec3{2, 0, 0}, mathx.Vec3{0, 2, 0})
	closest := closestPointOnTriangle(mathx.Vec3{0.5, 0.5, 1}, tri.A, tri.B, tri.C)
	want := mathx.Vec3{0.5, 0.5, 0}
	if closest.Sub(want).Len() > 1e-9 {
		t.Errorf("closestPointOnTriangle = %v, want %v", closest, want)
	}
}

func TestReflectionNegatesSupport(t *testing.T) {
	ball := NewBall(1.0)
	refl := NewReflection(ball)
	got := refl.LocalSupportPoint(mathx.Vec3{1, 0, 0})
	// -inner.support(-dir): the ball's support along -x is (-1,0,0),
	// negated back to (1,0,0).
	want := mathx.Vec3{1, 0, 0}
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("Reflection support = %v, want %v", got, want)
	}
}

func TestMinkowskiSumAddsSupports(t *testing.T) {
	a := NewBall(1.0)
	b := NewCuboid(mathx.Vec3{1, 1, 1})
	sum := NewMinkowskiSum(a, b)

	got := sum.LocalSupportPoint(mathx.Vec3{1, 0, 0})
	want := mathx.Vec3{2, 1, 1}
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("MinkowskiSum support = %v, want %v", got, want)
	}
}
