package query

import (
	"math"
	"testing"

	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/shape"
)

func TestDispatchBallBall(t *testing.T) {
	a := shape.NewBall(1)
	b := shape.NewBall(1)
	algo, _, ok := Dispatch(a, b)
	if !ok || algo != AlgorithmBallBall {
		t.Fatalf("expected AlgorithmBallBall, got %v ok=%v", algo, ok)
	}
}

func TestDispatchPlaneSupportMap(t *testing.T) {
	p := shape.NewPlane(mathx.Vec3{0, 1, 0}, 0)
	c := shape.NewCuboid(mathx.Vec3{1, 1, 1})
	algo, swapped, ok := Dispatch(p, c)
	if !ok || algo != AlgorithmPlaneSupportMap || swapped {
		t.Fatalf("expected unswapped AlgorithmPlaneSupportMap, got %v swapped=%v ok=%v", algo, swapped, ok)
	}

	algo2, swapped2, ok2 := Dispatch(c, p)
	if !ok2 || algo2 != AlgorithmPlaneSupportMap || !swapped2 {
		t.Fatalf("expected swapped AlgorithmPlaneSupportMap, got %v swapped=%v ok=%v", algo2, swapped2, ok2)
	}
}

func TestBallBallContact(t *testing.T) {
	a := shape.NewBall(1)
	b := shape.NewBall(1)
	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{1.5, 0, 0})

	c := BallBall(m1, a, m2, b)
	if math.Abs(c.Depth-0.5) > 1e-9 {
		t.Errorf("expected depth 0.5, got %f", c.Depth)
	}
	want := mathx.Vec3{1, 0, 0}
	if c.Normal.Sub(want).Len() > 1e-9 {
		t.Errorf("expected normal %v, got %v", want, c.Normal)
	}
}

func TestBallBallSeparated(t *testing.T) {
	a := shape.NewBall(1)
	b := shape.NewBall(1)
	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{5, 0, 0})

	dist, err := Distance(m1, a, m2, b)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(dist-3.0) > 1e-9 {
		t.Errorf("expected distance 3.0, got %f", dist)
	}
}

func TestPlaneSupportMapRestingBox(t *testing.T) {
	plane := shape.NewPlane(mathx.Vec3{0, 1, 0}, 0)
	box := shape.NewCuboid(mathx.Vec3{1, 1, 1})
	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{0, 0.5, 0})

	c := PlaneSupportMap(m1, plane, m2, box)
	if math.Abs(c.Depth-0.5) > 1e-9 {
		t.Errorf("expected penetration depth 0.5, got %f", c.Depth)
	}
}

func TestAABBRayHitsNearFace(t *testing.T) {
	box := bv.FromCenterHalfExtents(mathx.Vec3{0, 0, 0}, mathx.Vec3{1, 1, 1})
	ray := mathx.NewRay(mathx.Vec3{0, 0, 5}, mathx.Vec3{0, 0, -1})

	hit, ok := AABBRay(box, ray, 1000, true)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.TOI-4.0) > 1e-9 {
		t.Errorf("expected TOI 4.0, got %f", hit.TOI)
	}
}

func TestSupportMapSupportMapOverlappingBoxes(t *testing.T) {
	a := shape.NewCuboid(mathx.Vec3{1, 1, 1})
	b := shape.NewCuboid(mathx.Vec3{1, 1, 1})
	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{1.5, 0, 0})

	c := SupportMapSupportMap(m1, a, m2, b)
	if c.Depth <= 0 {
		t.Errorf("expected positive penetration depth, got %f", c.Depth)
	}
}

func TestCompositeAnyFindsOverlappingPart(t *testing.T) {
	parts := []shape.SubShape{
		{Shape: shape.NewBall(1), Pose: mathx.Translation(mathx.Vec3{0, 0, 0})},
		{Shape: shape.NewBall(1), Pose: mathx.Translation(mathx.Vec3{10, 0, 0})},
	}
	compound := shape.NewCompound(parts)

	other := shape.NewBall(1)
	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{1.5, 0, 0})

	c, found := CompositeAny(m1, compound, m2, other)
	if !found {
		t.Fatal("expected to find overlapping sub-shape")
	}
	if c.Depth <= 0 {
		t.Errorf("expected positive depth, got %f", c.Depth)
	}
}

func TestCompositeCompositeFindsOverlappingLeafPair(t *testing.T) {
	a := shape.NewCompound([]shape.SubShape{
		{Shape: shape.NewBall(1), Pose: mathx.Identity},
		{Shape: shape.NewBall(1), Pose: mathx.Translation(mathx.Vec3{10, 0, 0})},
	})
	b := shape.NewCompound([]shape.SubShape{
		{Shape: shape.NewBall(1), Pose: mathx.Identity},
		{Shape: shape.NewBall(1), Pose: mathx.Translation(mathx.Vec3{-10, 0, 0})},
	})

	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{1.5, 0, 0})

	c, found := CompositeComposite(m1, a, m2, b)
	if !found {
		t.Fatal("expected to find the one overlapping leaf pair")
	}
	if math.Abs(c.Depth-0.5) > 1e-9 {
		t.Errorf("expected depth 0.5, got %f", c.Depth)
	}
}

func TestTimeOfImpactApproachingBalls(t *testing.T) {
	a := shape.NewBall(1)
	b := shape.NewBall(1)
	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{10, 0, 0})

	result := TimeOfImpact(m1, a, mathx.Vec3{1, 0, 0}, m2, b, mathx.Vec3{0, 0, 0}, 20)
	if !result.Hit {
		t.Fatal("expected TOI hit")
	}
	if math.Abs(result.TOI-8.0) > 1e-3 {
		t.Errorf("expected TOI ~8.0, got %f", result.TOI)
	}
}

// TestTouchingSpheresContactAndProximity reproduces two radius-0.5 balls
// one unit apart (exactly touching): the contact depth is ~0 with a
// normal along x, and a zero-margin proximity check reports intersecting.
func TestTouchingSpheresContactAndProximity(t *testing.T) {
	a := shape.NewBall(0.5)
	b := shape.NewBall(0.5)
	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{1.0, 0, 0})

	c, err := ContactQuery(m1, a, m2, b)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c.Depth) > 1e-9 {
		t.Errorf("expected depth ~0, got %f", c.Depth)
	}
	if math.Abs(math.Abs(c.Normal[0])-1.0) > 1e-9 || c.Normal[1] != 0 || c.Normal[2] != 0 {
		t.Errorf("expected normal +/-x, got %v", c.Normal)
	}

	status, err := Proximity(m1, a, m2, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if status != ProximityIntersecting {
		t.Errorf("expected ProximityIntersecting, got %v", status)
	}
}

// TestBallCuboidTimeOfImpactAlongDiagonal reproduces a ball closing on a
// cuboid's corner along the diagonal that makes the relative-velocity
// direction exactly line up with the separating axis, so the expected
// TOI has the closed form (sqrt(2)-1) / |v_ball - v_box|.
func TestBallCuboidTimeOfImpactAlongDiagonal(t *testing.T) {
	box := shape.NewCuboid(mathx.Vec3{1, 1, 1})
	ball := shape.NewBall(1)

	boxPose := mathx.Identity
	ballPose := mathx.Translation(mathx.Vec3{2, 2, 0})
	vBall := mathx.Vec3{-0.5, -0.5, 0}
	vBox := mathx.Vec3{1, 1, 0}

	result := TimeOfImpact(boxPose, box, vBox, ballPose, ball, vBall, 10)
	if !result.Hit {
		t.Fatal("expected a TOI hit")
	}

	relVel := vBall.Sub(vBox)
	want := (math.Sqrt2 - 1) / relVel.Len()
	if math.Abs(result.TOI-want) > 1e-3 {
		t.Errorf("expected TOI %f, got %f", want, result.TOI)
	}
}

// TestCompositeContainmentMatchesDirectPair reproduces the composite
// regression property: a cuboid overlapping another cuboid yields the
// same contact depth whether queried directly or through a one-part
// compound wrapping the second cuboid.
func TestCompositeContainmentMatchesDirectPair(t *testing.T) {
	half := mathx.Vec3{1, 1, 1}
	first := shape.NewCuboid(half)
	firstPose := mathx.Translation(mathx.Vec3{10.5, 10.5, 0})
	second := shape.NewCuboid(half)
	secondPose := mathx.Translation(mathx.Vec3{10, 10, 0})

	direct, err := ContactQuery(firstPose, first, secondPose, second)
	if err != nil {
		t.Fatal(err)
	}
	if direct.Depth <= 0 {
		t.Fatalf("expected the two cuboids to overlap directly, got depth %f", direct.Depth)
	}

	wrapped := shape.NewCompound([]shape.SubShape{{Shape: second, Pose: mathx.Identity}})
	wrappedContact, found := CompositeAny(secondPose, wrapped, firstPose, first)
	if !found {
		t.Fatal("expected the wrapped compound to still find the contact")
	}
	if math.Abs(wrappedContact.Depth-direct.Depth) > 1e-9 {
		t.Errorf("expected the wrapped contact depth to match the direct one: direct=%f wrapped=%f", direct.Depth, wrappedContact.Depth)
	}
}

// TestTimeOfImpactCrossingBallsDoesNotTunnel is a non-head-on (crossing)
// trajectory: both endpoints of the sweep are separated, but ball b passes
// straight through ball a's position partway through, so a naive endpoint
// check would report no hit even though a collision actually occurs.
func TestTimeOfImpactCrossingBallsDoesNotTunnel(t *testing.T) {
	a := shape.NewBall(1)
	b := shape.NewBall(1)
	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{-10, 0, 0})

	result := TimeOfImpact(m1, a, mathx.Vec3{0, 0, 0}, m2, b, mathx.Vec3{1, 0, 0}, 20)
	if !result.Hit {
		t.Fatal("expected TOI hit despite both sweep endpoints being separated")
	}
	if math.Abs(result.TOI-8.0) > 1e-3 {
		t.Errorf("expected TOI ~8.0, got %f", result.TOI)
	}
}
