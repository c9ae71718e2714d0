package narrowphase

import (
	"math"
	"testing"

	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/query"
	"github.com/go-collide/collide/pkg/shape"
)

func TestBallBallGeneratorWritesOneContact(t *testing.T) {
	gen := &BallBallGenerator{}
	manifold := NewManifold3D()

	a := shape.NewBall(1)
	b := shape.NewBall(1)
	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{1.5, 0, 0})

	ok := gen.GenerateContacts(m1, a, m2, b, 0.05, manifold)
	if !ok {
		t.Fatal("expected generator to recognize the pair")
	}
	if len(manifold.Points) != 1 {
		t.Fatalf("expected 1 contact point, got %d", len(manifold.Points))
	}
	if math.Abs(manifold.Points[0].Depth-0.5) > 1e-9 {
		t.Errorf("expected depth 0.5, got %f", manifold.Points[0].Depth)
	}
}

func TestBallBallGeneratorClearsWhenBeyondPrediction(t *testing.T) {
	gen := &BallBallGenerator{}
	manifold := NewManifold3D()

	a := shape.NewBall(1)
	b := shape.NewBall(1)
	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{10, 0, 0})

	gen.GenerateContacts(m1, a, m2, b, 0.1, manifold)
	if len(manifold.Points) != 0 {
		t.Errorf("expected no contacts beyond prediction margin, got %d", len(manifold.Points))
	}
}

func TestPlaneSupportMapGeneratorRestingBox(t *testing.T) {
	gen := &PlaneSupportMapGenerator{}
	manifold := NewManifold3D()

	plane := shape.NewPlane(mathx.Vec3{0, 1, 0}, 0)
	box := shape.NewCuboid(mathx.Vec3{1, 1, 1})
	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{0, 0.5, 0})

	ok := gen.GenerateContacts(m1, plane, m2, box, 0.05, manifold)
	if !ok || len(manifold.Points) != 1 {
		t.Fatalf("expected 1 contact point, ok=%v count=%d", ok, len(manifold.Points))
	}
}

func TestPlaneSupportMapGeneratorHandlesSwappedOrder(t *testing.T) {
	gen := &PlaneSupportMapGenerator{}
	manifold := NewManifold3D()

	plane := shape.NewPlane(mathx.Vec3{0, 1, 0}, 0)
	box := shape.NewCuboid(mathx.Vec3{1, 1, 1})
	m1 := mathx.Translation(mathx.Vec3{0, 0.5, 0})
	m2 := mathx.Identity

	ok := gen.GenerateContacts(m1, box, m2, plane, 0.05, manifold)
	if !ok || len(manifold.Points) != 1 {
		t.Fatalf("expected 1 contact point with swapped args, ok=%v count=%d", ok, len(manifold.Points))
	}
}

func TestIncrementalManifoldKeepsPointsWithinCapacity(t *testing.T) {
	strategy := &IncrementalManifold{}
	manifold := NewManifold3D()

	a := shape.NewCuboid(mathx.Vec3{1, 1, 1})
	b := shape.NewCuboid(mathx.Vec3{1, 1, 1})
	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{1.5, 0, 0})

	for i := 0; i < 3; i++ {
		c := query.SupportMapSupportMap(m1, a, m2, b)
		strategy.Update(m1, a, m2, b, c, manifold)
	}

	if len(manifold.Points) == 0 {
		t.Fatal("expected at least one surviving contact point")
	}
	if len(manifold.Points) > manifold.Capacity {
		t.Errorf("manifold exceeded capacity: %d > %d", len(manifold.Points), manifold.Capacity)
	}
}

func TestContactDispatcherCachesGenerator(t *testing.T) {
	d := NewContactDispatcher()
	a := shape.NewCuboid(mathx.Vec3{1, 1, 1})
	b := shape.NewCuboid(mathx.Vec3{1, 1, 1})

	gen1, ok := d.Generator(1, 2, a, b)
	if !ok {
		t.Fatal("expected a generator for cuboid/cuboid")
	}
	gen2, ok := d.Generator(2, 1, a, b)
	if !ok {
		t.Fatal("expected a cached generator on second lookup")
	}
	if gen1 != gen2 {
		t.Error("expected the same generator instance for the same unordered pair")
	}

	d.Forget(1, 2)
	gen3, _ := d.Generator(1, 2, a, b)
	if gen3 == gen1 {
		t.Error("expected a fresh generator after Forget")
	}
}

func TestCompositeGeneratorMergesSubManifolds(t *testing.T) {
	d := NewContactDispatcher()
	cg := NewCompositeGenerator(d)

	parts := []shape.SubShape{
		{Shape: shape.NewBall(1), Pose: mathx.Identity},
		{Shape: shape.NewBall(1), Pose: mathx.Translation(mathx.Vec3{10, 0, 0})},
	}
	compound := shape.NewCompound(parts)
	other := shape.NewBall(1)

	m1 := mathx.Identity
	m2 := mathx.Translation(mathx.Vec3{1.5, 0, 0})
	manifold := NewManifold3D()

	ok := cg.GenerateContacts(m1, compound, m2, other, 0.05, manifold)
	if !ok {
		t.Fatal("expected composite generator to recognize the pair")
	}
	if len(manifold.Points) != 1 {
		t.Fatalf("expected 1 merged contact point, got %d", len(manifold.Points))
	}
}

func TestCompositeGeneratorCompositeVsComposite(t *testing.T) {
	d := NewContactDispatcher()
	cg := NewCompositeGenerator(d)

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
	manifold := NewManifold3D()

	ok := cg.GenerateContacts(m1, a, m2, b, 0.05, manifold)
	if !ok {
		t.Fatal("expected composite generator to recognize the composite/composite pair")
	}
	if len(manifold.Points) != 1 {
		t.Fatalf("expected 1 merged contact point from the single overlapping leaf pair, got %d", len(manifold.Points))
	}
}
