package narrowphase

import (
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/query"
	"github.com/go-collide/collide/pkg/shape"
)

// PlaneSupportMapGenerator wraps query.PlaneSupportMap, writing at most
// one contact: the deepest point on the support-mapped shape, exactly as
// spec.md §4.G.
type PlaneSupportMapGenerator struct{}

func (g *PlaneSupportMapGenerator) GenerateContacts(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape, prediction mathx.Scalar, manifold *Manifold) bool {
	plane, swapped, other, otherPose, planePose, ok := resolvePlanePair(m1, g1, m2, g2)
	if !ok {
		return false
	}

	c := query.PlaneSupportMap(planePose, plane, otherPose, other)
	if c.Depth < -prediction {
		manifold.Clear()
		return true
	}

	worldA, worldB := c.WorldPointA, c.WorldPointB
	normal := c.Normal
	if swapped {
		worldA, worldB = worldB, worldA
		normal = normal.Mul(-1)
	}

	manifold.Points = manifold.Points[:0]
	manifold.Points = append(manifold.Points, ContactPoint{
		LocalA: m1.InverseTransformPoint(worldA),
		LocalB: m2.InverseTransformPoint(worldB),
		WorldA: worldA,
		WorldB: worldB,
		Normal: normal,
		Depth:  c.Depth,
	})
	return true
}

func resolvePlanePair(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape) (plane shape.Plane, swapped bool, other shape.SupportMap, otherPose, planePose mathx.Isometry, ok bool) {
	if p, isPlane := g1.(shape.Plane); isPlane {
		if sm, isSupport := g2.(shape.SupportMap); isSupport {
			return p, false, sm, m2, m1, true
		}
	}
	if p, isPlane := g2.(shape.Plane); isPlane {
		if sm, isSupport := g1.(shape.SupportMap); isSupport {
			return p, true, sm, m1, m2, true
		}
	}
	return shape.Plane{}, false, nil, mathx.Identity, mathx.Identity, false
}
