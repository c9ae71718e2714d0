package narrowphase

import (
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/query"
	"github.com/go-collide/collide/pkg/shape"
)

// BallBallGenerator wraps query.BallBall, writing at most one contact as
// spec.md §4.G requires.
type BallBallGenerator struct{}

func (g *BallBallGenerator) GenerateContacts(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape, prediction mathx.Scalar, manifold *Manifold) bool {
	a, ok1 := g1.(shape.Ball)
	b, ok2 := g2.(shape.Ball)
	if !ok1 || !ok2 {
		return false
	}

	c := query.BallBall(m1, a, m2, b)
	if c.Depth < -prediction {
		manifold.Clear()
		return true
	}

	manifold.Points = manifold.Points[:0]
	manifold.Points = append(manifold.Points, ContactPoint{
		LocalA: m1.InverseTransformPoint(c.WorldPointA),
		LocalB: m2.InverseTransformPoint(c.WorldPointB),
		WorldA: c.WorldPointA,
		WorldB: c.WorldPointB,
		Normal: c.Normal,
		Depth:  c.Depth,
	})
	return true
}

// BallBallProximity wraps the same kernel for the proximity trichotomy.
type BallBallProximity struct{}

func (p *BallBallProximity) Update(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape, margin mathx.Scalar) query.ProximityStatus {
	a, ok1 := g1.(shape.Ball)
	b, ok2 := g2.(shape.Ball)
	if !ok1 || !ok2 {
		return query.ProximityDisjoint
	}
	c := query.BallBall(m1, a, m2, b)
	switch {
	case c.Depth >= 0:
		return query.ProximityIntersecting
	case -c.Depth <= margin:
		return query.ProximityWithinMargin
	default:
		return query.ProximityDisjoint
	}
}
