package query

import (
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/shape"
)

// BallBall is the closed-form distance/contact kernel for two balls,
// exactly as spec.md §4.E: distance is center separation minus the sum of
// radii; the contact normal is the normalized center-to-center vector,
// falling back to +X when the centers coincide (a zero-length direction
// otherwise has no well-defined normal).
func BallBall(m1 mathx.Isometry, a shape.Ball, m2 mathx.Isometry, b shape.Ball) Contact {
	c1 := m1.Translation
	c2 := m2.Translation
	delta := c2.Sub(c1)

	dist := delta.Len()
	normal := mathx.SafeNormalize(delta, mathx.Vec3{1, 0, 0})

	return Contact{
		WorldPointA: c1.Add(normal.Mul(a.Radius)),
		WorldPointB: c2.Sub(normal.Mul(b.Radius)),
		Normal:      normal,
		Depth:       a.Radius + b.Radius - dist,
	}
}
