package query

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/shape"
)

// BallRay is the closed-form ray-cast kernel for a ball, spec.md §4.E.
// Delegates to shape.Ball's own CastRay rather than re-deriving the
// quadratic here, so the solid/non-solid convention (§8 property 5) lives
// in exactly one place.
func BallRay(center mathx.Vec3, radius mathx.Scalar, ray mathx.Ray, maxToi mathx.Scalar, solid bool) (mathx.RayIntersection, bool) {
	return shape.NewBall(radius).CastRay(mathx.Translation(center), ray, maxToi, solid)
}

// AABBRay is the standard slab-method ray/box test, delegating to
// shape.Cuboid's own CastRay for the same reason.
func AABBRay(box bv.AABB, ray mathx.Ray, maxToi mathx.Scalar, solid bool) (mathx.RayIntersection, bool) {
	half := box.Extents().Mul(0.5)
	return shape.NewCuboid(half).CastRay(mathx.Translation(box.Center()), ray, maxToi, solid)
}
