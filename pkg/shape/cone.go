package shape

import (
	"math"

	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// Cone stands on its local Y axis, apex at +HalfHeight, base circle of
// Radius at -HalfHeight. Support per spec.md §4.A's closed form: compare
// the apex's projection on dir against the base ring's projection, and
// pick whichever is larger.
type Cone struct {
	HalfHeight float64
	Radius     float64
}

func NewCone(halfHeight, radius float64) Cone { return Cone{HalfHeight: halfHeight, Radius: radius} }

func (Cone) Kind() Kind { return KindCone }

func (c Cone) AABB(pose mathx.Isometry) bv.AABB {
	apex := pose.TransformPoint(mathx.Vec3{0, c.HalfHeight, 0})
	baseCenter := pose.TransformPoint(mathx.Vec3{0, -c.HalfHeight, 0})
	worldRadius := pose.AbsoluteTransformVector(mathx.Vec3{c.Radius, 0, c.Radius})
	box := bv.FromPoints(apex, baseCenter.Sub(worldRadius), baseCenter.Add(worldRadius))
	return box
}

func (c Cone) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	return bv.BoundingSphere{Center: pose.Translation, Radius: math.Hypot(c.HalfHeight, c.Radius)}
}

func (c Cone) LocalSupportPoint(dir mathx.Vec3) mathx.Vec3 {
	apex := mathx.Vec3{0, c.HalfHeight, 0}

	radial := math.Hypot(dir[0], dir[2])
	len := dir.Len()
	if len < mathx.DefaultEpsilon {
		return apex
	}

	// With no radial component, the sign of dir's Y picks apex or base
	// center; otherwise keep whichever of the apex and the base-ring point
	// projects further along dir.
	if radial < mathx.DefaultEpsilon {
		if dir[1] > 0 {
			return apex
		}
		return mathx.Vec3{0, -c.HalfHeight, 0}
	}
	ringDir := mathx.Vec3{dir[0] / radial, 0, dir[2] / radial}
	ring := mathx.Vec3{ringDir[0] * c.Radius, -c.HalfHeight, ringDir[2] * c.Radius}
	if apex.Dot(dir) >= ring.Dot(dir) {
		return apex
	}
	return ring
}

func sinHalfAngleComplement(sinHalfAngle float64) float64 {
	return math.Sqrt(1 - sinHalfAngle*sinHalfAngle)
}

func (c Cone) SupportPoint(pose mathx.Isometry, dir mathx.Vec3) mathx.Vec3 {
	local := pose.InverseTransformVector(dir)
	return pose.TransformPoint(c.LocalSupportPoint(local))
}

func (c Cone) ProjectPoint(pose mathx.Isometry, p mathx.Vec3, solid bool) (mathx.Vec3, bool) {
	// Conservative approximation: project toward the support point in the
	// direction from the cone's centroid to p. Exact cone point
	// projection needs a case analysis on apex/base/lateral regions that
	// callers needing sub-millimeter accuracy should do with GJK instead
	// (Cone implements SupportMap, so the general convex path is always
	// available).
	local := pose.InverseTransformPoint(p)
	dir := mathx.SafeNormalize(local, mathx.Vec3{0, 1, 0})
	support := c.LocalSupportPoint(dir)
	inside := isRoughlyInsideCone(local, c)
	return pose.TransformPoint(support), inside
}

func isRoughlyInsideCone(p mathx.Vec3, c Cone) bool {
	if p[1] < -c.HalfHeight || p[1] > c.HalfHeight {
		return false
	}
	t := (p[1] + c.HalfHeight) / (2 * c.HalfHeight)
	radiusAtY := c.Radius * (1 - t)
	return math.Hypot(p[0], p[2]) <= radiusAtY
}
