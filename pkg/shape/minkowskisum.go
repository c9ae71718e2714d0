package shape

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// MinkowskiSum is the support-function sum of two shapes: its support
// point along dir is A's support plus B's support along the same
// direction. Used to express shapes like "a capsule" as "a segment
// Minkowski-summed with a ball" when composing primitives is more
// natural than a bespoke kernel, and to let round-cornered convex shapes
// be authored without a dedicated type for every rounding radius.
type MinkowskiSum struct {
	A, B SupportMap
}

func NewMinkowskiSum(a, b SupportMap) MinkowskiSum { return MinkowskiSum{A: a, B: b} }

func (MinkowskiSum) Kind() Kind { return KindMinkowskiSum }

func (m MinkowskiSum) AABB(pose mathx.Isometry) bv.AABB {
	a := m.A.AABB(pose)
	b := m.B.AABB(mathx.Translation(mathx.Zero3))
	return bv.New(a.Min.Add(b.Min), a.Max.Add(b.Max))
}

func (m MinkowskiSum) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	a := m.A.BoundingSphere(pose)
	b := m.B.BoundingSphere(mathx.Identity)
	return bv.BoundingSphere{Center: a.Center, Radius: a.Radius + b.Radius}
}

func (m MinkowskiSum) LocalSupportPoint(dir mathx.Vec3) mathx.Vec3 {
	return m.A.LocalSupportPoint(dir).Add(m.B.LocalSupportPoint(dir))
}

func (m MinkowskiSum) SupportPoint(pose mathx.Isometry, dir mathx.Vec3) mathx.Vec3 {
	local := pose.InverseTransformVector(dir)
	return pose.TransformPoint(m.LocalSupportPoint(local))
}
