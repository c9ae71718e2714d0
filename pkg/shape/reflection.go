package shape

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// Reflection wraps a SupportMap and negates every direction before
// delegating, producing -Inner's geometry. GJK's Minkowski-difference
// formulation needs exactly this (A - B = A + (-B)) so a pair kernel can
// build the CSO's support out of two ordinary shape supports without
// special-casing subtraction anywhere else.
type Reflection struct {
	Inner SupportMap
}

func NewReflection(inner SupportMap) Reflection { return Reflection{Inner: inner} }

func (Reflection) Kind() Kind { return KindReflection }

func (r Reflection) AABB(pose mathx.Isometry) bv.AABB {
	inner := r.Inner.AABB(pose)
	c := pose.Translation.Mul(2).Sub(inner.Center())
	return bv.FromCenterHalfExtents(c, inner.HalfExtents())
}

func (r Reflection) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	s := r.Inner.BoundingSphere(pose)
	return bv.BoundingSphere{Center: pose.Translation.Mul(2).Sub(s.Center), Radius: s.Radius}
}

func (r Reflection) LocalSupportPoint(dir mathx.Vec3) mathx.Vec3 {
	return r.Inner.LocalSupportPoint(dir.Mul(-1)).Mul(-1)
}

func (r Reflection) SupportPoint(pose mathx.Isometry, dir mathx.Vec3) mathx.Vec3 {
	local := pose.InverseTransformVector(dir)
	return pose.TransformPoint(r.LocalSupportPoint(local))
}
