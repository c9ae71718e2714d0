package shape

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// Segment is a degenerate convex shape: a line segment between A and B in
// local space (zero thickness, so only meaningful as a SupportMap/
// PointQuery, never as something with a solid interior).
type Segment struct {
	A, B mathx.Vec3
}

func NewSegment(a, b mathx.Vec3) Segment { return Segment{A: a, B: b} }

func (Segment) Kind() Kind { return KindSegment }

func (s Segment) AABB(pose mathx.Isometry) bv.AABB {
	return bv.FromPoints(pose.TransformPoint(s.A), pose.TransformPoint(s.B))
}

func (s Segment) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	mid := s.A.Add(s.B).Mul(0.5)
	return bv.BoundingSphere{Center: pose.TransformPoint(mid), Radius: s.B.Sub(mid).Len()}
}

func (s Segment) LocalSupportPoint(dir mathx.Vec3) mathx.Vec3 {
	if s.A.Dot(dir) >= s.B.Dot(dir) {
		return s.A
	}
	return s.B
}

func (s Segment) SupportPoint(pose mathx.Isometry, dir mathx.Vec3) mathx.Vec3 {
	local := pose.InverseTransformVector(dir)
	return pose.TransformPoint(s.LocalSupportPoint(local))
}

func (s Segment) ProjectPoint(pose mathx.Isometry, p mathx.Vec3, _ bool) (mathx.Vec3, bool) {
	local := pose.InverseTransformPoint(p)
	closest := closestPointOnSegment(local, s.A, s.B)
	return pose.TransformPoint(closest), false
}
