package shape

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// ConvexHull is an arbitrary convex point cloud in local space, its
// support function the brute-force max-dot-product scan — the general
// fallback for convex shapes with no closed form, the same role
// ncollide's ConvexHull type fills for authored meshes that don't match a
// primitive.
type ConvexHull struct {
	Points []mathx.Vec3
}

func NewConvexHull(points []mathx.Vec3) ConvexHull {
	cp := make([]mathx.Vec3, len(points))
	copy(cp, points)
	return ConvexHull{Points: cp}
}

func (ConvexHull) Kind() Kind { return KindConvexHull }

func (h ConvexHull) AABB(pose mathx.Isometry) bv.AABB {
	world := make([]mathx.Vec3, len(h.Points))
	for i, p := range h.Points {
		world[i] = pose.TransformPoint(p)
	}
	return bv.FromPoints(world...)
}

func (h ConvexHull) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	return bv.FromAABB(h.AABB(pose))
}

func (h ConvexHull) LocalSupportPoint(dir mathx.Vec3) mathx.Vec3 {
	if len(h.Points) == 0 {
		return mathx.Zero3
	}
	best, bestDot := h.Points[0], h.Points[0].Dot(dir)
	for _, p := range h.Points[1:] {
		if d := p.Dot(dir); d > bestDot {
			best, bestDot = p, d
		}
	}
	return best
}

func (h ConvexHull) SupportPoint(pose mathx.Isometry, dir mathx.Vec3) mathx.Vec3 {
	local := pose.InverseTransformVector(dir)
	return pose.TransformPoint(h.LocalSupportPoint(local))
}
