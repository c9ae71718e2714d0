package shape

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// ConvexPolygon is a 2D convex hull held in the XY plane (Z held at 0),
// the 2D counterpart of ConvexHull per SPEC_FULL's resolution of 2D
// shapes as a Z=0 projection into the 3D pipeline rather than a parallel
// implementation.
type ConvexPolygon struct {
	Vertices []mathx.Vec2
}

func NewConvexPolygon(vertices []mathx.Vec2) ConvexPolygon {
	cp := make([]mathx.Vec2, len(vertices))
	copy(cp, vertices)
	return ConvexPolygon{Vertices: cp}
}

func (ConvexPolygon) Kind() Kind { return KindConvexPolygon }

func (p ConvexPolygon) points3D() []mathx.Vec3 {
	out := make([]mathx.Vec3, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = mathx.Vec3{v[0], v[1], 0}
	}
	return out
}

func (p ConvexPolygon) AABB(pose mathx.Isometry) bv.AABB {
	world := make([]mathx.Vec3, len(p.Vertices))
	for i, v := range p.points3D() {
		world[i] = pose.TransformPoint(v)
	}
	return bv.FromPoints(world...)
}

func (p ConvexPolygon) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	return bv.FromAABB(p.AABB(pose))
}

func (p ConvexPolygon) LocalSupportPoint(dir mathx.Vec3) mathx.Vec3 {
	pts := p.points3D()
	if len(pts) == 0 {
		return mathx.Zero3
	}
	best, bestDot := pts[0], pts[0].Dot(dir)
	for _, v := range pts[1:] {
		if d := v.Dot(dir); d > bestDot {
			best, bestDot = v, d
		}
	}
	return best
}

func (p ConvexPolygon) SupportPoint(pose mathx.Isometry, dir mathx.Vec3) mathx.Vec3 {
	local := pose.InverseTransformVector(dir)
	return pose.TransformPoint(p.LocalSupportPoint(local))
}
