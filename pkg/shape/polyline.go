package shape

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// Polyline is a chain of connected segments, the 2D/curve analog of
// TriMesh: each consecutive vertex pair becomes a Segment SubShape,
// bounded by the same BVT machinery.
type Polyline struct {
	segments []SubShape
	tree     *bvtHandle
}

func NewPolyline(vertices []mathx.Vec3, closed bool) *Polyline {
	n := len(vertices)
	if n < 2 {
		return &Polyline{}
	}
	count := n - 1
	if closed {
		count = n
	}
	parts := make([]SubShape, 0, count)
	for i := 0; i < count; i++ {
		a := vertices[i]
		b := vertices[(i+1)%n]
		parts = append(parts, SubShape{Shape: NewSegment(a, b), Pose: mathx.Identity})
	}
	return &Polyline{segments: parts, tree: buildPartsBVT(parts)}
}

func (*Polyline) Kind() Kind { return KindPolyline }

func (p *Polyline) Parts() []SubShape    { return p.segments }
func (p *Polyline) PartsBVT() *bvtHandle { return p.tree }

func (p *Polyline) AABB(pose mathx.Isometry) bv.AABB {
	if len(p.segments) == 0 {
		return bv.AABB{}
	}
	bounds := p.segments[0].Shape.AABB(pose)
	for _, part := range p.segments[1:] {
		bounds = bounds.Merge(part.Shape.AABB(pose))
	}
	return bounds
}

func (p *Polyline) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	return bv.FromAABB(p.AABB(pose))
}
