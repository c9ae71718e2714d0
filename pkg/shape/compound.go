package shape

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// Compound is a fixed collection of sub-shapes, each at its own local
// pose, bundled under a single handle (one collision object made of
// several convex pieces). Grounded on the teacher's BVH-over-shapes
// pattern (pkg/core/bvh.go), generalized from "scene of top-level shapes"
// to "one shape's own internal parts", per spec.md §4.A's CompositeShape
// requirement.
type Compound struct {
	parts []SubShape
	tree  *bvtHandle
}

func NewCompound(parts []SubShape) *Compound {
	return &Compound{parts: parts, tree: buildPartsBVT(parts)}
}

func (*Compound) Kind() Kind { return KindCompound }

func (c *Compound) Parts() []SubShape  { return c.parts }
func (c *Compound) PartsBVT() *bvtHandle { return c.tree }

func (c *Compound) AABB(pose mathx.Isometry) bv.AABB {
	if len(c.parts) == 0 {
		return bv.AABB{}
	}
	bounds := c.parts[0].Shape.AABB(pose.Mul(c.parts[0].Pose))
	for _, part := range c.parts[1:] {
		bounds = bounds.Merge(part.Shape.AABB(pose.Mul(part.Pose)))
	}
	return bounds
}

func (c *Compound) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	return bv.FromAABB(c.AABB(pose))
}
