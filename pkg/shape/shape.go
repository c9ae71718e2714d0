// Package shape defines the convex (and composite) geometric primitives
// every query and narrow-phase algorithm operates on. The capability-
// interface split (SupportMap/RayCaster/PointQuery/CompositeShape) is
// grounded on the teacher's pkg/geometry capability interfaces (Shape,
// Preprocessor), generalized from "a shape that can be Hit by a ray" to
// the richer set of capabilities GJK/EPA and the broad phase need.
package shape

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// Kind tags a shape's concrete type for dispatch, the same tagged-union
// idiom spec.md calls for in place of the original's trait-object
// hierarchy: a small closed enum a switch can exhaustively cover, rather
// than open-ended dynamic dispatch.
type Kind int

const (
	KindBall Kind = iota
	KindCuboid
	KindCapsule
	KindCone
	KindCylinder
	KindSegment
	KindTriangle
	KindConvexHull
	KindConvexPolygon
	KindPlane
	KindReflection
	KindMinkowskiSum
	KindCompound
	KindTriMesh
	KindPolyline
)

// Shape is the capability every geometric primitive in this module
// implements: it knows its own kind (for dispatch) and can bound itself
// with both an AABB and a bounding sphere under a given pose.
type Shape interface {
	Kind() Kind
	AABB(pose mathx.Isometry) bv.AABB
	BoundingSphere(pose mathx.Isometry) bv.BoundingSphere
}

// SupportMap is implemented by every convex primitive GJK/EPA can query:
// given a direction in world space, return the shape's extreme point
// along that direction, also in world space. This is the single
// polymorphic contract the whole GJK/EPA engine is built on.
type SupportMap interface {
	Shape
	SupportPoint(pose mathx.Isometry, dir mathx.Vec3) mathx.Vec3
	// LocalSupportPoint is the same query expressed in the shape's own
	// local frame. Each shape's SupportPoint is built on it, and wrapper
	// shapes (MinkowskiSum, Reflection) combine their inner shapes'
	// local supports through it; GJK itself uses SupportPoint.
	LocalSupportPoint(dir mathx.Vec3) mathx.Vec3
}

// RayCaster is implemented by shapes with a closed-form ray intersection,
// used directly instead of falling back to GJK-based conservative
// advancement.
type RayCaster interface {
	Shape
	CastRay(pose mathx.Isometry, ray mathx.Ray, maxToi float64, solid bool) (mathx.RayIntersection, bool)
}

// PointQuery answers "where is p relative to this shape:" whether p is
// inside, and the closest point on the shape's surface to p.
type PointQuery interface {
	Shape
	ProjectPoint(pose mathx.Isometry, p mathx.Vec3, solid bool) (closest mathx.Vec3, inside bool)
}

// SubShape is one member of a CompositeShape: its own geometry plus the
// local-frame pose it sits at relative to the composite's origin.
type SubShape struct {
	Shape Shape
	Pose  mathx.Isometry
}

func (s SubShape) AABB() bv.AABB {
	return s.Shape.AABB(s.Pose)
}

// CompositeShape is implemented by shapes built from other shapes
// (Compound, TriMesh, Polyline). Its Parts/BVT let query and narrow-phase
// code treat "one shape made of many" uniformly rather than special-
// casing each composite kind, and let narrowphase.composite.go dispatch
// composite-vs-shape pairs through the same BVT traversal machinery the
// broad phase uses.
type CompositeShape interface {
	Shape
	Parts() []SubShape
	PartsBVT() *bvtHandle
}
