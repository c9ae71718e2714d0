// Package bv holds the bounding-volume types (AABB, BoundingSphere) shared
// by the partitioning, shape, and query packages. Kept deliberately small:
// a bounding volume here is a value type with merge/intersect/contains
// operations, not a node in a tree (that's pkg/partition's job).
package bv

import (
	"math"

	"github.com/go-collide/collide/pkg/mathx"
)

// AABB is an axis-aligned bounding box. Grounded on the teacher's
// core.AABB: Min/Max corners, Union/Center/Size/SurfaceArea/LongestAxis
// carry the same shape, generalized onto mathx.Vec3 and extended with
// Contains/Loosen/Tighten for DBVT bookkeeping.
type AABB struct {
	Min, Max mathx.Vec3
}

// New builds an AABB from explicit corners. Callers are responsible for
// min <= max componentwise; use FromPoints when that isn't already known.
func New(min, max mathx.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// FromPoints builds the tightest AABB enclosing the given points.
func FromPoints(points ...mathx.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = componentMin(min, p)
		max = componentMax(max, p)
	}
	return AABB{Min: min, Max: max}
}

// FromCenterHalfExtents builds an AABB centered at c spanning +/- half on
// each axis, the shape a bounding-sphere-to-AABB or ball AABB computation
// naturally produces.
func FromCenterHalfExtents(c, half mathx.Vec3) AABB {
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

// Merge returns the smallest AABB enclosing both aabb and other.
func (a AABB) Merge(other AABB) AABB {
	return AABB{Min: componentMin(a.Min, other.Min), Max: componentMax(a.Max, other.Max)}
}

// Center returns the AABB's midpoint.
func (a AABB) Center() mathx.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Extents returns the full size of the box along each axis.
func (a AABB) Extents() mathx.Vec3 {
	return a.Max.Sub(a.Min)
}

// HalfExtents returns half the size along each axis.
func (a AABB) HalfExtents() mathx.Vec3 {
	return a.Extents().Mul(0.5)
}

// SurfaceArea returns the total surface area, used by SAH-guided DBVT
// insertion to rank candidate siblings.
func (a AABB) SurfaceArea() float64 {
	s := a.Extents()
	return 2.0 * (s[0]*s[1] + s[1]*s[2] + s[2]*s[0])
}

// Volume returns the box's volume.
func (a AABB) Volume() float64 {
	s := a.Extents()
	return s[0] * s[1] * s[2]
}

// LongestAxis returns 0/1/2 for the axis (X/Y/Z) with the largest extent,
// the split axis the BVT's median-split construction uses.
func (a AABB) LongestAxis() int {
	s := a.Extents()
	if s[0] > s[1] && s[0] > s[2] {
		return 0
	}
	if s[1] > s[2] {
		return 1
	}
	return 2
}

// Intersects reports whether two AABBs overlap (touching counts as
// overlap, consistent with the spec's "Intersecting" proximity state).
func (a AABB) Intersects(other AABB) bool {
	return a.Min[0] <= other.Max[0] && a.Max[0] >= other.Min[0] &&
		a.Min[1] <= other.Max[1] && a.Max[1] >= other.Min[1] &&
		a.Min[2] <= other.Max[2] && a.Max[2] >= other.Min[2]
}

// Contains reports whether other is entirely inside a. Used by the DBVT to
// decide whether a leaf's loosened volume still covers its tight shape
// bound, avoiding a tree update on every small motion.
func (a AABB) Contains(other AABB) bool {
	return a.Min[0] <= other.Min[0] && a.Max[0] >= other.Max[0] &&
		a.Min[1] <= other.Min[1] && a.Max[1] >= other.Max[1] &&
		a.Min[2] <= other.Min[2] && a.Max[2] >= other.Max[2]
}

// ContainsPoint reports whether p lies within a (inclusive of the faces).
func (a AABB) ContainsPoint(p mathx.Vec3) bool {
	return p[0] >= a.Min[0] && p[0] <= a.Max[0] &&
		p[1] >= a.Min[1] && p[1] <= a.Max[1] &&
		p[2] >= a.Min[2] && p[2] <= a.Max[2]
}

// Loosen returns a inflated by margin on every face. The DBVT stores
// loosened AABBs at leaves so that small object motions don't require
// retightening the tree on every frame.
func (a AABB) Loosen(margin float64) AABB {
	m := mathx.Vec3{margin, margin, margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}

// Tighten shrinks a by margin on every face, the dual of Loosen, per
// spec.md §3/§4.B. It reports ok=false (and returns a unchanged) if
// shrinking would invert a face (margin too large for a's extents),
// since a tightened box must still satisfy Min <= Max componentwise.
func (a AABB) Tighten(margin float64) (AABB, bool) {
	m := mathx.Vec3{margin, margin, margin}
	shrunk := AABB{Min: a.Min.Add(m), Max: a.Max.Sub(m)}
	if !shrunk.IsValid() {
		return a, false
	}
	return shrunk, true
}

// Transform returns a conservative AABB enclosing a after applying pose,
// built the same way shape.Cuboid.AABB bounds an oriented box: rotate the
// half-extents with AbsoluteTransformVector and recenter. Used to bring one
// composite's local-frame BVT bounds into another composite's frame for a
// dual-tree traversal.
func (a AABB) Transform(pose mathx.Isometry) AABB {
	center := pose.TransformPoint(a.Center())
	half := pose.AbsoluteTransformVector(a.HalfExtents())
	return FromCenterHalfExtents(center, half)
}

// IntersectsRay tests the slab method against the given ray, grounded
// directly on the teacher's core.AABB.Hit.
func (a AABB) IntersectsRay(ray mathx.Ray, tMin, tMax float64) (float64, float64, bool) {
	for axis := 0; axis < 3; axis++ {
		origin, direction := ray.Origin[axis], ray.Dir[axis]
		min, max := a.Min[axis], a.Max[axis]

		if math.Abs(direction) < 1e-8 {
			if origin < min || origin > max {
				return 0, 0, false
			}
			continue
		}

		invDir := 1.0 / direction
		t1 := (min - origin) * invDir
		t2 := (max - origin) * invDir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}

// IsValid reports whether Min <= Max componentwise.
func (a AABB) IsValid() bool {
	return a.Min[0] <= a.Max[0] && a.Min[1] <= a.Max[1] && a.Min[2] <= a.Max[2]
}

func componentMin(a, b mathx.Vec3) mathx.Vec3 {
	return mathx.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

func componentMax(a, b mathx.Vec3) mathx.Vec3 {
	return mathx.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}
