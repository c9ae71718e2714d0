package shape

import (
	"math"

	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// Cuboid is a box with the given half-extents along each local axis,
// centered at its pose's origin. Grounded on the teacher's geometry.Box
// (center/size/rotation) and on akmonengine/feather's actor.Box.Support
// (sign-per-component against the half extents).
type Cuboid struct {
	HalfExtents mathx.Vec3
}

func NewCuboid(halfExtents mathx.Vec3) Cuboid { return Cuboid{HalfExtents: halfExtents} }

func (Cuboid) Kind() Kind { return KindCuboid }

func (c Cuboid) AABB(pose mathx.Isometry) bv.AABB {
	world := pose.AbsoluteTransformVector(c.HalfExtents)
	return bv.FromCenterHalfExtents(pose.Translation, world)
}

func (c Cuboid) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	return bv.BoundingSphere{Center: pose.Translation, Radius: c.HalfExtents.Len()}
}

func (c Cuboid) LocalSupportPoint(dir mathx.Vec3) mathx.Vec3 {
	return mathx.Vec3{
		signedExtent(dir[0], c.HalfExtents[0]),
		signedExtent(dir[1], c.HalfExtents[1]),
		signedExtent(dir[2], c.HalfExtents[2]),
	}
}

func (c Cuboid) SupportPoint(pose mathx.Isometry, dir mathx.Vec3) mathx.Vec3 {
	local := pose.InverseTransformVector(dir)
	return pose.TransformPoint(c.LocalSupportPoint(local))
}

func signedExtent(component, half float64) float64 {
	if component >= 0 {
		return half
	}
	return -half
}

// CastRay runs the slab method in the box's local frame, grounded on the
// teacher's core.AABB.Hit generalized to an oriented box by pushing the
// ray through the inverse pose first. The slab test runs over an
// unclamped lower bound so a ray origin inside the box (tMin < 0) can be
// told apart from a genuine miss: per spec.md §8 property 5, a solid cast
// from inside reports toi=0, a non-solid cast reports the far (exit) root.
func (c Cuboid) CastRay(pose mathx.Isometry, ray mathx.Ray, maxToi float64, solid bool) (mathx.RayIntersection, bool) {
	local := ray.InverseTransform(pose)
	box := bv.FromCenterHalfExtents(mathx.Zero3, c.HalfExtents)

	tMin, tMax, hit := box.IntersectsRay(local, -math.MaxFloat64, maxToi)
	if !hit {
		return mathx.RayIntersection{}, false
	}

	toi := tMin
	if tMin < 0 {
		if !solid {
			toi = tMax
		} else {
			toi = 0
		}
	}
	if toi < 0 || toi > maxToi {
		return mathx.RayIntersection{}, false
	}

	localHit := local.At(toi)
	normal := boxNormalAt(localHit, c.HalfExtents)
	return mathx.RayIntersection{TOI: toi, Normal: pose.TransformVector(normal)}, true
}

func boxNormalAt(p, half mathx.Vec3) mathx.Vec3 {
	bestAxis, bestDist := 0, 1e30
	for axis := 0; axis < 3; axis++ {
		d := half[axis] - abs3(p[axis])
		if d < bestDist {
			bestDist, bestAxis = d, axis
		}
	}
	n := mathx.Zero3
	if p[bestAxis] >= 0 {
		n[bestAxis] = 1
	} else {
		n[bestAxis] = -1
	}
	return n
}

func abs3(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func (c Cuboid) ProjectPoint(pose mathx.Isometry, p mathx.Vec3, solid bool) (mathx.Vec3, bool) {
	local := pose.InverseTransformPoint(p)
	inside := abs3(local[0]) <= c.HalfExtents[0] && abs3(local[1]) <= c.HalfExtents[1] && abs3(local[2]) <= c.HalfExtents[2]
	if inside && solid {
		return p, true
	}
	clamped := mathx.Vec3{
		clamp(local[0], -c.HalfExtents[0], c.HalfExtents[0]),
		clamp(local[1], -c.HalfExtents[1], c.HalfExtents[1]),
		clamp(local[2], -c.HalfExtents[2], c.HalfExtents[2]),
	}
	if inside {
		clamped = nearestFaceClamp(local, c.HalfExtents)
	}
	return pose.TransformPoint(clamped), inside
}

func nearestFaceClamp(p, half mathx.Vec3) mathx.Vec3 {
	out := p
	bestAxis, bestDist := 0, 1e30
	for axis := 0; axis < 3; axis++ {
		d := half[axis] - abs3(p[axis])
		if d < bestDist {
			bestDist, bestAxis = d, axis
		}
	}
	if p[bestAxis] >= 0 {
		out[bestAxis] = half[bestAxis]
	} else {
		out[bestAxis] = -half[bestAxis]
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
