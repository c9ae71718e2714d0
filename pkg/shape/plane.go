package shape

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// planeHalfWidth is how far Plane's support/AABB approximation extends
// along the plane: infinite planes are represented as a very large finite
// box rather than true infinite geometry, grounded directly on
// akmonengine/feather's actor.Plane.Support, which uses the same
// large-box approximation (feather uses a half-width of 1000 units).
const planeHalfWidth = 1000.0

// Plane is a half-space: everything with Local.Dot(Normal) <= Offset is
// "inside". Normal is expressed in local space; pose orients/positions it
// in world space like any other shape.
type Plane struct {
	Normal mathx.Vec3
	Offset float64
}

func NewPlane(normal mathx.Vec3, offset float64) Plane {
	return Plane{Normal: mathx.SafeNormalize(normal, mathx.Vec3{0, 1, 0}), Offset: offset}
}

func (Plane) Kind() Kind { return KindPlane }

func (p Plane) AABB(pose mathx.Isometry) bv.AABB {
	c := pose.TransformPoint(p.Normal.Mul(p.Offset))
	half := mathx.Vec3{planeHalfWidth, planeHalfWidth, planeHalfWidth}
	return bv.FromCenterHalfExtents(c, half)
}

func (p Plane) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	return bv.FromAABB(p.AABB(pose))
}

func (p Plane) LocalSupportPoint(dir mathx.Vec3) mathx.Vec3 {
	// Project dir onto the plane, then walk out planeHalfWidth along that
	// tangent direction from a point on the plane — the same
	// "approximate the half-space as a huge finite box" support feather
	// uses, which keeps a Plane usable directly in GJK/EPA without a
	// special-cased kernel for every pair involving one.
	onPlane := p.Normal.Mul(p.Offset)
	tangent := dir.Sub(p.Normal.Mul(dir.Dot(p.Normal)))
	tangent = mathx.SafeNormalize(tangent, mathx.Vec3{1, 0, 0}).Mul(planeHalfWidth)
	if dir.Dot(p.Normal) > 0 {
		return onPlane.Add(tangent)
	}
	return onPlane.Add(tangent).Sub(p.Normal.Mul(2 * planeHalfWidth))
}

func (p Plane) SupportPoint(pose mathx.Isometry, dir mathx.Vec3) mathx.Vec3 {
	local := pose.InverseTransformVector(dir)
	return pose.TransformPoint(p.LocalSupportPoint(local))
}

func (p Plane) CastRay(pose mathx.Isometry, ray mathx.Ray, maxToi float64, solid bool) (mathx.RayIntersection, bool) {
	local := ray.InverseTransform(pose)
	denom := p.Normal.Dot(local.Dir)
	if denom == 0 {
		return mathx.RayIntersection{}, false
	}
	t := (p.Offset - p.Normal.Dot(local.Origin)) / denom
	if t < 0 || t > maxToi {
		return mathx.RayIntersection{}, false
	}
	normal := p.Normal
	if denom > 0 {
		normal = normal.Mul(-1)
	}
	return mathx.RayIntersection{TOI: t, Normal: pose.TransformVector(normal)}, true
}

func (p Plane) ProjectPoint(pose mathx.Isometry, pt mathx.Vec3, solid bool) (mathx.Vec3, bool) {
	local := pose.InverseTransformPoint(pt)
	signedDist := local.Dot(p.Normal) - p.Offset
	inside := signedDist <= 0
	if inside && solid {
		return pt, true
	}
	closest := local.Sub(p.Normal.Mul(signedDist))
	return pose.TransformPoint(closest), inside
}
