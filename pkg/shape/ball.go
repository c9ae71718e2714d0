package shape

import (
	"math"

	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// Ball is a sphere centered at its pose's origin. Grounded on the
// teacher's geometry.Sphere (center/radius/Hit/BoundingBox) and on
// akmonengine/feather's actor.Sphere.Support (direction normalized and
// scaled by radius).
type Ball struct {
	Radius float64
}

func NewBall(radius float64) Ball { return Ball{Radius: radius} }

func (Ball) Kind() Kind { return KindBall }

func (b Ball) AABB(pose mathx.Isometry) bv.AABB {
	r := mathx.Vec3{b.Radius, b.Radius, b.Radius}
	return bv.New(pose.Translation.Sub(r), pose.Translation.Add(r))
}

func (b Ball) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	return bv.BoundingSphere{Center: pose.Translation, Radius: b.Radius}
}

func (b Ball) LocalSupportPoint(dir mathx.Vec3) mathx.Vec3 {
	return mathx.SafeNormalize(dir, mathx.Vec3{1, 0, 0}).Mul(b.Radius)
}

func (b Ball) SupportPoint(pose mathx.Isometry, dir mathx.Vec3) mathx.Vec3 {
	local := pose.InverseTransformVector(dir)
	return pose.TransformPoint(b.LocalSupportPoint(local))
}

// CastRay solves the quadratic sphere/ray intersection, grounded on the
// teacher's geometry.Sphere.Hit. A ray starting inside the ball (c <= 0)
// follows spec.md §8 property 5's solid convention: a solid cast reports
// an immediate toi=0, a non-solid cast reports the far (exit) root
// instead of missing.
func (b Ball) CastRay(pose mathx.Isometry, ray mathx.Ray, maxToi float64, solid bool) (mathx.RayIntersection, bool) {
	oc := ray.Origin.Sub(pose.Translation)
	a := ray.Dir.Dot(ray.Dir)
	half := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - b.Radius*b.Radius
	disc := half*half - a*c
	if disc < 0 {
		return mathx.RayIntersection{}, false
	}
	sqrtDisc := math.Sqrt(disc)

	if c <= 0 && solid {
		return mathx.RayIntersection{TOI: 0, Normal: mathx.SafeNormalize(oc, mathx.Vec3{1, 0, 0})}, true
	}

	root := (-half - sqrtDisc) / a
	if root < 0 || root > maxToi {
		root = (-half + sqrtDisc) / a
		if root < 0 || root > maxToi {
			return mathx.RayIntersection{}, false
		}
	}

	hit := ray.At(root)
	normal := mathx.SafeNormalize(hit.Sub(pose.Translation), mathx.Vec3{1, 0, 0})
	return mathx.RayIntersection{TOI: root, Normal: normal}, true
}

func (b Ball) ProjectPoint(pose mathx.Isometry, p mathx.Vec3, solid bool) (mathx.Vec3, bool) {
	d := p.Sub(pose.Translation)
	dist := d.Len()
	inside := dist <= b.Radius
	if inside && solid {
		return p, true
	}
	dir := mathx.SafeNormalize(d, mathx.Vec3{1, 0, 0})
	return pose.Translation.Add(dir.Mul(b.Radius)), inside
}
