package shape

import (
	"math"

	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// Cylinder stands on its local Y axis between +/- HalfHeight, with a
// circular cross-section of Radius. Support per spec.md §4.A: the radial
// component is pushed out to the rim, the axial component snapped to
// whichever cap dir points toward.
type Cylinder struct {
	HalfHeight float64
	Radius     float64
}

func NewCylinder(halfHeight, radius float64) Cylinder {
	return Cylinder{HalfHeight: halfHeight, Radius: radius}
}

func (Cylinder) Kind() Kind { return KindCylinder }

func (c Cylinder) AABB(pose mathx.Isometry) bv.AABB {
	top := pose.TransformPoint(mathx.Vec3{0, c.HalfHeight, 0})
	bottom := pose.TransformPoint(mathx.Vec3{0, -c.HalfHeight, 0})
	worldRadius := pose.AbsoluteTransformVector(mathx.Vec3{c.Radius, 0, c.Radius})
	return bv.FromPoints(
		top.Sub(worldRadius), top.Add(worldRadius),
		bottom.Sub(worldRadius), bottom.Add(worldRadius),
	)
}

func (c Cylinder) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	return bv.BoundingSphere{Center: pose.Translation, Radius: math.Hypot(c.HalfHeight, c.Radius)}
}

func (c Cylinder) LocalSupportPoint(dir mathx.Vec3) mathx.Vec3 {
	radial := math.Hypot(dir[0], dir[2])
	var x, z float64
	if radial > mathx.DefaultEpsilon {
		x, z = dir[0]/radial*c.Radius, dir[2]/radial*c.Radius
	}
	y := signedExtent(dir[1], c.HalfHeight)
	return mathx.Vec3{x, y, z}
}

func (c Cylinder) SupportPoint(pose mathx.Isometry, dir mathx.Vec3) mathx.Vec3 {
	local := pose.InverseTransformVector(dir)
	return pose.TransformPoint(c.LocalSupportPoint(local))
}

func (c Cylinder) ProjectPoint(pose mathx.Isometry, p mathx.Vec3, solid bool) (mathx.Vec3, bool) {
	local := pose.InverseTransformPoint(p)
	radial := math.Hypot(local[0], local[2])
	insideRadial := radial <= c.Radius
	insideAxial := local[1] >= -c.HalfHeight && local[1] <= c.HalfHeight
	inside := insideRadial && insideAxial
	if inside && solid {
		return p, true
	}

	y := clamp(local[1], -c.HalfHeight, c.HalfHeight)
	var x, z float64
	if radial > mathx.DefaultEpsilon {
		scale := c.Radius / radial
		if insideRadial {
			scale = 1
		}
		x, z = local[0]*scale, local[2]*scale
	}
	closest := mathx.Vec3{x, y, z}
	return pose.TransformPoint(closest), inside
}
