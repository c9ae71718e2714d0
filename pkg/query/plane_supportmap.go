package query

import (
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/shape"
)

// PlaneSupportMap is the closed-form kernel for a plane against any
// support-mapped shape, exactly as spec.md §4.E: find the other shape's
// deepest point along the plane's inward normal, then the signed
// distance is how far that point sits on the plane's back side.
func PlaneSupportMap(planePose mathx.Isometry, plane shape.Plane, otherPose mathx.Isometry, other shape.SupportMap) Contact {
	worldNormal := planePose.RotateVector(plane.Normal)
	planePoint := planePose.TransformPoint(plane.Normal.Mul(plane.Offset))

	deepest := other.SupportPoint(otherPose, worldNormal.Mul(-1))

	signedDist := worldNormal.Dot(planePoint.Sub(deepest))

	return Contact{
		WorldPointA: planePoint.Sub(worldNormal.Mul(signedDist)),
		WorldPointB: deepest,
		Normal:      worldNormal,
		Depth:       signedDist,
	}
}
