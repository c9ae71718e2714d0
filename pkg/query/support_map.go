package query

import (
	"github.com/go-collide/collide/pkg/gjkepa"
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/shape"
)

// SupportMapSupportMap runs GJK, then EPA when GJK proves intersection,
// exactly as spec.md §4.F's step 3. Both shapes' supports are evaluated
// in world space directly (pose.SupportPoint already folds the isometry
// in), avoiding the extra local-frame transform feather's fixed
// RigidBody-pair path relies on.
func SupportMapSupportMap(m1 mathx.Isometry, a shape.SupportMap, m2 mathx.Isometry, b shape.SupportMap) Contact {
	supportA := func(dir mathx.Vec3) mathx.Vec3 { return a.SupportPoint(m1, dir) }
	supportB := func(dir mathx.Vec3) mathx.Vec3 { return b.SupportPoint(m2, dir) }

	initialDir := m2.Translation.Sub(m1.Translation)

	var simplex gjkepa.Simplex
	if gjkepa.ResolveDegenerateDirection(gjkepa.MinkowskiSupport(supportA, supportB), &simplex) {
		res := gjkepa.Penetration(supportA, supportB, simplex)
		return Contact{
			WorldPointA: res.PointOnA,
			WorldPointB: res.PointOnB,
			Normal:      res.Normal,
			Depth:       res.Depth,
		}
	}

	dist := gjkepa.Distance(supportA, supportB, initialDir)
	normal := mathx.SafeNormalize(dist.ClosestB.Sub(dist.ClosestA), mathx.Vec3{1, 0, 0})
	return Contact{
		WorldPointA: dist.ClosestA,
		WorldPointB: dist.ClosestB,
		Normal:      normal,
		Depth:       -dist.Distance,
	}
}
