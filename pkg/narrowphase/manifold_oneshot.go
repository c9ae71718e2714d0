package narrowphase

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/query"
	"github.com/go-collide/collide/pkg/shape"
)

// perturbationAngle is how far OneShotManifold rotates shape2 around the
// contact normal when probing for extra contact points, small enough
// that the perturbed pose still overlaps at the same face/edge feature.
const perturbationAngle = 0.01

// OneShotManifold is spec.md §4.G's other strategy: rebuild the entire
// manifold from scratch every frame by running GJK/EPA at the current
// poses, then probing a handful of small rotations of shape2 around the
// contact normal to harvest extra points beyond the single witness GJK/
// EPA itself returns. Grounded on
// other_examples/ba6d09ec_akmonengine-feather__epa-epa.go.go's
// GenerateManifold call shape (EPA normal/distance in, several contact
// points out), generalized from feather's single-pass manifold build
// into this explicit resampling loop since feather's own manifold
// construction wasn't part of the retrieved epa.go file.
type OneShotManifold struct{}

func (os *OneShotManifold) Update(m1 mathx.Isometry, g1 shape.SupportMap, m2 mathx.Isometry, g2 shape.SupportMap, contact query.Contact, manifold *Manifold) {
	manifold.Clear()
	manifold.Points = append(manifold.Points, ContactPoint{
		LocalA: m1.InverseTransformPoint(contact.WorldPointA),
		LocalB: m2.InverseTransformPoint(contact.WorldPointB),
		WorldA: contact.WorldPointA,
		WorldB: contact.WorldPointB,
		Normal: contact.Normal,
		Depth:  contact.Depth,
	})

	for i, angle := range []mathx.Scalar{perturbationAngle, -perturbationAngle} {
		perturbed := perturbAround(m2, contact.Normal, angle)
		c := query.SupportMapSupportMap(m1, g1, perturbed, g2)
		if c.Depth < 0 {
			continue
		}
		if len(manifold.Points) >= manifold.Capacity {
			break
		}
		manifold.Points = append(manifold.Points, ContactPoint{
			LocalA:    m1.InverseTransformPoint(c.WorldPointA),
			LocalB:    perturbed.InverseTransformPoint(c.WorldPointB),
			WorldA:    c.WorldPointA,
			WorldB:    c.WorldPointB,
			Normal:    c.Normal,
			Depth:     c.Depth,
			FeatureID: i + 1,
		})
	}
}

// perturbAround rotates pose by angle radians around axis, pivoting
// about pose's own translation so the perturbation resamples the same
// contact region rather than swinging the whole shape away from it.
func perturbAround(pose mathx.Isometry, axis mathx.Vec3, angle mathx.Scalar) mathx.Isometry {
	axis = mathx.SafeNormalize(axis, mathx.Vec3{0, 1, 0})
	rot := mgl64.QuatRotate(angle, axis)
	return mathx.Isometry{
		Rotation:    rot.Mul(pose.Rotation),
		Translation: pose.Translation,
	}
}
