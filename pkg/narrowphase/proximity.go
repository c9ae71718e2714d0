package narrowphase

import (
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/query"
	"github.com/go-collide/collide/pkg/shape"
)

// SupportMapProximity is the proximity-only analog of
// SupportMapSupportMapGenerator, reusing query.Proximity's trichotomy
// rather than building and maintaining a manifold.
type SupportMapProximity struct{}

func (p *SupportMapProximity) Update(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape, margin mathx.Scalar) query.ProximityStatus {
	a, ok1 := g1.(shape.SupportMap)
	b, ok2 := g2.(shape.SupportMap)
	if !ok1 || !ok2 {
		return query.ProximityDisjoint
	}
	status, err := query.Proximity(m1, a, m2, b, margin)
	if err != nil {
		return query.ProximityDisjoint
	}
	return status
}
