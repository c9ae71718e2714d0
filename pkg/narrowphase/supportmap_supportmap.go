package narrowphase

import (
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/query"
	"github.com/go-collide/collide/pkg/shape"
)

// ManifoldStrategy is the pluggable piece of SupportMapSupportMapGenerator:
// given the current single-point kernel result, update manifold in
// place. manifold_incremental.go and manifold_oneshot.go are the two
// spec.md §4.G strategies.
type ManifoldStrategy interface {
	Update(m1 mathx.Isometry, g1 shape.SupportMap, m2 mathx.Isometry, g2 shape.SupportMap, contact query.Contact, manifold *Manifold)
}

// SupportMapSupportMapGenerator runs GJK (and EPA on intersection) via
// query.SupportMapSupportMap, then hands the single-point result to a
// ManifoldStrategy to expand into a full contact set, exactly as spec.md
// §4.G describes.
type SupportMapSupportMapGenerator struct {
	pool     *ScratchPool
	strategy ManifoldStrategy
}

func NewSupportMapSupportMapGenerator(pool *ScratchPool) *SupportMapSupportMapGenerator {
	return &SupportMapSupportMapGenerator{pool: pool, strategy: &IncrementalManifold{}}
}

func (g *SupportMapSupportMapGenerator) GenerateContacts(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape, prediction mathx.Scalar, manifold *Manifold) bool {
	a, ok1 := g1.(shape.SupportMap)
	b, ok2 := g2.(shape.SupportMap)
	if !ok1 || !ok2 {
		return false
	}

	c := query.SupportMapSupportMap(m1, a, m2, b)
	if c.Depth < -prediction {
		manifold.Clear()
		return true
	}

	g.strategy.Update(m1, a, m2, b, c, manifold)
	return true
}
