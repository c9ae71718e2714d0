package narrowphase

import (
	"sync"

	"github.com/go-collide/collide/pkg/gjkepa"
)

// ScratchPool is a sync.Pool-backed arena of GJK simplices. The
// ContactDispatcher hands it to every SupportMapSupportMapGenerator it
// builds, but that generator runs GJK/EPA through pkg/query, which does
// not draw its simplices from this pool. Grounded on
// other_examples/bdce12f2_akmonengine-feather__gjk-gjk.go.go's
// SimplexPool (sync.Pool of *Simplex), adapted to this package's
// Simplex type.
type ScratchPool struct {
	pool sync.Pool
}

func NewScratchPool() *ScratchPool {
	return &ScratchPool{
		pool: sync.Pool{New: func() any { return new(gjkepa.Simplex) }},
	}
}

func (p *ScratchPool) Get() *gjkepa.Simplex {
	s := p.pool.Get().(*gjkepa.Simplex)
	s.Reset()
	return s
}

func (p *ScratchPool) Put(s *gjkepa.Simplex) {
	p.pool.Put(s)
}
