package shape

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// TriMesh is a static triangle soup, the composite shape for authored
// level geometry. Each triangle becomes its own SubShape at the identity
// local pose (triangle vertices are already expressed in the mesh's own
// frame), bounded by a BVT exactly like the teacher's BVH bounds a
// scene's Shape list.
type TriMesh struct {
	triangles []SubShape
	tree      *bvtHandle
}

// NewTriMesh builds a mesh from a flat vertex buffer and an index list
// (three indices per triangle), the common authoring format the teacher's
// pkg/loaders reads from .ply files.
func NewTriMesh(vertices []mathx.Vec3, indices []int) *TriMesh {
	parts := make([]SubShape, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		tri := NewTriangle(vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]])
		parts = append(parts, SubShape{Shape: tri, Pose: mathx.Identity})
	}
	return &TriMesh{triangles: parts, tree: buildPartsBVT(parts)}
}

func (*TriMesh) Kind() Kind { return KindTriMesh }

func (m *TriMesh) Parts() []SubShape    { return m.triangles }
func (m *TriMesh) PartsBVT() *bvtHandle { return m.tree }

func (m *TriMesh) AABB(pose mathx.Isometry) bv.AABB {
	if len(m.triangles) == 0 {
		return bv.AABB{}
	}
	bounds := m.triangles[0].Shape.AABB(pose)
	for _, part := range m.triangles[1:] {
		bounds = bounds.Merge(part.Shape.AABB(pose))
	}
	return bounds
}

func (m *TriMesh) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	return bv.FromAABB(m.AABB(pose))
}
