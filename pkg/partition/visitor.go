package partition

import "github.com/go-collide/collide/pkg/bv"

// VisitResult tells a traversal what to do after visiting a node.
// Grounded on original_source/ncollide_entities/partitioning/bvt_visitor.rs's
// BVTVisitor trait, whose visit_internal/visit_leaf return a plain bool;
// this generalizes that to three outcomes because the spec calls for an
// early-exit distinct from "don't descend this subtree".
type VisitResult int

const (
	// Continue descends into an internal node's children, or simply
	// accepts a leaf visit and continues the traversal.
	Continue VisitResult = iota
	// Prune skips an internal node's children without stopping the rest
	// of the traversal.
	Prune
	// ExitEarly stops the entire traversal immediately.
	ExitEarly
)

// Visitor inspects a BVT's nodes during traversal, reporting whether to
// descend, prune, or abort. T is the leaf payload type (same T as the
// BVT[T] being visited).
type Visitor[T Bounded] interface {
	VisitInternal(bounds bv.AABB) VisitResult
	VisitLeaf(leaf T, bounds bv.AABB) VisitResult
}

// Visit walks the tree depth-first using an explicit stack rather than
// recursion, so a pathologically deep tree (or one built from adversarial
// input) can't blow the goroutine stack the way the teacher's recursive
// hitNode could.
func (t *BVT[T]) Visit(v Visitor[T]) {
	if t.root == nil {
		return
	}
	stack := []*node[T]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.isLeaf() {
			for _, leaf := range n.leaves {
				if v.VisitLeaf(leaf, n.bounds) == ExitEarly {
					return
				}
			}
			continue
		}

		switch v.VisitInternal(n.bounds) {
		case ExitEarly:
			return
		case Prune:
			continue
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
		if n.right != nil {
			stack = append(stack, n.right)
		}
	}
}

// VisitorFunc-style helpers for the common case of a visitor that only
// cares about an AABB overlap test, so callers don't need to hand-write a
// struct for every query.

// AABBVisitor visits every leaf whose bounds intersect a query AABB, and
// reports each one to the supplied callback.
type AABBVisitor[T Bounded] struct {
	Query   bv.AABB
	Visit   func(T) VisitResult
	visited bool
}

// VisitInternal descends into any internal node overlapping the query box.
func (av *AABBVisitor[T]) VisitInternal(bounds bv.AABB) VisitResult {
	if !bounds.Intersects(av.Query) {
		return Prune
	}
	return Continue
}

// VisitLeaf reports leaves whose own bounds overlap the query box.
func (av *AABBVisitor[T]) VisitLeaf(leaf T, bounds bv.AABB) VisitResult {
	if !leaf.AABB().Intersects(av.Query) {
		return Continue
	}
	av.visited = true
	return av.Visit(leaf)
}
