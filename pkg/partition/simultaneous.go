package partition

import "github.com/go-collide/collide/pkg/bv"

// SimultaneousVisitor walks two BVTs in lockstep, pruning pairs of
// subtrees whose bounds don't overlap. There's no single file in the
// reference pack implementing this exact shape; it generalizes the
// teacher's BVH.hitNode (which recurses one tree against a single ray) to
// recursing two trees against each other, the way pair detection needs
// to compare every leaf in one BVT against every leaf in another (or, for
// self-collision, a tree against itself).
type SimultaneousVisitor[T1 Bounded, T2 Bounded] interface {
	// VisitInternalInternal decides whether to descend into a pair of
	// internal nodes.
	VisitInternalInternal(a, b bv.AABB) VisitResult
	// VisitInternalLeaf is called when one side has bottomed out at a
	// leaf and the other is still an internal node.
	VisitInternalLeaf(bounds bv.AABB, leaf T2) VisitResult
	VisitLeafInternal(leaf T1, bounds bv.AABB) VisitResult
	// VisitLeafLeaf is called for every pair of leaves drawn from two leaf
	// nodes the traversal reaches; the leaves' own bounds are not tested
	// before the call.
	VisitLeafLeaf(a T1, b T2) VisitResult
}

type pairStackEntry[T1 Bounded, T2 Bounded] struct {
	a *node[T1]
	b *node[T2]
}

// VisitSimultaneous drives a SimultaneousVisitor over two trees (which may
// be the same tree, for self-collision queries). Traversal is iterative
// via an explicit stack, matching BVT.Visit's approach.
func VisitSimultaneous[T1 Bounded, T2 Bounded](ta *BVT[T1], tb *BVT[T2], v SimultaneousVisitor[T1, T2]) {
	if ta.root == nil || tb.root == nil {
		return
	}

	stack := []pairStackEntry[T1, T2]{{a: ta.root, b: tb.root}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		aLeaf, bLeaf := e.a.isLeaf(), e.b.isLeaf()

		switch {
		case aLeaf && bLeaf:
			for _, la := range e.a.leaves {
				for _, lb := range e.b.leaves {
					if v.VisitLeafLeaf(la, lb) == ExitEarly {
						return
					}
				}
			}

		case aLeaf && !bLeaf:
			for _, la := range e.a.leaves {
				res := v.VisitLeafInternal(la, e.b.bounds)
				if res == ExitEarly {
					return
				}
				if res == Prune {
					continue
				}
				if e.b.left != nil {
					stack = append(stack, pairStackEntry[T1, T2]{a: &node[T1]{bounds: e.a.bounds, leaves: []T1{la}}, b: e.b.left})
				}
				if e.b.right != nil {
					stack = append(stack, pairStackEntry[T1, T2]{a: &node[T1]{bounds: e.a.bounds, leaves: []T1{la}}, b: e.b.right})
				}
			}

		case !aLeaf && bLeaf:
			for _, lb := range e.b.leaves {
				res := v.VisitInternalLeaf(e.a.bounds, lb)
				if res == ExitEarly {
					return
				}
				if res == Prune {
					continue
				}
				if e.a.left != nil {
					stack = append(stack, pairStackEntry[T1, T2]{a: e.a.left, b: &node[T2]{bounds: e.b.bounds, leaves: []T2{lb}}})
				}
				if e.a.right != nil {
					stack = append(stack, pairStackEntry[T1, T2]{a: e.a.right, b: &node[T2]{bounds: e.b.bounds, leaves: []T2{lb}}})
				}
			}

		default:
			res := v.VisitInternalInternal(e.a.bounds, e.b.bounds)
			if res == ExitEarly {
				return
			}
			if res == Prune {
				continue
			}
			if e.a.left != nil && e.b.left != nil {
				stack = append(stack, pairStackEntry[T1, T2]{a: e.a.left, b: e.b.left})
			}
			if e.a.left != nil && e.b.right != nil {
				stack = append(stack, pairStackEntry[T1, T2]{a: e.a.left, b: e.b.right})
			}
			if e.a.right != nil && e.b.left != nil {
				stack = append(stack, pairStackEntry[T1, T2]{a: e.a.right, b: e.b.left})
			}
			if e.a.right != nil && e.b.right != nil {
				stack = append(stack, pairStackEntry[T1, T2]{a: e.a.right, b: e.b.right})
			}
		}
	}
}
