package model

import (
	"fmt"

	"github.com/hchiam/yggdrasil-decision-forests/dataset"
)

/*
Tree is one binary decision tree. It exclusively owns its root node,
which may itself be a leaf for a depth-0 tree. Every reachable node has
exactly 0 or 2 children.
*/
type Tree struct {
	Root *Node
}

/*
NewTree takes a root node and returns a tree owning it.
*/
func NewTree(root *Node) *Tree {
	return &Tree{Root: root}
}

/*
Route takes a sample and descends the tree from its root: on each
internal node the condition is evaluated against the sample's value for
the condition attribute, a missing value routing to the branch indicated
by the condition's missing-value evaluation, and the descent continues
into the selected child. It returns the leaf reached, or an error if the
tree is empty or a value cannot be obtained or evaluated. Routing is
deterministic and has no side effects.
*/
func (t *Tree) Route(s dataset.Sample) (*Node, error) {
	n := t.Root
	if n == nil {
		return nil, fmt.Errorf("%w: routing sample: tree has no root node", ErrDataInconsistency)
	}
	for !n.IsLeaf() {
		value, err := s.AttributeValue(n.Condition.Attribute)
		if err != nil {
			return nil, fmt.Errorf("routing sample: retrieving value for attribute %d: %v", n.Condition.Attribute, err)
		}
		positive, err := n.Condition.Evaluate(value)
		if err != nil {
			return nil, fmt.Errorf("routing sample: %w", err)
		}
		if positive {
			n = n.PositiveChild
		} else {
			n = n.NegativeChild
		}
		if n == nil {
			return nil, fmt.Errorf("%w: routing sample: internal node with a single child", ErrDataInconsistency)
		}
	}
	return n, nil
}

/*
IterateOnNodes runs fn on every node of the tree exactly once, in
pre-order: each node before its positive subtree, and the whole positive
subtree before the negative one. The root is visited at depth 0. The
callback must not modify the nodes; use IterateOnMutableNodes on the
owning forest for payload edits.
*/
func (t *Tree) IterateOnNodes(fn func(n *Node, depth int)) {
	if t.Root == nil {
		return
	}
	t.Root.visit(0, fn)
}

/*
NumNodes returns the number of nodes in the tree.
*/
func (t *Tree) NumNodes() int {
	if t.Root == nil {
		return 0
	}
	return t.Root.numNodes()
}

/*
NumLeaves returns the number of leaves in the tree.
*/
func (t *Tree) NumLeaves() int {
	if t.Root == nil {
		return 0
	}
	return t.Root.numLeaves()
}

/*
MaxLeafDepth returns the depth of the deepest leaf of the tree, with the
root at depth 0, or -1 if the tree is empty.
*/
func (t *Tree) MaxLeafDepth() int {
	max := -1
	t.IterateOnNodes(func(n *Node, depth int) {
		if n.IsLeaf() && depth > max {
			max = depth
		}
	})
	return max
}
