package model

import (
	"fmt"

	"github.com/hchiam/yggdrasil-decision-forests/dataset"
	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
)

// ModelKey is the label identifying this kind of model in descriptions
// and serializations.
const ModelKey = "RANDOM_FOREST"

/*
Task indicates what a model predicts.
*/
type Task int

const (
	// Classification models predict a category of the label column.
	Classification Task = iota
	// Regression models predict a scalar value.
	Regression
)

func (t Task) String() string {
	switch t {
	case Classification:
		return "CLASSIFICATION"
	case Regression:
		return "REGRESSION"
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

/*
Forest is an ensemble of decision trees plus its task metadata. The
order of Trees is significant: it is the iteration order of every
traversal, the aggregation order of predictions and the index order
reported by descriptions.

The dataspec is referenced, not owned; the caller must keep it alive for
as long as the forest is in use. After construction the forest is
treated as immutable: all methods except IterateOnMutableNodes are
read-only and safe to call concurrently.
*/
type Forest struct {
	Task           Task
	LabelAttribute int
	// WinnerTakeAll selects the classification vote policy: when true,
	// the default, each tree casts a single vote for its routed leaf's
	// top category; when false the leaves' count distributions are
	// summed element-wise.
	WinnerTakeAll bool
	Trees         []*Tree

	spec *dataspec.DataSpec
}

/*
New takes a task, the attribute index of the label column and a DataSpec
and returns an empty forest with them, using winner-take-all vote
aggregation for classification.
*/
func New(task Task, labelAttribute int, spec *dataspec.DataSpec) *Forest {
	return &Forest{Task: task, LabelAttribute: labelAttribute, WinnerTakeAll: true, spec: spec}
}

/*
DataSpec returns the dataspec the forest references.
*/
func (f *Forest) DataSpec() *dataspec.DataSpec {
	return f.spec
}

/*
AddTree appends a tree to the forest, taking ownership of it.
*/
func (f *Forest) AddTree(t *Tree) {
	f.Trees = append(f.Trees, t)
}

/*
NumTrees returns the number of trees in the forest.
*/
func (f *Forest) NumTrees() int {
	return len(f.Trees)
}

/*
NumNodes returns the total number of nodes over all trees.
*/
func (f *Forest) NumNodes() int {
	var count int
	for _, t := range f.Trees {
		count += t.NumNodes()
	}
	return count
}

/*
NumLeaves returns the total number of leaves over all trees.
*/
func (f *Forest) NumLeaves() int {
	var count int
	for _, t := range f.Trees {
		count += t.NumLeaves()
	}
	return count
}

/*
IterateOnNodes runs fn on every node of every tree exactly once: trees
in ensemble order and, within a tree, pre-order with the root at depth
0. The callback must not modify the nodes.
*/
func (f *Forest) IterateOnNodes(fn func(n *Node, depth int)) {
	for _, t := range f.Trees {
		t.IterateOnNodes(fn)
	}
}

/*
IterateOnMutableNodes visits nodes exactly as IterateOnNodes but grants
the callback leave to modify node payloads: leaf values, condition
parameters and training counters. The callback must not alter the tree
topology by adding or removing children. This is the only mutation seam
of a built forest and is not safe to run concurrently with any other
operation on the same forest; the caller owns that exclusion.
*/
func (f *Forest) IterateOnMutableNodes(fn func(n *Node, depth int)) {
	for _, t := range f.Trees {
		t.IterateOnNodes(fn)
	}
}

/*
CallOnAllLeaves takes a sample and a visitor function, routes the sample
through every tree in ensemble order and calls the visitor exactly once
per tree with the leaf the sample reached. It returns an error, without
invoking the visitor further, if any routing fails.
*/
func (f *Forest) CallOnAllLeaves(s dataset.Sample, fn func(leaf *Node)) error {
	for i, t := range f.Trees {
		leaf, err := t.Route(s)
		if err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
		fn(leaf)
	}
	return nil
}

/*
CountFeatureUsage returns a mapping from attribute index to the number
of internal nodes, over all trees, whose condition tests that attribute.
Attributes never used as a split are absent from the mapping.
*/
func (f *Forest) CountFeatureUsage() map[int]int64 {
	usage := make(map[int]int64)
	f.IterateOnNodes(func(n *Node, depth int) {
		if !n.IsLeaf() {
			usage[n.Condition.Attribute]++
		}
	})
	return usage
}

/*
Validate checks the forest structure against its dataspec: every
condition attribute must be a valid column index, internal nodes must
have exactly two children, and for classification models every non-empty
leaf distribution must have one entry per label category. It returns an
error wrapping ErrDataInconsistency describing the first violation
found, or nil.
*/
func (f *Forest) Validate() error {
	var numCategories int
	if f.Task == Classification {
		label, err := f.spec.Column(f.LabelAttribute)
		if err != nil {
			return fmt.Errorf("%w: label: %v", ErrDataInconsistency, err)
		}
		if label.Type != dataspec.Categorical {
			return fmt.Errorf("%w: classification label column %s is not categorical", ErrDataInconsistency, label.Name)
		}
		numCategories = label.NumCategories()
	}
	for i, t := range f.Trees {
		var err error
		t.IterateOnNodes(func(n *Node, depth int) {
			if err != nil {
				return
			}
			err = f.validateNode(i, n, numCategories)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *Forest) validateNode(tree int, n *Node, numCategories int) error {
	if !n.IsLeaf() {
		if n.PositiveChild == nil || n.NegativeChild == nil {
			return fmt.Errorf("%w: tree %d: internal node with a single child", ErrDataInconsistency, tree)
		}
		if _, err := f.spec.Column(n.Condition.Attribute); err != nil {
			return fmt.Errorf("%w: tree %d: condition: %v", ErrDataInconsistency, tree, err)
		}
		return nil
	}
	if f.Task == Classification && n.Classifier != nil && len(n.Classifier.Distribution) > 0 &&
		len(n.Classifier.Distribution) != numCategories {
		return fmt.Errorf("%w: tree %d: leaf distribution has %d entries, label has %d categories",
			ErrDataInconsistency, tree, len(n.Classifier.Distribution), numCategories)
	}
	return nil
}
