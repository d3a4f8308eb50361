/*
Package model implements decision-forest models: the tree and forest
structures, single-sample inference, pre-order traversal, per-attribute
usage counting, structural variable importances and textual descriptions
of the model.

A Forest is built once and then treated as immutable; every operation
except IterateOnMutableNodes is a read-only, side-effect-free computation
and is safe to run concurrently with any other read.
*/
package model

import "fmt"

/*
ConditionKind indicates the kind of test an internal node applies to a
sample attribute value.
*/
type ConditionKind int

const (
	// HigherCondition tests a numerical attribute: value >= Threshold.
	HigherCondition ConditionKind = iota
	// ContainsCondition tests a categorical attribute: code in Elements.
	ContainsCondition
	// TrueCondition tests a boolean attribute: value is true.
	TrueCondition
)

func (ck ConditionKind) String() string {
	switch ck {
	case HigherCondition:
		return "HigherCondition"
	case ContainsCondition:
		return "ContainsCondition"
	case TrueCondition:
		return "TrueCondition"
	}
	return fmt.Sprintf("UnknownCondition(%d)", int(ck))
}

/*
Condition is the test attached to an internal node, routing a sample to
the positive or the negative child.
*/
type Condition struct {
	// Attribute is the dataspec index of the tested column.
	Attribute int
	// Kind selects the test; Threshold applies to HigherCondition and
	// Elements to ContainsCondition.
	Kind      ConditionKind
	Threshold float64
	Elements  []int
	// MissingValueEvaluation is the value the condition evaluates to
	// when the sample has no value for the attribute: true routes to the
	// positive child.
	MissingValueEvaluation bool
	// Score is the split quality reported by training. The model treats
	// it as opaque; it only feeds the SUM_SCORE variable importance and
	// the structure rendering.
	Score float64
	// Training-time example counters, retained for introspection.
	NumTrainingExamples    int64
	NumPosTrainingExamples int64
}

/*
Evaluate takes an attribute value, nil meaning missing, and returns true
if the sample should be routed to the positive child. A missing value
evaluates to MissingValueEvaluation without applying the test. An error
is returned if the value's type does not match the condition kind, which
indicates the sample does not follow the model's dataspec.
*/
func (c *Condition) Evaluate(value interface{}) (bool, error) {
	if value == nil {
		return c.MissingValueEvaluation, nil
	}
	switch c.Kind {
	case HigherCondition:
		v, ok := value.(float64)
		if !ok {
			return false, fmt.Errorf("%w: condition on attribute %d expects float64 value, got %T value", ErrInvalidArgument, c.Attribute, value)
		}
		return v >= c.Threshold, nil
	case ContainsCondition:
		code, ok := value.(int)
		if !ok {
			return false, fmt.Errorf("%w: condition on attribute %d expects int value, got %T value", ErrInvalidArgument, c.Attribute, value)
		}
		for _, e := range c.Elements {
			if e == code {
				return true, nil
			}
		}
		return false, nil
	case TrueCondition:
		v, ok := value.(bool)
		if !ok {
			return false, fmt.Errorf("%w: condition on attribute %d expects bool value, got %T value", ErrInvalidArgument, c.Attribute, value)
		}
		return v, nil
	}
	return false, fmt.Errorf("%w: condition on attribute %d has unknown kind %d", ErrDataInconsistency, c.Attribute, int(c.Kind))
}

/*
ClassifierValue is the payload of a classification leaf: the predicted
category plus the per-category training example count distribution and
its sum. Distribution may be empty for models trained to keep only the
top category.
*/
type ClassifierValue struct {
	TopCategory     int
	Distribution    []float64
	DistributionSum float64
}

/*
RegressorValue is the payload of a regression leaf: the predicted scalar
value.
*/
type RegressorValue struct {
	TopValue float64
}

/*
Node is a vertex of a decision tree: either a leaf carrying a
classification or regression payload, or an internal node carrying one
Condition and exactly two children. Children are exclusively owned by
their parent; the reachable nodes of a tree form a strict out-tree with
no sharing and no cycles.
*/
type Node struct {
	// Condition is nil on leaves.
	Condition     *Condition
	PositiveChild *Node
	NegativeChild *Node
	// Leaf payloads; at most one is set, according to the model task.
	Classifier *ClassifierValue
	Regressor  *RegressorValue
	// Training-time count, retained for introspection only.
	NumPosTrainingExamplesWithoutWeight int64
}

/*
NewClassifierLeaf takes a top category and returns a leaf node
predicting it.
*/
func NewClassifierLeaf(topCategory int) *Node {
	return &Node{Classifier: &ClassifierValue{TopCategory: topCategory}}
}

/*
NewRegressorLeaf takes a scalar value and returns a leaf node predicting
it.
*/
func NewRegressorLeaf(topValue float64) *Node {
	return &Node{Regressor: &RegressorValue{TopValue: topValue}}
}

/*
NewInternalNode takes a Condition and the positive and negative child
nodes and returns an internal node with them.
*/
func NewInternalNode(condition *Condition, positive, negative *Node) *Node {
	return &Node{Condition: condition, PositiveChild: positive, NegativeChild: negative}
}

/*
IsLeaf returns true if the node carries no condition.
*/
func (n *Node) IsLeaf() bool {
	return n.Condition == nil
}

// numNodes returns the number of nodes in the subtree rooted at n.
func (n *Node) numNodes() int {
	if n.IsLeaf() {
		return 1
	}
	return 1 + n.PositiveChild.numNodes() + n.NegativeChild.numNodes()
}

// numLeaves returns the number of leaves in the subtree rooted at n.
func (n *Node) numLeaves() int {
	if n.IsLeaf() {
		return 1
	}
	return n.PositiveChild.numLeaves() + n.NegativeChild.numLeaves()
}

// visit runs fn on every node of the subtree rooted at n in pre-order:
// the node itself, then its positive subtree, then its negative subtree.
func (n *Node) visit(depth int, fn func(*Node, int)) {
	fn(n, depth)
	if !n.IsLeaf() {
		n.PositiveChild.visit(depth+1, fn)
		n.NegativeChild.visit(depth+1, fn)
	}
}
