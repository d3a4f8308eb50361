package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

/*
Describe returns a multi-section human-readable report on the model: its
kind, task and label, the input features, the tree and node counts,
summary statistics on per-tree node counts, leaf depths and leaf
training observation counts, and a breakdown of the condition kinds in
use. With detailed set it also appends every supported variable
importance and the full model structure.

Numeric formatting is stable: calling Describe twice on an unmodified
model returns identical text.
*/
func (f *Forest) Describe(detailed bool) (string, error) {
	label, err := f.spec.Column(f.LabelAttribute)
	if err != nil {
		return "", fmt.Errorf("%w: describing model: label: %v", ErrDataInconsistency, err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Type: %q\n", ModelKey)
	fmt.Fprintf(&b, "Task: %v\n", f.Task)
	fmt.Fprintf(&b, "Label: %q\n", label.Name)
	b.WriteString("\n")

	usage := f.CountFeatureUsage()
	features := make([]int, 0, len(usage))
	for attribute := range usage {
		features = append(features, attribute)
	}
	sort.Ints(features)
	fmt.Fprintf(&b, "Input Features (%d):\n", len(features))
	for _, attribute := range features {
		fmt.Fprintf(&b, "\t%s\n", f.attributeName(attribute))
	}
	b.WriteString("\n")

	if f.Task == Classification {
		fmt.Fprintf(&b, "Winner take all: %v\n", f.WinnerTakeAll)
	}
	fmt.Fprintf(&b, "Number of trees: %d\n", f.NumTrees())
	fmt.Fprintf(&b, "Total number of nodes: %d\n", f.NumNodes())
	b.WriteString("\n")

	nodesByTree := make([]float64, 0, len(f.Trees))
	for _, t := range f.Trees {
		nodesByTree = append(nodesByTree, float64(t.NumNodes()))
	}
	b.WriteString("Number of nodes by tree:\n")
	b.WriteString(summaryStats(nodesByTree))
	b.WriteString("\n")

	var leafDepths, leafObs []float64
	f.IterateOnNodes(func(n *Node, depth int) {
		if n.IsLeaf() {
			leafDepths = append(leafDepths, float64(depth))
			leafObs = append(leafObs, float64(n.NumPosTrainingExamplesWithoutWeight))
		}
	})
	b.WriteString("Depth by leafs:\n")
	b.WriteString(summaryStats(leafDepths))
	b.WriteString("\n")
	b.WriteString("Number of training obs by leaf:\n")
	b.WriteString(summaryStats(leafObs))
	b.WriteString("\n")

	b.WriteString("Condition type in nodes:\n")
	kindCounts := make(map[ConditionKind]int)
	f.IterateOnNodes(func(n *Node, depth int) {
		if !n.IsLeaf() {
			kindCounts[n.Condition.Kind]++
		}
	})
	kinds := make([]ConditionKind, 0, len(kindCounts))
	for kind := range kindCounts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		fmt.Fprintf(&b, "\t%d : %v\n", kindCounts[kind], kind)
	}

	if detailed {
		for _, kind := range VariableImportanceKinds {
			importances, err := f.VariableImportance(kind)
			if err != nil {
				return "", fmt.Errorf("describing model: %w", err)
			}
			fmt.Fprintf(&b, "\nVariable Importance: %s:\n", kind)
			for i, imp := range importances {
				fmt.Fprintf(&b, "    %d. %s %f\n", i+1, f.attributeName(imp.Attribute), imp.Importance)
			}
		}
		b.WriteString("\nModel structure:\n")
		b.WriteString(f.RenderStructure())
	}
	return b.String(), nil
}

/*
RenderStructure returns a textual rendering of every tree of the forest
in ensemble order: a header naming the tree index, then the pre-order
rendering of its nodes. Internal nodes render their condition (attribute
name, operator and operand), split score, training example counters and
missing-value evaluation, followed by the positive child's subtree and
then the negative child's. Leaves render their value, indented by their
depth.
*/
func (f *Forest) RenderStructure() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Number of trees:%d\n", f.NumTrees())
	for i, t := range f.Trees {
		fmt.Fprintf(&b, "Tree #%d\n", i)
		if t.Root != nil {
			f.renderNode(&b, t.Root, 0)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (f *Forest) renderNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf() {
		fmt.Fprintf(b, "%sValue:: %s\n", indent, f.leafValueString(n))
		return
	}
	c := n.Condition
	fmt.Fprintf(b, "%sCondition:: %s score:%f training_examples:%d positive_training_examples:%d missing_value_evaluation:%d\n",
		indent, f.conditionString(c), c.Score, c.NumTrainingExamples, c.NumPosTrainingExamples,
		boolToInt(c.MissingValueEvaluation))
	fmt.Fprintf(b, "%sPositive child\n", indent)
	f.renderNode(b, n.PositiveChild, depth+1)
	fmt.Fprintf(b, "%sNegative child\n", indent)
	f.renderNode(b, n.NegativeChild, depth+1)
}

func (f *Forest) conditionString(c *Condition) string {
	name := f.attributeName(c.Attribute)
	switch c.Kind {
	case HigherCondition:
		return fmt.Sprintf("%s>=%s", name, formatFloat(c.Threshold))
	case ContainsCondition:
		elements := make([]string, 0, len(c.Elements))
		for _, e := range c.Elements {
			elements = append(elements, strconv.Itoa(e))
		}
		return fmt.Sprintf("%s in [%s]", name, strings.Join(elements, " "))
	case TrueCondition:
		return fmt.Sprintf("%s is true", name)
	}
	return fmt.Sprintf("%s ? %v", name, c.Kind)
}

func (f *Forest) leafValueString(n *Node) string {
	switch {
	case n.Classifier != nil:
		return fmt.Sprintf("top:%d", n.Classifier.TopCategory)
	case n.Regressor != nil:
		return fmt.Sprintf("top:%s", formatFloat(n.Regressor.TopValue))
	}
	return "empty"
}

func (f *Forest) attributeName(attribute int) string {
	col, err := f.spec.Column(attribute)
	if err != nil {
		return fmt.Sprintf("#%d", attribute)
	}
	return fmt.Sprintf("%q", col.Name)
}

/*
MinNumberObs returns the minimum number of training observations,
without weight, over every leaf of every tree. A forest with no leaves
fails with an error wrapping ErrPreconditionFailed.
*/
func (f *Forest) MinNumberObs() (int64, error) {
	var min int64
	var found bool
	f.IterateOnNodes(func(n *Node, depth int) {
		if !n.IsLeaf() {
			return
		}
		if !found || n.NumPosTrainingExamplesWithoutWeight < min {
			min = n.NumPosTrainingExamplesWithoutWeight
			found = true
		}
	})
	if !found {
		return 0, fmt.Errorf("%w: model has no leaves", ErrPreconditionFailed)
	}
	return min, nil
}

// summaryStats renders count, average, standard deviation and range of
// a series on two lines.
func summaryStats(values []float64) string {
	if len(values) == 0 {
		return "Count: 0\n"
	}
	var sum float64
	min, max := values[0], values[0]
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(values))
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return fmt.Sprintf("Count: %d Average: %s StdDev: %s\nMin: %s Max: %s\n",
		len(values), formatFloat(mean), formatFloat(math.Sqrt(variance)),
		formatFloat(min), formatFloat(max))
}

// formatFloat renders a float64 with the shortest decimal representation
// that parses back to the same value.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
