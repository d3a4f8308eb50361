package model

import (
	"fmt"
	"sort"
)

// Supported variable importance kinds.
const (
	// ImportanceNumNodes counts, per attribute, the internal nodes over
	// all trees whose condition tests it.
	ImportanceNumNodes = "NUM_NODES"
	// ImportanceNumAsRoot counts, per attribute, the trees whose root
	// condition tests it.
	ImportanceNumAsRoot = "NUM_AS_ROOT"
	// ImportanceSumScore sums, per attribute, the split score of every
	// internal node testing it.
	ImportanceSumScore = "SUM_SCORE"
	// ImportanceMeanMinDepth averages, per attribute and over all trees,
	// the minimum depth at which the attribute is tested in each tree.
	// An attribute unused in a tree defaults to that tree's maximum leaf
	// depth, so absence is penalized with the deepest possible value and
	// lower values indicate more influential attributes.
	ImportanceMeanMinDepth = "MEAN_MIN_DEPTH"
)

// VariableImportanceKinds lists the supported importance kinds in the
// order they are reported by detailed descriptions.
var VariableImportanceKinds = []string{
	ImportanceNumNodes,
	ImportanceNumAsRoot,
	ImportanceSumScore,
	ImportanceMeanMinDepth,
}

/*
AttributeImportance is one entry of a variable importance result: an
attribute index and its importance value under the requested kind.
*/
type AttributeImportance struct {
	Attribute  int
	Importance float64
}

/*
VariableImportance takes an importance kind name and returns one
AttributeImportance per reported attribute, ordered by descending
importance value, ties broken by ascending attribute index. Callers
interpret the value direction per kind: for MEAN_MIN_DEPTH lower means
more influential, for the other kinds higher does.

The count- and score-based kinds report only attributes appearing in at
least one condition; MEAN_MIN_DEPTH reports every dataspec column. An
unknown kind fails with an error wrapping ErrInvalidArgument, and
MEAN_MIN_DEPTH over a forest with no trees fails the same way since its
average is undefined.
*/
func (f *Forest) VariableImportance(kind string) ([]AttributeImportance, error) {
	var values map[int]float64
	switch kind {
	case ImportanceNumNodes:
		values = make(map[int]float64)
		for attribute, count := range f.CountFeatureUsage() {
			values[attribute] = float64(count)
		}
	case ImportanceNumAsRoot:
		values = make(map[int]float64)
		for _, t := range f.Trees {
			if t.Root != nil && !t.Root.IsLeaf() {
				values[t.Root.Condition.Attribute]++
			}
		}
	case ImportanceSumScore:
		values = make(map[int]float64)
		f.IterateOnNodes(func(n *Node, depth int) {
			if !n.IsLeaf() {
				values[n.Condition.Attribute] += n.Condition.Score
			}
		})
	case ImportanceMeanMinDepth:
		var err error
		values, err = f.meanMinDepth()
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported importance kind %q", ErrInvalidArgument, kind)
	}
	return sortImportances(values), nil
}

func (f *Forest) meanMinDepth() (map[int]float64, error) {
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("%w: computing %s: forest has no trees", ErrInvalidArgument, ImportanceMeanMinDepth)
	}
	numColumns := f.spec.NumColumns()
	sums := make([]float64, numColumns)
	for _, t := range f.Trees {
		minDepths := make(map[int]int)
		t.IterateOnNodes(func(n *Node, depth int) {
			if n.IsLeaf() {
				return
			}
			attribute := n.Condition.Attribute
			if d, used := minDepths[attribute]; !used || depth < d {
				minDepths[attribute] = depth
			}
		})
		// Attributes the tree never tests count as deep as the tree
		// allows.
		defaultDepth := t.MaxLeafDepth()
		for attribute := 0; attribute < numColumns; attribute++ {
			if d, used := minDepths[attribute]; used {
				sums[attribute] += float64(d)
			} else {
				sums[attribute] += float64(defaultDepth)
			}
		}
	}
	values := make(map[int]float64, numColumns)
	for attribute := 0; attribute < numColumns; attribute++ {
		values[attribute] = sums[attribute] / float64(len(f.Trees))
	}
	return values, nil
}

func sortImportances(values map[int]float64) []AttributeImportance {
	result := make([]AttributeImportance, 0, len(values))
	for attribute, value := range values {
		result = append(result, AttributeImportance{Attribute: attribute, Importance: value})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Importance != result[j].Importance {
			return result[i].Importance > result[j].Importance
		}
		return result[i].Attribute < result[j].Attribute
	})
	return result
}
