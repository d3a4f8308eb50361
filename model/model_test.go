package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/hchiam/yggdrasil-decision-forests/dataset"
	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toySpec() *dataspec.DataSpec {
	return dataspec.New(
		dataspec.NewNumericalColumn("a"),
		dataspec.NewCategoricalColumn("b", []string{"x", "y", "z"}),
	)
}

// toyClassificationForest builds a two-tree forest over toySpec
// predicting label b from a: the first tree tests a>=1, the second
// a>=3.
func toyClassificationForest(spec *dataspec.DataSpec) *Forest {
	f := New(Classification, 1, spec)
	pos0 := NewClassifierLeaf(1)
	pos0.NumPosTrainingExamplesWithoutWeight = 8
	neg0 := NewClassifierLeaf(0)
	neg0.NumPosTrainingExamplesWithoutWeight = 2
	f.AddTree(NewTree(NewInternalNode(&Condition{
		Attribute:              0,
		Kind:                   HigherCondition,
		Threshold:              1,
		Score:                  2,
		NumTrainingExamples:    10,
		NumPosTrainingExamples: 8,
	}, pos0, neg0)))
	pos1 := NewClassifierLeaf(2)
	pos1.NumPosTrainingExamplesWithoutWeight = 2
	neg1 := NewClassifierLeaf(0)
	neg1.NumPosTrainingExamplesWithoutWeight = 8
	f.AddTree(NewTree(NewInternalNode(&Condition{
		Attribute:              0,
		Kind:                   HigherCondition,
		Threshold:              3,
		Score:                  1,
		NumTrainingExamples:    10,
		NumPosTrainingExamples: 2,
	}, pos1, neg1)))
	return f
}

// toyDataset builds a three-row dataset over toySpec with a = 0, 2, 4.
func toyDataset(t *testing.T, spec *dataspec.DataSpec) *dataset.VerticalDataset {
	t.Helper()
	d, err := dataset.New(spec)
	require.NoError(t, err)
	a, err := d.NumericalColumnAt(0)
	require.NoError(t, err)
	b, err := d.CategoricalColumnAt(1)
	require.NoError(t, err)
	a.Add(0)
	a.Add(2)
	a.Add(4)
	b.Add(1)
	b.Add(2)
	b.Add(1)
	require.NoError(t, d.Check())
	return d
}

func TestForestCounts(t *testing.T) {
	f := toyClassificationForest(toySpec())

	assert.Equal(t, 2, f.NumTrees())
	assert.Equal(t, 6, f.NumNodes())
	assert.Equal(t, 4, f.NumLeaves())
}

func TestCountFeatureUsage(t *testing.T) {
	f := toyClassificationForest(toySpec())

	usage := f.CountFeatureUsage()
	assert.Equal(t, map[int]int64{0: 2}, usage)
}

func TestIterateOnNodesPreOrder(t *testing.T) {
	f := toyClassificationForest(toySpec())

	var depths []int
	var leaves []bool
	f.IterateOnNodes(func(n *Node, depth int) {
		depths = append(depths, depth)
		leaves = append(leaves, n.IsLeaf())
	})
	assert.Equal(t, []int{0, 1, 1, 0, 1, 1}, depths)
	assert.Equal(t, []bool{false, true, true, false, true, true}, leaves)
}

func TestIterateOnMutableNodes(t *testing.T) {
	f := toyClassificationForest(toySpec())

	f.IterateOnMutableNodes(func(n *Node, depth int) {
		if n.IsLeaf() {
			n.NumPosTrainingExamplesWithoutWeight++
		}
	})
	min, err := f.MinNumberObs()
	require.NoError(t, err)
	assert.Equal(t, int64(3), min)
}

func TestCallOnAllLeaves(t *testing.T) {
	spec := toySpec()
	f := toyClassificationForest(spec)
	d := toyDataset(t, spec)

	s, err := d.Row(1)
	require.NoError(t, err)
	var tops []int
	err = f.CallOnAllLeaves(s, func(leaf *Node) {
		tops = append(tops, leaf.Classifier.TopCategory)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, tops)
}

func TestPredictClassificationWinnerTakeAll(t *testing.T) {
	spec := toySpec()
	f := toyClassificationForest(spec)
	d := toyDataset(t, spec)

	p, err := f.PredictRow(d, 1)
	require.NoError(t, err)
	require.NotNil(t, p.Classification)
	// Two votes split between categories 0 and 1; the tie goes to the
	// lowest category index.
	assert.Equal(t, 0, p.Classification.Category)
	assert.Equal(t, []float64{1, 1, 0}, p.Classification.Distribution)
	assert.Equal(t, float64(2), p.Classification.DistributionSum)

	p, err = f.PredictRow(d, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Classification.Category)
	assert.Equal(t, []float64{2, 0, 0}, p.Classification.Distribution)

	p, err = f.PredictRow(d, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Classification.Category)
	assert.Equal(t, []float64{0, 1, 1}, p.Classification.Distribution)
}

func TestPredictClassificationDistributionSum(t *testing.T) {
	spec := toySpec()
	f := toyClassificationForest(spec)
	f.WinnerTakeAll = false
	f.IterateOnMutableNodes(func(n *Node, depth int) {
		if !n.IsLeaf() {
			return
		}
		c := n.Classifier
		c.Distribution = make([]float64, 3)
		c.Distribution[c.TopCategory] = float64(n.NumPosTrainingExamplesWithoutWeight)
		c.DistributionSum = float64(n.NumPosTrainingExamplesWithoutWeight)
	})
	d := toyDataset(t, spec)

	// Row 1 reaches the 8-example leaf for category 1 and the 8-example
	// leaf for category 0.
	p, err := f.PredictRow(d, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Classification.Category)
	assert.Equal(t, []float64{8, 8, 0}, p.Classification.Distribution)
	assert.Equal(t, float64(16), p.Classification.DistributionSum)
}

func TestPredictRowMatchesExtractedExample(t *testing.T) {
	spec := toySpec()
	f := toyClassificationForest(spec)
	d := toyDataset(t, spec)

	for row := 0; row < d.NumRows(); row++ {
		fromRow, err := f.PredictRow(d, row)
		require.NoError(t, err)
		e, err := d.ExtractExample(row)
		require.NoError(t, err)
		fromExample, err := f.Predict(e)
		require.NoError(t, err)
		assert.Equal(t, fromRow, fromExample, "row %d", row)
	}
}

func TestPredictRegression(t *testing.T) {
	spec := dataspec.New(
		dataspec.NewNumericalColumn("a"),
		dataspec.NewNumericalColumn("y"),
	)
	f := New(Regression, 1, spec)
	f.AddTree(NewTree(NewInternalNode(&Condition{
		Attribute: 0,
		Kind:      HigherCondition,
		Threshold: 1,
	}, NewRegressorLeaf(0), NewRegressorLeaf(1))))
	f.AddTree(NewTree(NewInternalNode(&Condition{
		Attribute: 0,
		Kind:      HigherCondition,
		Threshold: 3,
	}, NewRegressorLeaf(2), NewRegressorLeaf(1))))

	// a=2 routes to the leaves with values 0 and 1.
	e := dataset.NewExample(spec)
	require.NoError(t, e.SetValue(0, 2.0))
	p, err := f.Predict(e)
	require.NoError(t, err)
	require.NotNil(t, p.Regression)
	assert.InDelta(t, 0.5, p.Regression.Value, 1e-9)
}

func TestPredictEmptyForest(t *testing.T) {
	f := New(Classification, 1, toySpec())

	_, err := f.Predict(dataset.NewExample(f.DataSpec()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestPredictMissingValueRouting(t *testing.T) {
	spec := toySpec()
	f := toyClassificationForest(spec)

	// No value for a: both conditions evaluate to their missing-value
	// evaluation, false, so both trees vote for their negative leaf.
	e := dataset.NewExample(spec)
	p, err := f.Predict(e)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, 0}, p.Classification.Distribution)

	f.Trees[0].Root.Condition.MissingValueEvaluation = true
	p, err = f.Predict(e)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 0}, p.Classification.Distribution)
}

func TestPredictTypeMismatch(t *testing.T) {
	f := toyClassificationForest(toySpec())

	_, err := f.Predict(badSample{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

type badSample struct{}

func (badSample) AttributeValue(attribute int) (interface{}, error) {
	return "not a number", nil
}

func TestRouteEmptyTree(t *testing.T) {
	tree := NewTree(nil)

	_, err := tree.Route(dataset.NewExample(toySpec()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataInconsistency))
}

func TestMaxLeafDepth(t *testing.T) {
	f := toyClassificationForest(toySpec())

	assert.Equal(t, 1, f.Trees[0].MaxLeafDepth())
	assert.Equal(t, -1, NewTree(nil).MaxLeafDepth())
	assert.Equal(t, 0, NewTree(NewClassifierLeaf(0)).MaxLeafDepth())
}

func TestConditionEvaluate(t *testing.T) {
	higher := &Condition{Attribute: 0, Kind: HigherCondition, Threshold: 1}
	for _, tc := range []struct {
		value    interface{}
		expected bool
	}{
		{0.5, false},
		{1.0, true},
		{2.0, true},
		{nil, false},
	} {
		got, err := higher.Evaluate(tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, got, "value %v", tc.value)
	}

	contains := &Condition{Attribute: 1, Kind: ContainsCondition, Elements: []int{0, 2}}
	got, err := contains.Evaluate(2)
	require.NoError(t, err)
	assert.True(t, got)
	got, err = contains.Evaluate(1)
	require.NoError(t, err)
	assert.False(t, got)

	boolean := &Condition{Attribute: 2, Kind: TrueCondition, MissingValueEvaluation: true}
	got, err = boolean.Evaluate(true)
	require.NoError(t, err)
	assert.True(t, got)
	got, err = boolean.Evaluate(nil)
	require.NoError(t, err)
	assert.True(t, got)

	_, err = higher.Evaluate("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestVariableImportances(t *testing.T) {
	f := toyClassificationForest(toySpec())

	numNodes, err := f.VariableImportance(ImportanceNumNodes)
	require.NoError(t, err)
	assert.Equal(t, []AttributeImportance{{Attribute: 0, Importance: 2}}, numNodes)

	numAsRoot, err := f.VariableImportance(ImportanceNumAsRoot)
	require.NoError(t, err)
	assert.Equal(t, []AttributeImportance{{Attribute: 0, Importance: 2}}, numAsRoot)

	sumScore, err := f.VariableImportance(ImportanceSumScore)
	require.NoError(t, err)
	assert.Equal(t, []AttributeImportance{{Attribute: 0, Importance: 3}}, sumScore)

	// a splits at depth 0 in both trees; b never splits and defaults to
	// the maximum leaf depth, 1, in both.
	meanMinDepth, err := f.VariableImportance(ImportanceMeanMinDepth)
	require.NoError(t, err)
	assert.Equal(t, []AttributeImportance{
		{Attribute: 1, Importance: 1},
		{Attribute: 0, Importance: 0},
	}, meanMinDepth)
}

func TestVariableImportanceUnknownKind(t *testing.T) {
	f := toyClassificationForest(toySpec())

	_, err := f.VariableImportance("INVALID")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestVariableImportanceMeanMinDepthEmptyForest(t *testing.T) {
	f := New(Classification, 1, toySpec())

	_, err := f.VariableImportance(ImportanceMeanMinDepth)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestVariableImportanceOrdering(t *testing.T) {
	spec := dataspec.New(
		dataspec.NewNumericalColumn("a"),
		dataspec.NewNumericalColumn("b"),
		dataspec.NewCategoricalColumn("label", []string{"n", "p"}),
	)
	f := New(Classification, 2, spec)
	// b splits twice, a once: b outranks a under NUM_NODES.
	f.AddTree(NewTree(NewInternalNode(
		&Condition{Attribute: 1, Kind: HigherCondition, Threshold: 1},
		NewInternalNode(
			&Condition{Attribute: 0, Kind: HigherCondition, Threshold: 2},
			NewClassifierLeaf(1), NewClassifierLeaf(0)),
		NewInternalNode(
			&Condition{Attribute: 1, Kind: HigherCondition, Threshold: 0},
			NewClassifierLeaf(0), NewClassifierLeaf(1)))))

	numNodes, err := f.VariableImportance(ImportanceNumNodes)
	require.NoError(t, err)
	assert.Equal(t, []AttributeImportance{
		{Attribute: 1, Importance: 2},
		{Attribute: 0, Importance: 1},
	}, numNodes)
}

func TestMinNumberObs(t *testing.T) {
	f := toyClassificationForest(toySpec())

	min, err := f.MinNumberObs()
	require.NoError(t, err)
	assert.Equal(t, int64(2), min)
}

func TestMinNumberObsNoLeaves(t *testing.T) {
	f := New(Classification, 1, toySpec())

	_, err := f.MinNumberObs()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPreconditionFailed))
}

func TestDescribe(t *testing.T) {
	f := toyClassificationForest(toySpec())

	description, err := f.Describe(false)
	require.NoError(t, err)
	assert.Contains(t, description, "Type: \"RANDOM_FOREST\"")
	assert.Contains(t, description, "Task: CLASSIFICATION")
	assert.Contains(t, description, "Label: \"b\"")
	assert.Contains(t, description, "Input Features (1):\n\t\"a\"")
	assert.Contains(t, description, "Winner take all: true")
	assert.Contains(t, description, "Number of trees: 2")
	assert.Contains(t, description, "Total number of nodes: 6")
	assert.Contains(t, description, "Number of nodes by tree:\nCount: 2 Average: 3 StdDev: 0\nMin: 3 Max: 3")
	assert.Contains(t, description, "Depth by leafs:\nCount: 4 Average: 1 StdDev: 0\nMin: 1 Max: 1")
	assert.Contains(t, description, "Number of training obs by leaf:\nCount: 4 Average: 5 StdDev: 3\nMin: 2 Max: 8")
	assert.Contains(t, description, "Condition type in nodes:\n\t2 : HigherCondition")
	assert.NotContains(t, description, "Variable Importance")

	detailed, err := f.Describe(true)
	require.NoError(t, err)
	assert.Contains(t, detailed, "Variable Importance: NUM_NODES:\n    1. \"a\" 2.000000")
	assert.Contains(t, detailed, "Variable Importance: MEAN_MIN_DEPTH:\n    1. \"b\" 1.000000\n    2. \"a\" 0.000000")
	assert.Contains(t, detailed, "Model structure:\n")
	assert.Contains(t, detailed, "Tree #0")
}

func TestDescribeIsStable(t *testing.T) {
	f := toyClassificationForest(toySpec())

	first, err := f.Describe(true)
	require.NoError(t, err)
	second, err := f.Describe(true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderStructure(t *testing.T) {
	f := toyClassificationForest(toySpec())

	expected := strings.Join([]string{
		"Number of trees:2",
		"Tree #0",
		"Condition:: \"a\">=1 score:2.000000 training_examples:10 positive_training_examples:8 missing_value_evaluation:0",
		"Positive child",
		"  Value:: top:1",
		"Negative child",
		"  Value:: top:0",
		"",
		"Tree #1",
		"Condition:: \"a\">=3 score:1.000000 training_examples:10 positive_training_examples:2 missing_value_evaluation:0",
		"Positive child",
		"  Value:: top:2",
		"Negative child",
		"  Value:: top:0",
		"",
	}, "\n")
	assert.Equal(t, expected, f.RenderStructure())
}

func TestRenderStructureConditionKinds(t *testing.T) {
	spec := dataspec.New(
		dataspec.NewCategoricalColumn("color", []string{"red", "green", "blue"}),
		dataspec.NewBooleanColumn("flag"),
		dataspec.NewCategoricalColumn("label", []string{"n", "p"}),
	)
	f := New(Classification, 2, spec)
	f.AddTree(NewTree(NewInternalNode(
		&Condition{Attribute: 0, Kind: ContainsCondition, Elements: []int{0, 2}},
		NewInternalNode(
			&Condition{Attribute: 1, Kind: TrueCondition},
			NewClassifierLeaf(1), NewClassifierLeaf(0)),
		NewClassifierLeaf(0))))

	structure := f.RenderStructure()
	assert.Contains(t, structure, "\"color\" in [0 2]")
	assert.Contains(t, structure, "\"flag\" is true")
}

func TestValidate(t *testing.T) {
	spec := toySpec()
	f := toyClassificationForest(spec)
	require.NoError(t, f.Validate())

	leaf := NewClassifierLeaf(0)
	leaf.Classifier.Distribution = []float64{1, 2}
	f.AddTree(NewTree(leaf))
	err := f.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataInconsistency))
}

func TestValidateConditionAttributeOutOfBounds(t *testing.T) {
	f := New(Classification, 1, toySpec())
	f.AddTree(NewTree(NewInternalNode(
		&Condition{Attribute: 7, Kind: HigherCondition, Threshold: 1},
		NewClassifierLeaf(0), NewClassifierLeaf(1))))

	err := f.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataInconsistency))
}
