package json

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	"github.com/hchiam/yggdrasil-decision-forests/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() *dataspec.DataSpec {
	return dataspec.New(
		dataspec.NewNumericalColumn("a"),
		dataspec.NewCategoricalColumn("color", []string{"red", "green", "blue"}),
		dataspec.NewBooleanColumn("flag"),
		dataspec.NewCategoricalColumn("label", []string{"n", "p"}),
	)
}

func testForest(spec *dataspec.DataSpec) *model.Forest {
	f := model.New(model.Classification, 3, spec)
	leaf := model.NewClassifierLeaf(1)
	leaf.Classifier.Distribution = []float64{2, 8}
	leaf.Classifier.DistributionSum = 10
	leaf.NumPosTrainingExamplesWithoutWeight = 10
	f.AddTree(model.NewTree(model.NewInternalNode(
		&model.Condition{
			Attribute:              0,
			Kind:                   model.HigherCondition,
			Threshold:              1.5,
			MissingValueEvaluation: true,
			Score:                  0.25,
			NumTrainingExamples:    12,
			NumPosTrainingExamples: 10,
		},
		leaf,
		model.NewInternalNode(
			&model.Condition{Attribute: 1, Kind: model.ContainsCondition, Elements: []int{0, 2}},
			model.NewClassifierLeaf(0),
			model.NewInternalNode(
				&model.Condition{Attribute: 2, Kind: model.TrueCondition},
				model.NewClassifierLeaf(1),
				model.NewClassifierLeaf(0))))))
	return f
}

func TestWriteReadRoundTrip(t *testing.T) {
	spec := testSpec()
	original := testForest(spec)

	var buf bytes.Buffer
	require.NoError(t, WriteForest(&buf, original))
	decoded, err := ReadForest(&buf, spec)
	require.NoError(t, err)

	assert.Equal(t, original.Task, decoded.Task)
	assert.Equal(t, original.LabelAttribute, decoded.LabelAttribute)
	assert.Equal(t, original.WinnerTakeAll, decoded.WinnerTakeAll)
	assert.Equal(t, original.Trees, decoded.Trees)
	assert.Same(t, spec, decoded.DataSpec())
}

func TestRoundTripPreservesPredictions(t *testing.T) {
	spec := testSpec()
	original := testForest(spec)

	var buf bytes.Buffer
	require.NoError(t, WriteForest(&buf, original))
	decoded, err := ReadForest(&buf, spec)
	require.NoError(t, err)

	assert.Equal(t, original.RenderStructure(), decoded.RenderStructure())
}

func TestRoundTripRegression(t *testing.T) {
	spec := dataspec.New(
		dataspec.NewNumericalColumn("a"),
		dataspec.NewNumericalColumn("y"),
	)
	original := model.New(model.Regression, 1, spec)
	original.AddTree(model.NewTree(model.NewInternalNode(
		&model.Condition{Attribute: 0, Kind: model.HigherCondition, Threshold: 2},
		model.NewRegressorLeaf(0.75), model.NewRegressorLeaf(0.25))))

	var buf bytes.Buffer
	require.NoError(t, WriteForest(&buf, original))
	decoded, err := ReadForest(&buf, spec)
	require.NoError(t, err)
	assert.Equal(t, original.Trees, decoded.Trees)
	assert.Equal(t, model.Regression, decoded.Task)
}

func TestReadForestErrors(t *testing.T) {
	spec := testSpec()
	for name, document := range map[string]string{
		"not json":       "not json at all",
		"unknown type":   `{"type":"GBT","task":"classification","labelAttribute":3,"trees":[]}`,
		"unknown task":   `{"type":"RANDOM_FOREST","task":"ranking","labelAttribute":3,"trees":[]}`,
		"unknown kind":   `{"type":"RANDOM_FOREST","task":"classification","labelAttribute":3,"trees":[{"condition":{"attribute":0,"kind":"between"},"positiveChild":{"classifier":{"top":0}},"negativeChild":{"classifier":{"top":1}}}]}`,
		"missing child":  `{"type":"RANDOM_FOREST","task":"classification","labelAttribute":3,"trees":[{"condition":{"attribute":0,"kind":"higher"},"positiveChild":{"classifier":{"top":0}}}]}`,
		"bad attribute":  `{"type":"RANDOM_FOREST","task":"classification","labelAttribute":3,"trees":[{"condition":{"attribute":9,"kind":"higher"},"positiveChild":{"classifier":{"top":0}},"negativeChild":{"classifier":{"top":1}}}]}`,
	} {
		_, err := ReadForest(strings.NewReader(document), spec)
		assert.Error(t, err, name)
	}
}

func TestReadForestValidates(t *testing.T) {
	// Distribution with the wrong number of entries for the label
	// vocabulary.
	document := `{"type":"RANDOM_FOREST","task":"classification","labelAttribute":3,"trees":[{"classifier":{"top":0,"distribution":[1,2,3],"sum":6}}]}`

	_, err := ReadForest(strings.NewReader(document), testSpec())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distribution")
}
