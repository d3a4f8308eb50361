/*
Package json serializes model.Forest values as JSON documents.

A forest is serialized as an object with "type", "task",
"labelAttribute", "winnerTakeAll" and "trees" fields; each tree is its
recursively nested root node. The dataspec is not part of the document:
it travels separately (typically as a YAML metadata file) and is
supplied again when reading.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	"github.com/hchiam/yggdrasil-decision-forests/model"
)

type jsonForest struct {
	Type           string      `json:"type"`
	Task           string      `json:"task"`
	LabelAttribute int         `json:"labelAttribute"`
	WinnerTakeAll  bool        `json:"winnerTakeAll"`
	Trees          []*jsonNode `json:"trees"`
}

type jsonNode struct {
	Condition     *jsonCondition `json:"condition,omitempty"`
	PositiveChild *jsonNode      `json:"positiveChild,omitempty"`
	NegativeChild *jsonNode      `json:"negativeChild,omitempty"`

	Classifier *jsonClassifier `json:"classifier,omitempty"`
	Regressor  *jsonRegressor  `json:"regressor,omitempty"`
	NumPosObs  int64           `json:"numPosTrainingExamplesWithoutWeight,omitempty"`
}

type jsonCondition struct {
	Attribute              int     `json:"attribute"`
	Kind                   string  `json:"kind"`
	Threshold              float64 `json:"threshold,omitempty"`
	Elements               []int   `json:"elements,omitempty"`
	MissingValueEvaluation bool    `json:"missingValueEvaluation,omitempty"`
	Score                  float64 `json:"score,omitempty"`
	NumTrainingExamples    int64   `json:"trainingExamples,omitempty"`
	NumPosTrainingExamples int64   `json:"positiveTrainingExamples,omitempty"`
}

type jsonClassifier struct {
	Top          int       `json:"top"`
	Distribution []float64 `json:"distribution,omitempty"`
	Sum          float64   `json:"sum,omitempty"`
}

type jsonRegressor struct {
	Top float64 `json:"top"`
}

var conditionKinds = map[model.ConditionKind]string{
	model.HigherCondition:   "higher",
	model.ContainsCondition: "contains",
	model.TrueCondition:     "true",
}

var taskNames = map[model.Task]string{
	model.Classification: "classification",
	model.Regression:     "regression",
}

/*
WriteForest takes a Forest and an io.Writer and serializes the forest as
JSON onto the writer. An error is returned if the forest holds a
condition kind or task unknown to the codec or if the write fails.
*/
func WriteForest(w io.Writer, f *model.Forest) error {
	task, ok := taskNames[f.Task]
	if !ok {
		return fmt.Errorf("serializing forest: unknown task %v", f.Task)
	}
	jf := &jsonForest{
		Type:           model.ModelKey,
		Task:           task,
		LabelAttribute: f.LabelAttribute,
		WinnerTakeAll:  f.WinnerTakeAll,
	}
	for i, t := range f.Trees {
		jn, err := encodeNode(t.Root)
		if err != nil {
			return fmt.Errorf("serializing forest: tree %d: %v", i, err)
		}
		jf.Trees = append(jf.Trees, jn)
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(jf); err != nil {
		return fmt.Errorf("serializing forest: %v", err)
	}
	return nil
}

/*
ReadForest takes an io.Reader with a JSON document produced by
WriteForest and the DataSpec the forest was built against, and returns
the decoded Forest or an error. The decoded forest is validated against
the dataspec before being returned.
*/
func ReadForest(r io.Reader, spec *dataspec.DataSpec) (*model.Forest, error) {
	jf := &jsonForest{}
	dec := json.NewDecoder(r)
	if err := dec.Decode(jf); err != nil {
		return nil, fmt.Errorf("parsing forest: %v", err)
	}
	if jf.Type != model.ModelKey {
		return nil, fmt.Errorf("parsing forest: unknown model type %q", jf.Type)
	}
	var task model.Task
	var found bool
	for t, name := range taskNames {
		if name == jf.Task {
			task, found = t, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("parsing forest: unknown task %q", jf.Task)
	}
	f := model.New(task, jf.LabelAttribute, spec)
	f.WinnerTakeAll = jf.WinnerTakeAll
	for i, jn := range jf.Trees {
		root, err := decodeNode(jn)
		if err != nil {
			return nil, fmt.Errorf("parsing forest: tree %d: %v", i, err)
		}
		f.AddTree(model.NewTree(root))
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("parsing forest: %w", err)
	}
	return f, nil
}

func encodeNode(n *model.Node) (*jsonNode, error) {
	if n == nil {
		return nil, fmt.Errorf("missing node")
	}
	jn := &jsonNode{NumPosObs: n.NumPosTrainingExamplesWithoutWeight}
	if n.IsLeaf() {
		switch {
		case n.Classifier != nil:
			jn.Classifier = &jsonClassifier{
				Top:          n.Classifier.TopCategory,
				Distribution: n.Classifier.Distribution,
				Sum:          n.Classifier.DistributionSum,
			}
		case n.Regressor != nil:
			jn.Regressor = &jsonRegressor{Top: n.Regressor.TopValue}
		}
		return jn, nil
	}
	kind, ok := conditionKinds[n.Condition.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown condition kind %v", n.Condition.Kind)
	}
	jn.Condition = &jsonCondition{
		Attribute:              n.Condition.Attribute,
		Kind:                   kind,
		Threshold:              n.Condition.Threshold,
		Elements:               n.Condition.Elements,
		MissingValueEvaluation: n.Condition.MissingValueEvaluation,
		Score:                  n.Condition.Score,
		NumTrainingExamples:    n.Condition.NumTrainingExamples,
		NumPosTrainingExamples: n.Condition.NumPosTrainingExamples,
	}
	var err error
	if jn.PositiveChild, err = encodeNode(n.PositiveChild); err != nil {
		return nil, err
	}
	if jn.NegativeChild, err = encodeNode(n.NegativeChild); err != nil {
		return nil, err
	}
	return jn, nil
}

func decodeNode(jn *jsonNode) (*model.Node, error) {
	if jn == nil {
		return nil, fmt.Errorf("missing node")
	}
	n := &model.Node{NumPosTrainingExamplesWithoutWeight: jn.NumPosObs}
	if jn.Condition == nil {
		switch {
		case jn.Classifier != nil:
			n.Classifier = &model.ClassifierValue{
				TopCategory:     jn.Classifier.Top,
				Distribution:    jn.Classifier.Distribution,
				DistributionSum: jn.Classifier.Sum,
			}
		case jn.Regressor != nil:
			n.Regressor = &model.RegressorValue{TopValue: jn.Regressor.Top}
		}
		return n, nil
	}
	var kind model.ConditionKind
	var found bool
	for k, name := range conditionKinds {
		if name == jn.Condition.Kind {
			kind, found = k, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("unknown condition kind %q", jn.Condition.Kind)
	}
	n.Condition = &model.Condition{
		Attribute:              jn.Condition.Attribute,
		Kind:                   kind,
		Threshold:              jn.Condition.Threshold,
		Elements:               jn.Condition.Elements,
		MissingValueEvaluation: jn.Condition.MissingValueEvaluation,
		Score:                  jn.Condition.Score,
		NumTrainingExamples:    jn.Condition.NumTrainingExamples,
		NumPosTrainingExamples: jn.Condition.NumPosTrainingExamples,
	}
	var err error
	if n.PositiveChild, err = decodeNode(jn.PositiveChild); err != nil {
		return nil, err
	}
	if n.NegativeChild, err = decodeNode(jn.NegativeChild); err != nil {
		return nil, err
	}
	return n, nil
}
