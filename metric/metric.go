/*
Package metric holds evaluation results for classification models: a
confusion matrix plus aggregate counts and a summed log loss, and the
snippet formatter summarizing them on a single line.
*/
package metric

import (
	"fmt"
	"math"
	"strconv"

	"github.com/hchiam/yggdrasil-decision-forests/dataset"
	"github.com/hchiam/yggdrasil-decision-forests/model"
)

// Probabilities below this floor are clamped before taking their log,
// so a single zero-probability label cannot drive the summed log loss
// to infinity.
const minLogLossProbability = 1e-15

/*
ConfusionMatrix is a square matrix counting predictions per (truth,
predicted) class pair, plus the total count of observations.
*/
type ConfusionMatrix struct {
	NumClasses int
	// Counts is row-major: Counts[truth*NumClasses+predicted].
	Counts []float64
	Sum    float64
}

/*
NewConfusionMatrix takes a class count and returns an empty confusion
matrix with one row and column per class.
*/
func NewConfusionMatrix(numClasses int) *ConfusionMatrix {
	return &ConfusionMatrix{
		NumClasses: numClasses,
		Counts:     make([]float64, numClasses*numClasses),
	}
}

/*
Add records one observation with the given truth and predicted classes
and weight. It returns an error if either class is out of range.
*/
func (m *ConfusionMatrix) Add(truth, predicted int, weight float64) error {
	if truth < 0 || truth >= m.NumClasses {
		return fmt.Errorf("truth class %d out of range for %d classes", truth, m.NumClasses)
	}
	if predicted < 0 || predicted >= m.NumClasses {
		return fmt.Errorf("predicted class %d out of range for %d classes", predicted, m.NumClasses)
	}
	m.Counts[truth*m.NumClasses+predicted] += weight
	m.Sum += weight
	return nil
}

/*
Count returns the count recorded for a (truth, predicted) class pair.
*/
func (m *ConfusionMatrix) Count(truth, predicted int) float64 {
	return m.Counts[truth*m.NumClasses+predicted]
}

/*
Trace returns the sum of the diagonal: the count of correct predictions.
*/
func (m *ConfusionMatrix) Trace() float64 {
	var trace float64
	for i := 0; i < m.NumClasses; i++ {
		trace += m.Counts[i*m.NumClasses+i]
	}
	return trace
}

/*
EvaluationResults aggregates the evaluation of a classification model
over a dataset.
*/
type EvaluationResults struct {
	Confusion        *ConfusionMatrix
	SumLogLoss       float64
	CountPredictions float64
}

/*
Accuracy returns the fraction of correct predictions: the confusion
matrix trace over its total count.
*/
func (e *EvaluationResults) Accuracy() float64 {
	return e.Confusion.Trace() / e.Confusion.Sum
}

/*
LogLoss returns the average log loss per prediction.
*/
func (e *EvaluationResults) LogLoss() float64 {
	return e.SumLogLoss / e.CountPredictions
}

/*
EvaluationSnippet takes evaluation results and returns the one-line
summary "accuracy:<a> logloss:<b>", with each number printed in the
shortest decimal representation that parses back to the same value. It
returns an error wrapping model.ErrPreconditionFailed if the results
hold no predictions or an empty confusion matrix, rather than dividing
by zero.
*/
func EvaluationSnippet(e *EvaluationResults) (string, error) {
	if e.CountPredictions == 0 {
		return "", fmt.Errorf("%w: evaluation has no predictions", model.ErrPreconditionFailed)
	}
	if e.Confusion == nil || e.Confusion.Sum == 0 {
		return "", fmt.Errorf("%w: evaluation has an empty confusion matrix", model.ErrPreconditionFailed)
	}
	return fmt.Sprintf("accuracy:%s logloss:%s",
		formatMetric(e.Accuracy()), formatMetric(e.LogLoss())), nil
}

/*
EvaluateClassification takes a classification forest and a dataset and
predicts every row, accumulating the confusion matrix and the summed log
loss of the label's predicted probability. Rows with a missing label are
skipped. It returns an error if the model is not a classification model,
the label column is not usable, or a prediction fails.
*/
func EvaluateClassification(f *model.Forest, d *dataset.VerticalDataset) (*EvaluationResults, error) {
	if f.Task != model.Classification {
		return nil, fmt.Errorf("%w: evaluating: model task is %v, not %v", model.ErrInvalidArgument, f.Task, model.Classification)
	}
	labelColumn, err := d.CategoricalColumnAt(f.LabelAttribute)
	if err != nil {
		return nil, fmt.Errorf("evaluating: label: %v", err)
	}
	labelSpec, err := f.DataSpec().Column(f.LabelAttribute)
	if err != nil {
		return nil, fmt.Errorf("evaluating: label: %v", err)
	}
	results := &EvaluationResults{Confusion: NewConfusionMatrix(labelSpec.NumCategories())}
	for row := 0; row < d.NumRows(); row++ {
		truthValue, err := labelColumn.Value(row)
		if err != nil {
			return nil, fmt.Errorf("evaluating row %d: %v", row, err)
		}
		if truthValue == nil {
			continue
		}
		truth := truthValue.(int)
		p, err := f.PredictRow(d, row)
		if err != nil {
			return nil, fmt.Errorf("evaluating row %d: %w", row, err)
		}
		c := p.Classification
		if err := results.Confusion.Add(truth, c.Category, 1); err != nil {
			return nil, fmt.Errorf("evaluating row %d: %v", row, err)
		}
		prob := 0.0
		if c.DistributionSum > 0 && truth < len(c.Distribution) {
			prob = c.Distribution[truth] / c.DistributionSum
		}
		results.SumLogLoss -= math.Log(math.Max(prob, minLogLossProbability))
		results.CountPredictions++
	}
	return results, nil
}

func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
