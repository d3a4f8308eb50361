package model

import (
	"fmt"

	"github.com/hchiam/yggdrasil-decision-forests/dataset"
	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
)

/*
ClassificationPrediction is the output of a classification model for one
sample: the predicted category, the aggregated per-category count
distribution and its sum.
*/
type ClassificationPrediction struct {
	Category        int
	Distribution    []float64
	DistributionSum float64
}

/*
RegressionPrediction is the output of a regression model for one sample.
*/
type RegressionPrediction struct {
	Value float64
}

/*
Prediction is the output of a model for one sample: exactly one of its
fields is set, according to the model task. Predictions are fresh values
owned by the caller, never by the model.
*/
type Prediction struct {
	Classification *ClassificationPrediction
	Regression     *RegressionPrediction
}

/*
Predict takes a sample, routes it through every tree and aggregates the
routed leaves into a single prediction.

For classification with winner-take-all aggregation each leaf casts one
vote for its top category; otherwise the leaves' count distributions are
summed element-wise and the distribution sum is the sum of the per-leaf
sums. The predicted category is the one with the highest aggregated
count, ties broken by the smallest category index. For regression the
prediction is the arithmetic mean of the leaf values.

A forest with zero trees cannot predict; an error wrapping
ErrInvalidArgument is returned instead of a degenerate prediction. A
leaf payload that does not match the task yields an error wrapping
ErrDataInconsistency.

The sample may be a dataset row view or a self-contained Example; both
route through the same logic and equivalent data yields identical
predictions.
*/
func (f *Forest) Predict(s dataset.Sample) (*Prediction, error) {
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("%w: predicting sample: forest has no trees", ErrInvalidArgument)
	}
	switch f.Task {
	case Classification:
		return f.predictClassification(s)
	case Regression:
		return f.predictRegression(s)
	}
	return nil, fmt.Errorf("%w: predicting sample: unknown task %d", ErrInvalidArgument, int(f.Task))
}

/*
PredictRow takes a dataset and a row index and predicts for that row. It
is equivalent to predicting with the dataset's row view, and therefore
with the example extracted from that row.
*/
func (f *Forest) PredictRow(d *dataset.VerticalDataset, row int) (*Prediction, error) {
	s, err := d.Row(row)
	if err != nil {
		return nil, fmt.Errorf("predicting row: %v", err)
	}
	return f.Predict(s)
}

func (f *Forest) predictClassification(s dataset.Sample) (*Prediction, error) {
	label, err := f.spec.Column(f.LabelAttribute)
	if err != nil {
		return nil, fmt.Errorf("%w: predicting sample: label: %v", ErrDataInconsistency, err)
	}
	if label.Type != dataspec.Categorical {
		return nil, fmt.Errorf("%w: predicting sample: label column %s is not categorical", ErrDataInconsistency, label.Name)
	}
	counts := make([]float64, label.NumCategories())
	var sum float64
	var leafErr error
	err = f.CallOnAllLeaves(s, func(leaf *Node) {
		if leafErr != nil {
			return
		}
		if leaf.Classifier == nil {
			leafErr = fmt.Errorf("%w: classification leaf without classifier value", ErrDataInconsistency)
			return
		}
		if f.WinnerTakeAll || len(leaf.Classifier.Distribution) == 0 {
			top := leaf.Classifier.TopCategory
			if top < 0 || top >= len(counts) {
				leafErr = fmt.Errorf("%w: leaf predicts category %d, label has %d categories", ErrDataInconsistency, top, len(counts))
				return
			}
			counts[top]++
			sum++
			return
		}
		if len(leaf.Classifier.Distribution) != len(counts) {
			leafErr = fmt.Errorf("%w: leaf distribution has %d entries, label has %d categories", ErrDataInconsistency, len(leaf.Classifier.Distribution), len(counts))
			return
		}
		for i, c := range leaf.Classifier.Distribution {
			counts[i] += c
		}
		sum += leaf.Classifier.DistributionSum
	})
	if err != nil {
		return nil, fmt.Errorf("predicting sample: %w", err)
	}
	if leafErr != nil {
		return nil, fmt.Errorf("predicting sample: %w", leafErr)
	}
	top := 0
	for i, c := range counts {
		if c > counts[top] {
			top = i
		}
	}
	return &Prediction{Classification: &ClassificationPrediction{
		Category:        top,
		Distribution:    counts,
		DistributionSum: sum,
	}}, nil
}

func (f *Forest) predictRegression(s dataset.Sample) (*Prediction, error) {
	var sum float64
	var leafErr error
	err := f.CallOnAllLeaves(s, func(leaf *Node) {
		if leafErr != nil {
			return
		}
		if leaf.Regressor == nil {
			leafErr = fmt.Errorf("%w: regression leaf without regressor value", ErrDataInconsistency)
			return
		}
		sum += leaf.Regressor.TopValue
	})
	if err != nil {
		return nil, fmt.Errorf("predicting sample: %w", err)
	}
	if leafErr != nil {
		return nil, fmt.Errorf("predicting sample: %w", leafErr)
	}
	return &Prediction{Regression: &RegressionPrediction{Value: sum / float64(len(f.Trees))}}, nil
}
