package dataset

import (
	"fmt"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
)

/*
Example is a self-contained record: one value, possibly missing, per
dataspec column. Unlike a dataset row view it owns its values, so it
remains valid after the dataset it was extracted from is released.
*/
type Example struct {
	values []interface{}
}

/*
NewExample takes a DataSpec and returns an Example with one missing value
per column of the spec.
*/
func NewExample(spec *dataspec.DataSpec) *Example {
	return &Example{values: make([]interface{}, spec.NumColumns())}
}

/*
SetValue takes an attribute index and a value and sets the value for that
attribute on the example. A nil value marks the attribute as missing. It
returns an error if the attribute index is out of bounds.
*/
func (e *Example) SetValue(attribute int, value interface{}) error {
	if attribute < 0 || attribute >= len(e.values) {
		return fmt.Errorf("attribute index %d out of bounds for example with %d values", attribute, len(e.values))
	}
	e.values[attribute] = value
	return nil
}

/*
AttributeValue takes an attribute index and returns the value for that
attribute, nil if it is missing, or an error if the index is out of
bounds.
*/
func (e *Example) AttributeValue(attribute int) (interface{}, error) {
	if attribute < 0 || attribute >= len(e.values) {
		return nil, fmt.Errorf("attribute index %d out of bounds for example with %d values", attribute, len(e.values))
	}
	return e.values[attribute], nil
}

/*
NumAttributes returns the number of attributes of the example.
*/
func (e *Example) NumAttributes() int {
	return len(e.values)
}

/*
ExtractExample takes a row index and returns a self-contained Example
holding a copy of that row's values, or an error if the index is out of
bounds. Predicting with the returned example yields exactly the same
result as predicting with the dataset row view it was extracted from.
*/
func (d *VerticalDataset) ExtractExample(row int) (*Example, error) {
	if row < 0 || row >= d.NumRows() {
		return nil, fmt.Errorf("extracting example: row %d out of bounds for dataset with %d rows", row, d.NumRows())
	}
	e := &Example{values: make([]interface{}, len(d.columns))}
	for i, col := range d.columns {
		v, err := col.Value(row)
		if err != nil {
			return nil, fmt.Errorf("extracting example: %v", err)
		}
		e.values[i] = v
	}
	return e, nil
}
