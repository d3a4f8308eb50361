/*
Package dataset provides columnar storage for tabular data: a
VerticalDataset holds one typed column per dataspec column, with an
explicit missing marker for every cell.

Values are handled as interface{} values following the column type:
float64 for numerical columns, int category codes for categorical columns
and bool for boolean columns. A nil value marks a missing cell.
*/
package dataset

import (
	"fmt"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
)

/*
Sample is an interface for anything that can supply the value of an
attribute for a single row or record.

Its AttributeValue method takes an attribute index and returns the value
for that attribute, nil if the value is missing, or an error if the
attribute cannot be resolved.
*/
type Sample interface {
	AttributeValue(attribute int) (interface{}, error)
}

/*
Column is a typed column of a VerticalDataset.

Its NumRows method returns the number of values stored in the column.

Its Value method takes a row index and returns the value at that row,
nil if it is missing, or an error if the row is out of bounds.
*/
type Column interface {
	NumRows() int
	Value(row int) (interface{}, error)
}

/*
NumericalColumn is a Column holding float64 values.
*/
type NumericalColumn struct {
	values  []float64
	defined []bool
}

/*
CategoricalColumn is a Column holding integer category codes.
*/
type CategoricalColumn struct {
	codes   []int
	defined []bool
}

/*
BooleanColumn is a Column holding bool values.
*/
type BooleanColumn struct {
	values  []bool
	defined []bool
}

// Add appends a value to the column.
func (c *NumericalColumn) Add(v float64) {
	c.values = append(c.values, v)
	c.defined = append(c.defined, true)
}

// AddMissing appends a missing cell to the column.
func (c *NumericalColumn) AddMissing() {
	c.values = append(c.values, 0)
	c.defined = append(c.defined, false)
}

func (c *NumericalColumn) NumRows() int {
	return len(c.values)
}

func (c *NumericalColumn) Value(row int) (interface{}, error) {
	if row < 0 || row >= len(c.values) {
		return nil, fmt.Errorf("row %d out of bounds for column with %d rows", row, len(c.values))
	}
	if !c.defined[row] {
		return nil, nil
	}
	return c.values[row], nil
}

// Add appends a category code to the column.
func (c *CategoricalColumn) Add(code int) {
	c.codes = append(c.codes, code)
	c.defined = append(c.defined, true)
}

// AddMissing appends a missing cell to the column.
func (c *CategoricalColumn) AddMissing() {
	c.codes = append(c.codes, 0)
	c.defined = append(c.defined, false)
}

func (c *CategoricalColumn) NumRows() int {
	return len(c.codes)
}

func (c *CategoricalColumn) Value(row int) (interface{}, error) {
	if row < 0 || row >= len(c.codes) {
		return nil, fmt.Errorf("row %d out of bounds for column with %d rows", row, len(c.codes))
	}
	if !c.defined[row] {
		return nil, nil
	}
	return c.codes[row], nil
}

// Add appends a value to the column.
func (c *BooleanColumn) Add(v bool) {
	c.values = append(c.values, v)
	c.defined = append(c.defined, true)
}

// AddMissing appends a missing cell to the column.
func (c *BooleanColumn) AddMissing() {
	c.values = append(c.values, false)
	c.defined = append(c.defined, false)
}

func (c *BooleanColumn) NumRows() int {
	return len(c.values)
}

func (c *BooleanColumn) Value(row int) (interface{}, error) {
	if row < 0 || row >= len(c.values) {
		return nil, fmt.Errorf("row %d out of bounds for column with %d rows", row, len(c.values))
	}
	if !c.defined[row] {
		return nil, nil
	}
	return c.values[row], nil
}

/*
VerticalDataset is a columnar dataset: one Column per dataspec column,
all with the same number of rows. The dataspec is referenced, not owned,
and must outlive the dataset.
*/
type VerticalDataset struct {
	spec    *dataspec.DataSpec
	columns []Column
}

/*
New takes a DataSpec and returns an empty VerticalDataset with one column
of the matching type per dataspec column, or an error if the spec holds a
column of unknown type.
*/
func New(spec *dataspec.DataSpec) (*VerticalDataset, error) {
	columns := make([]Column, 0, spec.NumColumns())
	for i := range spec.Columns {
		switch spec.Columns[i].Type {
		case dataspec.Numerical:
			columns = append(columns, &NumericalColumn{})
		case dataspec.Categorical:
			columns = append(columns, &CategoricalColumn{})
		case dataspec.Boolean:
			columns = append(columns, &BooleanColumn{})
		default:
			return nil, fmt.Errorf("creating columns: column %s has unknown type %v", spec.Columns[i].Name, spec.Columns[i].Type)
		}
	}
	return &VerticalDataset{spec: spec, columns: columns}, nil
}

/*
DataSpec returns the dataspec the dataset was built from.
*/
func (d *VerticalDataset) DataSpec() *dataspec.DataSpec {
	return d.spec
}

/*
NumColumns returns the number of columns in the dataset.
*/
func (d *VerticalDataset) NumColumns() int {
	return len(d.columns)
}

/*
NumRows returns the number of rows in the dataset: the number of rows of
its first column, or 0 if the dataset has no columns.
*/
func (d *VerticalDataset) NumRows() int {
	if len(d.columns) == 0 {
		return 0
	}
	return d.columns[0].NumRows()
}

/*
Column takes an attribute index and returns the Column at that index or
an error if the index is out of bounds.
*/
func (d *VerticalDataset) Column(attribute int) (Column, error) {
	if attribute < 0 || attribute >= len(d.columns) {
		return nil, fmt.Errorf("attribute index %d out of bounds for dataset with %d columns", attribute, len(d.columns))
	}
	return d.columns[attribute], nil
}

/*
NumericalColumnAt takes an attribute index and returns the column at that
index as a *NumericalColumn, or an error if the index is out of bounds or
the column is not numerical.
*/
func (d *VerticalDataset) NumericalColumnAt(attribute int) (*NumericalColumn, error) {
	col, err := d.Column(attribute)
	if err != nil {
		return nil, err
	}
	nc, ok := col.(*NumericalColumn)
	if !ok {
		return nil, fmt.Errorf("column %d is a %T, not a numerical column", attribute, col)
	}
	return nc, nil
}

/*
CategoricalColumnAt takes an attribute index and returns the column at
that index as a *CategoricalColumn, or an error if the index is out of
bounds or the column is not categorical.
*/
func (d *VerticalDataset) CategoricalColumnAt(attribute int) (*CategoricalColumn, error) {
	col, err := d.Column(attribute)
	if err != nil {
		return nil, err
	}
	cc, ok := col.(*CategoricalColumn)
	if !ok {
		return nil, fmt.Errorf("column %d is a %T, not a categorical column", attribute, col)
	}
	return cc, nil
}

/*
BooleanColumnAt takes an attribute index and returns the column at that
index as a *BooleanColumn, or an error if the index is out of bounds or
the column is not boolean.
*/
func (d *VerticalDataset) BooleanColumnAt(attribute int) (*BooleanColumn, error) {
	col, err := d.Column(attribute)
	if err != nil {
		return nil, err
	}
	bc, ok := col.(*BooleanColumn)
	if !ok {
		return nil, fmt.Errorf("column %d is a %T, not a boolean column", attribute, col)
	}
	return bc, nil
}

/*
Check verifies that every column holds the same number of rows and
returns an error describing the first mismatch found, or nil.
*/
func (d *VerticalDataset) Check() error {
	for i, col := range d.columns {
		if col.NumRows() != d.NumRows() {
			return fmt.Errorf("column %d has %d rows, expected %d", i, col.NumRows(), d.NumRows())
		}
	}
	return nil
}

type rowView struct {
	dataset *VerticalDataset
	row     int
}

/*
Row takes a row index and returns a Sample view over that row of the
dataset, or an error if the index is out of bounds. The view reads
directly from the dataset columns: it does not copy the row.
*/
func (d *VerticalDataset) Row(row int) (Sample, error) {
	if row < 0 || row >= d.NumRows() {
		return nil, fmt.Errorf("row %d out of bounds for dataset with %d rows", row, d.NumRows())
	}
	return &rowView{dataset: d, row: row}, nil
}

func (rv *rowView) AttributeValue(attribute int) (interface{}, error) {
	col, err := rv.dataset.Column(attribute)
	if err != nil {
		return nil, err
	}
	return col.Value(rv.row)
}
