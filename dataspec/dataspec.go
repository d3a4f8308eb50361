/*
Package dataspec describes the schema of a tabular dataset: the name and
type of every column and, for categorical columns, the vocabulary mapping
integer category codes to their labels.

A DataSpec is consumed read-only by models, datasets and renderers. It is
never owned by them: the caller must keep it alive for as long as anything
referencing it is in use.
*/
package dataspec

import "fmt"

/*
ColumnType indicates the kind of values a column holds.
*/
type ColumnType int

const (
	// Numerical columns hold float64 values.
	Numerical ColumnType = iota
	// Categorical columns hold integer category codes from a finite
	// vocabulary.
	Categorical
	// Boolean columns hold bool values.
	Boolean
)

func (ct ColumnType) String() string {
	switch ct {
	case Numerical:
		return "NUMERICAL"
	case Categorical:
		return "CATEGORICAL"
	case Boolean:
		return "BOOLEAN"
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(ct))
}

/*
Column describes a single column of a dataset: its name, its type and,
for categorical columns, its vocabulary. The vocabulary is a slice of
labels indexed by category code, so code i has label Categories[i].
*/
type Column struct {
	Name       string
	Type       ColumnType
	Categories []string
}

/*
NewNumericalColumn takes a name string and returns a numerical Column
with that name.
*/
func NewNumericalColumn(name string) Column {
	return Column{Name: name, Type: Numerical}
}

/*
NewCategoricalColumn takes a name string and a slice of category labels
ordered by category code and returns a categorical Column with them.
*/
func NewCategoricalColumn(name string, categories []string) Column {
	return Column{Name: name, Type: Categorical, Categories: categories}
}

/*
NewBooleanColumn takes a name string and returns a boolean Column with
that name.
*/
func NewBooleanColumn(name string) Column {
	return Column{Name: name, Type: Boolean}
}

/*
NumCategories returns the number of categories in the column vocabulary.
It returns 0 for non-categorical columns.
*/
func (c *Column) NumCategories() int {
	return len(c.Categories)
}

/*
CategoryCode takes a category label and returns its integer code on the
column vocabulary, or an error if the column is not categorical or the
label is not part of the vocabulary.
*/
func (c *Column) CategoryCode(label string) (int, error) {
	if c.Type != Categorical {
		return 0, fmt.Errorf("column %s is not categorical", c.Name)
	}
	for code, l := range c.Categories {
		if l == label {
			return code, nil
		}
	}
	return 0, fmt.Errorf("column %s has no category %q", c.Name, label)
}

/*
CategoryLabel takes an integer category code and returns its label on the
column vocabulary, or an error if the code is out of range.
*/
func (c *Column) CategoryLabel(code int) (string, error) {
	if code < 0 || code >= len(c.Categories) {
		return "", fmt.Errorf("column %s has no category with code %d", c.Name, code)
	}
	return c.Categories[code], nil
}

/*
Valid receives an interface value and returns a boolean and an error.
It returns true and nil when the value is nil (a missing value) or has
the Go type matching the column type: float64 for numerical columns,
int within the vocabulary range for categorical columns, and bool for
boolean columns. Otherwise it returns false and an error describing the
reason.
*/
func (c *Column) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	switch c.Type {
	case Numerical:
		if _, ok := value.(float64); !ok {
			return false, fmt.Errorf("numerical column %s expects float64 value, got %T value", c.Name, value)
		}
	case Categorical:
		code, ok := value.(int)
		if !ok {
			return false, fmt.Errorf("categorical column %s expects int value, got %T value", c.Name, value)
		}
		if code < 0 || code >= len(c.Categories) {
			return false, fmt.Errorf("categorical column %s got out-of-vocabulary code %d", c.Name, code)
		}
	case Boolean:
		if _, ok := value.(bool); !ok {
			return false, fmt.Errorf("boolean column %s expects bool value, got %T value", c.Name, value)
		}
	default:
		return false, fmt.Errorf("column %s has unknown type %v", c.Name, c.Type)
	}
	return true, nil
}

/*
DataSpec is the ordered collection of Columns describing a dataset. The
position of a column in Columns is its attribute index, the index by
which models and datasets refer to it.
*/
type DataSpec struct {
	Columns []Column
}

/*
New takes a slice of Columns and returns a DataSpec with them.
*/
func New(columns ...Column) *DataSpec {
	return &DataSpec{Columns: columns}
}

/*
NumColumns returns the number of columns in the spec.
*/
func (ds *DataSpec) NumColumns() int {
	return len(ds.Columns)
}

/*
Column takes an attribute index and returns a pointer to the column at
that index or an error if the index is out of bounds.
*/
func (ds *DataSpec) Column(attribute int) (*Column, error) {
	if attribute < 0 || attribute >= len(ds.Columns) {
		return nil, fmt.Errorf("attribute index %d out of bounds for dataspec with %d columns", attribute, len(ds.Columns))
	}
	return &ds.Columns[attribute], nil
}

/*
ColumnIndex takes a column name and returns its attribute index or -1 if
no column with that name exists.
*/
func (ds *DataSpec) ColumnIndex(name string) int {
	for i := range ds.Columns {
		if ds.Columns[i].Name == name {
			return i
		}
	}
	return -1
}
