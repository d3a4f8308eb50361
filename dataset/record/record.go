/*
Package record bridges external tabular records with the dataset
representations: it converts a Record into a self-contained
dataset.Example and back, and bulk-copies records into a
dataset.VerticalDataset.

A Record maps column names to raw values. Conversions never coerce: a
value whose type does not match the declared column type fails, and a
declared column that is absent from the record fails too. The only
missing-value convention is an explicit nil value.
*/
package record

import (
	"fmt"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	"github.com/hchiam/yggdrasil-decision-forests/dataset"
)

/*
Record is an external tabular record: a mapping from column name to raw
value. Numerical columns expect float64 values, boolean columns expect
bool values, and categorical columns accept either an int category code
or a string category label from the column vocabulary. A nil value marks
the column as missing.
*/
type Record map[string]interface{}

/*
ToExample takes a DataSpec and a Record and returns a dataset.Example
with the record values converted to the internal representation, or an
error if a declared column is absent from the record or a value's type
is incompatible with its column type.
*/
func ToExample(spec *dataspec.DataSpec, r Record) (*dataset.Example, error) {
	e := dataset.NewExample(spec)
	for i := range spec.Columns {
		col := &spec.Columns[i]
		raw, ok := r[col.Name]
		if !ok {
			return nil, fmt.Errorf("converting record: column %s absent from record", col.Name)
		}
		v, err := toInternalValue(col, raw)
		if err != nil {
			return nil, fmt.Errorf("converting record: %v", err)
		}
		if err := e.SetValue(i, v); err != nil {
			return nil, fmt.Errorf("converting record: %v", err)
		}
	}
	return e, nil
}

/*
FromExample takes a DataSpec and a dataset.Example and returns a Record
with the example values converted back to the external representation:
categorical codes become their vocabulary labels and missing values
become nil values. An error is returned if the example does not match
the spec or holds an out-of-vocabulary code.
*/
func FromExample(spec *dataspec.DataSpec, e *dataset.Example) (Record, error) {
	if e.NumAttributes() != spec.NumColumns() {
		return nil, fmt.Errorf("converting example: example has %d attributes, dataspec has %d columns", e.NumAttributes(), spec.NumColumns())
	}
	r := make(Record, spec.NumColumns())
	for i := range spec.Columns {
		col := &spec.Columns[i]
		v, err := e.AttributeValue(i)
		if err != nil {
			return nil, fmt.Errorf("converting example: %v", err)
		}
		if v == nil {
			r[col.Name] = nil
			continue
		}
		if col.Type == dataspec.Categorical {
			code, ok := v.(int)
			if !ok {
				return nil, fmt.Errorf("converting example: categorical column %s holds a %T value", col.Name, v)
			}
			label, err := col.CategoryLabel(code)
			if err != nil {
				return nil, fmt.Errorf("converting example: %v", err)
			}
			r[col.Name] = label
			continue
		}
		r[col.Name] = v
	}
	return r, nil
}

/*
AppendToDataset takes a VerticalDataset and a slice of Records and
appends one row per record to the dataset, converting values as
ToExample does. It returns the number of records appended and an error
if a record cannot be converted; records before the failing one remain
appended.
*/
func AppendToDataset(d *dataset.VerticalDataset, records []Record) (int, error) {
	spec := d.DataSpec()
	for n, r := range records {
		e, err := ToExample(spec, r)
		if err != nil {
			return n, fmt.Errorf("copying record %d: %v", n, err)
		}
		if err := appendExample(d, e); err != nil {
			return n, fmt.Errorf("copying record %d: %v", n, err)
		}
	}
	return len(records), nil
}

func appendExample(d *dataset.VerticalDataset, e *dataset.Example) error {
	spec := d.DataSpec()
	for i := range spec.Columns {
		v, err := e.AttributeValue(i)
		if err != nil {
			return err
		}
		switch spec.Columns[i].Type {
		case dataspec.Numerical:
			col, err := d.NumericalColumnAt(i)
			if err != nil {
				return err
			}
			if v == nil {
				col.AddMissing()
			} else {
				col.Add(v.(float64))
			}
		case dataspec.Categorical:
			col, err := d.CategoricalColumnAt(i)
			if err != nil {
				return err
			}
			if v == nil {
				col.AddMissing()
			} else {
				col.Add(v.(int))
			}
		case dataspec.Boolean:
			col, err := d.BooleanColumnAt(i)
			if err != nil {
				return err
			}
			if v == nil {
				col.AddMissing()
			} else {
				col.Add(v.(bool))
			}
		default:
			return fmt.Errorf("column %s has unknown type %v", spec.Columns[i].Name, spec.Columns[i].Type)
		}
	}
	return nil
}

func toInternalValue(col *dataspec.Column, raw interface{}) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	switch col.Type {
	case dataspec.Numerical:
		v, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("numerical column %s got incompatible %T value", col.Name, raw)
		}
		return v, nil
	case dataspec.Categorical:
		switch v := raw.(type) {
		case int:
			if v < 0 || v >= col.NumCategories() {
				return nil, fmt.Errorf("categorical column %s got out-of-vocabulary code %d", col.Name, v)
			}
			return v, nil
		case string:
			code, err := col.CategoryCode(v)
			if err != nil {
				return nil, err
			}
			return code, nil
		default:
			return nil, fmt.Errorf("categorical column %s got incompatible %T value", col.Name, raw)
		}
	case dataspec.Boolean:
		v, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("boolean column %s got incompatible %T value", col.Name, raw)
		}
		return v, nil
	}
	return nil, fmt.Errorf("column %s has unknown type %v", col.Name, col.Type)
}
