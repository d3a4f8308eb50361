/*
Package csv loads dataset.VerticalDataset values from CSV streams.

The header row must name every dataspec column; data cells hold decimal
numbers for numerical columns, vocabulary labels for categorical columns,
'true'/'false' for boolean columns, and the '?' string for missing
values.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	"github.com/hchiam/yggdrasil-decision-forests/dataset"
)

// MissingValue is the cell content marking a missing value.
const MissingValue = "?"

/*
ReadDataset takes an io.Reader for a CSV stream and a DataSpec and
returns a VerticalDataset with the parsed rows or an error.

The header or first row of the CSV content is expected to contain the
name of every column of the dataspec; extra CSV columns are ignored.
Every other row should consist of valid values for the columns and/or
the '?' string to indicate a missing value.
*/
func ReadDataset(reader io.Reader, spec *dataspec.DataSpec) (*dataset.VerticalDataset, error) {
	d, err := dataset.New(spec)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(reader)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %v", err)
	}
	fields := make([]int, spec.NumColumns())
	for i := range spec.Columns {
		fields[i] = -1
		for j, name := range header {
			if name == spec.Columns[i].Name {
				fields[i] = j
				break
			}
		}
		if fields[i] == -1 {
			return nil, fmt.Errorf("reading csv header: column %s not found", spec.Columns[i].Name)
		}
	}
	for row := 0; ; row++ {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %v", row, err)
		}
		if err := appendRow(d, spec, fields, cells, row); err != nil {
			return nil, err
		}
	}
	return d, nil
}

/*
ReadDatasetFromFile takes a filepath string and a DataSpec, opens the
file and uses ReadDataset to parse it into a VerticalDataset or an
error.
*/
func ReadDatasetFromFile(filepath string, spec *dataspec.DataSpec) (*dataset.VerticalDataset, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading csv dataset file %s: %v", filepath, err)
	}
	defer f.Close()
	d, err := ReadDataset(f, spec)
	if err != nil {
		err = fmt.Errorf("parsing csv dataset file %s: %v", filepath, err)
	}
	return d, err
}

func appendRow(d *dataset.VerticalDataset, spec *dataspec.DataSpec, fields []int, cells []string, row int) error {
	for i := range spec.Columns {
		if fields[i] >= len(cells) {
			return fmt.Errorf("parsing csv row %d: no cell for column %s", row, spec.Columns[i].Name)
		}
		cell := cells[fields[i]]
		switch spec.Columns[i].Type {
		case dataspec.Numerical:
			col, err := d.NumericalColumnAt(i)
			if err != nil {
				return err
			}
			if cell == MissingValue {
				col.AddMissing()
				break
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return fmt.Errorf("parsing csv row %d: column %s: %q is not a number", row, spec.Columns[i].Name, cell)
			}
			col.Add(v)
		case dataspec.Categorical:
			col, err := d.CategoricalColumnAt(i)
			if err != nil {
				return err
			}
			if cell == MissingValue {
				col.AddMissing()
				break
			}
			code, err := spec.Columns[i].CategoryCode(cell)
			if err != nil {
				return fmt.Errorf("parsing csv row %d: %v", row, err)
			}
			col.Add(code)
		case dataspec.Boolean:
			col, err := d.BooleanColumnAt(i)
			if err != nil {
				return err
			}
			if cell == MissingValue {
				col.AddMissing()
				break
			}
			v, err := strconv.ParseBool(cell)
			if err != nil {
				return fmt.Errorf("parsing csv row %d: column %s: %q is not a boolean", row, spec.Columns[i].Name, cell)
			}
			col.Add(v)
		default:
			return fmt.Errorf("parsing csv row %d: column %s has unknown type %v", row, spec.Columns[i].Name, spec.Columns[i].Type)
		}
	}
	return nil
}
