/*
Package yaml provides methods to parse dataspec.DataSpec definitions,
also known as metadata, from YAML documents and serialize them back.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadDataSpec takes a slice of bytes with a column specification in YAML
and returns a DataSpec parsed from it or an error.
The YAML is expected to be an object with a columns property holding a
list of single-entry objects mapping each column name to either the
string 'numerical', the string 'boolean', or the list of category labels
of a categorical column, ordered by category code. A list is used instead
of a map so that the column order, and therefore the attribute indices,
are preserved.
*/
func ReadDataSpec(md []byte) (*dataspec.DataSpec, error) {
	metadata := struct {
		Columns []yaml.MapSlice
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml dataspec: %v", err)
	}
	if metadata.Columns == nil {
		return nil, fmt.Errorf("metadata file has no column information")
	}
	var columns []dataspec.Column
	for _, entry := range metadata.Columns {
		if len(entry) != 1 {
			return nil, fmt.Errorf("invalid column declaration: expected a single name per entry, got %d", len(entry))
		}
		name := fmt.Sprintf("%v", entry[0].Key)
		switch spec := entry[0].Value.(type) {
		case string:
			switch spec {
			case "numerical":
				columns = append(columns, dataspec.NewNumericalColumn(name))
			case "boolean":
				columns = append(columns, dataspec.NewBooleanColumn(name))
			default:
				return nil, fmt.Errorf("invalid type %q for column %s", spec, name)
			}
		case []interface{}:
			categories := make([]string, 0, len(spec))
			for _, c := range spec {
				categories = append(categories, fmt.Sprintf("%v", c))
			}
			columns = append(columns, dataspec.NewCategoricalColumn(name, categories))
		default:
			return nil, fmt.Errorf("invalid declaration of type %T for column %s", spec, name)
		}
	}
	return dataspec.New(columns...), nil
}

/*
ReadDataSpecFromFile takes a filepath string, reads its contents and uses
ReadDataSpec to parse it and return the parsed DataSpec or an error.
If the file indicated by the filepath cannot be opened for reading an
error will be returned.
*/
func ReadDataSpecFromFile(filepath string) (*dataspec.DataSpec, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading dataspec yml file %s: %v", filepath, err)
	}
	ds, err := ReadDataSpec(md)
	if err != nil {
		err = fmt.Errorf("parsing dataspec yml file %s: %v", filepath, err)
	}
	return ds, err
}

/*
WriteDataSpec takes a DataSpec and returns a slice of bytes with its
YAML serialization, parseable back with ReadDataSpec, or an error.
*/
func WriteDataSpec(ds *dataspec.DataSpec) ([]byte, error) {
	columns := make([]yaml.MapSlice, 0, len(ds.Columns))
	for i := range ds.Columns {
		c := &ds.Columns[i]
		var spec interface{}
		switch c.Type {
		case dataspec.Numerical:
			spec = "numerical"
		case dataspec.Boolean:
			spec = "boolean"
		case dataspec.Categorical:
			spec = c.Categories
		default:
			return nil, fmt.Errorf("column %s has unknown type %v", c.Name, c.Type)
		}
		columns = append(columns, yaml.MapSlice{{Key: c.Name, Value: spec}})
	}
	return yaml.Marshal(struct {
		Columns []yaml.MapSlice `yaml:"columns"`
	}{columns})
}
