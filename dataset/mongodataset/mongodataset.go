/*
Package mongodataset loads dataset.VerticalDataset values from MongoDB
collections.

Each document supplies one row: numerical columns read numeric fields,
categorical columns read string fields holding vocabulary labels, and
boolean columns read boolean fields. An absent or null field marks a
missing value.
*/
package mongodataset

import (
	"context"
	"fmt"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	"github.com/hchiam/yggdrasil-decision-forests/dataset"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Read takes a context, a MongoDB session, a collection name and a
DataSpec and returns a VerticalDataset with one row per document of the
collection on the session's default database, or an error if the
collection cannot be queried or a field value does not match its
declared column type.
*/
func Read(ctx context.Context, session *mgo.Session, collection string, spec *dataspec.DataSpec) (*dataset.VerticalDataset, error) {
	d, err := dataset.New(spec)
	if err != nil {
		return nil, err
	}
	iter := session.DB("").C(collection).Find(nil).Iter()
	defer iter.Close()
	var doc bson.M
	for row := 0; iter.Next(&doc); row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := appendDocument(d, spec, doc, row); err != nil {
			return nil, err
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading collection %s: %v", collection, err)
	}
	return d, nil
}

func appendDocument(d *dataset.VerticalDataset, spec *dataspec.DataSpec, doc bson.M, row int) error {
	for i := range spec.Columns {
		name := spec.Columns[i].Name
		value, present := doc[name]
		missing := !present || value == nil
		switch spec.Columns[i].Type {
		case dataspec.Numerical:
			col, err := d.NumericalColumnAt(i)
			if err != nil {
				return err
			}
			if missing {
				col.AddMissing()
				break
			}
			v, err := numericValue(value)
			if err != nil {
				return fmt.Errorf("reading document %d: column %s: %v", row, name, err)
			}
			col.Add(v)
		case dataspec.Categorical:
			col, err := d.CategoricalColumnAt(i)
			if err != nil {
				return err
			}
			if missing {
				col.AddMissing()
				break
			}
			label, ok := value.(string)
			if !ok {
				return fmt.Errorf("reading document %d: categorical column %s holds a %T value", row, name, value)
			}
			code, err := spec.Columns[i].CategoryCode(label)
			if err != nil {
				return fmt.Errorf("reading document %d: %v", row, err)
			}
			col.Add(code)
		case dataspec.Boolean:
			col, err := d.BooleanColumnAt(i)
			if err != nil {
				return err
			}
			if missing {
				col.AddMissing()
				break
			}
			v, ok := value.(bool)
			if !ok {
				return fmt.Errorf("reading document %d: boolean column %s holds a %T value", row, name, value)
			}
			col.Add(v)
		default:
			return fmt.Errorf("reading document %d: column %s has unknown type %v", row, name, spec.Columns[i].Type)
		}
	}
	return nil
}

// numericValue widens the integer types BSON may decode numbers into.
func numericValue(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("expected numeric value, got %T value", value)
}
