/*
Package dbdataset loads dataset.VerticalDataset values from SQL
databases through database/sql. It only issues standard SQL, so it works
with any registered driver; the choice of drivers is left to the
importing program (the CLI registers lib/pq and mattn/go-sqlite3).

The source table is expected to have one column per dataspec column,
with the same name: numerical columns hold floating point numbers,
categorical columns hold the vocabulary labels as text, and boolean
columns hold booleans. SQL NULL marks a missing value.
*/
package dbdataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	"github.com/hchiam/yggdrasil-decision-forests/dataset"
)

/*
Read takes a context, an open database handle, a table name and a
DataSpec and returns a VerticalDataset with one row per table row, or an
error if the table cannot be queried or a value does not match its
declared column type.
*/
func Read(ctx context.Context, db *sql.DB, table string, spec *dataspec.DataSpec) (*dataset.VerticalDataset, error) {
	d, err := dataset.New(spec)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, spec.NumColumns())
	for i := range spec.Columns {
		names = append(names, quoteIdentifier(spec.Columns[i].Name))
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), quoteIdentifier(table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %v", table, err)
	}
	defer rows.Close()
	for row := 0; rows.Next(); row++ {
		if err := scanRow(d, spec, rows, row); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading table %s: %v", table, err)
	}
	return d, nil
}

func scanRow(d *dataset.VerticalDataset, spec *dataspec.DataSpec, rows *sql.Rows, row int) error {
	cells := make([]interface{}, spec.NumColumns())
	for i := range spec.Columns {
		switch spec.Columns[i].Type {
		case dataspec.Numerical:
			cells[i] = &sql.NullFloat64{}
		case dataspec.Categorical:
			cells[i] = &sql.NullString{}
		case dataspec.Boolean:
			cells[i] = &sql.NullBool{}
		default:
			return fmt.Errorf("reading row %d: column %s has unknown type %v", row, spec.Columns[i].Name, spec.Columns[i].Type)
		}
	}
	if err := rows.Scan(cells...); err != nil {
		return fmt.Errorf("scanning row %d: %v", row, err)
	}
	for i := range spec.Columns {
		switch cell := cells[i].(type) {
		case *sql.NullFloat64:
			col, err := d.NumericalColumnAt(i)
			if err != nil {
				return err
			}
			if cell.Valid {
				col.Add(cell.Float64)
			} else {
				col.AddMissing()
			}
		case *sql.NullString:
			col, err := d.CategoricalColumnAt(i)
			if err != nil {
				return err
			}
			if !cell.Valid {
				col.AddMissing()
				break
			}
			code, err := spec.Columns[i].CategoryCode(cell.String)
			if err != nil {
				return fmt.Errorf("reading row %d: %v", row, err)
			}
			col.Add(code)
		case *sql.NullBool:
			col, err := d.BooleanColumnAt(i)
			if err != nil {
				return err
			}
			if cell.Valid {
				col.Add(cell.Bool)
			} else {
				col.AddMissing()
			}
		}
	}
	return nil
}

// quoteIdentifier double-quotes an identifier, escaping embedded
// quotes. Double-quoted identifiers are accepted by both postgres and
// sqlite.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
