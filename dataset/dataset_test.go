package dataset

import (
	"testing"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() *dataspec.DataSpec {
	return dataspec.New(
		dataspec.NewNumericalColumn("a"),
		dataspec.NewCategoricalColumn("color", []string{"red", "green", "blue"}),
		dataspec.NewBooleanColumn("flag"),
	)
}

func testDataset(t *testing.T) *VerticalDataset {
	t.Helper()
	d, err := New(testSpec())
	require.NoError(t, err)
	a, err := d.NumericalColumnAt(0)
	require.NoError(t, err)
	color, err := d.CategoricalColumnAt(1)
	require.NoError(t, err)
	flag, err := d.BooleanColumnAt(2)
	require.NoError(t, err)
	a.Add(1.5)
	a.AddMissing()
	color.Add(2)
	color.AddMissing()
	flag.Add(true)
	flag.Add(false)
	require.NoError(t, d.Check())
	return d
}

func TestColumnValues(t *testing.T) {
	d := testDataset(t)

	require.Equal(t, 2, d.NumRows())
	require.Equal(t, 3, d.NumColumns())

	for attribute, expected := range map[int][]interface{}{
		0: {1.5, nil},
		1: {2, nil},
		2: {true, false},
	} {
		col, err := d.Column(attribute)
		require.NoError(t, err)
		for row, want := range expected {
			got, err := col.Value(row)
			require.NoError(t, err)
			assert.Equal(t, want, got, "attribute %d row %d", attribute, row)
		}
	}
}

func TestColumnValueOutOfBounds(t *testing.T) {
	d := testDataset(t)

	col, err := d.Column(0)
	require.NoError(t, err)
	_, err = col.Value(2)
	require.Error(t, err)
	_, err = col.Value(-1)
	require.Error(t, err)
}

func TestTypedColumnAccessors(t *testing.T) {
	d := testDataset(t)

	_, err := d.NumericalColumnAt(1)
	require.Error(t, err)
	_, err = d.CategoricalColumnAt(0)
	require.Error(t, err)
	_, err = d.BooleanColumnAt(1)
	require.Error(t, err)
	_, err = d.NumericalColumnAt(5)
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	d := testDataset(t)

	a, err := d.NumericalColumnAt(0)
	require.NoError(t, err)
	a.Add(3)
	require.Error(t, d.Check())
}

func TestRowView(t *testing.T) {
	d := testDataset(t)

	s, err := d.Row(0)
	require.NoError(t, err)
	v, err := s.AttributeValue(0)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
	v, err = s.AttributeValue(1)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	_, err = s.AttributeValue(3)
	require.Error(t, err)

	_, err = d.Row(2)
	require.Error(t, err)
}

func TestExtractExample(t *testing.T) {
	d := testDataset(t)

	e, err := d.ExtractExample(1)
	require.NoError(t, err)
	assert.Equal(t, 3, e.NumAttributes())
	v, err := e.AttributeValue(0)
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = e.AttributeValue(2)
	require.NoError(t, err)
	assert.Equal(t, false, v)

	_, err = d.ExtractExample(5)
	require.Error(t, err)
}

func TestExample(t *testing.T) {
	e := NewExample(testSpec())

	require.Equal(t, 3, e.NumAttributes())
	v, err := e.AttributeValue(0)
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, e.SetValue(0, 2.5))
	v, err = e.AttributeValue(0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	require.Error(t, e.SetValue(3, 1.0))
	_, err = e.AttributeValue(-1)
	require.Error(t, err)
}

func TestNewRejectsUnknownColumnType(t *testing.T) {
	spec := dataspec.New(dataspec.Column{Name: "a", Type: dataspec.ColumnType(42)})

	_, err := New(spec)
	require.Error(t, err)
}
