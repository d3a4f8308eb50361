package record

import (
	"testing"

	"github.com/hchiam/yggdrasil-decision-forests/dataset"
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

func TestToExample(t *testing.T) {
	spec := testSpec()

	e, err := ToExample(spec, Record{"a": 1.5, "color": "green", "flag": true})
	require.NoError(t, err)
	v, err := e.AttributeValue(0)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
	v, err = e.AttributeValue(1)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = e.AttributeValue(2)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestToExampleCategoricalCode(t *testing.T) {
	spec := testSpec()

	e, err := ToExample(spec, Record{"a": nil, "color": 2, "flag": false})
	require.NoError(t, err)
	v, err := e.AttributeValue(0)
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = e.AttributeValue(1)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestToExampleErrors(t *testing.T) {
	spec := testSpec()

	for name, r := range map[string]Record{
		"absent column":         {"a": 1.5, "flag": true},
		"numerical type":        {"a": "1.5", "color": "red", "flag": true},
		"unknown label":         {"a": 1.5, "color": "yellow", "flag": true},
		"out-of-range code":     {"a": 1.5, "color": 7, "flag": true},
		"categorical type":      {"a": 1.5, "color": 1.0, "flag": true},
		"boolean type":          {"a": 1.5, "color": "red", "flag": "true"},
		"int for numerical":     {"a": 1, "color": "red", "flag": true},
	} {
		_, err := ToExample(spec, r)
		assert.Error(t, err, name)
	}
}

func TestFromExample(t *testing.T) {
	spec := testSpec()

	e, err := ToExample(spec, Record{"a": nil, "color": "blue", "flag": false})
	require.NoError(t, err)
	r, err := FromExample(spec, e)
	require.NoError(t, err)
	assert.Equal(t, Record{"a": nil, "color": "blue", "flag": false}, r)
}

func TestFromExampleMismatchedSpec(t *testing.T) {
	e := dataset.NewExample(testSpec())

	_, err := FromExample(dataspec.New(dataspec.NewNumericalColumn("a")), e)
	require.Error(t, err)
}

func TestAppendToDataset(t *testing.T) {
	spec := testSpec()
	d, err := dataset.New(spec)
	require.NoError(t, err)

	n, err := AppendToDataset(d, []Record{
		{"a": 1.0, "color": "red", "flag": true},
		{"a": nil, "color": nil, "flag": nil},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, d.NumRows())
	require.NoError(t, d.Check())

	s, err := d.Row(1)
	require.NoError(t, err)
	v, err := s.AttributeValue(1)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestAppendToDatasetStopsOnBadRecord(t *testing.T) {
	d, err := dataset.New(testSpec())
	require.NoError(t, err)

	n, err := AppendToDataset(d, []Record{
		{"a": 1.0, "color": "red", "flag": true},
		{"a": 2.0, "color": "yellow", "flag": true},
	})
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, d.NumRows())
}
