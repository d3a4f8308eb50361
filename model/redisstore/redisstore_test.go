package redisstore

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	"github.com/hchiam/yggdrasil-decision-forests/model"
	modeljson "github.com/hchiam/yggdrasil-decision-forests/model/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	s := New(nil, "models")

	assert.Equal(t, "models:abc", s.keyFor("abc"))
}

func TestRandString(t *testing.T) {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	name := randString(generatedNameLength)
	assert.Len(t, name, generatedNameLength)
	for _, c := range name {
		assert.True(t, strings.ContainsRune(chars, c), "unexpected character %q", c)
	}
	assert.NotEqual(t, name, randString(generatedNameLength))
}

func TestEncode(t *testing.T) {
	spec := dataspec.New(
		dataspec.NewNumericalColumn("a"),
		dataspec.NewCategoricalColumn("label", []string{"n", "p"}),
	)
	f := model.New(model.Classification, 1, spec)
	f.AddTree(model.NewTree(model.NewClassifierLeaf(1)))

	data, err := encode(f)
	require.NoError(t, err)
	decoded, err := modeljson.ReadForest(bytes.NewReader(data), spec)
	require.NoError(t, err)
	assert.Equal(t, f.Trees, decoded.Trees)
}
