package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_SortsObjectKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"zebra": 1, "apple": 2, "mango": 3})
	require.NoError(t, err)
	assert.Equal(t, `{"apple":2,"mango":3,"zebra":1}`, string(data))
}

func TestMarshal_StructFieldsSorted(t *testing.T) {
	type payload struct {
		Zed   int    `json:"zed"`
		Alpha string `json:"alpha"`
	}
	data, err := Marshal(payload{Zed: 1, Alpha: "x"})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"x","zed":1}`, string(data))
}

func TestMarshal_FloatsAllowed(t *testing.T) {
	data, err := Marshal(map[string]any{"score": 0.8375})
	require.NoError(t, err)
	assert.Equal(t, `{"score":0.8375}`, string(data))
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	data, err := Marshal(map[string]any{"msg": "a < b && c > d"})
	require.NoError(t, err)
	assert.Equal(t, `{"msg":"a < b && c > d"}`, string(data))
}

func TestMarshal_NFCNormalization(t *testing.T) {
	// "e" + combining acute accent normalizes to the precomposed form.
	decomposed := "café"
	precomposed := "café"

	a, err := Marshal(decomposed)
	require.NoError(t, err)
	b, err := Marshal(precomposed)
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestMarshal_Deterministic(t *testing.T) {
	v := map[string]any{
		"nested": map[string]any{"b": 2, "a": 1},
		"list":   []any{1, "two", 3.5, nil, true},
	}
	first, err := Marshal(v)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestHash_DomainSeparation(t *testing.T) {
	v := map[string]any{"x": 1}

	a, err := Hash(DomainSnapshot, v)
	require.NoError(t, err)
	b, err := Hash(DomainReport, v)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "same content under different domains must hash differently")
	assert.Len(t, a, 64)
}

func TestHash_Stable(t *testing.T) {
	a, err := Hash(DomainSnapshot, map[string]any{"x": 1, "y": 2})
	require.NoError(t, err)
	b, err := Hash(DomainSnapshot, map[string]any{"y": 2, "x": 1})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
