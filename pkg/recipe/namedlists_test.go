package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNamedLists_SetGet(t *testing.T) {
	n := NewNamedLists[string]()
	n.Set("b", []string{"1"})
	n.Set("a", nil)
	n.Set("b", []string{"2", "3"})

	assert.Equal(t, []string{"b", "a"}, n.Names())
	assert.Equal(t, 2, n.Len())

	got, ok := n.Get("b")
	assert.True(t, ok)
	assert.Equal(t, []string{"2", "3"}, got)

	got, ok = n.Get("a")
	assert.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, ok = n.Get("missing")
	assert.False(t, ok)
}

func TestNamedLists_NilSafe(t *testing.T) {
	var n *NamedLists[string]
	assert.Nil(t, n.Names())
	assert.Zero(t, n.Len())
	assert.False(t, n.Has("x"))

	var zero NamedLists[string]
	zero.Set("x", []string{"1"})
	assert.True(t, zero.Has("x"))
}

func TestNamedLists_YAMLRoundTripKeepsOrder(t *testing.T) {
	input := `zeta: [a, b]
alpha: []
mid: [c]
`
	var n NamedLists[string]
	require.NoError(t, yaml.Unmarshal([]byte(input), &n))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, n.Names())

	out, err := yaml.Marshal(n)
	require.NoError(t, err)

	var again NamedLists[string]
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, n.Names(), again.Names())
	assert.Equal(t, []string{"a", "b"}, again.lists["zeta"])
}

func TestNamedLists_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "duplicate name", input: "a: [x]\na: [y]\n"},
		{name: "not a mapping", input: "- a\n- b\n"},
		{name: "list is not a sequence", input: "a: {k: v}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n NamedLists[string]
			assert.Error(t, yaml.Unmarshal([]byte(tt.input), &n))
		})
	}
}

func TestNamedLists_MarshalJSONOrdered(t *testing.T) {
	n := NewNamedLists[string]()
	n.Set("zeta", []string{"1"})
	n.Set("alpha", []string{})

	out, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":["1"],"alpha":[]}`, string(out))
}
