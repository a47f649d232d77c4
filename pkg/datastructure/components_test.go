package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectedComponents(t *testing.T) {
	g := NewGraph(NewExactCanonicalizer())
	require.NoError(t, g.AddEdge(node(0, 0), node(1, 0), 1))
	require.NoError(t, g.AddEdge(node(1, 0), node(2, 0), 1))
	require.NoError(t, g.AddEdge(node(5, 5), node(6, 5), 1))
	_, err := g.AddNode(node(9, 9))
	require.NoError(t, err)

	id := func(n Node) Index {
		u, ok := g.GetVertexId(n)
		require.True(t, ok)
		return u
	}

	assert.True(t, g.Connected(id(node(0, 0)), id(node(5, 5))), "unsealed graph has no labels")

	g.Seal()
	assert.Equal(t, 3, g.NumberOfComponents())

	testCases := []struct {
		name      string
		a, b      Node
		connected bool
	}{
		{name: "same corridor", a: node(0, 0), b: node(2, 0), connected: true},
		{name: "separate corridors", a: node(0, 0), b: node(6, 5), connected: false},
		{name: "isolated node", a: node(9, 9), b: node(5, 5), connected: false},
		{name: "isolated node with itself", a: node(9, 9), b: node(9, 9), connected: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.connected, g.Connected(id(tt.a), id(tt.b)))
		})
	}

	assert.Equal(t, Index(0), g.GetComponent(id(node(1, 0))))
	assert.Equal(t, INVALID_VERTEX_ID, g.GetComponent(Index(100)))

	t.Run("seal is idempotent", func(t *testing.T) {
		g.Seal()
		assert.Equal(t, 3, g.NumberOfComponents())
	})
}
