package datastructure

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(lon, lat float64) Node {
	return NewExactCanonicalizer().Canonicalize(NewCoordinate(lon, lat))
}

func TestAddEdge(t *testing.T) {
	g := NewGraph(NewExactCanonicalizer())
	a, b, c := node(0, 0), node(1, 0), node(1, 1)

	require.NoError(t, g.AddEdge(a, b, 1))
	require.NoError(t, g.AddEdge(b, c, 2))
	require.NoError(t, g.AddEdge(a, b, 3)) // parallel edge is kept

	assert.Equal(t, 3, g.NumberOfVertices())
	assert.Equal(t, 3, g.NumberOfEdges())
	assert.Equal(t, 2, g.Degree(a))
	assert.Equal(t, 3, g.Degree(b))
	assert.Equal(t, 0, g.Degree(node(5, 5)))

	t.Run("edges are symmetric", func(t *testing.T) {
		bId, _ := g.GetVertexId(b)
		cId, _ := g.GetVertexId(c)

		found := false
		for _, e := range g.Edges(c) {
			if e.GetHead() == bId && e.GetWeight() == 2 {
				found = true
			}
		}
		assert.True(t, found, "c should list b")

		found = false
		for _, e := range g.Edges(b) {
			if e.GetHead() == cId && e.GetWeight() == 2 {
				found = true
			}
		}
		assert.True(t, found, "b should list c")
	})

	t.Run("nodes are kept in insertion order", func(t *testing.T) {
		assert.Equal(t, []Node{a, b, c}, g.Nodes())
		assert.Nil(t, g.Edges(node(9, 9)))
		assert.False(t, g.HasNode(node(9, 9)))
	})

	t.Run("bounding box covers every node", func(t *testing.T) {
		bbox := g.GetBoundingBox()
		assert.Equal(t, 0.0, bbox.GetMinLon())
		assert.Equal(t, 0.0, bbox.GetMinLat())
		assert.Equal(t, 1.0, bbox.GetMaxLon())
		assert.Equal(t, 1.0, bbox.GetMaxLat())
		assert.True(t, bbox.Contains(NewCoordinate(0.5, 0.5)))
		assert.False(t, bbox.Contains(NewCoordinate(2, 0.5)))
	})
}

func TestAddEdgeRejectsInvalidWeight(t *testing.T) {
	testCases := []struct {
		name   string
		weight float64
	}{
		{name: "negative", weight: -1},
		{name: "nan", weight: math.NaN()},
		{name: "positive infinity", weight: math.Inf(1)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph(NewExactCanonicalizer())
			err := g.AddEdge(node(0, 0), node(1, 0), tt.weight)
			assert.True(t, errors.Is(err, ErrInvalidWeight))
			assert.Equal(t, 0, g.NumberOfVertices())
			assert.Equal(t, 0, g.NumberOfEdges())
		})
	}

	t.Run("zero weight is accepted", func(t *testing.T) {
		g := NewGraph(NewExactCanonicalizer())
		assert.NoError(t, g.AddEdge(node(0, 0), node(1, 0), 0))
	})
}

func TestSealedGraph(t *testing.T) {
	g := NewGraph(NewExactCanonicalizer())
	require.NoError(t, g.AddEdge(node(0, 0), node(1, 0), 1))
	g.Seal()

	assert.True(t, g.IsSealed())
	assert.ErrorIs(t, g.AddEdge(node(1, 0), node(2, 0), 1), ErrGraphSealed)

	_, err := g.AddNode(node(3, 0))
	assert.ErrorIs(t, err, ErrGraphSealed)

	id, err := g.AddNode(node(1, 0))
	assert.NoError(t, err, "adding a known node is a lookup")
	assert.Equal(t, Index(1), id)
}
