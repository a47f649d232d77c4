package datastructure

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeap(t *testing.T) {
	testCases := []struct {
		name string
		d    int
	}{
		{name: "binary heap", d: 2},
		{name: "four-ary heap", d: 4},
		{name: "eight-ary heap", d: 8},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			h := NewdAryHeap[int](tt.d)

			nodes := make([]*PriorityQueueNode[int], 200)
			for i := range nodes {
				nodes[i] = NewPriorityQueueNode(rng.Float64()*1000, i)
				h.Insert(nodes[i])
			}

			// lower half of the keys
			for i := 0; i < len(nodes); i += 2 {
				require.NoError(t, h.DecreaseKey(nodes[i], nodes[i].GetRank()/2))
			}

			ranks := make([]float64, 0, len(nodes))
			for _, n := range nodes {
				ranks = append(ranks, n.GetRank())
			}
			sort.Float64s(ranks)

			for i := 0; !h.IsEmpty(); i++ {
				minNode, err := h.ExtractMin()
				require.NoError(t, err)
				assert.Equal(t, ranks[i], minNode.GetRank())
				assert.Equal(t, -1, minNode.GetPos())
			}

			_, err := h.ExtractMin()
			assert.Error(t, err)
		})
	}
}

func TestDecreaseKeyRejectsInvalidUpdate(t *testing.T) {
	h := NewFourAryHeap[int]()
	a := NewPriorityQueueNode(5.0, 1)
	h.Insert(a)

	assert.Error(t, h.DecreaseKey(a, 10), "rank can only decrease")

	_, err := h.ExtractMin()
	require.NoError(t, err)
	assert.Error(t, h.DecreaseKey(a, 1), "extracted item is no longer in the heap")
}
