package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphOf(n int, edges ...[3]float64) *adjacency {
	a := newAdjacency(n)
	for _, e := range edges {
		a.connect(int(e[0]), int(e[1]), e[2])
	}
	return a
}

func TestPageRank(t *testing.T) {
	t.Run("symmetric graph scores evenly", func(t *testing.T) {
		scores := pageRank(graphOf(3, [3]float64{0, 1, 1}, [3]float64{0, 2, 1}, [3]float64{1, 2, 1}))
		require.Len(t, scores, 3)
		for _, s := range scores {
			assert.InDelta(t, 1.0, s, 1e-9)
		}
	})

	t.Run("hub outranks leaves", func(t *testing.T) {
		scores := pageRank(graphOf(4, [3]float64{0, 1, 1}, [3]float64{0, 2, 1}, [3]float64{0, 3, 1}))
		assert.Equal(t, 1.0, scores[0])
		assert.Less(t, scores[1], scores[0])
		assert.InDelta(t, scores[1], scores[3], 1e-9)
	})

	t.Run("empty graph", func(t *testing.T) {
		assert.Nil(t, pageRank(newAdjacency(0)))
	})
}

func TestBetweenness(t *testing.T) {
	tests := []struct {
		name     string
		graph    *adjacency
		expected []float64
	}{
		{
			name:     "star",
			graph:    graphOf(4, [3]float64{0, 1, 1}, [3]float64{0, 2, 1}, [3]float64{0, 3, 1}),
			expected: []float64{1, 0, 0, 0},
		},
		{
			name:     "path",
			graph:    graphOf(3, [3]float64{0, 1, 1}, [3]float64{1, 2, 1}),
			expected: []float64{0, 1, 0},
		},
		{
			name:     "triangle",
			graph:    graphOf(3, [3]float64{0, 1, 1}, [3]float64{0, 2, 1}, [3]float64{1, 2, 1}),
			expected: []float64{0, 0, 0},
		},
		{
			name:     "two nodes",
			graph:    graphOf(2, [3]float64{0, 1, 1}),
			expected: []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := betweenness(tt.graph)
			require.Len(t, got, len(tt.expected))
			for i := range got {
				assert.InDelta(t, tt.expected[i], got[i], 1e-9)
			}
		})
	}
}

func TestCommunities(t *testing.T) {
	// two tightly knit triangles joined by a weak bridge, plus one isolated node
	graph := graphOf(7,
		[3]float64{0, 1, 3}, [3]float64{0, 2, 3}, [3]float64{1, 2, 3},
		[3]float64{3, 4, 3}, [3]float64{3, 5, 3}, [3]float64{4, 5, 3},
		[3]float64{2, 3, 1},
	)

	got := communities(graph)

	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}}, got)
}
