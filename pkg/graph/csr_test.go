package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle(t *testing.T) *CSR[float64] {
	t.Helper()
	g, err := FromEdges(3, []Edge[float64]{
		{U: 0, V: 1, Weight: 1},
		{U: 0, V: 2, Weight: 1},
		{U: 1, V: 2, Weight: 1},
	})
	require.NoError(t, err)
	return g
}

func TestCSR_Accessors(t *testing.T) {
	g := triangle(t)

	assert.Equal(t, int32(3), g.NumVertices())
	assert.Equal(t, int32(6), g.NumEdges())
	assert.Equal(t, float64(6), g.TotalWeight())

	adj, ws := g.Adjacency(0)
	assert.Equal(t, []int32{1, 2}, adj)
	assert.Equal(t, []float64{1, 1}, ws)
	assert.Equal(t, int32(2), g.Degree(0))
}

func TestCSR_Clone(t *testing.T) {
	g := triangle(t)
	c := g.Clone()

	require.Equal(t, g.Offsets, c.Offsets)
	require.Equal(t, g.Indices, c.Indices)
	require.Equal(t, g.Weights, c.Weights)

	c.Weights[0] = 42
	assert.Equal(t, float64(1), g.Weights[0], "clone must not alias the original")
}

func TestCSR_Validate(t *testing.T) {
	tests := []struct {
		name    string
		g       *CSR[float64]
		wantErr bool
	}{
		{"valid triangle", triangle(t), false},
		{"valid single vertex", &CSR[float64]{Offsets: []int32{0, 0}}, false},
		{"no vertices", &CSR[float64]{Offsets: []int32{0}}, true},
		{"offsets anchor wrong", &CSR[float64]{Offsets: []int32{1, 1}}, true},
		{"offsets decreasing", &CSR[float64]{
			Offsets: []int32{0, 2, 1},
			Indices: []int32{1, 0},
			Weights: []float64{1, 1},
		}, true},
		{"offsets tail mismatch", &CSR[float64]{
			Offsets: []int32{0, 1},
			Indices: []int32{0, 0},
			Weights: []float64{1, 1},
		}, true},
		{"weights length mismatch", &CSR[float64]{
			Offsets: []int32{0, 1, 2},
			Indices: []int32{1, 0},
			Weights: []float64{1},
		}, true},
		{"index out of range", &CSR[float64]{
			Offsets: []int32{0, 1, 2},
			Indices: []int32{1, 7},
			Weights: []float64{1, 1},
		}, true},
		{"negative index", &CSR[float64]{
			Offsets: []int32{0, 1, 2},
			Indices: []int32{-1, 0},
			Weights: []float64{1, 1},
		}, true},
		{"negative weight", &CSR[float64]{
			Offsets: []int32{0, 1, 2},
			Indices: []int32{1, 0},
			Weights: []float64{-0.5, -0.5},
		}, true},
		{"infinite weight", &CSR[float64]{
			Offsets: []int32{0, 1, 2},
			Indices: []int32{1, 0},
			Weights: []float64{math.Inf(1), math.Inf(1)},
		}, true},
		{"nan weight", &CSR[float64]{
			Offsets: []int32{0, 1, 2},
			Indices: []int32{1, 0},
			Weights: []float64{math.NaN(), math.NaN()},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidGraph)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
