package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEdgeList(t *testing.T) {
	input := `# comment line
0 1 2.5
1 2

2 3 0.5
`
	g, err := ReadEdgeList[float64](strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, int32(4), g.NumVertices())

	adj, ws := g.Adjacency(1)
	assert.Equal(t, []int32{0, 2}, adj)
	// Missing weight defaults to 1.
	assert.Equal(t, []float64{2.5, 1}, ws)
}

func TestReadEdgeList_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"only comments", "# nothing\n"},
		{"one field", "0\n"},
		{"bad vertex", "a b\n"},
		{"negative vertex", "-1 2\n"},
		{"bad weight", "0 1 heavy\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEdgeList[float64](strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
