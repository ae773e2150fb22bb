package graph

import (
	"fmt"
)

// Edge is one undirected weighted edge in coordinate form.
type Edge[W Weight] struct {
	U, V   int32
	Weight W
}

// FromEdges builds a symmetric CSR graph with n vertices from an
// undirected edge list. Each non-loop edge is emitted into both
// endpoint adjacency lists; self-loops are emitted once. Within one
// adjacency list, neighbors keep the order the edges were given in.
func FromEdges[W Weight](n int32, edges []Edge[W]) (*CSR[W], error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: vertex count %d, need at least 1", ErrInvalidGraph, n)
	}

	// Count adjacency entries per vertex.
	counts := make([]int32, n+1)
	for i, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("%w: edge %d (%d,%d) out of range [0,%d)", ErrInvalidGraph, i, e.U, e.V, n)
		}
		counts[e.U+1]++
		if e.U != e.V {
			counts[e.V+1]++
		}
	}

	// Prefix sum into row offsets.
	offsets := counts
	for v := int32(0); v < n; v++ {
		offsets[v+1] += offsets[v]
	}

	m := offsets[n]
	g := &CSR[W]{
		Offsets: offsets,
		Indices: make([]int32, m),
		Weights: make([]W, m),
	}

	// Scatter edges; cursor tracks the next free slot per row.
	cursor := make([]int32, n)
	for _, e := range edges {
		p := g.Offsets[e.U] + cursor[e.U]
		g.Indices[p] = e.V
		g.Weights[p] = e.Weight
		cursor[e.U]++
		if e.U != e.V {
			q := g.Offsets[e.V] + cursor[e.V]
			g.Indices[q] = e.U
			g.Weights[q] = e.Weight
			cursor[e.V]++
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
