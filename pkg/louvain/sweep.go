package louvain

import (
	"fmt"

	"github.com/dd0wney/cluso-louvain/pkg/graph"
)

// sigmaTolerance bounds how far below zero a cluster weight may round
// before the run is declared defective.
const sigmaTolerance = 1e-6

// sweeper carries the scratch state of the local-move optimizer across
// sweeps of one level. Cluster ids are always drawn from [0, n), so the
// per-cluster accumulator is sized once per level.
type sweeper[W Weight] struct {
	g     *graph.CSR[W]
	c     []int32
	k     []W
	sigma []W
	m2    W

	acc  []W     // acc[cl] = weight from the current vertex into cluster cl
	seen []int32 // clusters touched for the current vertex, first-seen order
}

func newSweeper[W Weight](g *graph.CSR[W], c []int32, k, sigma []W, m2 W) *sweeper[W] {
	n := g.NumVertices()
	return &sweeper[W]{
		g:     g,
		c:     c,
		k:     k,
		sigma: sigma,
		m2:    m2,
		acc:   make([]W, n),
		seen:  make([]int32, 0, 64),
	}
}

// sweep runs one pass over every vertex in ascending id order, moving
// each to the neighbor cluster with the largest positive modularity
// gain. Updates are applied as the pass goes, so each vertex observes
// the latest assignments of its predecessors; this sequential order is
// the semantics the evaluator's trajectory is defined against.
// Returns the number of accepted moves.
func (s *sweeper[W]) sweep() (int, error) {
	n := s.g.NumVertices()
	moves := 0

	for v := int32(0); v < n; v++ {
		adj, ws := s.g.Adjacency(v)
		if len(adj) == 0 {
			continue
		}

		old := s.c[v]

		// Accumulate the weight from v into each neighboring cluster.
		// Self-loops stay in v's cluster whatever happens, so they
		// contribute to no candidate.
		var inOld W
		for i, u := range adj {
			if u == v {
				continue
			}
			cu := s.c[u]
			if cu == old {
				inOld += ws[i]
				continue
			}
			if s.acc[cu] == 0 {
				s.seen = append(s.seen, cu)
			}
			s.acc[cu] += ws[i]
		}

		if len(s.seen) == 0 {
			continue
		}

		// Cost of detaching v from its current cluster.
		removal := inOld - (s.k[v]/s.m2)*(s.sigma[old]-s.k[v])

		// Candidates are visited in first-seen adjacency order and
		// compared strictly, so ties resolve to the earliest edge.
		var best W
		bestCluster := int32(-1)
		for _, cand := range s.seen {
			gain := s.acc[cand] - (s.k[v]/s.m2)*s.sigma[cand] - removal
			if isNaN(gain) {
				return moves, fmt.Errorf("%w: gain for vertex %d into cluster %d is NaN", ErrNumericalDrift, v, cand)
			}
			if gain > best {
				best = gain
				bestCluster = cand
			}
			s.acc[cand] = 0
		}
		s.seen = s.seen[:0]

		if bestCluster < 0 {
			continue
		}

		s.sigma[old] -= s.k[v]
		if float64(s.sigma[old]) < -sigmaTolerance*float64(s.m2) {
			return moves, fmt.Errorf("%w: cluster %d weight %v after removing vertex %d", ErrNumericalDrift, old, s.sigma[old], v)
		}
		s.c[v] = bestCluster
		s.sigma[bestCluster] += s.k[v]
		moves++
	}

	return moves, nil
}
