package louvain

import (
	"math"

	"github.com/dd0wney/cluso-louvain/pkg/graph"
	"github.com/dd0wney/cluso-louvain/pkg/parallel"
)

// sumWeights reduces the CSR weight column. For a symmetric graph the
// sum is m2: twice the undirected edge weight, with each self-loop
// entry counted once. Partial sums are combined in chunk order so the
// result is deterministic for a fixed worker count.
func sumWeights[W Weight](pool *parallel.WorkerPool, g *graph.CSR[W]) W {
	partials := parallel.MapChunks(pool, g.NumEdges(), func(lo, hi int32) W {
		var sum W
		for _, w := range g.Weights[lo:hi] {
			sum += w
		}
		return sum
	})

	var total W
	for _, p := range partials {
		total += p
	}
	return total
}

// vertexWeights computes k[v], the sum of weights incident to each
// vertex, into the caller's buffer. Each vertex reduces its own
// adjacency slice independently.
func vertexWeights[W Weight](pool *parallel.WorkerPool, g *graph.CSR[W], k []W) {
	pool.ForRange(g.NumVertices(), func(lo, hi int32) {
		for v := lo; v < hi; v++ {
			var sum W
			_, ws := g.Adjacency(v)
			for _, w := range ws {
				sum += w
			}
			k[v] = sum
		}
	})
}

// clusterModularity evaluates the modularity Q of the clustering c.
//
// Each vertex contributes the weight of its edges that leave its
// cluster minus the null-model term k_v*(m2-sigma_c)/m2; the negated
// total over m2 is the conventional modularity, reported so that
// higher is better.
func clusterModularity[W Weight](pool *parallel.WorkerPool, g *graph.CSR[W], c []int32, k, sigma []W, m2 W) W {
	partials := parallel.MapChunks(pool, g.NumVertices(), func(lo, hi int32) W {
		var sum W
		for v := lo; v < hi; v++ {
			cv := c[v]

			// Weight of edges from v to other clusters. Self-loops
			// never leave the cluster.
			var out W
			adj, ws := g.Adjacency(v)
			for i, u := range adj {
				if c[u] != cv {
					out += ws[i]
				}
			}

			sum += out - k[v]*(m2-sigma[cv])/m2
		}
		return sum
	})

	var total W
	for _, p := range partials {
		total += p
	}
	return -total / m2
}

func isNaN[W Weight](w W) bool {
	return math.IsNaN(float64(w))
}
