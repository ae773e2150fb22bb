package louvain

import (
	"sort"

	"github.com/dd0wney/cluso-louvain/pkg/graph"
	"github.com/dd0wney/cluso-louvain/pkg/parallel"
	"github.com/dd0wney/cluso-louvain/pkg/pools"
)

// contract collapses each of the kk clusters of g into one
// super-vertex. Parallel edges between the same cluster pair are merged
// by summing weights; intra-cluster edges become self-loops, so the
// total edge weight of the contracted graph equals that of g.
func contract[W Weight](pool *parallel.WorkerPool, g *graph.CSR[W], kk int32, c []int32) *graph.CSR[W] {
	n := g.NumVertices()
	m := g.NumEdges()

	// Expand the row pointers into a per-edge source column.
	src := pools.GetInt32s(int(m))
	pool.ForRange(n, func(lo, hi int32) {
		for v := lo; v < hi; v++ {
			for e := g.Offsets[v]; e < g.Offsets[v+1]; e++ {
				src[e] = v
			}
		}
	})

	// Remap both endpoints onto cluster ids.
	dst := pools.GetInt32s(int(m))
	pool.ForRange(m, func(lo, hi int32) {
		for e := lo; e < hi; e++ {
			src[e] = c[src[e]]
			dst[e] = c[g.Indices[e]]
		}
	})

	// Stable sort a permutation lexicographically by (src, dst).
	// Stability keeps the merge order fixed for a fixed input order,
	// which keeps the summed weights bit-for-bit reproducible.
	perm := pools.GetInt32s(int(m))
	for i := range perm {
		perm[i] = int32(i)
	}
	sort.SliceStable(perm, func(i, j int) bool {
		a, b := perm[i], perm[j]
		if src[a] != src[b] {
			return src[a] < src[b]
		}
		return dst[a] < dst[b]
	})

	// Reduce by (src, dst), summing weights of parallel edges.
	counts := pools.GetInt32s(int(kk) + 1)
	for i := range counts {
		counts[i] = 0
	}
	indices := make([]int32, 0, m)
	weights := make([]W, 0, m)
	lastSrc, lastDst := int32(-1), int32(-1)
	for _, e := range perm {
		s, d := src[e], dst[e]
		if s == lastSrc && d == lastDst {
			weights[len(weights)-1] += g.Weights[e]
			continue
		}
		indices = append(indices, d)
		weights = append(weights, g.Weights[e])
		counts[s+1]++
		lastSrc, lastDst = s, d
	}

	// Rebuild the row pointers for the kk super-vertices.
	offsets := make([]int32, kk+1)
	copy(offsets, counts)
	for v := int32(0); v < kk; v++ {
		offsets[v+1] += offsets[v]
	}

	pools.PutInt32s(src)
	pools.PutInt32s(dst)
	pools.PutInt32s(perm)
	pools.PutInt32s(counts)

	return &graph.CSR[W]{
		Offsets: offsets,
		Indices: indices[:len(indices):len(indices)],
		Weights: weights[:len(weights):len(weights)],
	}
}
