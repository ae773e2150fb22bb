package louvain

import (
	"slices"

	"github.com/dd0wney/cluso-louvain/pkg/pools"
)

// compactClusters renumbers the surviving cluster ids in c to the dense
// range [0, k) and applies the same renumbering to the top-level label
// vector. Returns k, the number of surviving clusters.
//
// labels must already hold cluster ids from c's image; the driver
// composes each label through c right after the inner loop converges.
// That makes this operation idempotent: a second application finds c
// already dense and renumbers with the identity map.
//
// The inverse map holds -1 at ids that survived nowhere. Those
// positions are never read: every value pushed through the map came
// out of c's image.
func compactClusters(c []int32, labels []int32) int32 {
	n := len(c)

	// Sorted-unique of c yields the surviving ids in ascending order.
	surviving := pools.GetInt32s(n)
	copy(surviving, c)
	slices.Sort(surviving)
	surviving = slices.Compact(surviving)
	k := int32(len(surviving))

	// The inverse map is indexed by id, so it spans up to the largest
	// surviving id, which need not be below n.
	size := 0
	if k > 0 {
		size = int(surviving[k-1]) + 1
	}
	inverse := pools.GetInt32s(size)
	for i := range inverse {
		inverse[i] = -1
	}
	for dense, id := range surviving {
		inverse[id] = int32(dense)
	}

	for i := range c {
		c[i] = inverse[c[i]]
	}
	for j := range labels {
		labels[j] = inverse[labels[j]]
	}

	pools.PutInt32s(surviving)
	pools.PutInt32s(inverse)
	return k
}

// propagateLabels composes the top-level labels through this level's
// cluster assignment: each original vertex follows its current-level
// vertex into that vertex's cluster.
func propagateLabels(labels, c []int32) {
	for j := range labels {
		labels[j] = c[labels[j]]
	}
}
