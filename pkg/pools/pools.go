// Package pools provides object pooling for reducing GC pressure.
//
// The dendrogram driver rebuilds its working buffers at every level of
// the hierarchy: cluster vectors, weight arrays, and the per-edge
// scratch columns used during contraction. Levels shrink
// monotonically, so a buffer released after one level is large enough
// to serve every later one.
package pools
