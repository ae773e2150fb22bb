package louvain

import (
	"math"
	"reflect"
	"testing"

	"github.com/dd0wney/cluso-louvain/pkg/graph"
	"github.com/dd0wney/cluso-louvain/pkg/parallel"
)

func testPool(t *testing.T) *parallel.WorkerPool {
	t.Helper()
	pool := parallel.NewWorkerPool(4)
	t.Cleanup(pool.Close)
	return pool
}

func TestContract_TwoTriangles(t *testing.T) {
	pool := testPool(t)
	g := mustGraph(t, 6, append(triangleAt(0), triangleAt(3)...))
	c := []int32{0, 0, 0, 1, 1, 1}

	contracted := contract(pool, g, 2, c)

	if contracted.NumVertices() != 2 {
		t.Fatalf("Expected 2 super-vertices, got %d", contracted.NumVertices())
	}

	// Each triangle's six intra-cluster entries merge into one
	// self-loop of weight 6.
	if contracted.NumEdges() != 2 {
		t.Fatalf("Expected 2 merged self-loops, got %d entries", contracted.NumEdges())
	}
	for v := int32(0); v < 2; v++ {
		adj, ws := contracted.Adjacency(v)
		if len(adj) != 1 || adj[0] != v {
			t.Errorf("Super-vertex %d: expected a single self-loop, got %v", v, adj)
		}
		if ws[0] != 6 {
			t.Errorf("Super-vertex %d: expected self-loop weight 6, got %v", v, ws[0])
		}
	}
}

func TestContract_MergesParallelEdges(t *testing.T) {
	pool := testPool(t)
	g := mustGraph(t, 3, []graph.Edge[float64]{
		{U: 0, V: 2, Weight: 1.5},
		{U: 1, V: 2, Weight: 2.5},
	})
	c := []int32{0, 0, 1}

	contracted := contract(pool, g, 2, c)

	if contracted.NumVertices() != 2 {
		t.Fatalf("Expected 2 super-vertices, got %d", contracted.NumVertices())
	}
	adj, ws := contracted.Adjacency(0)
	if len(adj) != 1 || adj[0] != 1 || ws[0] != 4 {
		t.Errorf("Expected merged edge (0,1,4), got %v %v", adj, ws)
	}
	adj, ws = contracted.Adjacency(1)
	if len(adj) != 1 || adj[0] != 0 || ws[0] != 4 {
		t.Errorf("Expected merged edge (1,0,4), got %v %v", adj, ws)
	}
}

func TestContract_PreservesTotalWeight(t *testing.T) {
	pool := testPool(t)
	edges := []graph.Edge[float64]{
		{U: 0, V: 1, Weight: 0.5},
		{U: 0, V: 2, Weight: 1.25},
		{U: 1, V: 2, Weight: 2},
		{U: 2, V: 3, Weight: 0.75},
		{U: 3, V: 3, Weight: 1}, // self-loop
		{U: 3, V: 4, Weight: 3},
	}
	g := mustGraph(t, 5, edges)
	c := []int32{0, 0, 1, 1, 1}

	before := float64(g.TotalWeight())
	contracted := contract(pool, g, 2, c)
	after := float64(contracted.TotalWeight())

	if math.Abs(before-after)/before > 1e-6 {
		t.Errorf("Total weight changed: %v -> %v", before, after)
	}
	if err := contracted.Validate(); err != nil {
		t.Errorf("Contracted graph invalid: %v", err)
	}
}

func TestContract_Deterministic(t *testing.T) {
	pool := testPool(t)
	edges := []graph.Edge[float64]{
		{U: 0, V: 1, Weight: 1},
		{U: 0, V: 2, Weight: 2},
		{U: 1, V: 3, Weight: 3},
		{U: 2, V: 3, Weight: 4},
		{U: 0, V: 3, Weight: 5},
	}
	g := mustGraph(t, 4, edges)
	c := []int32{0, 1, 1, 0}

	first := contract(pool, g, 2, c)
	second := contract(pool, g, 2, c)

	if !reflect.DeepEqual(first.Offsets, second.Offsets) ||
		!reflect.DeepEqual(first.Indices, second.Indices) ||
		!reflect.DeepEqual(first.Weights, second.Weights) {
		t.Error("Contraction of the same input produced different graphs")
	}
}
