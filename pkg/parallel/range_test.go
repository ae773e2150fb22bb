package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForRange_CoversEveryIndexOnce(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const n = 10007 // prime, so chunks never divide evenly
	visits := make([]int32, n)

	pool.ForRange(n, func(lo, hi int32) {
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&visits[i], 1)
		}
	})

	for i, v := range visits {
		if v != 1 {
			t.Fatalf("Index %d visited %d times", i, v)
		}
	}
}

func TestForRange_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	called := false
	pool.ForRange(0, func(lo, hi int32) { called = true })
	if called {
		t.Error("ForRange(0) must not invoke the body")
	}
}

func TestForRange_RunsInlineWhenClosed(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var sum int64
	pool.ForRange(100, func(lo, hi int32) {
		for i := lo; i < hi; i++ {
			atomic.AddInt64(&sum, int64(i))
		}
	})
	if sum != 4950 {
		t.Errorf("Expected sum 4950, got %d", sum)
	}
}

func TestMapChunks_DeterministicSum(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	values := make([]float64, 1000)
	for i := range values {
		values[i] = float64(i) * 0.25
	}

	sum := func() float64 {
		partials := MapChunks(pool, int32(len(values)), func(lo, hi int32) float64 {
			var s float64
			for i := lo; i < hi; i++ {
				s += values[i]
			}
			return s
		})
		var total float64
		for _, p := range partials {
			total += p
		}
		return total
	}

	first := sum()
	for i := 0; i < 10; i++ {
		if got := sum(); got != first {
			t.Fatalf("Reduction not deterministic: %v vs %v", got, first)
		}
	}

	var want float64
	for _, v := range values {
		want += v
	}
	if first != want {
		t.Errorf("Expected sum %v, got %v", want, first)
	}
}

func TestMapChunks_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	results := MapChunks(pool, 0, func(lo, hi int32) int { return 1 })
	if results != nil {
		t.Errorf("Expected nil for empty range, got %v", results)
	}
}
