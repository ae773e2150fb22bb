package pools

import (
	"sync"
)

// Size classes for pooled slices, in elements.
const (
	classSmall  = 1024
	classMedium = 65536
	classLarge  = 1 << 20

	// maxPooledCap is an early cut-off in Put. Put only pools slices
	// of capacity up to classLarge; anything bigger is left for the GC.
	maxPooledCap = 1 << 24
)

// SlicePool pools slices of a single element type in three size
// classes. It backs the int32 scratch of the compaction and
// contraction kernels and the driver's per-level weight arrays.
type SlicePool[T any] struct {
	small  sync.Pool // <= 1024 elements
	medium sync.Pool // <= 65536 elements
	large  sync.Pool // <= 1M elements
}

// NewSlicePool creates a new slice pool for element type T.
func NewSlicePool[T any]() *SlicePool[T] {
	return &SlicePool[T]{
		small: sync.Pool{
			New: func() any {
				s := make([]T, 0, classSmall)
				return &s
			},
		},
		medium: sync.Pool{
			New: func() any {
				s := make([]T, 0, classMedium)
				return &s
			},
		},
		large: sync.Pool{
			New: func() any {
				s := make([]T, 0, classLarge)
				return &s
			},
		},
	}
}

// Get returns a slice with the requested length. Contents are
// undefined; callers that need zeroed memory must clear it.
func (p *SlicePool[T]) Get(size int) []T {
	var pool *sync.Pool
	switch {
	case size <= classSmall:
		pool = &p.small
	case size <= classMedium:
		pool = &p.medium
	case size <= classLarge:
		pool = &p.large
	default:
		return make([]T, size)
	}

	sp, ok := pool.Get().(*[]T)
	if !ok || cap(*sp) < size {
		return make([]T, size)
	}
	return (*sp)[:size]
}

// Put returns a slice to the pool.
func (p *SlicePool[T]) Put(s []T) {
	c := cap(s)
	if c > maxPooledCap {
		return
	}

	s = s[:0]

	var pool *sync.Pool
	switch {
	case c <= classSmall:
		pool = &p.small
	case c <= classMedium:
		pool = &p.medium
	case c <= classLarge:
		pool = &p.large
	default:
		return
	}

	pool.Put(&s)
}

// Default global int32 pool, shared by the compactor and contraction
// kernels for id-typed scratch.
var defaultInt32Pool = NewSlicePool[int32]()

// GetInt32s returns an int32 slice of the given length from the default pool.
func GetInt32s(size int) []int32 {
	return defaultInt32Pool.Get(size)
}

// PutInt32s returns an int32 slice to the default pool.
func PutInt32s(s []int32) {
	defaultInt32Pool.Put(s)
}
