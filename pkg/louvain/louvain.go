// Package louvain implements parallel Louvain community detection on
// weighted undirected CSR graphs.
//
// The engine alternates three phases until no vertex moves: a
// local-move optimization that greedily reassigns vertices to the
// neighbor cluster with the best modularity gain, a renumbering step
// that compacts surviving cluster ids to a dense range, and a
// contraction that collapses each cluster into one super-vertex. The
// result is a hierarchical clustering reported through the final
// per-vertex labels and the modularity of the deepest completed level.
//
// Reported modularity follows the conventional "higher is better" sign:
// positive when intra-cluster edge weight exceeds the degree-preserving
// null model's expectation.
package louvain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-louvain/pkg/graph"
	"github.com/dd0wney/cluso-louvain/pkg/logging"
	"github.com/dd0wney/cluso-louvain/pkg/metrics"
	"github.com/dd0wney/cluso-louvain/pkg/parallel"
	"github.com/dd0wney/cluso-louvain/pkg/pools"
	"github.com/dd0wney/cluso-louvain/pkg/validation"
)

// Weight is the edge-weight type set, re-exported from pkg/graph.
type Weight = graph.Weight

// ErrNumericalDrift is returned when accumulated rounding error drives
// a cluster weight negative or the modularity evaluator produces NaN.
// Either indicates a defect, not a recoverable condition.
var ErrNumericalDrift = errors.New("numerical drift in cluster weights")

// Options configures a community detection run.
type Options struct {
	// MaxLevels caps the number of outer iterations (dendrogram depth).
	// A safety bound; convergence is expected to stop the run first.
	// Zero selects the default.
	MaxLevels int

	// Tolerance is the minimum modularity improvement for the inner
	// loop to keep sweeping. Applied in the weight type regardless of
	// precision. Zero selects the default of 1e-4.
	Tolerance float64

	// Workers sets the goroutine count for the data-parallel kernels.
	// Zero uses the number of CPUs; Validate rejects negative values.
	Workers int

	// Logger receives per-level progress. Nil disables logging.
	Logger logging.Logger

	// Metrics receives run instrumentation. Nil disables it.
	Metrics *metrics.Registry
}

// DefaultOptions returns the default engine configuration.
func DefaultOptions() Options {
	return Options{
		MaxLevels: 40,
		Tolerance: 1e-4,
		Workers:   0,
	}
}

// Validate checks the option values.
func (o Options) Validate() error {
	return validation.NewConfigValidator("louvain.Options").
		NonNegative("MaxLevels", o.MaxLevels).
		PositiveFloat("Tolerance", o.Tolerance).
		NonNegative("Workers", o.Workers).
		MaxInt("Workers", o.Workers, 4096).
		Validate()
}

// LevelStats describes one completed outer iteration.
type LevelStats struct {
	Level       int
	Vertices    int32
	Edges       int32
	Communities int32
	Sweeps      int
	Moves       int
	Modularity  float64
	Duration    time.Duration
}

// Result is the output of a community detection run.
type Result[W Weight] struct {
	// RunID uniquely identifies this run in logs and metrics.
	RunID string

	// Modularity is the modularity of the deepest completed level.
	Modularity W

	// Levels is the number of outer iterations performed.
	Levels int

	// Labels maps each original vertex to its cluster at the deepest
	// completed level; values lie in [0, k).
	Labels []int32

	// LevelStats holds per-level progress of the dendrogram.
	LevelStats []LevelStats
}

// Communities groups the original vertices by final cluster label.
func (r *Result[W]) Communities() [][]int32 {
	k := int32(0)
	for _, label := range r.Labels {
		if label+1 > k {
			k = label + 1
		}
	}
	groups := make([][]int32, k)
	for v, label := range r.Labels {
		groups[label] = append(groups[label], int32(v))
	}
	return groups
}

// Run detects communities in g and returns the finest-level labels of
// the hierarchical clustering along with the final modularity.
//
// The graph must be a valid symmetric CSR view (see graph.Validate);
// it is not modified. An edgeless graph is not an error: every vertex
// keeps its own cluster and the modularity is 0.
func Run[W Weight](g *graph.CSR[W], opts Options) (*Result[W], error) {
	start := time.Now()

	opts = withDefaults(opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input graph: %w", err)
	}

	runID := uuid.NewString()
	log := opts.Logger.With(logging.Component("louvain"), logging.RunID(runID))

	n0 := g.NumVertices()
	res := &Result[W]{
		RunID:  runID,
		Labels: identity(int(n0)),
	}

	pool := parallel.NewWorkerPool(opts.Workers)
	defer pool.Close()

	// m2 is twice the total edge weight of the input. Contraction
	// preserves total weight, so it is constant for the whole run.
	m2 := sumWeights(pool, g)
	if m2 == 0 {
		// No edges: the trivial clustering is the answer.
		log.Info("graph has no edge weight, returning singleton clusters",
			logging.Vertices(n0))
		recordRun(opts.Metrics, g, start, res)
		return res, nil
	}

	log.Info("starting community detection",
		logging.Vertices(n0),
		logging.Edges(g.NumEdges()),
		logging.Workers(pool.Workers()))

	work := g.Clone()
	tol := W(opts.Tolerance)
	scratch := pools.NewSlicePool[W]()

	for level := 0; level < opts.MaxLevels; level++ {
		levelStart := time.Now()
		n := work.NumVertices()

		k := scratch.Get(int(n))
		vertexWeights(pool, work, k)
		sigma := scratch.Get(int(n))
		copy(sigma, k) // identity clusters: sigma_c = k_c
		c := identity(int(n))

		q, sweeps, moves, err := innerLoop(pool, work, c, k, sigma, m2, tol)
		if err != nil {
			log.Error("run aborted", logging.LevelNum(level), logging.Error(err))
			if opts.Metrics != nil {
				opts.Metrics.RecordRun(precisionName[W](), "error", time.Since(start), 0, 0)
			}
			return nil, err
		}

		if isIdentity(c) {
			// No vertex moved: the dendrogram is complete.
			scratch.Put(k)
			scratch.Put(sigma)
			break
		}

		res.Modularity = q
		res.Levels++

		propagateLabels(res.Labels, c)
		kk := compactClusters(c, res.Labels)
		contracted := contract(pool, work, kk, c)

		stats := LevelStats{
			Level:       level,
			Vertices:    n,
			Edges:       work.NumEdges(),
			Communities: kk,
			Sweeps:      sweeps,
			Moves:       moves,
			Modularity:  float64(q),
			Duration:    time.Since(levelStart),
		}
		res.LevelStats = append(res.LevelStats, stats)

		log.Info("level complete",
			logging.LevelNum(level),
			logging.Vertices(n),
			logging.Communities(kk),
			logging.Sweeps(sweeps),
			logging.Moves(moves),
			logging.Modularity(float64(q)),
			logging.Latency(stats.Duration))

		if opts.Metrics != nil {
			opts.Metrics.RecordLevel(stats.Duration, sweeps, moves)
			opts.Metrics.RecordContraction(n, kk)
		}

		scratch.Put(k)
		scratch.Put(sigma)
		work = contracted
	}

	log.Info("community detection complete",
		logging.Int("levels", res.Levels),
		logging.Modularity(float64(res.Modularity)),
		logging.Latency(time.Since(start)))

	recordRun(opts.Metrics, g, start, res)
	return res, nil
}

// innerLoop alternates modularity evaluation and local-move sweeps
// until one sweep improves modularity by less than the tolerance.
func innerLoop[W Weight](pool *parallel.WorkerPool, g *graph.CSR[W], c []int32, k, sigma []W, m2, tol W) (q W, sweeps, moves int, err error) {
	sw := newSweeper(g, c, k, sigma, m2)

	newQ := clusterModularity(pool, g, c, k, sigma, m2)
	curQ := newQ - 1
	for newQ > curQ+tol {
		curQ = newQ
		n, err := sw.sweep()
		if err != nil {
			return 0, sweeps, moves, err
		}
		moves += n
		sweeps++

		newQ = clusterModularity(pool, g, c, k, sigma, m2)
		if isNaN(newQ) {
			return 0, sweeps, moves, fmt.Errorf("%w: modularity is NaN after sweep %d", ErrNumericalDrift, sweeps)
		}
	}
	return newQ, sweeps, moves, nil
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	opts.MaxLevels = validation.DefaultOrInt(opts.MaxLevels, def.MaxLevels)
	opts.Tolerance = validation.DefaultOrFloat(opts.Tolerance, def.Tolerance)
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	return opts
}

func recordRun[W Weight](reg *metrics.Registry, g *graph.CSR[W], start time.Time, res *Result[W]) {
	if reg == nil {
		return
	}
	reg.RecordGraphLoaded(g.NumVertices(), g.NumEdges())
	reg.RecordRun(precisionName[W](), "ok", time.Since(start), res.Levels, float64(res.Modularity))
}

func precisionName[W Weight]() string {
	var w W
	if _, ok := any(w).(float32); ok {
		return "float32"
	}
	return "float64"
}

func identity(n int) []int32 {
	ids := make([]int32, n)
	for i := range ids {
		ids[i] = int32(i)
	}
	return ids
}

func isIdentity(c []int32) bool {
	for i, v := range c {
		if v != int32(i) {
			return false
		}
	}
	return true
}
