package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEngineMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "louvain_runs_total",
			Help: "Total number of community detection runs",
		},
		[]string{"precision", "status"},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "louvain_run_duration_seconds",
			Help:    "End-to-end run duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 1.0, 10.0, 60.0, 300.0},
		},
	)

	r.LevelsPerRun = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "louvain_levels_per_run",
			Help:    "Dendrogram depth reached per run",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)

	r.LevelDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "louvain_level_duration_seconds",
			Help:    "Duration of one outer iteration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0, 60.0},
		},
	)

	r.SweepsPerLevel = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "louvain_sweeps_per_level",
			Help:    "Local-move sweeps needed to reach a level's local optimum",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		},
	)

	r.VertexMovesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "louvain_vertex_moves_total",
			Help: "Total number of accepted vertex moves",
		},
	)

	r.BestModularity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "louvain_best_modularity",
			Help: "Modularity of the most recent completed run",
		},
	)

	r.ContractionRatio = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "louvain_contraction_ratio",
			Help:    "Super-vertex count divided by vertex count at each contraction",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 1.0},
		},
	)

	r.GraphVerticesLoaded = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "louvain_graph_vertices",
			Help: "Vertex count of the most recently loaded input graph",
		},
	)

	r.GraphEdgesLoaded = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "louvain_graph_edges",
			Help: "CSR entry count of the most recently loaded input graph",
		},
	)
}
