package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the engine
type Registry struct {
	// Engine Metrics
	RunsTotal           *prometheus.CounterVec
	RunDuration         prometheus.Histogram
	LevelsPerRun        prometheus.Histogram
	LevelDuration       prometheus.Histogram
	SweepsPerLevel      prometheus.Histogram
	VertexMovesTotal    prometheus.Counter
	BestModularity      prometheus.Gauge
	ContractionRatio    prometheus.Histogram
	GraphVerticesLoaded prometheus.Gauge
	GraphEdgesLoaded    prometheus.Gauge

	// System Metrics
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initEngineMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
