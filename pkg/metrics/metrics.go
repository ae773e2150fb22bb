package metrics

import (
	"runtime"
	"time"
)

// RecordRun records a completed (or failed) engine run
func (r *Registry) RecordRun(precision, status string, duration time.Duration, levels int, modularity float64) {
	r.RunsTotal.WithLabelValues(precision, status).Inc()
	r.RunDuration.Observe(duration.Seconds())
	if status == "ok" {
		r.LevelsPerRun.Observe(float64(levels))
		r.BestModularity.Set(modularity)
	}
}

// RecordLevel records one outer iteration of the dendrogram driver
func (r *Registry) RecordLevel(duration time.Duration, sweeps, moves int) {
	r.LevelDuration.Observe(duration.Seconds())
	r.SweepsPerLevel.Observe(float64(sweeps))
	r.VertexMovesTotal.Add(float64(moves))
}

// RecordContraction records the shrink factor of one super-vertex build
func (r *Registry) RecordContraction(before, after int32) {
	if before > 0 {
		r.ContractionRatio.Observe(float64(after) / float64(before))
	}
}

// RecordGraphLoaded records the dimensions of a loaded input graph
func (r *Registry) RecordGraphLoaded(vertices, edges int32) {
	r.GraphVerticesLoaded.Set(float64(vertices))
	r.GraphEdgesLoaded.Set(float64(edges))
}

// UpdateSystemMetrics refreshes the process-level gauges
func (r *Registry) UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
}
