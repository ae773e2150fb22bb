package metrics

import (
	"testing"
	"time"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.RunsTotal == nil {
		t.Error("RunsTotal not initialized")
	}
	if r.LevelDuration == nil {
		t.Error("LevelDuration not initialized")
	}
	if r.SweepsPerLevel == nil {
		t.Error("SweepsPerLevel not initialized")
	}
	if r.BestModularity == nil {
		t.Error("BestModularity not initialized")
	}
	if r.ContractionRatio == nil {
		t.Error("ContractionRatio not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordRun(t *testing.T) {
	r := NewRegistry()

	r.RecordRun("float64", "ok", 50*time.Millisecond, 3, 0.71)
	r.RecordRun("float32", "error", 10*time.Millisecond, 0, 0)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, name := range []string{"louvain_runs_total", "louvain_run_duration_seconds", "louvain_best_modularity"} {
		if !found[name] {
			t.Errorf("Expected metric family %s after RecordRun", name)
		}
	}
}

func TestRecordLevel(t *testing.T) {
	r := NewRegistry()

	r.RecordLevel(5*time.Millisecond, 3, 120)
	r.RecordContraction(1000, 42)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	var movesFound bool
	for _, mf := range families {
		if mf.GetName() == "louvain_vertex_moves_total" {
			movesFound = true
			if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 120 {
				t.Errorf("Expected 120 moves recorded, got %v", got)
			}
		}
	}
	if !movesFound {
		t.Error("louvain_vertex_moves_total not gathered")
	}
}

func TestRecordContraction_ZeroVertices(t *testing.T) {
	r := NewRegistry()
	// Must not divide by zero.
	r.RecordContraction(0, 0)
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics()

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	var goroutines bool
	for _, mf := range families {
		if mf.GetName() == "louvain_goroutines" {
			goroutines = true
			if mf.GetMetric()[0].GetGauge().GetValue() <= 0 {
				t.Error("Expected positive goroutine count")
			}
		}
	}
	if !goroutines {
		t.Error("louvain_goroutines not gathered")
	}
}
