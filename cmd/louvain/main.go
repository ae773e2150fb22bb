package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-louvain/pkg/graph"
	"github.com/dd0wney/cluso-louvain/pkg/logging"
	"github.com/dd0wney/cluso-louvain/pkg/louvain"
	"github.com/dd0wney/cluso-louvain/pkg/metrics"
	"github.com/dd0wney/cluso-louvain/pkg/validation"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	input := flag.String("input", "", "Input graph file (overrides config)")
	format := flag.String("format", "", "Input format: edgelist or snapshot")
	precision := flag.String("precision", "", "Weight precision: float32 or float64")
	output := flag.String("output", "", "Output file for cluster labels (default stdout summary only)")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = all CPUs)")
	maxLevels := flag.Int("max-levels", 0, "Cap on dendrogram depth (0 = default)")
	tolerance := flag.Float64("tolerance", 0, "Inner-loop modularity tolerance (0 = default)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	req, err := loadRequest(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override the config file.
	if *input != "" {
		req.Input = *input
	}
	if *format != "" {
		req.Format = *format
	}
	if *precision != "" {
		req.Precision = *precision
	}
	if *output != "" {
		req.Output = *output
	}
	if *workers != 0 {
		req.Workers = *workers
	}
	if *maxLevels != 0 {
		req.MaxLevels = *maxLevels
	}
	if *tolerance != 0 {
		req.Tolerance = *tolerance
	}
	if *logLevel != "" {
		req.LogLevel = *logLevel
	}
	if req.Format == "" {
		req.Format = guessFormat(req.Input)
	}
	if req.Precision == "" {
		req.Precision = "float64"
	}

	if err := validation.ValidateRunRequest(req); err != nil {
		log.Fatalf("Invalid run request: %v", err)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(req.LogLevel))

	if req.Precision == "float32" {
		runDetection[float32](req, logger)
	} else {
		runDetection[float64](req, logger)
	}
}

func loadRequest(path string) (*validation.RunRequest, error) {
	req := &validation.RunRequest{}
	if path == "" {
		return req, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return req, nil
}

func guessFormat(input string) string {
	if filepath.Ext(input) == ".snap" {
		return "snapshot"
	}
	return "edgelist"
}

func runDetection[W louvain.Weight](req *validation.RunRequest, logger logging.Logger) {
	g, err := loadGraph[W](req)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}

	fmt.Printf("Cluso Louvain - Community Detection\n")
	fmt.Printf("===================================\n\n")
	fmt.Printf("Input:     %s (%s, %s)\n", req.Input, req.Format, req.Precision)
	fmt.Printf("Vertices:  %d\n", g.NumVertices())
	fmt.Printf("CSR edges: %d\n\n", g.NumEdges())

	reg := metrics.DefaultRegistry()
	result, err := louvain.Run(g, louvain.Options{
		MaxLevels: req.MaxLevels,
		Tolerance: req.Tolerance,
		Workers:   req.Workers,
		Logger:    logger,
		Metrics:   reg,
	})
	if err != nil {
		log.Fatalf("Community detection failed: %v", err)
	}

	communities := result.Communities()
	fmt.Printf("Run:         %s\n", result.RunID)
	fmt.Printf("Levels:      %d\n", result.Levels)
	fmt.Printf("Communities: %d\n", len(communities))
	fmt.Printf("Modularity:  %.6f\n", float64(result.Modularity))

	if req.Output != "" {
		if err := writeLabels(req.Output, result.Labels); err != nil {
			log.Fatalf("Failed to write labels: %v", err)
		}
		fmt.Printf("\nLabels written to %s\n", req.Output)
	}
}

func loadGraph[W louvain.Weight](req *validation.RunRequest) (*graph.CSR[W], error) {
	f, err := os.Open(req.Input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if req.Format == "snapshot" {
		return graph.ReadSnapshot[W](f)
	}
	return graph.ReadEdgeList[W](f)
}

func writeLabels(path string, labels []int32) error {
	var sb strings.Builder
	for v, label := range labels {
		fmt.Fprintf(&sb, "%d %d\n", v, label)
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}
