package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadEdgeList parses a whitespace-separated edge list: one edge per
// line as "u v" or "u v weight", with '#' starting a comment. Weight
// defaults to 1. The vertex count is one past the largest id seen.
func ReadEdgeList[W Weight](r io.Reader) (*CSR[W], error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	edges := make([]Edge[W], 0, 1024)
	maxID := int32(-1)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected \"u v [weight]\", got %q", ErrInvalidGraph, lineNo, line)
		}

		u, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad source vertex: %v", ErrInvalidGraph, lineNo, err)
		}
		v, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad target vertex: %v", ErrInvalidGraph, lineNo, err)
		}
		if u < 0 || v < 0 {
			return nil, fmt.Errorf("%w: line %d: negative vertex id", ErrInvalidGraph, lineNo)
		}

		w := 1.0
		if len(fields) >= 3 {
			w, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad weight: %v", ErrInvalidGraph, lineNo, err)
			}
		}

		edges = append(edges, Edge[W]{U: int32(u), V: int32(v), Weight: W(w)})
		if int32(u) > maxID {
			maxID = int32(u)
		}
		if int32(v) > maxID {
			maxID = int32(v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading edge list: %w", err)
	}
	if maxID < 0 {
		return nil, fmt.Errorf("%w: edge list is empty", ErrInvalidGraph)
	}

	return FromEdges(maxID+1, edges)
}
