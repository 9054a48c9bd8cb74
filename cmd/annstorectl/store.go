package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xDarkicex/annstore/annstore"
)

func openStore(requireDim bool) *annstore.Store {
	if dbPath == "" {
		exitError("--db is required")
	}
	if requireDim && dim <= 0 {
		exitError("--dim is required")
	}

	var m annstore.DistanceMetric
	switch strings.ToLower(metric) {
	case "dot", "":
		m = annstore.Dot
	case "cosine":
		m = annstore.Cosine
	default:
		exitError("unknown metric %q (valid: dot, cosine)", metric)
	}

	s, err := annstore.Open(
		annstore.WithPath(dbPath),
		annstore.WithDimension(dim),
		annstore.WithMetric(m),
	)
	if err != nil {
		exitError("open %s: %v", dbPath, err)
	}
	return s
}

func parseVector(raw string) []float32 {
	parts := strings.Split(raw, ",")
	vec := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			exitError("invalid vector component %q: %v", p, err)
		}
		vec[i] = float32(f)
	}
	return vec
}

func formatVector(vec []float32) string {
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}

func printResults(results []annstore.Result) {
	for _, r := range results {
		fmt.Printf("%s\tscore=%.6f\tmeta=%q\n", r.DocID.String(), r.Score, string(r.Meta))
	}
}
