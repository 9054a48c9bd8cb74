package engine

import "testing"

// TestSearch_Scenario1 matches spec scenario 1: a 4-dim dot-product
// engine with orthogonal unit vectors, querying for the first vector
// should return it first with score 1.0 and a 0.0-score second result.
func TestSearch_Scenario1(t *testing.T) {
	e := newTestEngine(t, 4, 8, 4, 3, MetricDot)

	first, err := e.Add([]float32{1, 0, 0, 0}, nil, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := e.Add([]float32{0, 1, 0, 0}, nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := e.Add([]float32{0, 0, 1, 0}, nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := e.Add([]float32{0, 0, 0, 1}, nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	results, err := e.Search([]float32{1, 0, 0, 0}, 2, 0, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].DocID != first {
		t.Fatalf("expected first result to be %v, got %v", first, results[0].DocID)
	}
	if results[0].Score != 1.0 {
		t.Fatalf("expected score 1.0, got %v", results[0].Score)
	}
	if results[1].Score != 0.0 {
		t.Fatalf("expected second score 0.0, got %v", results[1].Score)
	}
}

// TestSearch_ScoresDescending covers the property-based invariant: for
// a pristine index, returned scores are sorted strictly non-increasing.
func TestSearch_ScoresDescending(t *testing.T) {
	e := newTestEngine(t, 8, 64, 8, 4, MetricDot)

	for i := 0; i < 30; i++ {
		v := make([]float32, 8)
		v[i%8] = float32(i%8) + 1
		v[(i+1)%8] = float32(i%3) + 1
		if _, err := e.Add(v, nil, nil); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}

	q := make([]float32, 8)
	q[0] = 1
	q[3] = 1
	results, err := e.Search(q, 10, 20, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Fatalf("scores not descending at index %d: %v > %v", i, results[i].Score, results[i-1].Score)
		}
	}
}

// TestSearch_Cosine matches spec scenario 3: collinear vectors of
// different magnitude should both score ~1.0 against a unit query
// once normalized on ingress and query.
func TestSearch_Cosine(t *testing.T) {
	e := newTestEngine(t, 3, 8, 4, 3, MetricCosine)

	if _, err := e.Add([]float32{2, 0, 0}, nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := e.Add([]float32{4, 0, 0}, nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	results, err := e.Search([]float32{1, 0, 0}, 2, 0, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if diff := r.Score - 1.0; diff > 1e-4 || diff < -1e-4 {
			t.Fatalf("expected score ~1.0, got %v", r.Score)
		}
	}
}

func TestSearch_EmptyEngine(t *testing.T) {
	e := newTestEngine(t, 4, 8, 4, 3, MetricDot)

	results, err := e.Search([]float32{1, 0, 0, 0}, 2, 0, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %d", len(results))
	}
}

func TestSearch_TopKZero(t *testing.T) {
	e := newTestEngine(t, 4, 8, 4, 3, MetricDot)
	if _, err := e.Add([]float32{1, 0, 0, 0}, nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	results, err := e.Search([]float32{1, 0, 0, 0}, 0, 0, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results for topK=0, got %d", len(results))
	}
}

func TestSearch_PredicateFilter(t *testing.T) {
	e := newTestEngine(t, 4, 8, 4, 3, MetricDot)

	if _, err := e.Add([]float32{1, 0, 0, 0}, []byte("keep"), nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := e.Add([]float32{0, 1, 0, 0}, []byte("drop"), nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	pred := func(meta []byte) bool { return string(meta) == "keep" }
	results, err := e.Search([]float32{1, 1, 0, 0}, 5, 0, pred)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, r := range results {
		if string(r.Meta) != "keep" {
			t.Fatalf("predicate leaked a filtered result: %q", r.Meta)
		}
	}
}
