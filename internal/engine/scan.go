package engine

import (
	"runtime"
	"sort"
	"sync"
)

// ScanSearch performs an exhaustive parallel linear scan over all
// non-tombstoned slots and returns the topK best-scoring documents.
// It exists for recall verification against the HNSW graph and as a
// fallback for callers that need an exact answer; it is not used by
// Search. Grounded on the teacher's flat/brute-force index
// (internal/index/flat/flat.go in the retired tree), which fans work
// across goroutines against the memory-mapped vector section and
// reduces to a top-K merge, per spec.md §5's "Parallel scan" note that
// workers acquire a stable pointer into the map under the shared lock
// and must not call back into the engine for any mutation.
func (e *Engine) ScanSearch(query []float32, topK int) ([]SearchResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if err := e.checkReadable(); err != nil {
		return nil, err
	}
	if err := e.f.validateDimension(query); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, nil
	}

	q := prepareVector(e.metric, query)

	n := int(e.f.h.currentCount)
	if n == 0 {
		return nil, nil
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers

	partials := make([][]scoredSlot, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(idx, start, end int) {
			defer wg.Done()
			local := make([]scoredSlot, 0, end-start)
			for slot := int32(start); slot < int32(end); slot++ {
				if e.f.isTombstoned(slot) {
					continue
				}
				s := score(e.metric, q, e.f.readVector(slot))
				local = append(local, scoredSlot{slot: slot, score: s})
			}
			partials[idx] = local
		}(w, start, end)
	}
	wg.Wait()

	merged := make([]scoredSlot, 0, n)
	for _, p := range partials {
		merged = append(merged, p...)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].score > merged[j].score })

	if len(merged) > topK {
		merged = merged[:topK]
	}

	out := make([]SearchResult, len(merged))
	for i, m := range merged {
		out[i] = SearchResult{
			DocID: e.f.readDocID(m.slot),
			Score: m.score,
			Meta:  e.f.readMetadata(m.slot),
		}
	}
	return out, nil
}
