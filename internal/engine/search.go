package engine

import (
	"container/heap"
	"time"
)

// searchLayerUpper greedy-descends from entry at layer: among entry's
// neighbours strictly better than the current best, move to the best
// one, repeating until no neighbour improves. Tombstoned neighbours are
// skipped. Grounded on the teacher's upper-layer descent in the
// retired internal/index/hnsw/search.go, generalized onto slot-
// addressed reads and "higher is better" scoring.
func (e *Engine) searchLayerUpper(query []float32, entry int32, layer int32) int32 {
	current := entry
	currentScore := score(e.metric, query, e.f.readVector(current))

	for {
		improved := false
		best := current
		bestScore := currentScore

		for _, n := range liveSlots(e.f.readNeighbors(current, layer)) {
			if e.isDeleted(n) {
				continue
			}
			s := score(e.metric, query, e.f.readVector(n))
			if s > bestScore {
				bestScore = s
				best = n
				improved = true
			}
		}

		if !improved {
			return current
		}
		current = best
		currentScore = bestScore
	}
}

// searchLayerBase runs bounded best-first expansion at layer, seeded
// from entry, and returns up to ef results sorted by score descending.
// Grounded on the teacher's ef-bounded beam search, re-oriented to a
// max-heap of scores (higher is better) instead of the teacher's
// min-heap of negated distances.
func (e *Engine) searchLayerBase(query []float32, entry int32, layer int32, ef int32) []scoredSlot {
	visited := map[int32]struct{}{entry: {}}

	entryScore := score(e.metric, query, e.f.readVector(entry))
	results := maxHeap{{slot: entry, score: entryScore}}
	candidates := maxHeap{{slot: entry, score: entryScore}}
	heap.Init(&results)
	heap.Init(&candidates)

	for candidates.Len() > 0 {
		best, _ := candidates.best()

		if results.Len() >= int(ef) {
			worst, ok := results.worst()
			if ok && best.score < worst.score {
				break
			}
		}

		cur := heap.Pop(&candidates).(scoredSlot)

		for _, n := range liveSlots(e.f.readNeighbors(cur.slot, layer)) {
			if _, ok := visited[n]; ok {
				continue
			}
			visited[n] = struct{}{}
			if e.isDeleted(n) {
				continue
			}

			s := score(e.metric, query, e.f.readVector(n))

			isFull := results.Len() >= int(ef)
			worst, _ := results.worst()
			if !isFull || s > worst.score {
				heap.Push(&results, scoredSlot{slot: n, score: s})
				heap.Push(&candidates, scoredSlot{slot: n, score: s})
				if results.Len() > int(ef) {
					results.popWorst()
				}
			}
		}
	}

	return results.sortedDescending()
}

func (e *Engine) isDeleted(slot int32) bool {
	_, ok := e.deleted[slot]
	return ok
}

// SearchResult is one ranked hit returned by Search.
type SearchResult struct {
	DocID DocID
	Score float32
	Meta  []byte
}

// Predicate filters a candidate by its raw metadata bytes. No
// reflection happens inside the engine; typed predicates belong to a
// surrounding wrapper.
type Predicate func(meta []byte) bool

// Search walks the graph from the entry point and returns up to topK
// results sorted by score descending, per spec.md §4.3.
func (e *Engine) Search(query []float32, topK int, efSearch int32, pred Predicate) ([]SearchResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	start := time.Now()
	defer func() {
		if e.metrics != nil {
			e.metrics.SearchLatency.Observe(time.Since(start).Seconds())
		}
	}()

	if err := e.checkReadable(); err != nil {
		if e.metrics != nil {
			e.metrics.SearchErrors.Inc()
		}
		return nil, err
	}
	if err := e.f.validateDimension(query); err != nil {
		if e.metrics != nil {
			e.metrics.SearchErrors.Inc()
		}
		return nil, err
	}
	if topK <= 0 {
		return nil, nil
	}
	if e.f.h.currentCount-e.f.h.deletedCount <= 0 {
		return nil, nil
	}

	q := prepareVector(e.metric, query)

	ef := efSearch
	if int32(topK) > ef {
		ef = int32(topK)
	}
	if ef <= 0 {
		ef = int32(topK)
	}

	entry := e.f.h.entryPoint
	if entry == neighborSentinel {
		return nil, nil
	}

	current := entry
	for layer := e.f.h.entryPointLevel; layer >= 1; layer-- {
		current = e.searchLayerUpper(q, current, layer)
	}

	candidates := e.searchLayerBase(q, current, 0, ef)

	out := make([]SearchResult, 0, topK)
	for _, c := range candidates {
		if e.isDeleted(c.slot) {
			continue
		}
		meta := e.f.readMetadata(c.slot)
		if pred != nil && !pred(meta) {
			continue
		}
		out = append(out, SearchResult{
			DocID: e.f.readDocID(c.slot),
			Score: c.score,
			Meta:  meta,
		})
		if len(out) == topK {
			break
		}
	}

	if e.metrics != nil {
		e.metrics.SearchQueries.Inc()
	}

	return out, nil
}
