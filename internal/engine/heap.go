package engine

import "container/heap"

// scoredSlot pairs a slot with its score against the current query.
type scoredSlot struct {
	slot  int32
	score float32
}

// maxHeap is a container/heap.Interface max-heap over scoredSlot,
// ordered by score descending (highest score first). Both the
// candidate frontier and the results heap in search_layer_base use
// this same shape, unlike the teacher's util/heap.go which keeps
// distances in min-heap order for a "lower is better" metric; this
// spec's "higher is better" scoring orientation means every heap here
// pops the best score, not the smallest distance.
type maxHeap []scoredSlot

func (h maxHeap) Len() int            { return len(h) }
func (h maxHeap) Less(i, j int) bool  { return h[i].score > h[j].score }
func (h maxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x interface{}) { *h = append(*h, x.(scoredSlot)) }
func (h *maxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// worst returns the lowest-scored element without removing it, used to
// compare an incoming candidate against the current tail of a
// size-bounded results heap. Since maxHeap keeps the best score at the
// root, the worst element must be found by a linear scan.
func (h maxHeap) worst() (scoredSlot, bool) {
	if len(h) == 0 {
		return scoredSlot{}, false
	}
	w := h[0]
	for _, s := range h[1:] {
		if s.score < w.score {
			w = s
		}
	}
	return w, true
}

// popWorst removes and returns the lowest-scored element.
func (h *maxHeap) popWorst() (scoredSlot, bool) {
	if len(*h) == 0 {
		return scoredSlot{}, false
	}
	worstIdx := 0
	for i, s := range *h {
		if s.score < (*h)[worstIdx].score {
			worstIdx = i
		}
	}
	old := *h
	n := len(old)
	item := old[worstIdx]
	old[worstIdx] = old[n-1]
	*h = old[:n-1]
	heap.Init(h)
	return item, true
}

// best returns, without removing, the highest-scored element (the root).
func (h maxHeap) best() (scoredSlot, bool) {
	if len(h) == 0 {
		return scoredSlot{}, false
	}
	return h[0], true
}

// sortedDescending drains a copy of h into a slice ordered by score
// descending, used to produce the final result list from the results
// heap in search_layer_base.
func (h maxHeap) sortedDescending() []scoredSlot {
	cp := make(maxHeap, len(h))
	copy(cp, h)
	heap.Init(&cp)
	out := make([]scoredSlot, 0, len(cp))
	for cp.Len() > 0 {
		out = append(out, heap.Pop(&cp).(scoredSlot))
	}
	return out
}
