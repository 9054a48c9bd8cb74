package engine

// liveSlots returns the non-sentinel entries of a neighbour list, in
// stored order, stopping at the first -1 terminator.
func liveSlots(list []int32) []int32 {
	out := make([]int32, 0, len(list))
	for _, s := range list {
		if s == neighborSentinel {
			break
		}
		out = append(out, s)
	}
	return out
}

// connectBidirectional adds x to candidate c's neighbour list at layer,
// evicting c's current worst neighbour if c is already full and x
// scores better than it. Grounded on the teacher's
// connectBidirectionalOptimized in the retired internal/index/hnsw
// package, generalized to operate on slot-addressed, mmap-backed
// neighbour lists instead of *Node.Links slices.
func (e *Engine) connectBidirectional(x, c int32, level int32) {
	list := liveSlots(e.f.readNeighbors(c, level))

	for _, n := range list {
		if n == x {
			return
		}
	}

	if int32(len(list)) < e.f.h.maxNeighbors {
		list = append(list, x)
		e.f.writeNeighbors(c, level, list)
		return
	}

	cVec := e.f.readVector(c)
	worstIdx := -1
	var worstScore float32
	for i, n := range list {
		s := score(e.metric, cVec, e.f.readVector(n))
		if i == 0 || s < worstScore {
			worstScore = s
			worstIdx = i
		}
	}

	xScore := score(e.metric, cVec, e.f.readVector(x))
	if worstIdx >= 0 && xScore > worstScore {
		list[worstIdx] = x
		e.f.writeNeighbors(c, level, list)
	}
}

// removeFromNeighborList removes target from slot's neighbour list at
// layer, shifting subsequent entries left and filling the freed tail
// with the sentinel, per spec.md §4.4 step 5.
func (e *Engine) removeFromNeighborList(slot, layer, target int32) {
	list := e.f.readNeighbors(slot, layer)
	out := make([]int32, 0, len(list))
	for _, n := range list {
		if n == neighborSentinel {
			break
		}
		if n == target {
			continue
		}
		out = append(out, n)
	}
	e.f.writeNeighbors(slot, layer, out)
}
