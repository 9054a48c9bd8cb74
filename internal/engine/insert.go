package engine

// insertNode runs the HNSW insert algorithm for a freshly-written slot
// at the given level, per spec.md §4.3 steps 2-6. Grounded on the
// teacher's Insert in the retired internal/index/hnsw/insert.go (phase
// 1 greedy descent from entry_level down to level+1, phase 2 per-layer
// ef-beam search down to 0, bidirectional connect at each layer),
// generalized onto slot indices instead of *Node pointers.
func (e *Engine) insertNode(slot int32, level int32, vec []float32) {
	if e.f.h.entryPoint == neighborSentinel {
		e.f.h.entryPoint = slot
		e.f.h.entryPointLevel = level
		return
	}

	current := e.f.h.entryPoint
	for layer := e.f.h.entryPointLevel; layer > level; layer-- {
		current = e.searchLayerUpper(vec, current, layer)
	}

	top := level
	if top > e.f.h.maxLayers-1 {
		top = e.f.h.maxLayers - 1
	}

	for layer := top; layer >= 0; layer-- {
		candidates := e.searchLayerBase(vec, current, layer, e.f.h.maxNeighbors)

		neighbors := make([]int32, 0, e.f.h.maxNeighbors)
		for _, c := range candidates {
			if int32(len(neighbors)) >= e.f.h.maxNeighbors {
				break
			}
			neighbors = append(neighbors, c.slot)
		}
		e.f.writeNeighbors(slot, layer, neighbors)

		for _, c := range candidates {
			e.connectBidirectional(slot, c.slot, layer)
		}

		if len(candidates) > 0 {
			current = candidates[0].slot
		}
	}

	if level > e.f.h.entryPointLevel {
		e.f.h.entryPoint = slot
		e.f.h.entryPointLevel = level
	}
}

// Add writes a new document, assigns it a slot and HNSW level, and
// connects it into the graph. If externalID is non-nil and already
// resolves to a live slot, Add is a no-op that returns the existing
// DocID (idempotent add, per spec.md §8).
func (e *Engine) Add(vec []float32, meta []byte, externalID *DocID) (DocID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkWritable(); err != nil {
		return NilDocID, err
	}
	if err := e.f.validateDimension(vec); err != nil {
		return NilDocID, err
	}
	if len(meta) > MetadataSlotSize {
		return NilDocID, ErrMetadataTooLarge
	}

	if externalID != nil {
		if _, ok := e.idx.lookup(*externalID); ok {
			return *externalID, nil
		}
	}

	if e.f.h.currentCount >= e.f.h.maxCount {
		return NilDocID, ErrDBFull
	}

	id := NilDocID
	if externalID != nil {
		id = *externalID
	} else {
		id = NewDocID()
	}

	slot := e.f.h.currentCount
	level := e.assignLevel()

	stored := prepareVector(e.metric, vec)

	e.f.writeVector(slot, stored)
	if err := e.f.writeMetadata(slot, meta); err != nil {
		return NilDocID, err
	}
	e.f.writeDocID(slot, id)
	e.f.setTombstone(slot, false)
	e.f.initSlotNeighbors(slot)

	e.insertNode(slot, level, stored)

	e.f.h.currentCount++
	e.idx.insert(id, slot)

	if err := e.f.flushHeader(); err != nil {
		e.fault.Trip(err)
		e.log.Error("annstore: io fault while adding document, engine entering no-further-writes state", "doc_id", id.String(), "err", err)
		return NilDocID, err
	}

	if e.metrics != nil {
		e.metrics.Inserts.Inc()
	}

	e.log.Info("annstore: document added", "doc_id", id.String(), "slot", slot, "level", level)

	return id, nil
}
