package engine

// GetByID returns the stored vector and metadata for a DocID, or false
// if it does not resolve to a live slot.
func (e *Engine) GetByID(id DocID) ([]float32, []byte, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if err := e.checkReadable(); err != nil {
		return nil, nil, false, err
	}

	slot, ok := e.idx.lookup(id)
	if !ok {
		return nil, nil, false, nil
	}
	return e.f.readVector(slot), e.f.readMetadata(slot), true, nil
}

// UpdateMetadata rewrites only the metadata slot in place, per
// spec.md §4.4.
func (e *Engine) UpdateMetadata(id DocID, meta []byte) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkWritable(); err != nil {
		return false, err
	}
	if len(meta) > MetadataSlotSize {
		return false, ErrMetadataTooLarge
	}

	slot, ok := e.idx.lookup(id)
	if !ok {
		return false, nil
	}

	if err := e.f.writeMetadata(slot, meta); err != nil {
		return false, err
	}

	if e.metrics != nil {
		e.metrics.Updates.Inc()
	}

	e.log.Info("annstore: metadata updated", "doc_id", id.String(), "slot", slot)

	return true, nil
}

// UpdateVector treats a vector change as soft-delete + re-insert under
// the same DocID. Per the spec's resolved open question, if the engine
// is already at capacity the update is rejected with ErrDBFull rather
// than triggering an implicit vacuum, since capacity is physical.
func (e *Engine) UpdateVector(id DocID, vec []float32) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkWritable(); err != nil {
		return false, err
	}
	if err := e.f.validateDimension(vec); err != nil {
		return false, err
	}

	oldSlot, ok := e.idx.lookup(id)
	if !ok {
		return false, nil
	}
	if e.f.h.currentCount >= e.f.h.maxCount {
		return false, ErrDBFull
	}

	meta := e.f.readMetadata(oldSlot)

	e.deleteSlotLocked(oldSlot, id)

	stored := prepareVector(e.metric, vec)
	newSlot := e.f.h.currentCount
	level := e.assignLevel()

	e.f.writeVector(newSlot, stored)
	if err := e.f.writeMetadata(newSlot, meta); err != nil {
		return false, err
	}
	e.f.writeDocID(newSlot, id)
	e.f.setTombstone(newSlot, false)
	e.f.initSlotNeighbors(newSlot)

	e.insertNode(newSlot, level, stored)

	e.f.h.currentCount++
	e.idx.insert(id, newSlot)

	if err := e.f.flushHeader(); err != nil {
		e.fault.Trip(err)
		e.log.Error("annstore: io fault while updating vector, engine entering no-further-writes state", "doc_id", id.String(), "err", err)
		return false, err
	}

	if e.metrics != nil {
		e.metrics.Updates.Inc()
	}

	e.log.Info("annstore: vector updated", "doc_id", id.String(), "old_slot", oldSlot, "new_slot", newSlot)

	return true, nil
}

// Update applies a vector change, a metadata change, or both to the
// document identified by id, keeping the same external DocID stable
// across the update.
func (e *Engine) Update(id DocID, vec []float32, meta []byte) (bool, error) {
	if vec != nil {
		ok, err := e.UpdateVector(id, vec)
		if !ok || err != nil {
			return ok, err
		}
	}
	if meta != nil {
		return e.UpdateMetadata(id, meta)
	}
	if vec == nil {
		if _, _, ok, err := e.GetByID(id); err != nil || !ok {
			return ok, err
		}
	}
	return true, nil
}

// deleteSlotLocked is the tombstone+repair sequence shared by Delete
// and UpdateVector's internal soft-delete step. Callers already hold
// the write lock.
func (e *Engine) deleteSlotLocked(slot int32, id DocID) {
	e.f.setTombstone(slot, true)
	e.deleted[slot] = struct{}{}
	e.idx.remove(id)

	// Edges are stored once per endpoint and connectBidirectional may
	// evict a back-edge, so slot's own list does not name every node
	// that points at it: every live slot is checked instead.
	for layer := int32(0); layer < e.f.h.maxLayers; layer++ {
		for n := int32(0); n < e.f.h.currentCount; n++ {
			if n == slot || e.isDeleted(n) {
				continue
			}
			for _, x := range liveSlots(e.f.readNeighbors(n, layer)) {
				if x == slot {
					e.removeFromNeighborList(n, layer, slot)
					break
				}
			}
		}
		e.f.clearNeighbors(slot, layer)
	}

	if e.f.h.entryPoint == slot {
		e.migrateEntryPoint()
	}

	e.f.h.deletedCount++
}

// SyncFrom imports non-duplicate, non-tombstoned documents from other
// into e, preserving their DocIDs, and returns the count imported.
func (e *Engine) SyncFrom(other *Engine) (int32, error) {
	other.mu.RLock()
	snapshot := make([]struct {
		id   DocID
		vec  []float32
		meta []byte
	}, 0, other.f.h.currentCount)
	for slot := int32(0); slot < other.f.h.currentCount; slot++ {
		if other.f.isTombstoned(slot) {
			continue
		}
		snapshot = append(snapshot, struct {
			id   DocID
			vec  []float32
			meta []byte
		}{
			id:   other.f.readDocID(slot),
			vec:  other.f.readVector(slot),
			meta: other.f.readMetadata(slot),
		})
	}
	other.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkWritable(); err != nil {
		return 0, err
	}

	var imported int32
	for _, doc := range snapshot {
		if _, ok := e.idx.lookup(doc.id); ok {
			continue
		}
		if e.f.h.currentCount >= e.f.h.maxCount {
			break
		}

		id := doc.id
		slot := e.f.h.currentCount
		level := e.assignLevel()
		stored := prepareVector(e.metric, doc.vec)

		e.f.writeVector(slot, stored)
		if err := e.f.writeMetadata(slot, doc.meta); err != nil {
			return imported, err
		}
		e.f.writeDocID(slot, id)
		e.f.setTombstone(slot, false)
		e.f.initSlotNeighbors(slot)

		e.insertNode(slot, level, stored)

		e.f.h.currentCount++
		e.idx.insert(id, slot)
		imported++
	}

	if imported > 0 {
		if err := e.f.flushHeader(); err != nil {
			e.fault.Trip(err)
			e.log.Error("annstore: io fault while syncing documents, engine entering no-further-writes state", "err", err)
			return imported, err
		}
	}

	e.log.Info("annstore: sync complete", "imported", imported)

	return imported, nil
}
