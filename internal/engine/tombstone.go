package engine

// Delete soft-deletes the document with the given DocID, per
// spec.md §4.4 steps 1-7. Returns false if the DocID is unknown; it
// never fails for that reason. Grounded on the teacher's delete.go
// removeAllConnections/handleEntryPointReplacement shape, reworked from
// "delete permanently and compact the node slice" to "tombstone in
// place and repair references", since slots are never reused outside
// of vacuum.
func (e *Engine) Delete(id DocID) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkWritable(); err != nil {
		return false, err
	}

	slot, ok := e.idx.lookup(id)
	if !ok {
		return false, nil
	}

	e.deleteSlotLocked(slot, id)

	if err := e.f.flushHeader(); err != nil {
		e.fault.Trip(err)
		e.log.Error("annstore: io fault while deleting document, engine entering no-further-writes state", "doc_id", id.String(), "err", err)
		return false, err
	}

	if e.metrics != nil {
		e.metrics.Deletes.Inc()
	}

	e.log.Info("annstore: document deleted", "doc_id", id.String(), "slot", slot)

	return true, nil
}

// migrateEntryPoint selects the first non-tombstoned slot in [0, N) as
// the new entry point, recorded at level 0. Per spec.md §4.4 step 6 /
// §9, this trades short-term recall for a choice that is always
// correct; a later insert at a higher layer will naturally take over.
func (e *Engine) migrateEntryPoint() {
	for slot := int32(0); slot < e.f.h.currentCount; slot++ {
		if e.isDeleted(slot) {
			continue
		}
		e.f.h.entryPoint = slot
		e.f.h.entryPointLevel = 0
		return
	}
	e.f.h.entryPoint = neighborSentinel
	e.f.h.entryPointLevel = 0
}
