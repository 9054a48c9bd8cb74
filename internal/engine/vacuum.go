package engine

import (
	"os"

	"github.com/natefinch/atomic"
)

// Vacuum performs the offline rebuild described in spec.md §4.4: a
// fresh backing file is built with the same parameters, live slots are
// re-added in slot order under their original DocIDs, and on success the new file
// atomically replaces the old one. On any failure the original file is
// left untouched. Grounded on calvinalkan-agent-task's use of
// natefinch/atomic for crash-safe whole-file replacement.
func (e *Engine) Vacuum() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkWritable(); err != nil {
		return err
	}

	e.log.Info("annstore: vacuum starting", "count", e.f.h.currentCount, "deleted_count", e.f.h.deletedCount)

	tmpPath := e.f.mm.path + ".vacuum.tmp"
	os.Remove(tmpPath)

	fresh, err := createBackingFile(tmpPath, e.f.h.vectorDimension, e.f.h.maxCount, e.f.h.maxNeighbors, e.f.h.maxLayers, e.metric)
	if err != nil {
		e.log.Error("annstore: vacuum failed to create fresh file", "err", err)
		return err
	}

	freshEngine := &Engine{
		f:       fresh,
		idx:     newDocIndex(),
		deleted: make(map[int32]struct{}),
		metric:  e.metric,
		rng:     e.rng,
		metrics: nil,
	}

	for slot := int32(0); slot < e.f.h.currentCount; slot++ {
		if e.f.isTombstoned(slot) {
			continue
		}
		id := e.f.readDocID(slot)
		vec := e.f.readVector(slot)
		meta := e.f.readMetadata(slot)

		newSlot := fresh.h.currentCount
		level := freshEngine.assignLevel()

		fresh.writeVector(newSlot, vec)
		if err := fresh.writeMetadata(newSlot, meta); err != nil {
			fresh.close()
			os.Remove(tmpPath)
			return err
		}
		fresh.writeDocID(newSlot, id)
		fresh.setTombstone(newSlot, false)
		fresh.initSlotNeighbors(newSlot)

		freshEngine.insertNode(newSlot, level, vec)

		fresh.h.currentCount++
		freshEngine.idx.insert(id, newSlot)
	}

	if err := fresh.flushHeader(); err != nil {
		fresh.close()
		os.Remove(tmpPath)
		return err
	}
	if err := fresh.close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := atomic.ReplaceFile(tmpPath, e.f.mm.path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	reopened, err := openBackingFile(e.f.mm.path, e.f.h.vectorDimension)
	if err != nil {
		e.fault.Trip(err)
		e.log.Error("annstore: vacuum could not reopen rebuilt file, engine entering no-further-writes state", "err", err)
		return err
	}

	if err := e.f.close(); err != nil {
		reopened.close()
		return err
	}

	e.f = reopened
	e.idx = newDocIndex()
	if err := e.idx.rebuild(e.f); err != nil {
		return err
	}
	e.deleted = make(map[int32]struct{})
	e.rebuildDeletedSet()

	if e.metrics != nil {
		e.metrics.VacuumRuns.Inc()
	}

	e.log.Info("annstore: vacuum complete", "live_count", e.f.h.currentCount)

	return nil
}
