package engine

// docIndex is the in-memory DocID -> slot map, generalized from the
// teacher's idToIndex map[string]uint32 in hnsw.go onto a fixed
// [16]byte key and rebuilt from the mmap'd DocID/tombstone sections on
// every open rather than carried across the process lifetime alone.
type docIndex struct {
	bySlot map[DocID]int32
}

func newDocIndex() *docIndex {
	return &docIndex{bySlot: make(map[DocID]int32)}
}

// rebuild scans tombstones [0, N) and inserts the DocID of every
// non-tombstoned slot. A DocID seen twice means two live slots carry
// the same external identifier, which can only happen if a prior
// writer violated the dedup contract; that is reported as ErrCorruptIndex
// rather than silently keeping the last writer's slot.
func (d *docIndex) rebuild(f *backingFile) error {
	d.bySlot = make(map[DocID]int32, f.h.currentCount)
	for slot := int32(0); slot < f.h.currentCount; slot++ {
		if f.isTombstoned(slot) {
			continue
		}
		id := f.readDocID(slot)
		if _, exists := d.bySlot[id]; exists {
			return ErrCorruptIndex
		}
		d.bySlot[id] = slot
	}
	return nil
}

func (d *docIndex) lookup(id DocID) (int32, bool) {
	slot, ok := d.bySlot[id]
	return slot, ok
}

func (d *docIndex) insert(id DocID, slot int32) {
	d.bySlot[id] = slot
}

func (d *docIndex) remove(id DocID) {
	delete(d.bySlot, id)
}

func (d *docIndex) len() int {
	return len(d.bySlot)
}
