package engine

import (
	"encoding/binary"
	"fmt"
	"math"
)

// backingFile combines the mmap'd region with the decoded header and
// cached section layout, and exposes the typed slot accessors every
// other file in this package builds on. It corresponds to the File &
// Layout Manager, generalized from the teacher's format.go (a packed
// header struct read once at open) onto a live mmap'd byte slice that
// is re-read and re-written in place for every mutation.
type backingFile struct {
	mm *mmapFile
	h  header
	l  layout
}

// neighborSentinel terminates a neighbour list; slots beyond it are ignored.
const neighborSentinel = int32(-1)

func createBackingFile(path string, dim, maxCount, m, l int32, metric int32) (*backingFile, error) {
	mL := 1.0 / math.Log(float64(m))
	h := header{
		maxLayers:        l,
		layerProbability: mL,
		magicNumber:      MagicNumber,
		version:          FormatVersion,
		vectorDimension:  dim,
		currentCount:     0,
		maxCount:         maxCount,
		maxNeighbors:     m,
		entryPoint:       neighborSentinel,
		entryPointLevel:  0,
		deletedCount:     0,
		distanceFunction: metric,
	}
	lay := h.layout()

	mm, err := openMmapFile(path, lay.totalSize, true)
	if err != nil {
		return nil, err
	}

	buf := mm.Data()
	writeHeader(buf, h)
	if err := mm.Sync(); err != nil {
		mm.Close()
		return nil, err
	}

	return &backingFile{mm: mm, h: h, l: lay}, nil
}

func openBackingFile(path string, dim int32) (*backingFile, error) {
	mm, err := openMmapFile(path, 0, false)
	if err != nil {
		return nil, err
	}

	buf := mm.Data()
	if len(buf) < HeaderSize {
		mm.Close()
		return nil, ErrFormatMismatch
	}
	h := readHeader(buf)
	if h.magicNumber != MagicNumber {
		mm.Close()
		return nil, ErrFormatMismatch
	}
	if h.vectorDimension != dim {
		mm.Close()
		return nil, ErrFormatMismatch
	}

	migrated := false
	if h.version < 2 {
		h.version = 2
		migrated = true
	}
	if h.version < 3 {
		h.version = 3
		migrated = true
	}

	lay := h.layout()
	if lay.totalSize != mm.Size() {
		mm.Close()
		return nil, ErrFormatMismatch
	}

	bf := &backingFile{mm: mm, h: h, l: lay}

	if migrated {
		if err := bf.migrateLegacySections(); err != nil {
			mm.Close()
			return nil, err
		}
		if err := bf.flushHeader(); err != nil {
			mm.Close()
			return nil, err
		}
	}

	return bf, nil
}

// migrateLegacySections fills in DocIDs/tombstones for files created
// under format version 1, per spec: fresh random DocIDs, tombstones
// default to 0. Version-2 files already have DocIDs and only need the
// all-zero tombstone section, which a freshly-grown file already has.
func (f *backingFile) migrateLegacySections() error {
	for slot := int32(0); slot < f.h.currentCount; slot++ {
		existing := f.readDocID(slot)
		if existing.IsNil() {
			f.writeDocID(slot, NewDocID())
		}
	}
	return nil
}

func (f *backingFile) close() error {
	return f.mm.Close()
}

func (f *backingFile) flushHeader() error {
	writeHeader(f.mm.Data(), f.h)
	return f.mm.Sync()
}

// --- vectors ---

func (f *backingFile) readVector(slot int32) []float32 {
	off := f.l.vectorOffset(slot)
	buf := f.mm.Data()[off : off+int64(f.h.vectorDimension)*4]
	out := make([]float32, f.h.vectorDimension)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}

func (f *backingFile) writeVector(slot int32, v []float32) {
	off := f.l.vectorOffset(slot)
	buf := f.mm.Data()[off : off+int64(f.h.vectorDimension)*4]
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(x))
	}
}

// --- metadata ---

func (f *backingFile) readMetadata(slot int32) []byte {
	off := f.l.metadataOffset(slot)
	buf := f.mm.Data()[off : off+MetadataSlotSize]
	end := len(buf)
	for end > 0 && buf[end-1] == 0 {
		end--
	}
	out := make([]byte, end)
	copy(out, buf[:end])
	return out
}

func (f *backingFile) writeMetadata(slot int32, meta []byte) error {
	if len(meta) > MetadataSlotSize {
		return ErrMetadataTooLarge
	}
	off := f.l.metadataOffset(slot)
	buf := f.mm.Data()[off : off+MetadataSlotSize]
	n := copy(buf, meta)
	for i := n; i < MetadataSlotSize; i++ {
		buf[i] = 0
	}
	return nil
}

// --- DocIDs ---

func (f *backingFile) readDocID(slot int32) DocID {
	off := f.l.docIDOffset(slot)
	var id DocID
	copy(id[:], f.mm.Data()[off:off+DocIDSlotSize])
	return id
}

func (f *backingFile) writeDocID(slot int32, id DocID) {
	off := f.l.docIDOffset(slot)
	copy(f.mm.Data()[off:off+DocIDSlotSize], id[:])
}

// --- tombstones ---

func (f *backingFile) isTombstoned(slot int32) bool {
	off := f.l.tombstoneOffset(slot)
	return f.mm.Data()[off] != 0
}

func (f *backingFile) setTombstone(slot int32, deleted bool) {
	off := f.l.tombstoneOffset(slot)
	if deleted {
		f.mm.Data()[off] = 1
	} else {
		f.mm.Data()[off] = 0
	}
}

// --- neighbour lists ---

func (f *backingFile) readNeighbors(slot, level int32) []int32 {
	off := f.l.neighborsOffset(slot, level)
	buf := f.mm.Data()[off : off+int64(f.h.maxNeighbors)*4]
	out := make([]int32, f.h.maxNeighbors)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}

func (f *backingFile) writeNeighbors(slot, level int32, neighbors []int32) {
	off := f.l.neighborsOffset(slot, level)
	buf := f.mm.Data()[off : off+int64(f.h.maxNeighbors)*4]
	for i := int32(0); i < f.h.maxNeighbors; i++ {
		v := neighborSentinel
		if int(i) < len(neighbors) {
			v = neighbors[i]
		}
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
}

func (f *backingFile) clearNeighbors(slot, level int32) {
	f.writeNeighbors(slot, level, nil)
}

func (f *backingFile) initSlotNeighbors(slot int32) {
	for level := int32(0); level < f.h.maxLayers; level++ {
		f.clearNeighbors(slot, level)
	}
}

func (f *backingFile) validateDimension(v []float32) error {
	if int32(len(v)) != f.h.vectorDimension {
		return fmt.Errorf("%w: got %d, want %d", ErrDimMismatch, len(v), f.h.vectorDimension)
	}
	return nil
}
