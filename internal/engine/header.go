package engine

import (
	"encoding/binary"
	"math"
)

// header is the decoded form of the 1024-byte header section. It is
// read from / flushed to the mmap'd region explicitly rather than kept
// as the single source of truth, so every mutation that matters for
// crash recovery goes through flushHeader in a known order.
type header struct {
	maxLayers        int32
	layerProbability float64
	magicNumber      int32
	version          int32
	vectorDimension  int32
	currentCount     int32
	maxCount         int32
	maxNeighbors     int32
	entryPoint       int32
	entryPointLevel  int32
	deletedCount     int32
	distanceFunction int32
}

func readHeader(buf []byte) header {
	var h header
	h.maxLayers = int32(binary.LittleEndian.Uint32(buf[offMaxLayers:]))
	h.layerProbability = math.Float64frombits(binary.LittleEndian.Uint64(buf[offLayerProbability:]))
	h.magicNumber = int32(binary.LittleEndian.Uint32(buf[offMagicNumber:]))
	h.version = int32(binary.LittleEndian.Uint32(buf[offVersion:]))
	h.vectorDimension = int32(binary.LittleEndian.Uint32(buf[offVectorDimension:]))
	h.currentCount = int32(binary.LittleEndian.Uint32(buf[offCurrentCount:]))
	h.maxCount = int32(binary.LittleEndian.Uint32(buf[offMaxCount:]))
	h.maxNeighbors = int32(binary.LittleEndian.Uint32(buf[offMaxNeighbors:]))
	h.entryPoint = int32(binary.LittleEndian.Uint32(buf[offEntryPoint:]))
	h.entryPointLevel = int32(binary.LittleEndian.Uint32(buf[offEntryPointLevel:]))
	h.deletedCount = int32(binary.LittleEndian.Uint32(buf[offDeletedCount:]))
	h.distanceFunction = int32(binary.LittleEndian.Uint32(buf[offDistanceFunction:]))
	return h
}

// writeHeader serializes h into buf's header section. buf must be at
// least HeaderSize bytes. Callers are responsible for calling Sync
// afterward if the write must be durable before returning.
func writeHeader(buf []byte, h header) {
	binary.LittleEndian.PutUint32(buf[offMaxLayers:], uint32(h.maxLayers))
	binary.LittleEndian.PutUint64(buf[offLayerProbability:], math.Float64bits(h.layerProbability))
	binary.LittleEndian.PutUint32(buf[offMagicNumber:], uint32(h.magicNumber))
	binary.LittleEndian.PutUint32(buf[offVersion:], uint32(h.version))
	binary.LittleEndian.PutUint32(buf[offVectorDimension:], uint32(h.vectorDimension))
	binary.LittleEndian.PutUint32(buf[offCurrentCount:], uint32(h.currentCount))
	binary.LittleEndian.PutUint32(buf[offMaxCount:], uint32(h.maxCount))
	binary.LittleEndian.PutUint32(buf[offMaxNeighbors:], uint32(h.maxNeighbors))
	binary.LittleEndian.PutUint32(buf[offEntryPoint:], uint32(h.entryPoint))
	binary.LittleEndian.PutUint32(buf[offEntryPointLevel:], uint32(h.entryPointLevel))
	binary.LittleEndian.PutUint32(buf[offDeletedCount:], uint32(h.deletedCount))
	binary.LittleEndian.PutUint32(buf[offDistanceFunction:], uint32(h.distanceFunction))
	for i := headerFieldsEnd; i < HeaderSize; i++ {
		buf[i] = 0
	}
}

func (h header) layout() layout {
	return computeLayout(h.vectorDimension, h.maxCount, h.maxLayers, h.maxNeighbors)
}
