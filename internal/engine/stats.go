package engine

// Stats is a point-in-time snapshot of engine state, returned by Stats().
type Stats struct {
	Count           int32
	DeletedCount    int32
	MaxCount        int32
	EntryPoint      int32
	EntryPointLevel int32
	Dimension       int32
	Metric          int32
}

// Count returns the current document count, including tombstoned
// slots not yet reclaimed by vacuum.
func (e *Engine) Count() int32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.f.h.currentCount
}

// DeletedCount returns the number of tombstoned slots.
func (e *Engine) DeletedCount() int32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.f.h.deletedCount
}

// EntryPoint returns the slot currently used as the graph's search
// entry point, or the sentinel -1 if the engine holds no live documents.
func (e *Engine) EntryPoint() int32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.f.h.entryPoint
}

// IsHealthy reports whether the engine is still accepting writes. It
// becomes false forever once an IO fault trips the fault latch.
func (e *Engine) IsHealthy() bool {
	return !e.fault.Tripped()
}

// Stats returns a snapshot of the engine's counters and parameters.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Count:           e.f.h.currentCount,
		DeletedCount:    e.f.h.deletedCount,
		MaxCount:        e.f.h.maxCount,
		EntryPoint:      e.f.h.entryPoint,
		EntryPointLevel: e.f.h.entryPointLevel,
		Dimension:       e.f.h.vectorDimension,
		Metric:          e.metric,
	}
}
