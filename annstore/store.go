package annstore

import (
	"fmt"

	"github.com/xDarkicex/annstore/internal/engine"
	"github.com/xDarkicex/annstore/internal/obs"
)

// Store is the public handle to one engine file, reduced from the
// teacher's multi-collection Database/Collection split in
// libravdb/database.go and libravdb/collection.go down to a single
// engine, since this store's scope is one backing file per process.
type Store struct {
	e *engine.Engine
}

// Open opens or creates a store at the configured path.
func Open(opts ...Option) (*Store, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.path == "" || cfg.dim == 0 {
		return nil, fmt.Errorf("%w: path and dimension are required", ErrInvalidConfig)
	}

	e, err := engine.Open(cfg.toEngineConfig())
	if err != nil {
		return nil, err
	}
	return &Store{e: e}, nil
}

// Close releases the backing file.
func (s *Store) Close() error { return s.e.Close() }

// Add inserts a document, returning its DocID. Pass a non-nil id to
// request a specific external identifier; repeating the same id is
// idempotent and returns the existing DocID.
func (s *Store) Add(vec []float32, meta []byte, id *DocID) (DocID, error) {
	return s.e.Add(vec, meta, id)
}

// Search returns up to topK results ordered by score descending.
// efSearch of 0 defaults to topK.
func (s *Store) Search(query []float32, topK int, efSearch int, pred Predicate) ([]Result, error) {
	return s.e.Search(query, topK, int32(efSearch), pred)
}

// ScanSearch performs an exhaustive brute-force search, for recall
// verification or exact-answer callers.
func (s *Store) ScanSearch(query []float32, topK int) ([]Result, error) {
	return s.e.ScanSearch(query, topK)
}

// GetByID returns the stored vector and metadata for a DocID.
func (s *Store) GetByID(id DocID) (vec []float32, meta []byte, ok bool, err error) {
	return s.e.GetByID(id)
}

// UpdateMetadata rewrites a document's metadata in place.
func (s *Store) UpdateMetadata(id DocID, meta []byte) (bool, error) {
	return s.e.UpdateMetadata(id, meta)
}

// UpdateVector replaces a document's vector, keeping its DocID stable.
func (s *Store) UpdateVector(id DocID, vec []float32) (bool, error) {
	return s.e.UpdateVector(id, vec)
}

// Update applies a vector and/or metadata change to an existing document.
func (s *Store) Update(id DocID, vec []float32, meta []byte) (bool, error) {
	return s.e.Update(id, vec, meta)
}

// Delete soft-deletes a document. Returns false for an unknown DocID.
func (s *Store) Delete(id DocID) (bool, error) {
	return s.e.Delete(id)
}

// Count returns the current document count, including not-yet-vacuumed tombstones.
func (s *Store) Count() int { return int(s.e.Count()) }

// DeletedCount returns the number of tombstoned slots.
func (s *Store) DeletedCount() int { return int(s.e.DeletedCount()) }

// EntryPoint returns the current HNSW entry-point slot.
func (s *Store) EntryPoint() int32 { return s.e.EntryPoint() }

// IsHealthy reports whether the store is still accepting writes.
func (s *Store) IsHealthy() bool { return s.e.IsHealthy() }

// Stats returns a snapshot of the store's counters and parameters.
func (s *Store) Stats() Stats { return s.e.Stats() }

// Vacuum rebuilds the backing file, reclaiming tombstoned slots.
func (s *Store) Vacuum() error { return s.e.Vacuum() }

// SyncFrom imports non-duplicate, non-tombstoned documents from
// another store, preserving their DocIDs, and returns the count imported.
func (s *Store) SyncFrom(other *Store) (int, error) {
	n, err := s.e.SyncFrom(other.e)
	return int(n), err
}

// HealthChecker builds an obs.HealthChecker bound to this store.
func (s *Store) HealthChecker() *obs.HealthChecker {
	return obs.NewHealthChecker(s.e)
}
