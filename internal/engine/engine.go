package engine

import (
	"log/slog"
	"math"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/xDarkicex/annstore/internal/obs"
)

// Config carries the parameters needed to open or create a backing file.
type Config struct {
	Path     string
	Dim      int32
	MaxCount int32
	M        int32 // neighbour cap per layer
	L        int32 // max layer count
	Metric   int32 // MetricDot or MetricCosine
	Metrics  *obs.Metrics
	Logger   *slog.Logger
}

// Engine is the storage engine: File & Layout Manager, Identifier
// Index, HNSW Engine and Tombstone & Repair composed behind one
// sync.RWMutex, mirroring how the teacher keeps its hnsw.Index as one
// struct straddling persistence, search and delete rather than
// splitting each subsystem into its own lock domain.
type Engine struct {
	mu sync.RWMutex

	f       *backingFile
	idx     *docIndex
	deleted map[int32]struct{}

	metric int32
	rng    *rand.Rand

	metrics *obs.Metrics
	fault   obs.FaultLatch
	log     *slog.Logger

	closed bool
}

// Open opens an existing backing file or creates a new one if it does
// not exist, validating magic and dimension for an existing file.
func Open(cfg Config) (*Engine, error) {
	if cfg.Dim <= 0 || cfg.MaxCount <= 0 || cfg.M <= 0 || cfg.L <= 0 {
		return nil, ErrInvalidConfig
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = obs.NewMetrics()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var f *backingFile
	var err error
	created := false
	if _, statErr := os.Stat(cfg.Path); statErr == nil {
		f, err = openBackingFile(cfg.Path, cfg.Dim)
	} else {
		f, err = createBackingFile(cfg.Path, cfg.Dim, cfg.MaxCount, cfg.M, cfg.L, cfg.Metric)
		created = true
	}
	if err != nil {
		logger.Error("annstore: open failed", "path", cfg.Path, "err", err)
		return nil, err
	}

	e := &Engine{
		f:       f,
		idx:     newDocIndex(),
		deleted: make(map[int32]struct{}),
		metric:  f.h.distanceFunction,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		metrics: metrics,
		log:     logger,
	}

	if err := e.idx.rebuild(f); err != nil {
		logger.Error("annstore: identifier index rebuild failed", "path", cfg.Path, "err", err)
		f.close()
		return nil, err
	}
	e.rebuildDeletedSet()

	if created {
		logger.Info("annstore: backing file created", "path", cfg.Path, "dim", cfg.Dim, "max_count", cfg.MaxCount)
	} else {
		logger.Info("annstore: backing file opened", "path", cfg.Path, "count", f.h.currentCount, "deleted_count", f.h.deletedCount)
	}

	return e, nil
}

// rebuildDeletedSet scans the tombstone section [0, N) and populates
// the in-memory deleted-slot set, the mirror half of docIndex.rebuild.
func (e *Engine) rebuildDeletedSet() {
	for slot := int32(0); slot < e.f.h.currentCount; slot++ {
		if e.f.isTombstoned(slot) {
			e.deleted[slot] = struct{}{}
		}
	}
}

// Close flushes and releases the backing file. It does not itself
// acquire the shared metrics registry's lock; callers must not use the
// Engine afterward.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	err := e.f.close()
	if err != nil {
		e.log.Error("annstore: close failed", "err", err)
	} else {
		e.log.Info("annstore: engine closed")
	}
	return err
}

func (e *Engine) checkWritable() error {
	if e.closed {
		return ErrClosed
	}
	if e.fault.Tripped() {
		return e.fault.Reason()
	}
	return nil
}

func (e *Engine) checkReadable() error {
	if e.closed {
		return ErrClosed
	}
	return nil
}

// mLProbability returns the layer probability recorded in the header.
func (e *Engine) mLProbability() float64 {
	return e.f.h.layerProbability
}

// assignLevel samples a random level per spec.md §4.3:
// level = min(floor(-ln(u) * mL), L-1), u sampled from (0, 1].
func (e *Engine) assignLevel() int32 {
	u := 1 - e.rng.Float64()
	lvl := int32(-math.Log(u) * e.mLProbability())
	max := e.f.h.maxLayers - 1
	if lvl > max {
		lvl = max
	}
	if lvl < 0 {
		lvl = 0
	}
	return lvl
}
