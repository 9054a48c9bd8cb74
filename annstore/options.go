package annstore

import (
	"fmt"
	"log/slog"

	"github.com/xDarkicex/annstore/internal/engine"
	"github.com/xDarkicex/annstore/internal/obs"
)

// config mirrors engine.Config with zero-value-friendly defaults that
// Option funcs fill in, following the teacher's Option func(*Config)
// error shape in libravdb/options.go.
type config struct {
	path     string
	dim      int32
	maxCount int32
	m        int32
	l        int32
	metric   DistanceMetric
	metrics  *obs.Metrics
	logger   *slog.Logger
}

// Option configures a store at Open time.
type Option func(*config) error

func defaultConfig() config {
	return config{
		maxCount: 100_000,
		m:        16,
		l:        5,
		metric:   Dot,
	}
}

// WithPath sets the backing file path. Required.
func WithPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return fmt.Errorf("annstore: storage path cannot be empty")
		}
		c.path = path
		return nil
	}
}

// WithDimension sets the vector dimension. Required.
func WithDimension(dim int) Option {
	return func(c *config) error {
		if dim <= 0 {
			return fmt.Errorf("annstore: dimension must be positive")
		}
		c.dim = int32(dim)
		return nil
	}
}

// WithMaxCount sets the maximum number of documents the backing file
// can hold before a vacuum is required.
func WithMaxCount(max int) Option {
	return func(c *config) error {
		if max <= 0 {
			return fmt.Errorf("annstore: max count must be positive")
		}
		c.maxCount = int32(max)
		return nil
	}
}

// WithHNSWParams sets the neighbour cap per layer (M) and the maximum
// layer count (L).
func WithHNSWParams(m, l int) Option {
	return func(c *config) error {
		if m <= 0 || l <= 0 {
			return fmt.Errorf("annstore: HNSW parameters must be positive")
		}
		c.m = int32(m)
		c.l = int32(l)
		return nil
	}
}

// WithMetric sets the similarity metric.
func WithMetric(metric DistanceMetric) Option {
	return func(c *config) error {
		c.metric = metric
		return nil
	}
}

// WithMetrics supplies a pre-built metrics collector, letting a caller
// share one Prometheus registry across collaborators instead of the
// fresh per-store registry Open would otherwise create.
func WithMetrics(m *obs.Metrics) Option {
	return func(c *config) error {
		c.metrics = m
		return nil
	}
}

// WithLogger supplies a structured logger for the store's mutating
// operations. Open defaults to slog.Default() when none is given.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

func (c config) toEngineConfig() engine.Config {
	return engine.Config{
		Path:     c.path,
		Dim:      c.dim,
		MaxCount: c.maxCount,
		M:        c.m,
		L:        c.l,
		Metric:   int32(c.metric),
		Metrics:  c.metrics,
		Logger:   c.logger,
	}
}
