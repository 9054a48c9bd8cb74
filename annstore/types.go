// Package annstore is an embedded, single-file, in-process approximate
// nearest-neighbor vector store addressed by stable 128-bit document
// identifiers.
package annstore

import "github.com/xDarkicex/annstore/internal/engine"

// DocID is the 128-bit opaque external identifier of a document.
type DocID = engine.DocID

// NewDocID generates a random DocID.
func NewDocID() DocID { return engine.NewDocID() }

// ParseDocID parses a hex-encoded DocID produced by DocID.String.
func ParseDocID(s string) (DocID, error) { return engine.ParseDocID(s) }

// DistanceMetric selects the similarity function used for scoring.
type DistanceMetric int32

const (
	// Dot scores by raw dot product.
	Dot DistanceMetric = DistanceMetric(engine.MetricDot)
	// Cosine normalizes vectors on ingress and query, then scores by dot product.
	Cosine DistanceMetric = DistanceMetric(engine.MetricCosine)
)

// Predicate filters a candidate by its raw metadata bytes.
type Predicate = engine.Predicate

// Result is one ranked search hit.
type Result = engine.SearchResult

// Stats is a point-in-time snapshot of engine counters.
type Stats = engine.Stats
