package engine

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// score computes the similarity of q against v under metric, always in
// "higher is better" orientation, per spec. Grounded on
// ihavespoons-zrok/internal/vectordb/hnsw.go's use of vek32.Dot as the
// SIMD kernel for both raw dot product and cosine (there, cosine is
// computed by normalizing the dot product by the two norms; here,
// vectors are pre-normalized on ingress and query so cosine reduces to
// a plain dot product at scoring time, matching the teacher's
// InnerProduct_func kernel shape but without its "lower is better"
// negation).
func score(metric int32, q, v []float32) float32 {
	return vek32.Dot(q, v)
}

// normalize L2-normalizes v in place and returns it, used for cosine
// ingestion and queries. A zero vector is left unchanged; its score
// against anything is 0 either way.
func normalize(v []float32) []float32 {
	norm := vek32.Dot(v, v)
	if norm <= 0 {
		return v
	}
	inv := float32(1.0 / math.Sqrt(float64(norm)))
	for i := range v {
		v[i] *= inv
	}
	return v
}

// prepareVector returns the vector to actually store/query with for the
// given metric. For cosine it normalizes a copy, leaving the caller's
// slice untouched.
func prepareVector(metric int32, v []float32) []float32 {
	if metric == MetricCosine {
		cp := make([]float32, len(v))
		copy(cp, v)
		return normalize(cp)
	}
	return v
}
