package vector

import (
	"fmt"
	"math"
	"sort"
)

// CosineSimilarity returns the cosine of the angle between a and b in
// [-1, 1]. Returns ErrDimensionMismatch for unequal lengths and 0 for a
// zero-magnitude operand.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("cosine: %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	mag := math.Sqrt(magA) * math.Sqrt(magB)
	if mag == 0 {
		return 0, nil
	}
	return dot / mag, nil
}

// EuclideanDistance returns the L2 distance between a and b. Lower is more
// similar. Returns ErrDimensionMismatch for unequal lengths.
func EuclideanDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("distance: %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Result is one scored candidate from a similarity search.
type Result struct {
	Index int
	Score float64
}

// FindSimilar scores every candidate against the query by cosine similarity
// and returns the top k sorted descending. The query and each candidate are
// normalized independently. Ties preserve original candidate order.
func FindSimilar(query []float64, candidates [][]float64, k int) ([]Result, error) {
	q := Normalize(query)
	results := make([]Result, 0, len(candidates))
	for i, c := range candidates {
		score, err := CosineSimilarity(q, Normalize(c))
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		results = append(results, Result{Index: i, Score: score})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k >= 0 && k < len(results) {
		results = results[:k]
	}
	return results, nil
}
