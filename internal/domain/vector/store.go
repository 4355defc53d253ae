package vector

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopmorph/morph/pkg/metrics"
)

// SearchResult is one scored entry from a store search.
type SearchResult struct {
	ID     int
	Score  float64
	Vector []float64
}

// Store is an in-memory vector index with cosine top-k search. Vectors are
// normalized at insert time; sized for small catalogs where a linear scan
// is acceptable.
type Store struct {
	mu      sync.RWMutex
	vectors map[int][]float64
	order   []int // insertion order, keeps tie-breaking stable
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		vectors: make(map[int][]float64),
	}
}

// Add inserts or replaces a vector under id.
func (s *Store) Add(id int, v []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.vectors[id]; !exists {
		s.order = append(s.order, id)
	}
	s.vectors[id] = Normalize(v)
}

// Get returns the normalized vector for id, or nil if absent.
func (s *Store) Get(id int) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vectors[id]
	if !ok {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// Remove deletes a vector from the store.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vectors[id]; !ok {
		return
	}
	delete(s.vectors, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored vectors.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// Search scores every stored vector against the query by cosine similarity
// and returns the top k sorted descending, ties broken by insertion order.
// The optional filter drops entries before scoring.
func (s *Store) Search(query []float64, k int, filter func(id int) bool) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics.RecordSimilaritySearch()

	q := Normalize(query)
	results := make([]SearchResult, 0, len(s.order))
	for _, id := range s.order {
		if filter != nil && !filter(id) {
			continue
		}
		v := s.vectors[id]
		score, err := CosineSimilarity(q, v)
		if err != nil {
			return nil, fmt.Errorf("store entry %d: %w", id, err)
		}
		results = append(results, SearchResult{ID: id, Score: score, Vector: v})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k >= 0 && k < len(results) {
		results = results[:k]
	}
	return results, nil
}
