// Package memory is a brute-force in-memory implementation of
// domain.Index. It backs tests and offline experiments; the persistent
// chromem store is used everywhere else.
package memory

import (
	"context"
	"sort"
	"sync"

	"vendorrag/internal/domain"
)

// Store holds units and vectors in memory, scored by cosine similarity.
type Store struct {
	mu      sync.RWMutex
	units   []domain.Unit
	vectors [][]float32
}

func New() *Store { return &Store{} }

// Rebuild replaces all stored units. On an embedding failure the previous
// contents are kept.
func (s *Store) Rebuild(ctx context.Context, units []domain.Unit, embed domain.Embedder) error {
	vectors := make([][]float32, 0, len(units))
	kept := make([]domain.Unit, 0, len(units))
	for _, u := range units {
		vec, err := embed.Embed(ctx, u.RawText)
		if err != nil {
			return err
		}
		vectors = append(vectors, vec)
		kept = append(kept, u)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units = kept
	s.vectors = vectors
	return nil
}

// Query returns up to k units nearest to vector, closest first.
func (s *Store) Query(_ context.Context, vector []float32, k int) ([]domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidates := make([]domain.Candidate, len(s.units))
	for i := range s.units {
		candidates[i] = domain.Candidate{
			Unit:       s.units[i],
			Embedding:  s.vectors[i],
			Similarity: Cosine(vector, s.vectors[i]),
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})
	if k > len(candidates) {
		k = len(candidates)
	}
	if k < 0 {
		k = 0
	}
	return candidates[:k], nil
}

// Count reports the number of stored units.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.units)
}

// Cosine computes the cosine similarity of two vectors, 0 when either has
// zero norm or the lengths differ.
func Cosine(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (sqrt32(normA) * sqrt32(normB))
}

func sqrt32(x float32) float32 {
	if x <= 0 {
		return 0
	}
	z := x
	for i := 0; i < 8; i++ {
		z = 0.5 * (z + x/z)
	}
	return z
}
