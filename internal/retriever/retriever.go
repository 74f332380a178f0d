// Package retriever turns a free-text query into an ordered list of
// vendor units, via plain similarity search or diversity-aware MMR.
package retriever

import (
	"context"
	"fmt"
	"math"

	"vendorrag/internal/domain"
)

const (
	// lambdaMult weighs relevance against diversity in MMR scoring.
	lambdaMult = 0.7
	// fetchFactor sizes the MMR candidate pool relative to k.
	fetchFactor = 2
)

// Retriever wraps the vector index with query embedding and re-ranking.
type Retriever struct {
	embedder domain.Embedder
	index    domain.Index
}

func New(embedder domain.Embedder, index domain.Index) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

// Search returns at most k units for the query. With useMMR, a pool of
// 2k candidates is fetched by similarity and greedily re-ranked to
// balance relevance against redundancy; otherwise the k nearest units
// are returned as-is.
func (r *Retriever) Search(ctx context.Context, query string, k int, useMMR bool) ([]domain.Unit, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", k)
	}
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &domain.RetrievalError{Err: err}
	}
	fetch := k
	if useMMR {
		fetch = fetchFactor * k
	}
	pool, err := r.index.Query(ctx, vector, fetch)
	if err != nil {
		return nil, &domain.RetrievalError{Err: err}
	}
	if !useMMR {
		return unitsOf(pool), nil
	}
	return maximalMarginalRelevance(pool, k), nil
}

// maximalMarginalRelevance greedily picks up to k candidates from the
// similarity-ranked pool, scoring each unselected candidate as
// lambda*relevance - (1-lambda)*redundancy, where redundancy is the
// highest similarity to any already-selected candidate. Ties go to the
// candidate ranked earlier in the pool.
func maximalMarginalRelevance(pool []domain.Candidate, k int) []domain.Unit {
	selected := make([]int, 0, k)
	taken := make([]bool, len(pool))
	for len(selected) < k && len(selected) < len(pool) {
		best := -1
		bestScore := math.Inf(-1)
		for i, c := range pool {
			if taken[i] {
				continue
			}
			redundancy := 0.0
			for n, j := range selected {
				sim := cosine(c.Embedding, pool[j].Embedding)
				if n == 0 || sim > redundancy {
					redundancy = sim
				}
			}
			score := lambdaMult*float64(c.Similarity) - (1-lambdaMult)*redundancy
			if score > bestScore {
				bestScore = score
				best = i
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		selected = append(selected, best)
	}
	units := make([]domain.Unit, len(selected))
	for i, j := range selected {
		units[i] = pool[j].Unit
	}
	return units
}

func unitsOf(candidates []domain.Candidate) []domain.Unit {
	units := make([]domain.Unit, len(candidates))
	for i, c := range candidates {
		units[i] = c.Unit
	}
	return units
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
