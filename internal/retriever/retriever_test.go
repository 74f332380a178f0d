package retriever

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"vendorrag/internal/domain"
	"vendorrag/internal/vectorstore/memory"
)

// fakeEmbedder returns fixed vectors keyed by exact text.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return v, nil
}

func buildIndex(t *testing.T, emb domain.Embedder, texts ...string) *memory.Store {
	t.Helper()
	units := make([]domain.Unit, len(texts))
	for i, tx := range texts {
		units[i] = domain.Unit{RawText: tx, SequenceIndex: i + 1}
	}
	store := memory.New()
	if err := store.Rebuild(context.Background(), units, emb); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	return store
}

func TestSearch_CardinalityBound(t *testing.T) {
	emb := fakeEmbedder{vectors: map[string][]float32{
		"query": {1, 0, 0},
		"a":     {1, 0, 0},
		"b":     {0.9, 0.436, 0},
		"c":     {0, 1, 0},
	}}
	store := buildIndex(t, emb, "a", "b", "c")
	r := New(emb, store)

	for _, k := range []int{1, 2, 3, 5, 10} {
		units, err := r.Search(context.Background(), "query", k, false)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		want := k
		if want > 3 {
			want = 3
		}
		if len(units) != want {
			t.Errorf("k=%d: got %d units, want %d", k, len(units), want)
		}
	}
}

func TestSearch_NearestFirst(t *testing.T) {
	emb := fakeEmbedder{vectors: map[string][]float32{
		"query": {1, 0, 0},
		"a":     {1, 0, 0},
		"b":     {0.9, 0.436, 0},
		"c":     {0, 1, 0},
	}}
	store := buildIndex(t, emb, "c", "a", "b")
	r := New(emb, store)

	units, err := r.Search(context.Background(), "query", 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(units) != 2 || units[0].RawText != "a" || units[1].RawText != "b" {
		t.Errorf("got %v, want [a b]", units)
	}
}

func TestSearch_InvalidK(t *testing.T) {
	r := New(fakeEmbedder{}, memory.New())
	if _, err := r.Search(context.Background(), "query", 0, false); err == nil {
		t.Fatal("expected error for k=0")
	}
}

func TestSearch_EmbedFailureIsRetrievalError(t *testing.T) {
	r := New(fakeEmbedder{}, memory.New())
	_, err := r.Search(context.Background(), "query", 1, false)
	var retErr *domain.RetrievalError
	if !errors.As(err, &retErr) {
		t.Fatalf("expected *domain.RetrievalError, got %v", err)
	}
}

func TestSearch_MMRDegeneratesAtKOne(t *testing.T) {
	emb := fakeEmbedder{vectors: map[string][]float32{
		"query": {1, 0, 0},
		"a":     {1, 0, 0},
		"b":     {0.9, 0.436, 0},
		"c":     {0, 1, 0},
	}}
	store := buildIndex(t, emb, "a", "b", "c")
	r := New(emb, store)

	plain, err := r.Search(context.Background(), "query", 1, false)
	if err != nil {
		t.Fatal(err)
	}
	diverse, err := r.Search(context.Background(), "query", 1, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(plain) != 1 || len(diverse) != 1 || plain[0] != diverse[0] {
		t.Errorf("k=1: plain %v and MMR %v must agree", plain, diverse)
	}
}

// With a near-duplicate of the top hit in the pool, MMR prefers the
// moderately relevant but distinct candidate; plain search does not.
func TestSearch_MMRPrefersDiversity(t *testing.T) {
	emb := fakeEmbedder{vectors: map[string][]float32{
		"query": {1, 0, 0},
		"a":     {0.9, 0.436, 0},
		"adup":  {0.9, 0.436, 0},
		"c":     {0.85, -0.378, 0.367},
	}}
	store := buildIndex(t, emb, "a", "adup", "c")
	r := New(emb, store)

	plain, err := r.Search(context.Background(), "query", 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if plain[0].RawText != "a" || plain[1].RawText != "adup" {
		t.Fatalf("plain search: got %v, want [a adup]", plain)
	}

	diverse, err := r.Search(context.Background(), "query", 2, true)
	if err != nil {
		t.Fatal(err)
	}
	if diverse[0].RawText != "a" || diverse[1].RawText != "c" {
		t.Errorf("MMR: got %v, want [a c]", diverse)
	}
}

func TestMaximalMarginalRelevance_TieBreaksEarlier(t *testing.T) {
	pool := []domain.Candidate{
		{Unit: domain.Unit{RawText: "first"}, Embedding: []float32{1, 0}, Similarity: 0.9},
		{Unit: domain.Unit{RawText: "second"}, Embedding: []float32{1, 0}, Similarity: 0.9},
	}
	got := maximalMarginalRelevance(pool, 1)
	if len(got) != 1 || got[0].RawText != "first" {
		t.Errorf("tie must go to the earlier pool candidate, got %v", got)
	}
}
