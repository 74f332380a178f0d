// Package chromem persists the vendor index in a chromem-go database
// under a directory path. Ingestion rebuilds it destructively; queries
// open it read-only.
package chromem

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/philippgille/chromem-go"

	"vendorrag/internal/domain"
)

const collectionName = "vendors"

// Store implements domain.Index backed by a persistent chromem database.
type Store struct {
	path       string
	opened     bool
	collection *chromem.Collection
}

// New returns a store for the given index directory. The directory is not
// touched until Open or Rebuild is called.
func New(path string) *Store {
	return &Store{path: path}
}

// Open loads an existing index directory. A missing directory is
// domain.ErrIndexMissing; a directory that was created but never
// populated opens fine and reports Count() == 0.
func (s *Store) Open() error {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrIndexMissing, s.path)
		}
		return fmt.Errorf("stat index %s: %w", s.path, err)
	}
	db, err := chromem.NewPersistentDB(s.path, false)
	if err != nil {
		return fmt.Errorf("open index %s: %w", s.path, err)
	}
	s.collection = db.GetCollection(collectionName, nil)
	s.opened = true
	return nil
}

// Count reports the number of stored units. It is 0, not an error, for an
// unopened or unpopulated index.
func (s *Store) Count() int {
	if s.collection == nil {
		return 0
	}
	return s.collection.Count()
}

// Rebuild builds a fresh index from units into a scratch directory and
// swaps it into place, so a failure leaves the target either absent or in
// its prior state. The store is opened on the new index on success.
func (s *Store) Rebuild(ctx context.Context, units []domain.Unit, embed domain.Embedder) error {
	scratch := s.path + ".rebuild"
	if err := os.RemoveAll(scratch); err != nil {
		return fmt.Errorf("clear scratch dir: %w", err)
	}
	if err := s.populate(ctx, scratch, units, embed); err != nil {
		_ = os.RemoveAll(scratch)
		return err
	}
	if err := os.RemoveAll(s.path); err != nil {
		_ = os.RemoveAll(scratch)
		return fmt.Errorf("remove old index: %w", err)
	}
	if err := os.Rename(scratch, s.path); err != nil {
		return fmt.Errorf("move new index into place: %w", err)
	}
	return s.Open()
}

func (s *Store) populate(ctx context.Context, dir string, units []domain.Unit, embed domain.Embedder) error {
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	collection, err := db.GetOrCreateCollection(collectionName, map[string]string{"hnsw:space": "cosine"}, nil)
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	ids := make([]string, 0, len(units))
	vectors := make([][]float32, 0, len(units))
	metadatas := make([]map[string]string, 0, len(units))
	contents := make([]string, 0, len(units))
	for _, u := range units {
		vec, err := embed.Embed(ctx, u.RawText)
		if err != nil {
			return fmt.Errorf("embed unit %d: %w", u.SequenceIndex, err)
		}
		ids = append(ids, strconv.Itoa(u.SequenceIndex))
		vectors = append(vectors, vec)
		metadatas = append(metadatas, map[string]string{"sequence_index": strconv.Itoa(u.SequenceIndex)})
		contents = append(contents, u.RawText)
	}
	if err := collection.Add(ctx, ids, vectors, metadatas, contents); err != nil {
		return fmt.Errorf("store units: %w", err)
	}
	return nil
}

// Query returns up to k units nearest to vector, closest first.
func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]domain.Candidate, error) {
	if !s.opened {
		return nil, domain.ErrIndexNotReady
	}
	if s.collection == nil {
		// Opened directory without a collection: empty index.
		return nil, nil
	}
	if n := s.collection.Count(); k > n {
		k = n
	}
	if k <= 0 {
		return nil, nil
	}
	results, err := s.collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	candidates := make([]domain.Candidate, 0, len(results))
	for _, r := range results {
		seq, _ := strconv.Atoi(r.Metadata["sequence_index"])
		candidates = append(candidates, domain.Candidate{
			Unit:       domain.Unit{RawText: r.Content, SequenceIndex: seq},
			Embedding:  r.Embedding,
			Similarity: r.Similarity,
		})
	}
	return candidates, nil
}
