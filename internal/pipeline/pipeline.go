// Package pipeline sequences the query flow: credentials, index, retrieval,
// context assembly, generation, usage accounting.
package pipeline

import (
	"context"
	"log/slog"

	"vendorrag/internal/answer"
	"vendorrag/internal/config"
	"vendorrag/internal/domain"
	"vendorrag/internal/embedding"
	"vendorrag/internal/extract"
	"vendorrag/internal/retriever"
	"vendorrag/internal/tokens"
	chromemstore "vendorrag/internal/vectorstore/chromem"
)

// Searcher is the retrieval port of the pipeline.
type Searcher interface {
	Search(ctx context.Context, query string, k int, useMMR bool) ([]domain.Unit, error)
}

// Generator is the answer-generation port of the pipeline.
type Generator interface {
	Generate(ctx context.Context, model, question string, units []domain.Unit) (string, error)
}

// Counter exposes the index population check used to gate retrieval.
type Counter interface {
	Count() int
}

// Status names the terminal state a query run ended in.
type Status string

const (
	StatusDone       Status = "done"
	StatusEmptyIndex Status = "empty-index"
	StatusNoResults  Status = "no-results"
)

// EmptyIndexMessage is the fixed diagnostic for an index with zero units.
// It is distinct from "no results for this query".
const EmptyIndexMessage = "The vector index contains no vendors. Run the ingest step first."

// Result is what every terminal state yields. Usage is populated only on
// the StatusDone path.
type Result struct {
	Answer string
	Usage  *domain.TokenUsage
	Status Status
}

// Options configures one query run.
type Options struct {
	K      int
	UseMMR bool
	Model  string
}

// Query is the wired query pipeline. It is stateless aside from the
// opened index handle; callers needing concurrency run one instance per
// request.
type Query struct {
	search   Searcher
	generate Generator
	index    Counter
	logger   *slog.Logger
}

func NewQuery(search Searcher, generate Generator, index Counter, logger *slog.Logger) *Query {
	if logger == nil {
		logger = slog.Default()
	}
	return &Query{search: search, generate: generate, index: index, logger: logger}
}

// Open resolves credentials, opens the index at vectordbPath read-only and
// wires the full query pipeline. Credential and index-open failures
// propagate to the caller.
func Open(cfg *config.Config, vectordbPath string, logger *slog.Logger) (*Query, error) {
	key, err := config.ResolveAPIKey(cfg.APIKeyEnv, cfg.APIKeyFile)
	if err != nil {
		return nil, err
	}
	store := chromemstore.New(vectordbPath)
	if err := store.Open(); err != nil {
		return nil, err
	}
	embedder := embedding.NewClient(key, cfg.EmbeddingModel)
	gen := answer.NewGenerator(answer.NewOpenAIChat(key), extract.NewParser())
	return NewQuery(retriever.New(embedder, store), gen, store, logger), nil
}

// Ask runs one question through the pipeline. An empty index and an empty
// retrieval result short-circuit to their terminal states before the
// model is invoked; retrieval and generation failures are returned as
// errors for the boundary to render.
func (q *Query) Ask(ctx context.Context, question string, opts Options) (Result, error) {
	count := q.index.Count()
	if count == 0 {
		q.logger.Warn("index empty, skipping retrieval")
		return Result{Answer: EmptyIndexMessage, Status: StatusEmptyIndex}, nil
	}
	q.logger.Info("retrieving vendors", "k", opts.K, "mmr", opts.UseMMR, "indexed", count)
	units, err := q.search.Search(ctx, question, opts.K, opts.UseMMR)
	if err != nil {
		return Result{}, err
	}
	if len(units) == 0 {
		q.logger.Warn("retrieval returned no units")
		return Result{Answer: answer.NoResults(question), Status: StatusNoResults}, nil
	}
	q.logger.Info("generating answer", "model", opts.Model, "units", len(units))
	text, err := q.generate.Generate(ctx, opts.Model, question, units)
	if err != nil {
		return Result{}, err
	}
	usage := tokens.Usage(question, text, opts.Model, units)
	return Result{Answer: text, Usage: &usage, Status: StatusDone}, nil
}
