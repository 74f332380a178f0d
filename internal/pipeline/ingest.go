package pipeline

import (
	"context"
	"log/slog"

	"vendorrag/internal/catalog"
	"vendorrag/internal/config"
	"vendorrag/internal/embedding"
	chromemstore "vendorrag/internal/vectorstore/chromem"
)

// probeQuery verifies the freshly built index end to end.
const probeQuery = "contract management"

// Ingest segments the catalog file and destructively rebuilds the vector
// index at vectordbPath. Returns the number of indexed units. Ingestion
// must not run concurrently with queries against the same index path.
func Ingest(ctx context.Context, cfg *config.Config, catalogPath, vectordbPath string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	key, err := config.ResolveAPIKey(cfg.APIKeyEnv, cfg.APIKeyFile)
	if err != nil {
		return 0, err
	}
	text, err := catalog.Load(catalogPath)
	if err != nil {
		return 0, err
	}
	logger.Info("catalog loaded", "path", catalogPath, "bytes", len(text))

	units, err := catalog.Segment(text)
	if err != nil {
		return 0, err
	}
	logger.Info("catalog segmented", "vendors", len(units))

	embedder := embedding.NewClient(key, cfg.EmbeddingModel)
	store := chromemstore.New(vectordbPath)
	if err := store.Rebuild(ctx, units, embedder); err != nil {
		return 0, err
	}
	count := store.Count()
	logger.Info("index rebuilt", "path", vectordbPath, "vendors", count)

	// Probe search, mirrors a manual smoke test after every rebuild.
	if vec, err := embedder.Embed(ctx, probeQuery); err == nil {
		if candidates, err := store.Query(ctx, vec, 3); err == nil {
			for i, c := range candidates {
				logger.Info("probe result", "rank", i+1, "sequence", c.Unit.SequenceIndex, "similarity", c.Similarity)
			}
		}
	}
	return count, nil
}
