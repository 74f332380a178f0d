package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"vendorrag/internal/config"
	"vendorrag/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to config YAML")
	catalogPath := flag.String("catalog", "", "Catalog file to ingest (overrides config)")
	vectordb := flag.String("vectordb", "", "Vector index directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *catalogPath != "" {
		cfg.Catalog = *catalogPath
	}
	if *vectordb != "" {
		cfg.VectorDB = *vectordb
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	count, err := pipeline.Ingest(context.Background(), cfg, cfg.Catalog, cfg.VectorDB, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ingest failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Indexed %d vendors into %s\n", count, cfg.VectorDB)
}
