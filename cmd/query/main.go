package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"vendorrag/internal/config"
	"vendorrag/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	k := flag.Int("k", 5, "number of vendors to retrieve")
	noMMR := flag.Bool("no-mmr", false, "disable MMR and use plain similarity search")
	model := flag.String("model", config.ModelFast,
		fmt.Sprintf("LLM model (%s or %s)", config.ModelFast, config.ModelQuality))
	vectordb := flag.String("vectordb", "vectordb", "vector index directory")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: query [options] \"question\"")
		flag.PrintDefaults()
		return 1
	}
	question := strings.Join(args, " ")
	if !config.ValidModel(*model) {
		fmt.Fprintf(os.Stderr, "unknown model %q\n", *model)
		return 1
	}
	if *k < 1 {
		fmt.Fprintf(os.Stderr, "k must be at least 1, got %d\n", *k)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	q, err := pipeline.Open(config.Default(), *vectordb, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	res, err := q.Ask(ctx, question, pipeline.Options{K: *k, UseMMR: !*noMMR, Model: *model})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "interrupted")
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return 1
	}

	fmt.Println(strings.Repeat("=", 50))
	fmt.Println(res.Answer)
	fmt.Println(strings.Repeat("=", 50))
	if res.Usage != nil {
		u := res.Usage
		fmt.Printf("\nTokens: question=%d context=%d response=%d total=%d (model=%s, vendors=%d)\n",
			u.QuestionTokens, u.ContextTokens, u.ResponseTokens, u.TotalTokens, u.Model, u.DocumentsRetrieved)
	}
	if res.Status != pipeline.StatusDone {
		return 1
	}
	return 0
}
