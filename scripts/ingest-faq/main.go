package main

import (
	"context"
	"fmt"
	"os"

	"intent-router/config"
	"intent-router/internal/encoder"
	"intent-router/internal/faq"
	faqQdrant "intent-router/internal/faq/repository/qdrant"
	faqUC "intent-router/internal/faq/usecase"
	"intent-router/pkg/log"
	pkgQdrant "intent-router/pkg/qdrant"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/ingest-faq/main.go <path/to/config.yaml> [path/to/faq.csv]")
		fmt.Println("Example: go run scripts/ingest-faq/main.go config/config.yaml resources/faq_data.csv")
		os.Exit(1)
	}

	// Load config
	cfg, err := config.LoadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	csvPath := cfg.FAQ.CSVPath
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	// Initialize Logger
	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	if cfg.Qdrant.URL == "" {
		logger.Fatal(ctx, "qdrant.url is not set")
	}
	if csvPath == "" {
		logger.Fatal(ctx, "no CSV given and faq.csv_path is not set")
	}

	// Initialize clients
	enc, err := encoder.New(ctx, encoder.Config{
		Provider:   cfg.Encoder.Provider,
		Model:      cfg.Encoder.Model,
		Dimensions: cfg.Encoder.Dimensions,
		BatchSize:  cfg.Encoder.BatchSize,
		APIKey:     cfg.Encoder.APIKey,
		BaseURL:    cfg.Encoder.BaseURL,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize encoder: %v", err)
	}

	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL).WithAPIKey(cfg.Qdrant.APIKey)
	repo := faqQdrant.New(logger, qdrantClient, cfg.Qdrant.CollectionName)
	uc := faqUC.New(logger, faq.Config{TopK: cfg.FAQ.TopK}, enc, repo, nil)

	f, err := os.Open(csvPath)
	if err != nil {
		logger.Fatalf(ctx, "Failed to open %s: %v", csvPath, err)
	}
	defer f.Close()

	logger.Infof(ctx, "Ingesting %s into collection %q with %s...", csvPath, cfg.Qdrant.CollectionName, enc.Identity())

	out, err := uc.Ingest(ctx, f)
	if err != nil {
		logger.Fatalf(ctx, "Ingest failed: %v", err)
	}

	logger.Infof(ctx, "Ingest complete! read=%d upserted=%d skipped=%d", out.Read, out.Upserted, out.Skipped)
}
