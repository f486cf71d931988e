package main

import (
	"fmt"
	"os"

	"beer-reviews/config"
	"beer-reviews/pipeline"
	"beer-reviews/services"
	"beer-reviews/storage"
	"beer-reviews/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Beer review merge starting ===")
	logger.Info("Config — reviews: %s, %s | strict brewery keys: %t",
		cfg.ReviewsBAPath, cfg.ReviewsRBPath, cfg.StrictBreweryKeys)

	schema, err := config.DefaultSchema()
	if err != nil {
		logger.Error("Invalid column schema: %v", err)
		os.Exit(1)
	}

	src, closeSources, err := pipeline.OpenSources(cfg)
	if err != nil {
		closeSources()
		logger.Error("Failed to open inputs: %v", err)
		os.Exit(1)
	}

	result, err := pipeline.Run(src, schema, pipeline.Options{
		Delimiter:         cfg.Delimiter,
		StrictBreweryKeys: cfg.StrictBreweryKeys,
	}, logger)
	closeSources()
	if err != nil {
		logger.Error("Merge failed, no output written: %v", err)
		os.Exit(1)
	}

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	if err := csvWriter.Write(result.Canonical); err != nil {
		_ = csvWriter.Close()
		logger.Error("CSV write failed: %v", err)
		os.Exit(1)
	}
	if err := csvWriter.Close(); err != nil {
		logger.Error("CSV close failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Canonical table saved to %s", cfg.CSVOutputPath)

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(result.Canonical)
	insightSvc.Print(report)

	fmt.Printf("  Done. %d BA + %d RB reviews → %s\n\n",
		result.Counts.ReviewsBA, result.Counts.ReviewsRB, cfg.CSVOutputPath)
}
