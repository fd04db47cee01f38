// Command server runs the claim-document validation service.
//
// @title ClaimCheck API
// @version 1.0
// @description Document-validation service for CHAMPVA claim-support paperwork.
// @BasePath /api/v1
package main

import (
	"fmt"
	"log"

	"claimcheck/internal/analyzer"
	openaiclient "claimcheck/internal/analyzer/openai"
	"claimcheck/internal/config"
	"claimcheck/internal/handler"
	"claimcheck/internal/ocr/mistral"
	"claimcheck/internal/router"
	"claimcheck/internal/service"
	"claimcheck/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Missing credentials are surfaced per call, not fatal at startup: the UI
	// should come up and show a configuration message instead of crashing.
	if cfg.OCR.APIKey == "" {
		log.Printf("warning: OCR API key is not configured; document extraction will fail")
	}
	if cfg.Analyzer.APIKey == "" {
		log.Printf("warning: analyzer API key is not configured; document analysis will fail")
	}

	// Provider clients
	ocrClient := mistral.NewClient(&cfg.OCR)
	modelClient := openaiclient.NewClient(&cfg.Analyzer)
	docAnalyzer := analyzer.New(modelClient, cfg.Analyzer.Models)

	// Session-scoped batch store and services
	batchStore := store.NewBatchStore()
	batchSvc := service.NewBatchService(ocrClient, docAnalyzer, batchStore, &cfg.Upload)

	// Handlers
	batchH := handler.NewBatchHandler(batchSvc)
	healthH := handler.NewHealthHandler(cfg)

	// Setup router
	r := router.Setup(cfg, batchH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
