package main

import (
	"fmt"
	"log"

	"github.com/partsflow/backend/config"
	httpDelivery "github.com/partsflow/backend/internal/delivery/http"
	"github.com/partsflow/backend/internal/domain"
	"github.com/partsflow/backend/internal/infrastructure/catalog"
	"github.com/partsflow/backend/internal/infrastructure/openai"
	"github.com/partsflow/backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting PartsFlow backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port))

	// Catalog is loaded once and read-only afterwards
	store := catalog.NewStore(cfg.Catalog.ProductFiles, cfg.Catalog.SupplierFile, logger)

	// Optional AI-backed query parsing; rules cover everything without it
	var parser domain.QueryParser
	if cfg.OpenAI.APIKey != "" {
		parser = openai.NewClient(openai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.OpenAI.Timeout,
		}, logger)
		logger.Info("AI query parsing enabled", zap.String("model", cfg.OpenAI.Model))
	} else {
		logger.Warn("PARTSFLOW_OPENAI_API_KEY not set, using rule-based parsing only")
	}

	interpreter := usecase.NewQueryInterpreter(parser, logger)
	procurement := usecase.NewProcurementService(store, interpreter, usecase.ProcurementConfig{}, logger)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(procurement, store, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
