package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shoplens/backend/config"
	httpDelivery "github.com/shoplens/backend/internal/delivery/http"
	"github.com/shoplens/backend/internal/infrastructure/catalog"
	"github.com/shoplens/backend/internal/infrastructure/openai"
	"github.com/shoplens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Model: %s", cfg.OpenAI.Model)

	// Load the product catalog once; it is immutable for the process
	// lifetime and injected into everything that reads it.
	productCatalog := catalog.Load(cfg.Catalog.Path)
	if productCatalog.Len() == 0 {
		log.Printf("WARNING: Catalog is empty - recommendations will find no products")
	}

	completionClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		completionClient.SetDebug(true)
		log.Printf("OpenAI client debug mode enabled")
	}

	if len(cfg.OpenAI.APIKey) >= 8 {
		log.Printf("OpenAI API configured: model=%s (key: %s...)", cfg.OpenAI.Model, cfg.OpenAI.APIKey[:8])
	} else {
		log.Printf("WARNING: OpenAI API key looks malformed - API calls will likely fail")
	}

	// Initialize usecase layer
	recommendationService := usecase.NewRecommendationService(
		productCatalog,
		completionClient,
		usecase.RecommendationServiceConfig{
			Model:             cfg.OpenAI.Model,
			MaxTokens:         cfg.OpenAI.MaxTokens,
			Temperature:       cfg.OpenAI.Temperature,
			PromptTokenBudget: cfg.Prompt.MaxTokens,
		},
	)

	log.Printf("Recommendations: max_tokens=%d, temperature=%.2f, prompt_budget=%d tokens",
		cfg.OpenAI.MaxTokens, cfg.OpenAI.Temperature, cfg.Prompt.MaxTokens)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(productCatalog, recommendationService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
