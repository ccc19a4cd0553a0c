package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shoplens/backend/internal/domain"
)

// systemPrompt is the fixed system-role text for every completion call.
const systemPrompt = "You are a helpful eCommerce product recommendation assistant."

// RecommendationServiceConfig holds configuration for the recommendation
// service
type RecommendationServiceConfig struct {
	Model       string
	MaxTokens   int
	Temperature float32

	// PromptTokenBudget is the advisory input-size limit. Exceeding it
	// logs a warning but never blocks the call. Zero disables the check.
	PromptTokenBudget int
}

// RecommendationService orchestrates one recommendation request: resolve
// browsing history, build the prompt, call the LLM once, parse the result.
type RecommendationService struct {
	catalog     domain.ProductCatalog
	completions domain.CompletionClient
	config      RecommendationServiceConfig
}

// NewRecommendationService creates a new recommendation service with
// dependencies
func NewRecommendationService(
	catalog domain.ProductCatalog,
	completions domain.CompletionClient,
	config RecommendationServiceConfig,
) *RecommendationService {
	if config.Model == "" {
		config.Model = "gpt-3.5-turbo"
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 500
	}
	if config.Temperature <= 0 {
		config.Temperature = 0.7
	}

	return &RecommendationService{
		catalog:     catalog,
		completions: completions,
		config:      config,
	}
}

// Recommend generates personalized recommendations for the given
// preferences and browsing history. Every failure path returns a
// structured result; this method never panics and never propagates a raw
// error to the HTTP layer.
func (s *RecommendationService) Recommend(
	ctx context.Context,
	prefs domain.UserPreferences,
	browsingHistory []string,
) *domain.RecommendationResult {
	browsed := s.resolveBrowsingHistory(browsingHistory)

	prompt := buildRecommendationPrompt(prefs, browsed, s.catalog.Products())
	if s.config.PromptTokenBudget > 0 {
		if estimate := estimateTokens(prompt); estimate > s.config.PromptTokenBudget {
			log.Printf("[recommend] Prompt estimate %d tokens exceeds budget %d, sending anyway",
				estimate, s.config.PromptTokenBudget)
		}
	}

	raw, err := s.completions.Complete(ctx, domain.CompletionRequest{
		System:      systemPrompt,
		User:        prompt,
		Model:       s.config.Model,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		log.Printf("[recommend] Completion failed: %v", err)
		return &domain.RecommendationResult{Error: completionFailureMessage(err)}
	}

	return parseRecommendations(raw, s.catalog)
}

// resolveBrowsingHistory maps product IDs to catalog records. IDs missing
// from the catalog are dropped without leaving gaps; the order of hits is
// preserved.
func (s *RecommendationService) resolveBrowsingHistory(ids []string) []domain.Product {
	var browsed []domain.Product
	for _, id := range ids {
		if product, ok := s.catalog.ByID(id); ok {
			browsed = append(browsed, product)
		}
	}
	return browsed
}

// completionFailureMessage maps every classified completion failure to a
// human-readable message. The sentinel cases cover the provider's full
// failure taxonomy; anything else is an unknown failure.
func completionFailureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return "API rate limit exceeded. Please try again later."
	case errors.Is(err, domain.ErrInvalidRequest):
		return "The request to the API was invalid. Please check the input parameters."
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return "Authentication failed. Please check your API key."
	case errors.Is(err, domain.ErrProviderFailure):
		return fmt.Sprintf("An error occurred with the LLM provider: %v", err)
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}
