package usecase

import (
	"encoding/json"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// extractJSONArray returns the substring spanning the first '[' to the
// last ']' in raw. LLMs routinely wrap JSON in prose or code fences, so the
// outermost bracket span is taken as the payload. This heuristic is
// deliberately isolated here so a stricter extraction strategy (e.g. a
// structured-output mode) can replace it without touching the pipeline.
func extractJSONArray(raw string) (string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// parseRecommendations extracts the recommendation list from raw LLM
// output and enriches each entry with its full catalog record. Candidates
// whose product_id has no catalog match are silently dropped: the model
// hallucinating an ID is expected, not exceptional. Parse failures return
// an empty list with an explanatory error, never a fault.
func parseRecommendations(raw string, catalog domain.ProductCatalog) *domain.RecommendationResult {
	payload, found := extractJSONArray(raw)
	if !found {
		return &domain.RecommendationResult{
			Recommendations: []domain.EnrichedRecommendation{},
			Error:           "No valid recommendations found in LLM response.",
		}
	}

	var candidates []domain.Candidate
	if err := json.Unmarshal([]byte(payload), &candidates); err != nil {
		return &domain.RecommendationResult{
			Recommendations: []domain.EnrichedRecommendation{},
			Error:           "Error parsing the LLM response. Invalid JSON format.",
		}
	}

	recommendations := make([]domain.EnrichedRecommendation, 0, len(candidates))
	for _, candidate := range candidates {
		product, ok := catalog.ByID(candidate.ProductID)
		if !ok {
			continue
		}
		recommendations = append(recommendations, domain.EnrichedRecommendation{
			Product:         product,
			Explanation:     candidate.Explanation,
			ConfidenceScore: candidate.ConfidenceScore(),
		})
	}

	return &domain.RecommendationResult{
		Recommendations: recommendations,
		Count:           len(recommendations),
	}
}
