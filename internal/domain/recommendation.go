package domain

import "encoding/json"

// DefaultConfidenceScore is used when the LLM omits a score or returns one
// that cannot be read as a number.
const DefaultConfidenceScore = 5

// Candidate is a raw, unvalidated recommendation entry decoded from LLM
// output, before catalog cross-referencing. Score is kept as raw JSON so a
// malformed value degrades to the default instead of failing the whole
// array decode.
type Candidate struct {
	ProductID   string          `json:"product_id"`
	Explanation string          `json:"explanation"`
	Score       json.RawMessage `json:"score"`
}

// ConfidenceScore reads the candidate's score leniently. Absent or
// non-numeric values fall back to DefaultConfidenceScore.
func (c Candidate) ConfidenceScore() float64 {
	if len(c.Score) == 0 || string(c.Score) == "null" {
		return DefaultConfidenceScore
	}
	var score float64
	if err := json.Unmarshal(c.Score, &score); err != nil {
		return DefaultConfidenceScore
	}
	return score
}

// EnrichedRecommendation is a validated candidate with its full catalog
// record attached.
type EnrichedRecommendation struct {
	Product         Product `json:"product"`
	Explanation     string  `json:"explanation"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// RecommendationResult is the outcome of one recommendation request. It
// covers three wire shapes: success ({recommendations, count}), parse
// failure ({recommendations: [], error}) and completion failure ({error}).
type RecommendationResult struct {
	Recommendations []EnrichedRecommendation
	Count           int
	Error           string
}

// MarshalJSON emits the shape matching the result state so the HTTP layer
// can serialize results without branching.
func (r *RecommendationResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		if r.Recommendations == nil {
			return json.Marshal(struct {
				Error string `json:"error"`
			}{Error: r.Error})
		}
		return json.Marshal(struct {
			Recommendations []EnrichedRecommendation `json:"recommendations"`
			Error           string                   `json:"error"`
		}{Recommendations: r.Recommendations, Error: r.Error})
	}
	recs := r.Recommendations
	if recs == nil {
		recs = []EnrichedRecommendation{}
	}
	return json.Marshal(struct {
		Recommendations []EnrichedRecommendation `json:"recommendations"`
		Count           int                      `json:"count"`
	}{Recommendations: recs, Count: r.Count})
}
