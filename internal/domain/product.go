package domain

// Product represents a single catalog entry. Products are loaded once at
// startup and treated as immutable for the process lifetime.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Tags        []string `json:"tags"`
	Rating      float64  `json:"rating"`
}

// UserPreferences captures the user's stated shopping preferences.
// PriceRange is either the literal "all" or a "min-max" numeric range
// string; empty Categories/Brands mean unconstrained.
type UserPreferences struct {
	PriceRange string   `json:"priceRange"`
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
}

// RecommendationRequest is the body of POST /api/recommendations.
type RecommendationRequest struct {
	Preferences     UserPreferences `json:"preferences"`
	BrowsingHistory []string        `json:"browsing_history"`
}
