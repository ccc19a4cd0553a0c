package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoplens/backend/internal/domain"
)

// Recommender is the single unit the HTTP layer calls for
// recommendations.
type Recommender interface {
	Recommend(ctx context.Context, prefs domain.UserPreferences, browsingHistory []string) *domain.RecommendationResult
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog     domain.ProductCatalog
	recommender Recommender
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog domain.ProductCatalog, recommender Recommender) *Handler {
	return &Handler{
		catalog:     catalog,
		recommender: recommender,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shoplens-backend",
		"version": "1.0.0",
	})
}

// GetProducts returns the full product catalog as a JSON array. No
// pagination, no filtering.
func (h *Handler) GetProducts(c *gin.Context) {
	products := h.catalog.Products()
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetRecommendations generates personalized recommendations for the posted
// preferences and browsing history. Orchestrator outcomes, including
// structured errors, are always HTTP 200; only a malformed request body is
// a client error.
func (h *Handler) GetRecommendations(c *gin.Context) {
	var req domain.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result := h.recommender.Recommend(c.Request.Context(), req.Preferences, req.BrowsingHistory)
	c.JSON(http.StatusOK, result)
}
