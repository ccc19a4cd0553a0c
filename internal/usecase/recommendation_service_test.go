package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shoplens/backend/internal/domain"
	"github.com/shoplens/backend/internal/infrastructure/catalog"
)

// fakeCompletionClient records the last request and returns a canned
// response or error.
type fakeCompletionClient struct {
	response string
	err      error
	calls    int
	lastReq  domain.CompletionRequest
}

func (f *fakeCompletionClient) Complete(_ context.Context, req domain.CompletionRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestService(client *fakeCompletionClient, products []domain.Product) *RecommendationService {
	return NewRecommendationService(
		catalog.New(products),
		client,
		RecommendationServiceConfig{Model: "gpt-3.5-turbo", MaxTokens: 500, Temperature: 0.7},
	)
}

func TestNewRecommendationService(t *testing.T) {
	t.Run("applies defaults for zero-value config", func(t *testing.T) {
		svc := NewRecommendationService(catalog.New(nil), &fakeCompletionClient{}, RecommendationServiceConfig{})

		if svc.config.Model != "gpt-3.5-turbo" {
			t.Errorf("Model = %s, want gpt-3.5-turbo", svc.config.Model)
		}
		if svc.config.MaxTokens != 500 {
			t.Errorf("MaxTokens = %d, want 500", svc.config.MaxTokens)
		}
		if svc.config.Temperature != 0.7 {
			t.Errorf("Temperature = %v, want 0.7", svc.config.Temperature)
		}
	})

	t.Run("keeps provided config", func(t *testing.T) {
		svc := NewRecommendationService(catalog.New(nil), &fakeCompletionClient{}, RecommendationServiceConfig{
			Model:       "gpt-4o-mini",
			MaxTokens:   1000,
			Temperature: 0.2,
		})

		if svc.config.Model != "gpt-4o-mini" {
			t.Errorf("Model = %s, want gpt-4o-mini", svc.config.Model)
		}
		if svc.config.MaxTokens != 1000 {
			t.Errorf("MaxTokens = %d, want 1000", svc.config.MaxTokens)
		}
		if svc.config.Temperature != 0.2 {
			t.Errorf("Temperature = %v, want 0.2", svc.config.Temperature)
		}
	})
}

func TestRecommend_Success(t *testing.T) {
	client := &fakeCompletionClient{
		response: `Sure! [{"product_id":"p1","explanation":"matches your taste","score":9}]`,
	}
	svc := newTestService(client, []domain.Product{
		{ID: "p1", Name: "Premium Wireless Headphones", Category: "Electronics"},
	})

	result := svc.Recommend(context.Background(), domain.UserPreferences{PriceRange: "all"}, nil)

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if result.Count != 1 {
		t.Fatalf("count = %d, want 1", result.Count)
	}
	if result.Recommendations[0].Product.Name != "Premium Wireless Headphones" {
		t.Errorf("product not enriched: %+v", result.Recommendations[0].Product)
	}

	if client.calls != 1 {
		t.Errorf("completion calls = %d, want exactly 1", client.calls)
	}
	if client.lastReq.System != systemPrompt {
		t.Errorf("system text = %q, want fixed system prompt", client.lastReq.System)
	}
	if client.lastReq.Model != "gpt-3.5-turbo" || client.lastReq.MaxTokens != 500 {
		t.Errorf("sampling params not forwarded: %+v", client.lastReq)
	}
}

func TestRecommend_CompletionFailureIsolation(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "rate limited",
			err:         fmt.Errorf("%w: too many requests", domain.ErrRateLimited),
			wantMessage: "API rate limit exceeded. Please try again later.",
		},
		{
			name:        "invalid request",
			err:         fmt.Errorf("%w: bad params", domain.ErrInvalidRequest),
			wantMessage: "The request to the API was invalid. Please check the input parameters.",
		},
		{
			name:        "authentication failed",
			err:         fmt.Errorf("%w: bad key", domain.ErrAuthenticationFailed),
			wantMessage: "Authentication failed. Please check your API key.",
		},
		{
			name:        "provider failure",
			err:         fmt.Errorf("%w: status 500", domain.ErrProviderFailure),
			wantMessage: "An error occurred with the LLM provider:",
		},
		{
			name:        "unknown failure",
			err:         errors.New("connection reset"),
			wantMessage: "An unexpected error occurred:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeCompletionClient{err: tt.err}
			svc := newTestService(client, []domain.Product{{ID: "p1"}})

			result := svc.Recommend(context.Background(), domain.UserPreferences{PriceRange: "all"}, nil)

			if !strings.Contains(result.Error, tt.wantMessage) {
				t.Errorf("error = %q, want it to contain %q", result.Error, tt.wantMessage)
			}
			// No parse is attempted on a failed completion.
			if result.Recommendations != nil {
				t.Errorf("recommendations = %v, want nil", result.Recommendations)
			}
			if result.Count != 0 {
				t.Errorf("count = %d, want 0", result.Count)
			}
		})
	}
}

func TestRecommend_BrowsingHistoryResolution(t *testing.T) {
	client := &fakeCompletionClient{response: "[]"}
	svc := newTestService(client, []domain.Product{
		{ID: "p1", Name: "Known Product", Category: "Electronics"},
	})

	result := svc.Recommend(
		context.Background(),
		domain.UserPreferences{PriceRange: "all"},
		[]string{"unknown-id", "p1"},
	)

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if !strings.Contains(client.lastReq.User, "Known Product") {
		t.Error("prompt missing resolved browsed product")
	}
	if strings.Contains(client.lastReq.User, "unknown-id") {
		t.Error("prompt contains unresolved history ID, want it dropped")
	}
}

func TestResolveBrowsingHistory(t *testing.T) {
	svc := newTestService(&fakeCompletionClient{}, []domain.Product{
		{ID: "p1", Name: "First"},
		{ID: "p2", Name: "Second"},
	})

	t.Run("drops misses and preserves hit order", func(t *testing.T) {
		browsed := svc.resolveBrowsingHistory([]string{"p2", "missing", "p1"})
		if len(browsed) != 2 {
			t.Fatalf("len = %d, want 2", len(browsed))
		}
		if browsed[0].ID != "p2" || browsed[1].ID != "p1" {
			t.Errorf("order = [%s %s], want [p2 p1]", browsed[0].ID, browsed[1].ID)
		}
	})

	t.Run("empty history resolves to empty list", func(t *testing.T) {
		if browsed := svc.resolveBrowsingHistory(nil); len(browsed) != 0 {
			t.Errorf("len = %d, want 0", len(browsed))
		}
	})
}

func TestRecommend_ZeroMatchesIsNotAnError(t *testing.T) {
	client := &fakeCompletionClient{
		response: `[{"product_id":"hallucinated","score":10}]`,
	}
	svc := newTestService(client, []domain.Product{{ID: "p1"}})

	result := svc.Recommend(context.Background(), domain.UserPreferences{PriceRange: "all"}, nil)

	if result.Error != "" {
		t.Errorf("error = %q, want none", result.Error)
	}
	if result.Count != 0 || len(result.Recommendations) != 0 {
		t.Errorf("count = %d, recommendations = %d, want 0 each", result.Count, len(result.Recommendations))
	}
}
