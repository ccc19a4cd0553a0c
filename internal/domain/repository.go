package domain

import "context"

// ProductCatalog defines read access to the immutable product catalog.
// Implementations are loaded once at startup and never mutated, so reads
// need no synchronization.
type ProductCatalog interface {
	Products() []Product
	ByID(id string) (Product, bool)
	ByCategory(category string) []Product
	Len() int
}

// CompletionRequest is one chat-style exchange with the LLM provider.
type CompletionRequest struct {
	System      string
	User        string
	Model       string
	MaxTokens   int
	Temperature float32
}

// CompletionClient defines the interface for the outbound LLM call. Errors
// are classified into the sentinel taxonomy in errors.go; anything else is
// an unknown failure.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
