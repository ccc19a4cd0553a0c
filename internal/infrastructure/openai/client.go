package openai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/shoplens/backend/internal/domain"
)

// Client handles communication with the OpenAI chat completion API.
type Client struct {
	api   *goopenai.Client
	debug bool
}

// NewClient creates a new completion client. baseURL overrides the SDK
// default endpoint when non-empty (tests, OpenAI-compatible gateways).
func NewClient(apiKey, baseURL string) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{
		api: goopenai.NewClientWithConfig(cfg),
	}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Complete sends one system+user chat exchange and returns the raw text of
// the first choice. Provider failures are classified into the domain
// sentinel taxonomy; there is no retry here - each request maps to exactly
// one provider call.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if c.debug {
		log.Printf("[openai] Complete called: model=%s max_tokens=%d temperature=%.2f prompt_len=%d",
			req.Model, req.MaxTokens, req.Temperature, len(req.User))
	}

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: req.System},
			{Role: goopenai.ChatMessageRoleUser, Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		classified := classifyError(err)
		log.Printf("[openai] Completion failed: %v", classified)
		return "", classified
	}

	if len(resp.Choices) == 0 {
		log.Printf("[openai] Completion returned no choices (id=%s)", resp.ID)
		return "", fmt.Errorf("%w: empty completion response", domain.ErrProviderFailure)
	}

	content := resp.Choices[0].Message.Content
	if c.debug {
		log.Printf("[openai] Completion succeeded: %d choices, %d chars", len(resp.Choices), len(content))
	}

	return content, nil
}

// classifyError maps SDK errors onto the domain failure taxonomy. Errors
// that carry no HTTP status (transport faults, cancelled contexts) pass
// through unclassified and are treated as unknown failures upstream.
func classifyError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, reqErr.Error())
	}

	return err
}

func classifyStatus(status int, message string) error {
	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrAuthenticationFailed, message)
	default:
		return fmt.Errorf("%w: status %d: %s", domain.ErrProviderFailure, status, message)
	}
}
