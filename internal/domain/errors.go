package domain

import "errors"

var (
	// ErrRateLimited is returned when the LLM provider rejects a request
	// for exceeding its rate limit
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when the provider rejects the request
	// parameters
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrAuthenticationFailed is returned when the provider rejects the
	// configured credential
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrProviderFailure is returned for any other classified provider
	// error (5xx, malformed provider response, empty completion)
	ErrProviderFailure = errors.New("LLM provider request failed")
)
