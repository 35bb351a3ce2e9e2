// Package provider defines the core types and interfaces for multi-provider
// AI support. It abstracts away the differences between chat-completion
// services (OpenAI, OpenAI-compatible endpoints, Anthropic Claude) behind a
// unified interface, enabling the CLI tool to switch providers without
// changing the review pipeline.
//
// Design principles:
//   - Idiomatic Go: context propagation, error values
//   - go-resty/v2 as the HTTP transport layer for the primary provider
//   - Normalized error codes across providers
//   - Registry/factory pattern for provider discovery
//   - Fail fast: a failed call is never retried at this layer
package provider

import (
	"context"
	"fmt"
)

// ---------------------------------------------------------------------------
// Message types
// ---------------------------------------------------------------------------

// Role represents the role of a message participant.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ---------------------------------------------------------------------------
// Request types
// ---------------------------------------------------------------------------

// CompletionRequest is the provider-agnostic request structure that gets
// translated into each provider's native format by the provider implementation.
type CompletionRequest struct {
	// Model is the provider-specific model identifier (e.g. "gpt-4",
	// "claude-sonnet-4-20250514"). Empty means the provider default.
	Model string `json:"model"`

	// Messages is the ordered conversation history.
	Messages []Message `json:"messages"`

	// MaxTokens limits the response length. Providers have different defaults
	// and caps; the implementation should clamp or error appropriately.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 = deterministic, 1.0+ = creative).
	// A nil value means "use provider default".
	Temperature *float64 `json:"temperature,omitempty"`

	// TopP is nucleus sampling. A nil value means "use provider default".
	TopP *float64 `json:"top_p,omitempty"`

	// StopSequences optionally tells the model to stop generating upon
	// encountering any of these strings.
	StopSequences []string `json:"stop,omitempty"`
}

// ---------------------------------------------------------------------------
// Response types
// ---------------------------------------------------------------------------

// CompletionResponse is the provider-agnostic response returned from a
// completion call.
type CompletionResponse struct {
	// ID is the provider-assigned response identifier.
	ID string `json:"id"`

	// Model is the model that actually served the request (providers may
	// alias or auto-select).
	Model string `json:"model"`

	// Content is the assistant's reply text. For multi-choice responses only
	// the first choice is placed here; all choices are in Choices.
	Content string `json:"content"`

	// Choices holds every completion choice returned by the provider. Most
	// requests return a single choice.
	Choices []Choice `json:"choices,omitempty"`

	// Usage contains token accounting for the request.
	Usage Usage `json:"usage"`

	// FinishReason indicates why generation stopped (e.g. "stop",
	// "max_tokens", "end_turn").
	FinishReason string `json:"finish_reason"`

	// ProviderMeta carries any provider-specific metadata that does not fit
	// into the normalized fields (e.g. Anthropic's stop_sequence value).
	ProviderMeta map[string]interface{} `json:"provider_meta,omitempty"`
}

// Choice represents a single completion choice from the provider.
type Choice struct {
	Index        int    `json:"index"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason"`
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ---------------------------------------------------------------------------
// Error types
// ---------------------------------------------------------------------------

// ErrorCode classifies errors returned by providers into actionable
// categories so the caller can decide how to react (abort the run, drop a
// chunk, report credentials) without inspecting provider-specific payloads.
type ErrorCode string

const (
	ErrCodeAuthentication      ErrorCode = "authentication"
	ErrCodeRateLimit           ErrorCode = "rate_limit"
	ErrCodeInvalidRequest      ErrorCode = "invalid_request"
	ErrCodeContextLength       ErrorCode = "context_length"
	ErrCodeContentFilter       ErrorCode = "content_filter"
	ErrCodeProviderUnavailable ErrorCode = "provider_unavailable"
	ErrCodeTimeout             ErrorCode = "timeout"
	ErrCodeUnknown             ErrorCode = "unknown"
)

// ProviderError is a structured error that carries both a normalized code
// and the original provider-specific details. It implements the standard
// error interface and supports errors.Is / errors.As unwrapping.
type ProviderError struct {
	Code       ErrorCode
	Message    string
	Provider   string
	StatusCode int
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (status %d): %v",
			e.Provider, e.Code, e.Message, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s (status %d)",
		e.Provider, e.Code, e.Message, e.StatusCode)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Sentinel errors for use with errors.Is().
var (
	ErrAuthentication      = &ProviderError{Code: ErrCodeAuthentication}
	ErrRateLimit           = &ProviderError{Code: ErrCodeRateLimit}
	ErrInvalidRequest      = &ProviderError{Code: ErrCodeInvalidRequest}
	ErrContextLength       = &ProviderError{Code: ErrCodeContextLength}
	ErrContentFilter       = &ProviderError{Code: ErrCodeContentFilter}
	ErrProviderUnavailable = &ProviderError{Code: ErrCodeProviderUnavailable}
	ErrTimeout             = &ProviderError{Code: ErrCodeTimeout}
)

// Is allows errors.Is to match ProviderErrors by code.
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ---------------------------------------------------------------------------
// Provider metadata
// ---------------------------------------------------------------------------

// ProviderInfo describes a registered provider for introspection and
// user-facing help text.
type ProviderInfo struct {
	// Name is the canonical short name used in configuration (e.g. "openai").
	Name string

	// DisplayName is the human-readable name (e.g. "OpenAI").
	DisplayName string

	// Description is a one-line summary for help text.
	Description string

	// DefaultModel is the model used when the user does not specify one.
	DefaultModel string
}

// ---------------------------------------------------------------------------
// Core interface
// ---------------------------------------------------------------------------

// AIProvider is the central abstraction. Every chat-completion service
// implements this interface so that the review pipeline can work with any
// provider interchangeably.
//
// Calls are blocking and are never retried: the pipeline is strictly
// sequential, and a failed call is handled by the caller (fatal for the
// single-shot path, warn-and-drop for a chunk).
type AIProvider interface {
	// Info returns static metadata about this provider.
	Info() ProviderInfo

	// Complete sends a chat completion request and blocks until the full
	// response is available. The context controls cancellation and timeouts.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Validate checks that the provider is correctly configured (API key
	// present, endpoint reachable, etc.) and returns a descriptive error
	// if not. This is intended for use at CLI startup or "purr doctor".
	Validate(ctx context.Context) error
}
