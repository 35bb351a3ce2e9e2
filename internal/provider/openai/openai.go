// Package openai implements the AIProvider interface for the OpenAI Chat
// Completions API.
//
// It uses go-resty/v2 for HTTP transport. Every call is a single blocking
// round-trip; a failed request surfaces immediately as a *ProviderError.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sanix-darker/purr/internal/config"
	"github.com/sanix-darker/purr/internal/provider"
)

// ---------------------------------------------------------------------------
// Registration
// ---------------------------------------------------------------------------

func init() {
	provider.Register("openai", NewProvider)
}

// ---------------------------------------------------------------------------
// OpenAI-specific API types (request)
// ---------------------------------------------------------------------------

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature *float64     `json:"temperature,omitempty"`
	TopP        *float64     `json:"top_p,omitempty"`
	Stop        []string     `json:"stop,omitempty"`
}

// ---------------------------------------------------------------------------
// OpenAI-specific API types (response)
// ---------------------------------------------------------------------------

type apiChoice struct {
	Index        int        `json:"index"`
	Message      apiMessage `json:"message"`
	FinishReason string     `json:"finish_reason"`
}

type apiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type apiResponse struct {
	ID      string      `json:"id"`
	Object  string      `json:"object"`
	Created int64       `json:"created"`
	Model   string      `json:"model"`
	Choices []apiChoice `json:"choices"`
	Usage   apiUsage    `json:"usage"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// ---------------------------------------------------------------------------
// Provider implementation
// ---------------------------------------------------------------------------

// Provider implements provider.AIProvider for OpenAI's Chat Completions API.
type Provider struct {
	client  *resty.Client
	apiKey  string
	baseURL string
	model   string
	maxTok  int
}

// NewProvider is the factory function registered with the provider registry.
// It reads configuration from the supplied store.
func NewProvider(v *config.Store) (provider.AIProvider, error) {
	apiKey := v.GetString("api_key")
	baseURL := v.GetString("base_url")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := v.GetString("model")
	if model == "" {
		model = "gpt-4"
	}
	maxTok := v.GetInt("max_tokens")
	if maxTok == 0 {
		maxTok = 2000
	}
	timeout := v.GetDuration("timeout")
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Provider{
		client:  client,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		maxTok:  maxTok,
	}, nil
}

// Info returns provider metadata.
func (p *Provider) Info() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:         "openai",
		DisplayName:  "OpenAI",
		Description:  "OpenAI Chat Completions API (GPT-4, GPT-3.5-turbo, etc.)",
		DefaultModel: "gpt-4",
	}
}

// Validate checks that the API key is set and the endpoint is reachable.
func (p *Provider) Validate(ctx context.Context) error {
	if p.apiKey == "" {
		return &provider.ProviderError{
			Code:     provider.ErrCodeAuthentication,
			Message:  "OPENAI_API_KEY is not set",
			Provider: "openai",
		}
	}
	// Quick connectivity check: list models.
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		Get(p.baseURL + "/models")
	if err != nil {
		return &provider.ProviderError{
			Code:     provider.ErrCodeProviderUnavailable,
			Message:  "failed to reach OpenAI API",
			Provider: "openai",
			Cause:    err,
		}
	}
	if resp.StatusCode() != http.StatusOK {
		return &provider.ProviderError{
			Code:       provider.ErrCodeAuthentication,
			Message:    "OpenAI API returned non-200 on validation",
			Provider:   "openai",
			StatusCode: resp.StatusCode(),
		}
	}
	return nil
}

// Complete performs a synchronous chat completion.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	maxTok := req.MaxTokens
	if maxTok == 0 {
		maxTok = p.maxTok
	}

	body := apiRequest{
		Model:       model,
		Messages:    toAPIMessages(req.Messages),
		MaxTokens:   maxTok,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		Stop:        req.StopSequences,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetBody(body).
		Post(p.baseURL + "/chat/completions")
	if err != nil {
		return nil, &provider.ProviderError{
			Code:     provider.ErrCodeProviderUnavailable,
			Message:  "HTTP request failed",
			Provider: "openai",
			Cause:    err,
		}
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, classifyHTTPError("openai", resp.StatusCode(), resp.Body())
	}

	var apiResp apiResponse
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return nil, &provider.ProviderError{
			Code:     provider.ErrCodeUnknown,
			Message:  "failed to decode response",
			Provider: "openai",
			Cause:    err,
		}
	}

	return toCompletionResponse(&apiResp), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func toAPIMessages(msgs []provider.Message) []apiMessage {
	out := make([]apiMessage, len(msgs))
	for i, m := range msgs {
		out[i] = apiMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return out
}

func toCompletionResponse(r *apiResponse) *provider.CompletionResponse {
	resp := &provider.CompletionResponse{
		ID:    r.ID,
		Model: r.Model,
		Usage: provider.Usage{
			PromptTokens:     r.Usage.PromptTokens,
			CompletionTokens: r.Usage.CompletionTokens,
			TotalTokens:      r.Usage.TotalTokens,
		},
	}
	for _, c := range r.Choices {
		resp.Choices = append(resp.Choices, provider.Choice{
			Index:        c.Index,
			Content:      c.Message.Content,
			FinishReason: c.FinishReason,
		})
	}
	if len(resp.Choices) > 0 {
		resp.Content = resp.Choices[0].Content
		resp.FinishReason = resp.Choices[0].FinishReason
	}
	return resp
}

// classifyHTTPError maps HTTP status codes to normalized provider errors.
func classifyHTTPError(providerName string, statusCode int, body []byte) *provider.ProviderError {
	// Try to parse the OpenAI error body.
	var apiErr apiError
	_ = json.Unmarshal(body, &apiErr)
	msg := apiErr.Error.Message
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", statusCode)
	}

	pe := &provider.ProviderError{
		Provider:   providerName,
		Message:    msg,
		StatusCode: statusCode,
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		pe.Code = provider.ErrCodeAuthentication
	case statusCode == http.StatusTooManyRequests:
		pe.Code = provider.ErrCodeRateLimit
	case statusCode == http.StatusBadRequest:
		// Check if it is a context-length error.
		if strings.Contains(msg, "maximum context length") ||
			strings.Contains(msg, "max_tokens") {
			pe.Code = provider.ErrCodeContextLength
		} else {
			pe.Code = provider.ErrCodeInvalidRequest
		}
	case statusCode >= 500:
		pe.Code = provider.ErrCodeProviderUnavailable
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusGatewayTimeout:
		pe.Code = provider.ErrCodeTimeout
	default:
		pe.Code = provider.ErrCodeUnknown
	}

	return pe
}
