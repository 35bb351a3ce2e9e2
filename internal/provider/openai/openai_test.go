package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sanix-darker/purr/internal/config"
	"github.com/sanix-darker/purr/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockOpenAIServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
			return
		}

		if r.URL.Path == "/chat/completions" {
			resp := apiResponse{
				ID:    "chatcmpl-test",
				Model: "gpt-4",
				Choices: []apiChoice{
					{
						Index:        0,
						Message:      apiMessage{Role: "assistant", Content: "Test response"},
						FinishReason: "stop",
					},
				},
				Usage: apiUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(resp)
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
}

func TestOpenAIComplete(t *testing.T) {
	server := mockOpenAIServer(t)
	defer server.Close()

	v := config.NewStore()
	v.Set("api_key", "test-key")
	v.Set("base_url", server.URL)
	v.Set("model", "gpt-4")
	v.Set("max_tokens", 100)
	v.Set("timeout", "10s")

	p, err := NewProvider(v)
	require.NoError(t, err)

	resp, err := p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: "Hello"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Test response", resp.Content)
	assert.Equal(t, "chatcmpl-test", resp.ID)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestOpenAIComplete_RequestShape(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		resp := apiResponse{
			ID: "chatcmpl-test", Model: "gpt-4",
			Choices: []apiChoice{{Index: 0, Message: apiMessage{Role: "assistant", Content: "ok"}, FinishReason: "stop"}},
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	v := config.NewStore()
	v.Set("api_key", "test-key")
	v.Set("base_url", server.URL)

	p, err := NewProvider(v)
	require.NoError(t, err)

	temp := 0.1
	_, err = p.Complete(context.Background(), provider.CompletionRequest{
		Model:       "gpt-3.5-turbo-16k",
		MaxTokens:   2000,
		Temperature: &temp,
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: "sys"},
			{Role: provider.RoleUser, Content: "Hello"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-3.5-turbo-16k", got["model"])
	assert.EqualValues(t, 2000, got["max_tokens"])
	assert.EqualValues(t, 0.1, got["temperature"])
	msgs, ok := got["messages"].([]interface{})
	require.True(t, ok)
	assert.Len(t, msgs, 2)
	_, hasStream := got["stream"]
	assert.False(t, hasStream)
}

func TestOpenAIComplete_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"message": "Invalid API key",
				"type":    "authentication_error",
			},
		})
	}))
	defer server.Close()

	v := config.NewStore()
	v.Set("api_key", "bad-key")
	v.Set("base_url", server.URL)

	p, err := NewProvider(v)
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "Hello"}},
	})
	assert.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrAuthentication)
}

func TestOpenAIComplete_EmptyAPIKey(t *testing.T) {
	v := config.NewStore()
	v.Set("base_url", "http://localhost:1234")

	p, err := NewProvider(v)
	require.NoError(t, err)

	err = p.Validate(context.Background())
	assert.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrAuthentication)
}

func TestOpenAIInfo(t *testing.T) {
	v := config.NewStore()
	v.Set("api_key", "test")
	p, err := NewProvider(v)
	require.NoError(t, err)

	info := p.Info()
	assert.Equal(t, "openai", info.Name)
	assert.Equal(t, "gpt-4", info.DefaultModel)
}

func TestClassifyHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   provider.ErrorCode
	}{
		{"unauthorized", 401, `{"error":{"message":"bad key"}}`, provider.ErrCodeAuthentication},
		{"forbidden", 403, ``, provider.ErrCodeAuthentication},
		{"rate limit", 429, `{"error":{"message":"slow down"}}`, provider.ErrCodeRateLimit},
		{"context length", 400, `{"error":{"message":"This model's maximum context length is 8192 tokens"}}`, provider.ErrCodeContextLength},
		{"bad request", 400, `{"error":{"message":"missing field"}}`, provider.ErrCodeInvalidRequest},
		{"server error", 500, ``, provider.ErrCodeProviderUnavailable},
		{"teapot", 418, ``, provider.ErrCodeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := classifyHTTPError("openai", tt.status, []byte(tt.body))
			assert.Equal(t, tt.code, pe.Code)
			assert.Equal(t, tt.status, pe.StatusCode)
		})
	}
}
