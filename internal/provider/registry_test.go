package provider_test

import (
	"context"
	"testing"

	"github.com/sanix-darker/purr/internal/config"
	"github.com/sanix-darker/purr/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider is a test double that satisfies AIProvider.
type mockProvider struct {
	name    string
	content string
	choices []provider.Choice
}

func (m *mockProvider) Info() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:        m.name,
		DisplayName: "Mock " + m.name,
	}
}

func (m *mockProvider) Complete(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResponse, error) {
	return &provider.CompletionResponse{
		ID:      "mock-id",
		Content: m.content,
		Choices: m.choices,
	}, nil
}

func (m *mockProvider) Validate(ctx context.Context) error {
	return nil
}

func mockFactory(name string) provider.Factory {
	return func(v *config.Store) (provider.AIProvider, error) {
		return &mockProvider{name: name, content: "mock response from " + name}, nil
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := provider.NewRegistry()
	reg.Register("test-provider", mockFactory("test-provider"))

	p, err := reg.Get("test-provider", config.NewStore())
	require.NoError(t, err)
	assert.Equal(t, "test-provider", p.Info().Name)
}

func TestRegistryGetUnknownProvider(t *testing.T) {
	reg := provider.NewRegistry()
	_, err := reg.Get("nonexistent", config.NewStore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestRegistryDuplicateRegistrationPanics(t *testing.T) {
	reg := provider.NewRegistry()
	reg.Register("dup", mockFactory("dup"))
	assert.Panics(t, func() {
		reg.Register("dup", mockFactory("dup"))
	})
}

func TestRegistryNames(t *testing.T) {
	reg := provider.NewRegistry()
	reg.Register("beta", mockFactory("beta"))
	reg.Register("alpha", mockFactory("alpha"))
	reg.Register("gamma", mockFactory("gamma"))

	names := reg.Names()
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, names)
}

func TestMockProviderComplete(t *testing.T) {
	mp := &mockProvider{name: "test", content: "mock response from test"}
	resp, err := mp.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: "hello"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "mock response")
}

func TestCompleteTextPrefersContent(t *testing.T) {
	mp := &mockProvider{
		name:    "test",
		content: "top-level content",
		choices: []provider.Choice{{Index: 0, Content: "choice content"}},
	}
	text, err := provider.CompleteText(context.Background(), mp, provider.CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "top-level content", text)
}

func TestCompleteTextFallsBackToFirstChoice(t *testing.T) {
	mp := &mockProvider{
		name:    "test",
		choices: []provider.Choice{{Index: 0, Content: "choice content"}},
	}
	text, err := provider.CompleteText(context.Background(), mp, provider.CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "choice content", text)
}

func TestCompleteTextEmptyResponse(t *testing.T) {
	mp := &mockProvider{name: "test"}
	text, err := provider.CompleteText(context.Background(), mp, provider.CompletionRequest{})
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestProviderErrorIs(t *testing.T) {
	err := &provider.ProviderError{
		Code:     provider.ErrCodeRateLimit,
		Message:  "too many requests",
		Provider: "openai",
	}

	assert.ErrorIs(t, err, provider.ErrRateLimit)
	assert.NotErrorIs(t, err, provider.ErrAuthentication)
}

func TestProviderErrorUnwrap(t *testing.T) {
	cause := &provider.ProviderError{
		Code:    provider.ErrCodeTimeout,
		Message: "inner",
	}
	outer := &provider.ProviderError{
		Code:    provider.ErrCodeUnknown,
		Message: "outer",
		Cause:   cause,
	}

	assert.ErrorIs(t, outer.Unwrap(), cause)
}
