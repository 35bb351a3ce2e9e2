package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sanix-darker/purr/internal/config"
	"github.com/sanix-darker/purr/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/sanix-darker/purr/internal/provider/init"
	_ "github.com/sanix-darker/purr/internal/vcs/init"
)

// captureModelServer records the model name each completion request carries.
func captureModelServer(t *testing.T, sent *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		*sent = req.Model
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"chatcmpl-test","model":"gpt-4","choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}]}`))
	}))
}

func resolveAndComplete(t *testing.T, conf config.Config) string {
	t.Helper()
	var sent string
	srv := captureModelServer(t, &sent)
	defer srv.Close()
	conf.Viper.Set("providers.openai.base_url", srv.URL)

	p, err := resolveProvider(conf)
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	return sent
}

func TestResolveProvider_ModelOverrideWinsOverConfig(t *testing.T) {
	t.Setenv("OPENAI_API_MODEL", "")
	v := config.NewStore()
	v.Set("provider", "openai")
	v.Set("providers.openai.api_key", "sk-test")
	v.Set("providers.openai.model", "gpt-4o")
	conf := config.Config{Viper: v, Model: "gpt-4-turbo"}

	assert.Equal(t, "gpt-4-turbo", resolveAndComplete(t, conf))
}

func TestResolveProvider_AutoKeepsConfigModel(t *testing.T) {
	t.Setenv("OPENAI_API_MODEL", "")
	v := config.NewStore()
	v.Set("provider", "openai")
	v.Set("providers.openai.api_key", "sk-test")
	v.Set("providers.openai.model", "gpt-4o")
	conf := config.Config{Viper: v, Model: "auto"}

	assert.Equal(t, "gpt-4o", resolveAndComplete(t, conf))
}

func TestCompletionKeyMissing_OpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	v := config.NewStore()
	v.Set("provider", "openai")

	assert.Equal(t, "OPENAI_API_KEY", completionKeyMissing(config.Config{Viper: v}))
}

func TestCompletionKeyMissing_SatisfiedByConfig(t *testing.T) {
	v := config.NewStore()
	v.Set("provider", "openai")
	v.Set("providers.openai.api_key", "sk-test")

	assert.Equal(t, "", completionKeyMissing(config.Config{Viper: v}))
}

func TestCompletionKeyMissing_Anthropic(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	v := config.NewStore()
	v.Set("provider", "anthropic")

	assert.Equal(t, "ANTHROPIC_API_KEY", completionKeyMissing(config.Config{Viper: v}))
}

func TestCompletionKeyMissing_CompatProvidersRunKeyless(t *testing.T) {
	v := config.NewStore()
	v.Set("provider", "ollama")

	assert.Equal(t, "", completionKeyMissing(config.Config{Viper: v}))
}

func TestGithubToken_FlagBeatsEnvAndConfig(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")
	v := config.NewStore()
	v.Set("github.token", "conf-token")

	conf := config.Config{Viper: v, GithubToken: "flag-token"}
	assert.Equal(t, "flag-token", githubToken(conf))
}

func TestGithubToken_EnvBeatsConfig(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")
	v := config.NewStore()
	v.Set("github.token", "conf-token")

	assert.Equal(t, "env-token", githubToken(config.Config{Viper: v}))
}

func TestGithubToken_ConfigFallback(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	v := config.NewStore()
	v.Set("github.token", "  conf-token\n")

	assert.Equal(t, "conf-token", githubToken(config.Config{Viper: v}))
}

func TestNewVCSProvider_ReturnsGitHub(t *testing.T) {
	v := config.NewStore()
	vp, err := newVCSProvider(config.Config{Viper: v}, "tok")
	require.NoError(t, err)
	assert.Equal(t, "github", vp.Info().Name)
}
