package provider

import (
	"testing"

	"github.com/sanix-darker/purr/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestBindProviderEnvVars_OpenAIEnvOverridesConfig(t *testing.T) {
	t.Setenv("OPENAI_API_MODEL", "gpt-5.3-codex")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	v := config.NewStore()
	v.Set("model", "gpt-4o")
	v.Set("api_key", "file-key")

	bindProviderEnvVars("openai", v)

	assert.Equal(t, "gpt-5.3-codex", v.GetString("model"))
	assert.Equal(t, "sk-test", v.GetString("api_key"))
}

func TestBindProviderEnvVars_OpenAIDefaultWhenUnset(t *testing.T) {
	t.Setenv("OPENAI_API_MODEL", "")
	t.Setenv("OPENAI_API_KEY", "")

	v := config.NewStore()
	bindProviderEnvVars("openai", v)

	assert.Equal(t, "gpt-4", v.GetString("model"))
	assert.Equal(t, "https://api.openai.com/v1", v.GetString("base_url"))
}

func TestBindProviderEnvVars_GenericProviderUsesPurrPrefix(t *testing.T) {
	t.Setenv("PURR_MISTRAL_API_KEY", "mst-key")
	t.Setenv("PURR_MISTRAL_BASE_URL", "https://api.mistral.ai/v1")

	v := config.NewStore()
	bindProviderEnvVars("mistral", v)

	assert.Equal(t, "mst-key", v.GetString("api_key"))
	assert.Equal(t, "https://api.mistral.ai/v1", v.GetString("base_url"))
}

func TestResolveProvider_DefaultsToOpenAI(t *testing.T) {
	t.Setenv("PURR_PROVIDER", "")

	cfg := ResolveProvider(config.NewStore())
	assert.Equal(t, "openai", cfg.Name)
	assert.NotNil(t, cfg.Viper)
}

func TestResolveProvider_EnvVarWins(t *testing.T) {
	t.Setenv("PURR_PROVIDER", "Anthropic")

	cfg := ResolveProvider(config.NewStore())
	assert.Equal(t, "anthropic", cfg.Name)
}

func TestResolveProvider_StoreKeyBeatsEnv(t *testing.T) {
	t.Setenv("PURR_PROVIDER", "anthropic")

	v := config.NewStore()
	v.Set(ConfigKeyProvider, "ollama")

	cfg := ResolveProvider(v)
	assert.Equal(t, "ollama", cfg.Name)
}

func TestResolveProvider_ScopesToProviderSubtree(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_MODEL", "")

	v := config.NewStore()
	v.Set("provider", "openai")
	v.Set("providers.openai.api_key", "file-key")
	v.Set("providers.openai.model", "gpt-4o-mini")

	cfg := ResolveProvider(v)
	assert.Equal(t, "file-key", cfg.Viper.GetString("api_key"))
	assert.Equal(t, "gpt-4o-mini", cfg.Viper.GetString("model"))
}
