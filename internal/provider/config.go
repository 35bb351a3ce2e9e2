package provider

import (
	"fmt"
	"os"
	"strings"

	"github.com/sanix-darker/purr/internal/config"
)

// ---------------------------------------------------------------------------
// Configuration helpers
// ---------------------------------------------------------------------------

// ProviderConfig holds the resolved configuration for instantiating a
// provider. It is used by ResolveProvider so that the CLI layer does not
// need to know about config paths.
type ProviderConfig struct {
	// Name is the provider name as it appears in the registry (e.g. "openai").
	Name string

	// Viper is a sub-tree scoped to the provider's config block.
	Viper *config.Store
}

// ConfigKeyProvider is the config key that holds the active provider name.
const ConfigKeyProvider = "provider"

// ResolveProvider reads the active provider name and its config block from
// the config store. The lookup order is:
//
//  1. --provider CLI flag (already set on the store)
//  2. PURR_PROVIDER environment variable
//  3. "provider" key in the config file (~/.config/purr/config.yml)
//  4. Fallback to "openai"
//
// The returned ProviderConfig.Viper is scoped to the provider's subtree:
//
//	providers:
//	  openai:
//	    api_key: ...
//	    model: gpt-4
func ResolveProvider(v *config.Store) ProviderConfig {
	// Determine the active provider name.
	name := v.GetString(ConfigKeyProvider)
	if name == "" {
		name = os.Getenv("PURR_PROVIDER")
	}
	if name == "" {
		name = "openai"
	}
	name = strings.ToLower(strings.TrimSpace(name))

	// Build a sub-store for the provider's config block.
	sub := v.Sub(fmt.Sprintf("providers.%s", name))
	if sub == nil {
		// No config file entry; create an empty store so that env-var
		// and flag bindings still work.
		sub = config.NewStore()
	}

	// Bind common env vars so they override file-based config. Providers
	// that need additional bindings do so in their factory function.
	bindProviderEnvVars(name, sub)

	return ProviderConfig{Name: name, Viper: sub}
}

// bindProviderEnvVars sets up well-known environment variables for each
// provider so that users can configure purr entirely through the shell.
func bindProviderEnvVars(name string, v *config.Store) {
	switch name {
	case "openai":
		v.SetDefault("model", "gpt-4")
		v.SetDefault("base_url", "https://api.openai.com/v1")
		overrideFromEnv(v, "api_key", "OPENAI_API_KEY")
		overrideFromEnv(v, "model", "OPENAI_API_MODEL")
		overrideFromEnv(v, "base_url", "OPENAI_API_BASE")
	case "anthropic", "claude":
		v.SetDefault("model", "claude-sonnet-4-20250514")
		v.SetDefault("base_url", "https://api.anthropic.com")
		overrideFromEnv(v, "api_key", "ANTHROPIC_API_KEY")
		overrideFromEnv(v, "model", "ANTHROPIC_MODEL")
		overrideFromEnv(v, "base_url", "ANTHROPIC_API_BASE")
	case "gemini":
		// Gemini via Google's OpenAI-compatible endpoint.
		v.SetDefault("model", "gemini-2.0-flash")
		v.SetDefault("base_url", "https://generativelanguage.googleapis.com/v1beta/openai")
		overrideFromEnv(v, "api_key", "GEMINI_API_KEY")
		overrideFromEnv(v, "model", "GEMINI_MODEL")
		overrideFromEnv(v, "base_url", "GEMINI_BASE_URL")
	default:
		// Generic / OpenAI-compatible: try PURR_<PROVIDER>_* env vars.
		prefix := strings.ToUpper(name)
		overrideFromEnv(v, "api_key", fmt.Sprintf("PURR_%s_API_KEY", prefix))
		overrideFromEnv(v, "model", fmt.Sprintf("PURR_%s_MODEL", prefix))
		overrideFromEnv(v, "base_url", fmt.Sprintf("PURR_%s_BASE_URL", prefix))
	}
}

func overrideFromEnv(v *config.Store, key, envName string) {
	if value := strings.TrimSpace(os.Getenv(envName)); value != "" {
		v.Set(key, value)
	}
}

// SampleConfigYAML returns an example config.yml snippet that documents all
// provider settings. It is used by the "purr config init" command.
func SampleConfigYAML() string {
	return `# purr configuration
# Active provider (openai | anthropic | gemini | ollama | groq | together | lmstudio).
provider: openai

# Provider-specific settings. Each block corresponds to a registered provider.
providers:
  openai:
    # api_key can also be set via OPENAI_API_KEY env var.
    api_key: ""
    model: "gpt-4"
    # base_url: "https://api.openai.com/v1"  # override for proxies
    max_tokens: 2000
    timeout: 120s

  anthropic:
    # api_key can also be set via ANTHROPIC_API_KEY env var.
    api_key: ""
    model: "claude-sonnet-4-20250514"
    max_tokens: 2000
    timeout: 120s

  gemini:
    # api_key can also be set via GEMINI_API_KEY env var.
    api_key: ""
    base_url: "https://generativelanguage.googleapis.com/v1beta/openai"
    model: "gemini-2.0-flash"
    max_tokens: 2000
    timeout: 120s

  # Example: self-hosted Ollama or any OpenAI-compatible endpoint.
  ollama:
    base_url: "http://localhost:11434/v1"
    model: "llama3"
    max_tokens: 2000
    timeout: 120s

# GitHub access. The token can also be set via GITHUB_TOKEN or --token.
github:
  token: ""
  # base_url: "https://api.github.com"  # override for GitHub Enterprise

# Display options.
debug: false
`
}
