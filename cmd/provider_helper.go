package cmd

import (
	"strings"

	"github.com/sanix-darker/purr/internal/config"
	"github.com/sanix-darker/purr/internal/provider"
	"github.com/sanix-darker/purr/internal/vcs"
)

// resolveProvider creates an AIProvider from the current config. The
// provider name itself is resolved inside ResolveProvider, where the
// --provider flag has already been written to the store.
func resolveProvider(conf config.Config) (provider.AIProvider, error) {
	pcfg := provider.ResolveProvider(conf.Viper)

	// Override model from CLI
	if conf.Model != "" && conf.Model != "auto" {
		pcfg.Viper.Set("model", conf.Model)
	}

	return provider.Get(pcfg.Name, pcfg.Viper)
}

// completionKeyMissing returns the name of the unset API-key environment
// variable for the active provider, or "" when a key is configured or the
// provider needs none. Local and OpenAI-compatible providers run keyless;
// their base_url requirement is enforced at construction time.
func completionKeyMissing(conf config.Config) string {
	pcfg := provider.ResolveProvider(conf.Viper)
	if strings.TrimSpace(pcfg.Viper.GetString("api_key")) != "" {
		return ""
	}
	switch pcfg.Name {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic", "claude":
		return "ANTHROPIC_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	}
	return ""
}

// newVCSProvider builds the GitHub client from an already-validated token.
func newVCSProvider(conf config.Config, token string) (vcs.VCSProvider, error) {
	return vcs.Get("github", token, strings.TrimSpace(conf.Viper.GetString("github.base_url")))
}
