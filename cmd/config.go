package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sanix-darker/purr/internal/config"
	"github.com/sanix-darker/purr/internal/provider"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage purr configuration",
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigEffectiveCmd())
	configCmd.AddCommand(newConfigValidateCmd())
	rootCmd.AddCommand(configCmd)
}

func newConfigInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file at ~/.config/purr/config.yml",
		Run: func(cmd *cobra.Command, args []string) {
			conf := config.NewDefaultConfig()
			force, _ := cmd.Flags().GetBool("force")

			cfgPath, err := config.GetConfigFilePath(conf)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			// Create directory if needed
			dir := filepath.Dir(cfgPath)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
				os.Exit(1)
			}

			// Don't silently overwrite an existing config
			if _, err := os.Stat(cfgPath); err == nil && !force {
				if !conf.Printers.Confirm(fmt.Sprintf("Config file already exists at %s. Overwrite?", cfgPath)) {
					fmt.Println("Keeping existing config.")
					return
				}
			}

			if err := os.WriteFile(cfgPath, []byte(provider.SampleConfigYAML()), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("Config file created at %s\n", cfgPath)
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing config file without asking")
	return initCmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print current config",
		Run: func(cmd *cobra.Command, args []string) {
			conf := config.NewDefaultConfig()
			cfgPath, err := config.GetConfigFilePath(conf)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			data, err := os.ReadFile(cfgPath)
			if err != nil {
				fmt.Printf("No config file found at %s\n", cfgPath)
				fmt.Println("\nDefault configuration:")
				fmt.Println(provider.SampleConfigYAML())
				return
			}

			fmt.Printf("# Config file: %s\n", cfgPath)
			fmt.Println(string(data))
		},
	}
}

func newConfigEffectiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "effective",
		Short: "Print effective config after env/flag overrides",
		Run: func(cmd *cobra.Command, args []string) {
			conf := config.NewDefaultConfig()
			applyFlags(cmd.Flags(), &conf)

			effective := buildEffectiveConfig(conf)
			out, err := yaml.Marshal(effective)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
				os.Exit(1)
			}
			fmt.Print(string(out))
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate config values and required provider fields",
		Run: func(cmd *cobra.Command, args []string) {
			conf := config.NewDefaultConfig()
			applyFlags(cmd.Flags(), &conf)

			errs := validateEffectiveConfig(conf)
			if len(errs) > 0 {
				fmt.Println("Configuration is invalid:")
				for _, e := range errs {
					fmt.Printf("- %s\n", e)
				}
				os.Exit(1)
			}
			fmt.Println("Configuration is valid.")
		},
	}
}

func buildEffectiveConfig(conf config.Config) map[string]interface{} {
	v := conf.Viper
	if v == nil {
		v = config.NewStore()
	}

	pcfg := provider.ResolveProvider(v)
	pv := pcfg.Viper

	out := map[string]interface{}{
		"provider": pcfg.Name,
		"providers": map[string]interface{}{
			pcfg.Name: providerBlock(pv),
		},
		"github": map[string]interface{}{
			"token":    redactSecret(githubToken(conf)),
			"base_url": strings.TrimSpace(v.GetString("github.base_url")),
		},
		"debug": v.GetBool("debug"),
	}

	return out
}

func providerBlock(v *config.Store) map[string]interface{} {
	if v == nil {
		v = config.NewStore()
	}
	return map[string]interface{}{
		"api_key":    redactSecret(v.GetString("api_key")),
		"model":      strings.TrimSpace(v.GetString("model")),
		"base_url":   strings.TrimSpace(v.GetString("base_url")),
		"max_tokens": intOrDefault(v.GetInt("max_tokens"), 2000),
		"timeout":    strOrDefault(v.GetString("timeout"), "120s"),
	}
}

func validateEffectiveConfig(conf config.Config) []string {
	v := conf.Viper
	if v == nil {
		v = config.NewStore()
	}
	var errs []string
	pcfg := provider.ResolveProvider(v)
	pv := pcfg.Viper

	apiKey := strings.TrimSpace(pv.GetString("api_key"))
	baseURL := strings.TrimSpace(pv.GetString("base_url"))

	switch pcfg.Name {
	case "openai":
		if apiKey == "" {
			errs = append(errs, "providers.openai.api_key (or OPENAI_API_KEY) is required")
		}
	case "gemini":
		if apiKey == "" {
			errs = append(errs, "providers.gemini.api_key (or GEMINI_API_KEY) is required")
		}
	case "anthropic", "claude":
		if apiKey == "" {
			errs = append(errs, "providers.anthropic.api_key (or ANTHROPIC_API_KEY) is required")
		}
	default:
		if baseURL == "" {
			errs = append(errs, fmt.Sprintf("providers.%s.base_url (or PURR_%s_BASE_URL) is required", pcfg.Name, strings.ToUpper(pcfg.Name)))
		}
	}

	return errs
}

func intOrDefault(v, d int) int {
	if v == 0 {
		return d
	}
	return v
}

func strOrDefault(v, d string) string {
	if strings.TrimSpace(v) == "" {
		return d
	}
	return v
}

func redactSecret(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	return "***"
}
