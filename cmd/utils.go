/*
Copyright © 2023 sanix-darker <s4nixd@gmail.com>
*/
package cmd

import (
	"os"
	"strings"

	"github.com/sanix-darker/purr/internal/config"
	"github.com/sanix-darker/purr/internal/provider"
	"github.com/spf13/pflag"
)

// applyFlags copies command-line flag values into the config. Flags beat
// both the environment and the config file.
func applyFlags(flags *pflag.FlagSet, conf *config.Config) {
	if v, err := flags.GetString("provider"); err == nil && v != "" {
		conf.Provider = strings.ToLower(strings.TrimSpace(v))
		conf.Viper.Set(provider.ConfigKeyProvider, conf.Provider)
	}
	if v, err := flags.GetString("model"); err == nil && v != "" {
		conf.Model = v
	}
	if v, err := flags.GetString("token"); err == nil && v != "" {
		conf.GithubToken = v
	}
	if v, err := flags.GetBool("debug"); err == nil && v {
		conf.Debug = true
	}
}

// githubToken resolves the GitHub token: --token flag, then GITHUB_TOKEN,
// then github.token from the config file.
func githubToken(conf config.Config) string {
	if conf.GithubToken != "" {
		return conf.GithubToken
	}
	if tok := os.Getenv("GITHUB_TOKEN"); tok != "" {
		return tok
	}
	return strings.TrimSpace(conf.Viper.GetString("github.token"))
}
