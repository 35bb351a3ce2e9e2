/*
Copyright © 2023 sanix-darker <s4nixd@gmail.com>

*/

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "purr",
	Short: "AI code reviews for your pull requests, in your terminal.",
	Long: `Fetch a pull request's diff from GitHub, have an AI provider review it,
and read the structured result without leaving your terminal. Also
generates PR descriptions and smoke-tests your setup.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("provider", "", "AI provider to use (openai, anthropic, gemini, ollama, ...)")
	rootCmd.PersistentFlags().Bool("debug", false, "print debug information")
}
