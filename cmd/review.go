/*
Copyright © 2023 sanix-darker <s4nixd@gmail.com>

The main review module: fetches a pull request and its per-file diff from
GitHub, hands the assembled blob to the configured AI provider (single-shot
or chunk by chunk) and renders the structured result in the terminal.
*/

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	common "github.com/sanix-darker/purr/internal/common"
	"github.com/sanix-darker/purr/internal/config"
	"github.com/sanix-darker/purr/internal/renders"
	"github.com/sanix-darker/purr/internal/review"
	models "github.com/sanix-darker/purr/models"
)

// NewReviewCmd: add the review command
func NewReviewCmd(conf config.Config) *cobra.Command {

	// reviewCmd represents the reviewCmd for the command
	reviewCmd := &cobra.Command{
		Use:     "review",
		Short:   "review a GitHub pull request with an AI provider.",
		Example: "purr review --repo owner/repo --pr 123\npurr review -r owner/repo -p 123 -o results.json",
		Run: func(cmd *cobra.Command, args []string) {
			applyFlags(cmd.Flags(), &conf)

			repo, _ := cmd.Flags().GetString("repo")
			prNumber, _ := cmd.Flags().GetInt("pr")
			output, _ := cmd.Flags().GetString("output")
			forceChunk, _ := cmd.Flags().GetBool("chunk")

			runReview(conf, repo, prNumber, output, forceChunk)
		},
	}

	return reviewCmd
}

func runReview(conf config.Config, repo string, prNumber int, output string, forceChunk bool) {
	token := githubToken(conf)
	if token == "" {
		common.LogError("Error: GitHub token required. Set GITHUB_TOKEN environment variable or use --token option.", true)
	}
	if envName := completionKeyMissing(conf); envName != "" {
		common.LogError(fmt.Sprintf("Error: %s environment variable is required.", envName), true)
	}

	vp, err := newVCSProvider(conf, token)
	if err != nil {
		common.LogError(fmt.Sprintf("Error: %v", err), true)
	}
	ai, err := resolveProvider(conf)
	if err != nil {
		common.LogError(fmt.Sprintf("Error: %v", err), true)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	common.LogInfo(fmt.Sprintf("Fetching PR #%d from %s...", prNumber, repo))
	pullRequest, err := vp.FetchPR(ctx, repo, prNumber)
	if err != nil {
		exitIfCancelled(ctx)
		common.LogError(fmt.Sprintf("Error fetching PR: %v", err), true)
	}

	common.LogInfo("Fetching PR diff...")
	files, err := vp.ListPRFiles(ctx, repo, prNumber)
	if err != nil {
		exitIfCancelled(ctx)
		common.LogError(fmt.Sprintf("Error fetching PR diff: %v", err), true)
	}

	col := review.Collect(files)
	common.LogInfo(fmt.Sprintf("Processed %d files with %d total changes", col.Files, col.Changes))

	blob := col.Blob()
	if strings.TrimSpace(blob) == "" {
		common.LogInfo("Warning: No diff content found. The PR might be empty or only contain binary files.")
		return
	}

	common.LogInfo("Analyzing code with OpenAI...")

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = os.Stderr
	s.Suffix = " analyzing..."
	s.Start()

	analyzer := &review.Analyzer{
		Provider: ai,
		Model:    conf.Model,
		Out:      os.Stdout,
		Err:      os.Stderr,
		OnProgress: func(stage string, current, total int) {
			s.Suffix = " " + stage
		},
	}

	var result review.ReviewResult
	if forceChunk {
		common.LogInfo("Forced chunked analysis requested...")
		result, err = analyzer.AnalyzeChunked(ctx, blob, pullRequest.Title)
	} else {
		result, err = analyzer.Analyze(ctx, blob, pullRequest.Title, pullRequest.Body)
	}
	s.Stop()
	if err != nil {
		exitIfCancelled(ctx)
		common.LogError(fmt.Sprintf("Unexpected error: %v", err), true)
	}

	fmt.Print(renders.RenderMarkdown(review.FormatReviewReport(result, prNumber, pullRequest.Title, repo)))

	if output != "" {
		data, err := review.ExportJSON(result, prNumber, repo)
		if err != nil {
			common.LogError(fmt.Sprintf("Unexpected error: %v", err), true)
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			common.LogError(fmt.Sprintf("Unexpected error: %v", err), true)
		}
		common.LogInfo(fmt.Sprintf("Results saved to %s", output))
	}
}

// exitIfCancelled turns an interrupt into the cancellation message instead
// of the error path the failed call would otherwise report.
func exitIfCancelled(ctx context.Context) {
	if errors.Is(ctx.Err(), context.Canceled) {
		common.LogError("\nReview cancelled by user.", true)
	}
}

func init() {

	conf := config.NewDefaultConfig()
	reviewCmd := NewReviewCmd(conf)
	rootCmd.AddCommand(reviewCmd)

	// set common flags smartly (repo, token, model, output)
	for _, fg := range []models.FlagStruct{
		{
			Label:        "repo",
			Short:        "r",
			DefaultValue: "",
			Description:  "repository in owner/repo format",
		},
		{
			Label:        "token",
			Short:        "t",
			DefaultValue: "",
			Description:  "GitHub token (defaults to GITHUB_TOKEN env var)",
		},
		{
			Label:        "model",
			Short:        "m",
			DefaultValue: "auto",
			Description:  "model to use (auto picks one based on diff size)",
		},
		{
			Label:        "output",
			Short:        "o",
			DefaultValue: "",
			Description:  "save results as JSON to this file",
		},
	} {
		reviewCmd.PersistentFlags().StringP(
			fg.Label,
			fg.Short,
			fg.DefaultValue,
			fg.Description,
		)
	}

	reviewCmd.PersistentFlags().IntP("pr", "p", 0, "pull request number")
	reviewCmd.PersistentFlags().BoolP("chunk", "c", false, "force chunked analysis")

	_ = reviewCmd.MarkPersistentFlagRequired("repo")
	_ = reviewCmd.MarkPersistentFlagRequired("pr")
}
