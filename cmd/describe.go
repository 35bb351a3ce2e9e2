package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	common "github.com/sanix-darker/purr/internal/common"
	"github.com/sanix-darker/purr/internal/config"
	"github.com/sanix-darker/purr/internal/describe"
	"github.com/sanix-darker/purr/internal/renders"
	"github.com/sanix-darker/purr/internal/vcs"
	models "github.com/sanix-darker/purr/models"
)

// NewDescribeCmd: add the describe command
func NewDescribeCmd(conf config.Config) *cobra.Command {

	// describeCmd represents the describeCmd for the command
	describeCmd := &cobra.Command{
		Use:     "describe",
		Short:   "generate a pull request description with an AI provider.",
		Example: "purr describe --repo owner/repo --pr 123\npurr describe  # uses the current branch's open PR",
		Run: func(cmd *cobra.Command, args []string) {
			applyFlags(cmd.Flags(), &conf)

			repo, _ := cmd.Flags().GetString("repo")
			prNumber, _ := cmd.Flags().GetInt("pr")
			copyToClipboard, _ := cmd.Flags().GetBool("copy")

			runDescribe(conf, repo, prNumber, copyToClipboard)
		},
	}

	return describeCmd
}

func runDescribe(conf config.Config, repo string, prNumber int, copyToClipboard bool) {
	token := githubToken(conf)
	if token == "" {
		common.LogError("GitHub token required. Set GITHUB_TOKEN environment variable or use --token option.", true)
	}
	if envName := completionKeyMissing(conf); envName != "" {
		common.LogError(fmt.Sprintf("OpenAI API key required. Set %s environment variable.", envName), true)
	}

	vp, err := newVCSProvider(conf, token)
	if err != nil {
		common.LogError(fmt.Sprintf("Error: %v", err), true)
	}
	ai, err := resolveProvider(conf)
	if err != nil {
		common.LogError(fmt.Sprintf("Error: %v", err), true)
	}

	if repo == "" {
		repo, err = describe.RepoFromRemote(".")
		if err != nil {
			common.LogError("Could not determine repository. Please specify with --repo option.", true)
		}
	}

	common.LogInfo(fmt.Sprintf("Analyzing repository: %s", repo))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pullRequest := findPullRequest(ctx, vp, repo, prNumber)

	info, err := describe.Gather(ctx, vp, repo, pullRequest)
	if err != nil {
		common.LogError(fmt.Sprintf("GitHub API error: %v", err), true)
	}

	fmt.Print(renders.RenderMarkdown(describe.FormatCurrentInfo(info)))

	common.LogInfo("Generating new PR description with OpenAI...")
	gen := &describe.Generator{Provider: ai, Model: conf.Model}
	description, err := gen.Generate(ctx, info)
	if err != nil {
		common.LogInfo(fmt.Sprintf("OpenAI API error: %v", err))
		common.LogError("Failed to generate description", true)
	}
	if description == "" {
		common.LogError("Failed to generate description", true)
	}

	fmt.Print(renders.RenderMarkdown("## Generated PR Description\n\n" + description + "\n"))

	if copyToClipboard {
		if err := common.SetClipboardValue(description); err != nil {
			common.LogInfo(fmt.Sprintf("Could not copy to clipboard: %v", err))
		} else {
			common.LogInfo("Description copied to clipboard!")
		}
	}
}

// findPullRequest resolves the target PR: an explicit number wins, otherwise
// the open PR whose head matches the current branch. Exits on failure.
func findPullRequest(ctx context.Context, vp vcs.VCSProvider, repo string, prNumber int) *vcs.PullRequest {
	if prNumber != 0 {
		pullRequest, err := vp.FetchPR(ctx, repo, prNumber)
		if err != nil {
			common.LogError(fmt.Sprintf("GitHub API error: %v", err), true)
		}
		return pullRequest
	}

	branch, err := describe.CurrentBranch(".")
	if err != nil {
		common.LogError("Could not determine current branch", true)
	}

	pullRequest, err := describe.FindOpenPRForBranch(ctx, vp, repo, branch)
	if err != nil {
		if errors.Is(err, describe.ErrNoOpenPR) {
			common.LogError(fmt.Sprintf("No open PR found for branch: %s", branch), true)
		}
		common.LogError(fmt.Sprintf("GitHub API error: %v", err), true)
	}
	return pullRequest
}

func init() {

	conf := config.NewDefaultConfig()
	describeCmd := NewDescribeCmd(conf)
	rootCmd.AddCommand(describeCmd)

	for _, fg := range []models.FlagStruct{
		{
			Label:        "repo",
			Short:        "r",
			DefaultValue: "",
			Description:  "repository in owner/repo format (defaults to the origin remote)",
		},
		{
			Label:        "token",
			Short:        "t",
			DefaultValue: "",
			Description:  "GitHub token (defaults to GITHUB_TOKEN env var)",
		},
	} {
		describeCmd.PersistentFlags().StringP(
			fg.Label,
			fg.Short,
			fg.DefaultValue,
			fg.Description,
		)
	}

	describeCmd.PersistentFlags().IntP("pr", "p", 0, "pull request number (defaults to the current branch's open PR)")
	describeCmd.PersistentFlags().Bool("copy", false, "copy the generated description to the clipboard")
}
