package describe

import (
	"context"
	"fmt"
	"strings"

	"github.com/sanix-darker/purr/internal/provider"
)

const systemPromptDescribe = "You are a senior software engineer who writes clear, concise, " +
	"and professional pull request descriptions. Focus on the technical changes and their impact."

const (
	describeMaxTokens   = 300
	describeTemperature = 0.3
	recentCommitCount   = 5
)

// Generator produces PR descriptions through an AI provider. Model pins a
// specific model; empty or "auto" uses gpt-4 on OpenAI and the provider's
// default elsewhere.
type Generator struct {
	Provider provider.AIProvider
	Model    string
}

// Generate asks the model for a fresh description of the PR. The returned
// text is whitespace-trimmed; an empty answer comes back as "" with a nil
// error and is the caller's signal that generation produced nothing usable.
func (g *Generator) Generate(ctx context.Context, info *PRInfo) (string, error) {
	temp := float64(describeTemperature)
	req := provider.CompletionRequest{
		Model:       g.model(),
		MaxTokens:   describeMaxTokens,
		Temperature: &temp,
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: systemPromptDescribe},
			{Role: provider.RoleUser, Content: BuildPrompt(info)},
		},
	}

	content, err := provider.CompleteText(ctx, g.Provider, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (g *Generator) model() string {
	if g.Model != "" && g.Model != "auto" {
		return g.Model
	}
	if g.Provider.Info().Name == "openai" {
		return "gpt-4"
	}
	return ""
}

// BuildPrompt renders the PR metadata into the description-writing
// instruction. Only the most recent commit messages are included; long
// histories add noise without adding signal.
func BuildPrompt(info *PRInfo) string {
	body := info.Body
	if body == "" {
		body = "No description provided"
	}

	return fmt.Sprintf(`
You are a senior software engineer tasked with creating a concise, professional pull request description.

Please analyze the following PR information and create a clear, concise description that:
1. Summarizes the main changes in 1-2 sentences
2. Highlights key technical changes
3. Mentions any breaking changes or important notes
4. Uses professional, clear language
5. Is under 200 words

PR Information:
- Title: %s
- Files changed: %s
- Additions: %d lines
- Deletions: %d lines
- Branch: %s → %s
- Commits: %d commits

Recent commit messages:
%s

Current PR description:
%s

Please provide a concise, professional PR description:
`,
		info.Title,
		strings.Join(info.FilesChanged, ", "),
		info.Additions,
		info.Deletions,
		info.Branch,
		info.BaseBranch,
		len(info.Commits),
		strings.Join(recentCommits(info.Commits), "\n"),
		body,
	)
}

func recentCommits(commits []string) []string {
	if len(commits) > recentCommitCount {
		return commits[len(commits)-recentCommitCount:]
	}
	return commits
}
