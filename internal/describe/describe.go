// Package describe generates pull request descriptions. It gathers PR
// metadata (title, commits, changed files) from the hosting platform,
// builds a summarization prompt from it, and asks an AI provider for a
// short professional description.
package describe

import (
	"context"
	"errors"
	"fmt"

	"github.com/sanix-darker/purr/internal/vcs"
)

// ErrNoOpenPR reports that no open pull request has the asked-for head
// branch.
var ErrNoOpenPR = errors.New("no open pull request for branch")

// PRInfo is the metadata snapshot a description is generated from.
type PRInfo struct {
	Title        string
	Body         string
	FilesChanged []string
	Additions    int
	Deletions    int
	Commits      []string
	Branch       string
	BaseBranch   string
}

// FindOpenPRForBranch scans the repo's open pull requests for one whose
// head branch matches branch. Wraps ErrNoOpenPR when nothing matches.
func FindOpenPRForBranch(ctx context.Context, vp vcs.VCSProvider, repo, branch string) (*vcs.PullRequest, error) {
	pulls, err := vp.ListOpenPRs(ctx, repo)
	if err != nil {
		return nil, err
	}
	for _, p := range pulls {
		if p.HeadBranch == branch {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoOpenPR, branch)
}

// Gather fills a PRInfo from the platform: the PR's own metadata plus the
// changed-file names and every commit message.
func Gather(ctx context.Context, vp vcs.VCSProvider, repo string, pr *vcs.PullRequest) (*PRInfo, error) {
	files, err := vp.ListPRFiles(ctx, repo, pr.Number)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Filename)
	}

	commits, err := vp.ListPRCommits(ctx, repo, pr.Number)
	if err != nil {
		return nil, err
	}
	messages := make([]string, 0, len(commits))
	for _, c := range commits {
		messages = append(messages, c.Message)
	}

	return &PRInfo{
		Title:        pr.Title,
		Body:         pr.Body,
		FilesChanged: names,
		Additions:    pr.Additions,
		Deletions:    pr.Deletions,
		Commits:      messages,
		Branch:       pr.HeadBranch,
		BaseBranch:   pr.BaseBranch,
	}, nil
}

// FormatCurrentInfo renders the PR's existing state, shown before the
// generated description so the user sees what it was derived from.
func FormatCurrentInfo(info *PRInfo) string {
	return fmt.Sprintf("## Current PR Information\n\n"+
		"**PR Title:** %s\n\n"+
		"**Branch:** %s → %s\n\n"+
		"**Files Changed:** %d\n\n"+
		"**Changes:** +%d -%d\n",
		info.Title, info.Branch, info.BaseBranch,
		len(info.FilesChanged), info.Additions, info.Deletions)
}
