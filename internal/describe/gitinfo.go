package describe

import (
	"fmt"
	"strings"

	git "gopkg.in/src-d/go-git.v4"
)

// RepoFromRemote infers the "owner/repo" slug from the origin remote of the
// repository containing dir. Only github.com HTTPS and SSH remotes are
// recognized.
func RepoFromRemote(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("describe: open repository: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("describe: remote origin: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("describe: remote origin has no URL")
	}

	slug, ok := parseGitHubRemote(urls[0])
	if !ok {
		return "", fmt.Errorf("describe: unrecognized remote URL %q", urls[0])
	}
	return slug, nil
}

// CurrentBranch returns the checked-out branch of the repository containing
// dir. Detached HEADs are an error since no PR can be matched to them.
func CurrentBranch(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("describe: open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("describe: resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("describe: HEAD is detached")
	}
	return head.Name().Short(), nil
}

func parseGitHubRemote(url string) (string, bool) {
	switch {
	case strings.HasPrefix(url, "https://github.com/"):
		return strings.TrimSuffix(strings.TrimPrefix(url, "https://github.com/"), ".git"), true
	case strings.HasPrefix(url, "git@github.com:"):
		return strings.TrimSuffix(strings.TrimPrefix(url, "git@github.com:"), ".git"), true
	}
	return "", false
}
