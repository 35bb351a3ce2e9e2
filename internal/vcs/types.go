package vcs

import "context"

// VCSProvider abstracts the code-hosting platform operations that the review
// pipeline needs (GitHub today, anything with pull requests tomorrow).
type VCSProvider interface {
	Info() ProviderInfo
	FetchPR(ctx context.Context, repo string, number int) (*PullRequest, error)
	ListPRFiles(ctx context.Context, repo string, number int) ([]ChangedFile, error)
	ListPRCommits(ctx context.Context, repo string, number int) ([]Commit, error)
	ListOpenPRs(ctx context.Context, repo string) ([]*PullRequest, error)
	GetUser(ctx context.Context) (*User, error)
	Validate() error
}

// ProviderInfo describes a VCS provider.
type ProviderInfo struct {
	Name    string
	BaseURL string
}

// PullRequest holds pull request metadata. Additions and Deletions are the
// PR-level totals, not per-file counts.
type PullRequest struct {
	Number     int
	Title      string
	Body       string
	Author     string
	HeadBranch string
	BaseBranch string
	State      string
	Additions  int
	Deletions  int
	Commits    int
	URL        string
}

// ChangedFile represents one file touched by a pull request. Patch is the
// unified diff hunk text as returned by the platform; it is empty for binary
// files and for files whose diff the platform declined to inline.
type ChangedFile struct {
	Filename  string
	Status    string
	Additions int
	Deletions int
	Patch     string
}

// Commit holds the subset of commit data used for description generation.
type Commit struct {
	SHA     string
	Message string
}

// User identifies the authenticated account.
type User struct {
	Login string
	Name  string
}
