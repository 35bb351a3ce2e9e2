package describe

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	git "gopkg.in/src-d/go-git.v4"
	gitconfig "gopkg.in/src-d/go-git.v4/config"
	"gopkg.in/src-d/go-git.v4/plumbing/object"
)

func TestParseGitHubRemote(t *testing.T) {
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://github.com/acme/webapp.git", "acme/webapp", true},
		{"https://github.com/acme/webapp", "acme/webapp", true},
		{"git@github.com:acme/webapp.git", "acme/webapp", true},
		{"git@github.com:acme/webapp", "acme/webapp", true},
		{"https://gitlab.com/acme/webapp.git", "", false},
		{"ssh://git@bitbucket.org/acme/webapp", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := parseGitHubRemote(tt.url)
		assert.Equal(t, tt.ok, ok, "url %q", tt.url)
		assert.Equal(t, tt.want, got, "url %q", tt.url)
	}
}

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func TestRepoFromRemote(t *testing.T) {
	dir, repo := initRepo(t)
	_, err := repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:acme/webapp.git"},
	})
	require.NoError(t, err)

	slug, err := RepoFromRemote(dir)

	require.NoError(t, err)
	assert.Equal(t, "acme/webapp", slug)
}

func TestRepoFromRemoteNoOrigin(t *testing.T) {
	dir, _ := initRepo(t)

	_, err := RepoFromRemote(dir)

	assert.Error(t, err)
}

func TestRepoFromRemoteUnrecognizedURL(t *testing.T) {
	dir, repo := initRepo(t)
	_, err := repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://example.com/not/github.git"},
	})
	require.NoError(t, err)

	_, err = RepoFromRemote(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized remote URL")
}

func TestRepoFromRemoteNotARepository(t *testing.T) {
	_, err := RepoFromRemote(t.TempDir())

	assert.Error(t, err)
}

func TestCurrentBranch(t *testing.T) {
	dir, repo := initRepo(t)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x\n"), 0o644))
	_, err = wt.Add("a.txt")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	branch, err := CurrentBranch(dir)

	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestCurrentBranchEmptyRepo(t *testing.T) {
	dir, _ := initRepo(t)

	// HEAD points at an unborn branch; there is nothing to resolve.
	_, err := CurrentBranch(dir)

	assert.Error(t, err)
}
