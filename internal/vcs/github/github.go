// Package github implements the vcs.VCSProvider interface against the
// GitHub REST API.
//
// Like the completion providers it uses go-resty/v2 for transport. List
// endpoints follow RFC 5988 Link headers until the last page.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sanix-darker/purr/internal/vcs"
)

// Provider implements vcs.VCSProvider for GitHub.
type Provider struct {
	client  *resty.Client
	baseURL string
	token   string
}

func init() {
	vcs.Register("github", NewProvider)
}

// NewProvider creates a GitHub VCSProvider.
func NewProvider(token, baseURL string) (vcs.VCSProvider, error) {
	if token == "" {
		return nil, fmt.Errorf("github: token is required")
	}
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}

	client := resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("User-Agent", "purr-cli").
		SetAuthToken(token)

	return &Provider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}, nil
}

func (p *Provider) Info() vcs.ProviderInfo {
	return vcs.ProviderInfo{Name: "github", BaseURL: p.baseURL}
}

func (p *Provider) Validate() error {
	if p.token == "" {
		return fmt.Errorf("github: token is required")
	}
	return nil
}

// prPayload is the subset of the GitHub pull request object used here.
type prPayload struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	User   struct {
		Login string `json:"login"`
	} `json:"user"`
	Head struct {
		Ref string `json:"ref"`
	} `json:"head"`
	Base struct {
		Ref string `json:"ref"`
	} `json:"base"`
	State     string `json:"state"`
	HTMLURL   string `json:"html_url"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Commits   int    `json:"commits"`
}

func toPullRequest(pr *prPayload) *vcs.PullRequest {
	return &vcs.PullRequest{
		Number:     pr.Number,
		Title:      pr.Title,
		Body:       pr.Body,
		Author:     pr.User.Login,
		HeadBranch: pr.Head.Ref,
		BaseBranch: pr.Base.Ref,
		State:      pr.State,
		Additions:  pr.Additions,
		Deletions:  pr.Deletions,
		Commits:    pr.Commits,
		URL:        pr.HTMLURL,
	}
}

func (p *Provider) FetchPR(ctx context.Context, repo string, number int) (*vcs.PullRequest, error) {
	var pr prPayload
	if _, err := p.getJSON(ctx, fmt.Sprintf("/repos/%s/pulls/%d", repo, number), &pr); err != nil {
		return nil, fmt.Errorf("github: failed to fetch PR #%d: %w", number, err)
	}
	return toPullRequest(&pr), nil
}

func (p *Provider) ListPRFiles(ctx context.Context, repo string, number int) ([]vcs.ChangedFile, error) {
	type prFile struct {
		Filename  string `json:"filename"`
		Status    string `json:"status"`
		Additions int    `json:"additions"`
		Deletions int    `json:"deletions"`
		Patch     string `json:"patch"`
	}

	var all []vcs.ChangedFile
	page := 1
	for {
		endpoint := fmt.Sprintf("/repos/%s/pulls/%d/files?per_page=100&page=%d", repo, number, page)
		var files []prFile
		resp, err := p.getJSON(ctx, endpoint, &files)
		if err != nil {
			return nil, fmt.Errorf("github: failed to fetch PR files: %w", err)
		}

		for _, f := range files {
			all = append(all, vcs.ChangedFile{
				Filename:  f.Filename,
				Status:    f.Status,
				Additions: f.Additions,
				Deletions: f.Deletions,
				Patch:     f.Patch,
			})
		}

		if !hasNextPage(resp.Header().Get("Link")) {
			break
		}
		page++
	}

	return all, nil
}

func (p *Provider) ListPRCommits(ctx context.Context, repo string, number int) ([]vcs.Commit, error) {
	type prCommit struct {
		SHA    string `json:"sha"`
		Commit struct {
			Message string `json:"message"`
		} `json:"commit"`
	}

	var all []vcs.Commit
	page := 1
	for {
		endpoint := fmt.Sprintf("/repos/%s/pulls/%d/commits?per_page=100&page=%d", repo, number, page)
		var commits []prCommit
		resp, err := p.getJSON(ctx, endpoint, &commits)
		if err != nil {
			return nil, fmt.Errorf("github: failed to fetch PR commits: %w", err)
		}

		for _, c := range commits {
			all = append(all, vcs.Commit{SHA: c.SHA, Message: c.Commit.Message})
		}

		if !hasNextPage(resp.Header().Get("Link")) {
			break
		}
		page++
	}

	return all, nil
}

func (p *Provider) ListOpenPRs(ctx context.Context, repo string) ([]*vcs.PullRequest, error) {
	var result []*vcs.PullRequest
	page := 1
	for {
		endpoint := fmt.Sprintf("/repos/%s/pulls?state=open&per_page=100&page=%d", repo, page)
		var prs []prPayload
		resp, err := p.getJSON(ctx, endpoint, &prs)
		if err != nil {
			return nil, fmt.Errorf("github: failed to list PRs: %w", err)
		}

		for i := range prs {
			result = append(result, toPullRequest(&prs[i]))
		}

		if !hasNextPage(resp.Header().Get("Link")) {
			break
		}
		page++
	}
	return result, nil
}

func (p *Provider) GetUser(ctx context.Context) (*vcs.User, error) {
	var u struct {
		Login string `json:"login"`
		Name  string `json:"name"`
	}
	if _, err := p.getJSON(ctx, "/user", &u); err != nil {
		return nil, fmt.Errorf("github: failed to fetch authenticated user: %w", err)
	}
	return &vcs.User{Login: u.Login, Name: u.Name}, nil
}

// getJSON performs a GET against the API and decodes the body into out. The
// response is returned so list callers can read pagination headers.
func (p *Provider) getJSON(ctx context.Context, endpoint string, out interface{}) (*resty.Response, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		Get(p.baseURL + endpoint)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return resp, fmt.Errorf("HTTP %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return resp, err
		}
	}

	return resp, nil
}

func hasNextPage(linkHeader string) bool {
	if linkHeader == "" {
		return false
	}
	parts := strings.Split(linkHeader, ",")
	for _, part := range parts {
		if strings.Contains(part, `rel="next"`) {
			return true
		}
	}
	return false
}
