package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	defaultAPIBase = "https://api.github.com"
	userAgent      = "nimfox/1.0"
)

// GitHubClient is a minimal typed client for the handful of GitHub API
// endpoints resolution needs: tag refs, commit metadata, release and tag
// listings.
type GitHubClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewGitHubClient builds a client with the given request timeout. A bearer
// token is picked up from GITHUB_TOKEN or GITHUB_API_TOKEN to raise API
// rate limits.
func NewGitHubClient(timeout time.Duration) *GitHubClient {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_API_TOKEN")
	}
	return &GitHubClient{
		BaseURL:    defaultAPIBase,
		HTTPClient: &http.Client{Timeout: timeout},
		Token:      token,
	}
}

type refObject struct {
	SHA  string `json:"sha"`
	Type string `json:"type"`
}

type tagRef struct {
	Ref    string    `json:"ref"`
	Object refObject `json:"object"`
}

type commitDetail struct {
	SHA    string `json:"sha"`
	Commit struct {
		Committer struct {
			Date time.Time `json:"date"`
		} `json:"committer"`
	} `json:"commit"`
}

// Release is one entry from a repository release listing.
type Release struct {
	TagName string         `json:"tag_name"`
	Assets  []ReleaseAsset `json:"assets"`
}

// ReleaseAsset is a downloadable file attached to a release.
type ReleaseAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type repoTag struct {
	Name string `json:"name"`
}

// TagCommit resolves a tag name to the commit hash it points at.
func (c *GitHubClient) TagCommit(ctx context.Context, owner, repo, tag string) (string, error) {
	var ref tagRef
	path := fmt.Sprintf("/repos/%s/%s/git/ref/tags/%s", owner, repo, url.PathEscape(tag))
	if err := c.get(ctx, path, &ref); err != nil {
		return "", err
	}
	if ref.Object.SHA == "" {
		return "", fmt.Errorf("tag %s has no commit", tag)
	}
	return ref.Object.SHA, nil
}

// CommitDate returns the committer date of a commit.
func (c *GitHubClient) CommitDate(ctx context.Context, owner, repo, sha string) (time.Time, error) {
	var detail commitDetail
	path := fmt.Sprintf("/repos/%s/%s/commits/%s", owner, repo, url.PathEscape(sha))
	if err := c.get(ctx, path, &detail); err != nil {
		return time.Time{}, err
	}
	if detail.Commit.Committer.Date.IsZero() {
		return time.Time{}, fmt.Errorf("commit %s has no committer date", sha)
	}
	return detail.Commit.Committer.Date, nil
}

// Releases fetches one page of a repository's release listing.
func (c *GitHubClient) Releases(ctx context.Context, owner, repo string, page, perPage int) ([]Release, error) {
	var releases []Release
	path := fmt.Sprintf("/repos/%s/%s/releases?per_page=%d&page=%d", owner, repo, perPage, page)
	if err := c.get(ctx, path, &releases); err != nil {
		return nil, err
	}
	return releases, nil
}

// Tags fetches one page of a repository's tag names.
func (c *GitHubClient) Tags(ctx context.Context, owner, repo string, page, perPage int) ([]string, error) {
	var tags []repoTag
	path := fmt.Sprintf("/repos/%s/%s/tags?per_page=%d&page=%d", owner, repo, perPage, page)
	if err := c.get(ctx, path, &tags); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names, nil
}

func (c *GitHubClient) get(ctx context.Context, path string, out any) error {
	base := c.BaseURL
	if base == "" {
		base = defaultAPIBase
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("github request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("github request %s: unexpected status %s", path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode github response: %w", err)
	}
	return nil
}
