package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
)

const (
	giteaAPIPrefix = "/api/v1"

	// pageLimit is the most records requested from list endpoints.
	// Nothing beyond the first page is fetched.
	pageLimit = 100

	defaultRequestTimeout = 30 * time.Second
)

// GiteaClient handles all Gitea API interactions
type GiteaClient struct {
	rest    *ghAPI.RESTClient
	baseURL string
}

// ClientOptions configures a GiteaClient.
type ClientOptions struct {
	BaseURL string
	Token   string

	// Timeout bounds every request. Defaults to 30s.
	Timeout time.Duration

	// CacheTTL enables the on-disk response cache when non-zero.
	CacheTTL time.Duration
	CacheDir string

	// DebugLog receives a dump of every request and response when set.
	DebugLog io.Writer

	Transport http.RoundTripper
}

// NewGiteaClient creates a Gitea API client on top of go-gh's REST client.
// The token is sent as "Authorization: token <token>" to the configured host only.
func NewGiteaClient(opts ClientOptions) (*GiteaClient, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Host == "" {
		return nil, &ConfigError{Parameter: "url", Value: opts.BaseURL, Err: fmt.Errorf("not an absolute URL")}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	restOpts := ghAPI.ClientOptions{
		Host:         base.Hostname(),
		AuthToken:    opts.Token,
		Timeout:      timeout,
		Transport:    transport,
		Headers:      map[string]string{"Accept": "application/json"},
		LogIgnoreEnv: true,
	}
	if opts.CacheTTL > 0 {
		restOpts.EnableCache = true
		restOpts.CacheTTL = opts.CacheTTL
		restOpts.CacheDir = opts.CacheDir
	}
	if opts.DebugLog != nil {
		restOpts.Log = opts.DebugLog
		restOpts.LogVerboseHTTP = true
	}

	rest, err := ghAPI.NewRESTClient(restOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return &GiteaClient{
		rest:    rest,
		baseURL: base.String(),
	}, nil
}

// BaseURL returns the instance URL without a trailing slash.
func (c *GiteaClient) BaseURL() string {
	return c.baseURL
}

// get issues a GET against an /api/v1 path and decodes the JSON body.
func (c *GiteaClient) get(ctx context.Context, path string, response any) error {
	endpoint := giteaAPIPrefix + path
	if err := c.rest.DoWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil, response); err != nil {
		return classifyError(endpoint, err)
	}
	return nil
}

// User is the subset of a Gitea user the heatmap needs.
type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// HeatmapRecord is one entry of the per-day heatmap endpoint.
type HeatmapRecord struct {
	Timestamp     int64 `json:"timestamp"`
	Contributions int   `json:"contributions"`
}

// ActivityRecord is one entry of a user's activity feed.
type ActivityRecord struct {
	ID      int64     `json:"id"`
	OpType  string    `json:"op_type"`
	Created time.Time `json:"created"`
}

// Repository is a repository owned by the user.
type Repository struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// CommitRecord is one entry of a repository's commit list.
type CommitRecord struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// FetchUser looks up a user by username.
// A 404 yields ErrUnknownUser and a 401 or 403 yields ErrBadCredential.
func (c *GiteaClient) FetchUser(ctx context.Context, username string) (*User, error) {
	var user User
	err := c.get(ctx, "/users/"+url.PathEscape(username), &user)
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("user %q does not exist: %w", username, ErrUnknownUser)
	case errors.Is(err, ErrAuthentication):
		return nil, fmt.Errorf("%w (%v)", ErrBadCredential, err)
	case errors.Is(err, ErrTransient):
		return nil, fmt.Errorf("cannot reach Gitea instance %s: %w", c.baseURL, err)
	default:
		return nil, Wrap(err, "failed to fetch user")
	}
}

// FetchHeatmap fetches the per-day contribution heatmap for a user.
func (c *GiteaClient) FetchHeatmap(ctx context.Context, username string) ([]HeatmapRecord, error) {
	var records []HeatmapRecord
	if err := c.get(ctx, "/users/"+url.PathEscape(username)+"/heatmap", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchActivityFeed fetches the activity feed for a numeric user id.
func (c *GiteaClient) FetchActivityFeed(ctx context.Context, userID int64) ([]ActivityRecord, error) {
	var records []ActivityRecord
	if err := c.get(ctx, fmt.Sprintf("/users/%d/activities/feeds", userID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchRepositories lists up to 100 repositories owned by the user.
func (c *GiteaClient) FetchRepositories(ctx context.Context, username string) ([]Repository, error) {
	var repos []Repository
	path := fmt.Sprintf("/users/%s/repos?limit=%d", url.PathEscape(username), pageLimit)
	if err := c.get(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// FetchCommits lists up to 100 recent commits of a repository given as owner/name.
func (c *GiteaClient) FetchCommits(ctx context.Context, fullName string) ([]CommitRecord, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok {
		return nil, fmt.Errorf("invalid repository name %q", fullName)
	}

	var commits []CommitRecord
	path := fmt.Sprintf("/repos/%s/%s/commits?limit=%d", url.PathEscape(owner), url.PathEscape(name), pageLimit)
	if err := c.get(ctx, path, &commits); err != nil {
		return nil, err
	}
	return commits, nil
}
