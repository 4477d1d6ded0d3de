package ado

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kallberg/ach/internal/locator"
	"github.com/kallberg/ach/internal/provider"
)

const (
	// DefaultBaseURL is the Azure DevOps Services REST endpoint.
	DefaultBaseURL = "https://dev.azure.com"
	// DefaultAPIVersion is the REST API version sent with every request.
	DefaultAPIVersion = "7.1"
)

// ErrAuthExpired indicates that ADO answered with its sign-in page (HTTP 203)
// instead of data, which happens when the token is invalid or expired.
var ErrAuthExpired = errors.New("ADO rejected the token (HTTP 203 sign-in redirect)")

// Backend implements provider.PRBackend for Azure DevOps.
type Backend struct {
	auth       *AuthProvider
	httpClient *http.Client
	baseURL    string
	apiVersion string
}

// NewBackend creates an ADO backend that authenticates with auth.
func NewBackend(auth *AuthProvider) *Backend {
	return &Backend{
		auth:       auth,
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		apiVersion: DefaultAPIVersion,
	}
}

// SetBaseURL overrides the service endpoint, e.g. for an on-premises server.
func (b *Backend) SetBaseURL(baseURL string) {
	if baseURL != "" {
		b.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// SetAPIVersion overrides the api-version query parameter.
func (b *Backend) SetAPIVersion(version string) {
	if version != "" {
		b.apiVersion = version
	}
}

// SetTimeout bounds each HTTP request. Zero means no timeout.
func (b *Backend) SetTimeout(d time.Duration) {
	b.httpClient.Timeout = d
}

// ListPullRequests lists the repository's pull requests. Without search
// criteria ADO returns active pull requests only, in its own order.
func (b *Backend) ListPullRequests(ctx context.Context, coords locator.Coordinates) ([]provider.PullRequest, error) {
	path := fmt.Sprintf("/%s/%s/_apis/git/repositories/%s/pullrequests",
		url.PathEscape(coords.Organization), url.PathEscape(coords.Project), url.PathEscape(coords.Repository))

	var list adoList[adoPullRequest]
	if err := b.getJSON(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}

	prs := make([]provider.PullRequest, 0, len(list.Value))
	for _, pr := range list.Value {
		prs = append(prs, provider.PullRequest{
			ID:           pr.PullRequestID,
			RepositoryID: pr.Repository.ID,
		})
	}
	return prs, nil
}

// ListPullRequestCommits lists the commit ids of a pull request. The call is
// routed by the pull request's repository id rather than the repository name.
func (b *Backend) ListPullRequestCommits(ctx context.Context, coords locator.Coordinates, pr provider.PullRequest) ([]string, error) {
	repo := pr.RepositoryID
	if repo == "" {
		repo = coords.Repository
	}

	path := fmt.Sprintf("/%s/%s/_apis/git/repositories/%s/pullRequests/%d/commits",
		url.PathEscape(coords.Organization), url.PathEscape(coords.Project), url.PathEscape(repo), pr.ID)

	var list adoList[adoCommitRef]
	if err := b.getJSON(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("failed to list commits of pull request %d: %w", pr.ID, err)
	}

	commits := make([]string, 0, len(list.Value))
	for _, c := range list.Value {
		if c.CommitID == "" {
			continue
		}
		commits = append(commits, c.CommitID)
	}
	return commits, nil
}

// ListPullRequestWorkItems lists the ids of work items linked to a pull
// request. References without an id are skipped.
func (b *Backend) ListPullRequestWorkItems(ctx context.Context, coords locator.Coordinates, pr provider.PullRequest) ([]string, error) {
	path := fmt.Sprintf("/%s/%s/_apis/git/repositories/%s/pullRequests/%d/workitems",
		url.PathEscape(coords.Organization), url.PathEscape(coords.Project), url.PathEscape(coords.Repository), pr.ID)

	var list adoList[adoResourceRef]
	if err := b.getJSON(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("failed to list work items of pull request %d: %w", pr.ID, err)
	}

	ids := make([]string, 0, len(list.Value))
	for _, ref := range list.Value {
		if ref.ID == nil {
			continue
		}
		ids = append(ids, *ref.ID)
	}
	return ids, nil
}

// getJSON performs an authenticated GET and decodes a 200 response into out.
func (b *Backend) getJSON(ctx context.Context, path string, out any) error {
	resp, err := b.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return b.parseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// doRequest makes a single authenticated HTTP request to the ADO API.
// Requests are never retried.
func (b *Backend) doRequest(ctx context.Context, method, path string) (*http.Response, error) {
	fullURL := b.baseURL + path + "?api-version=" + url.QueryEscape(b.apiVersion)

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if err := b.auth.Authorize(req); err != nil {
		return nil, fmt.Errorf("failed to authorize request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("ADO request", "method", method, "path", path)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode == http.StatusNonAuthoritativeInfo {
		resp.Body.Close()
		return nil, ErrAuthExpired
	}
	return resp, nil
}

// parseError extracts error information from an ADO API error response.
func (b *Backend) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ADO API error (status %d): could not read response body", resp.StatusCode)
	}

	var adoErr adoError
	if err := json.Unmarshal(body, &adoErr); err != nil || adoErr.Message == "" {
		// Non-JSON response (e.g. HTML error pages). Truncate to avoid log spam.
		truncated := strings.TrimSpace(string(body))
		if len(truncated) > 200 {
			truncated = truncated[:200] + "... (truncated)"
		}
		return fmt.Errorf("ADO API error (status %d): %s", resp.StatusCode, truncated)
	}

	return fmt.Errorf("ADO API error (status %d, %s): %s", resp.StatusCode, adoErr.TypeKey, adoErr.Message)
}

// String identifies the backend in logs.
func (b *Backend) String() string {
	return "ado(" + b.baseURL + ", api-version=" + b.apiVersion + ")"
}

// Verify Backend implements PRBackend at compile time.
var _ provider.PRBackend = (*Backend)(nil)
