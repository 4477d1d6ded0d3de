// Package resolver maps a commit to the pull request that carries it and
// collects the work items linked to that pull request.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/kallberg/ach/internal/locator"
	"github.com/kallberg/ach/internal/provider"
)

// Report is the outcome of a successful resolution.
type Report struct {
	PullRequestID int   `json:"pull_request_id" yaml:"pull_request_id"`
	WorkItemIDs   []int `json:"work_item_ids" yaml:"work_item_ids"`
}

// Resolver runs lookups against a backend for one repository.
// All calls are issued one at a time.
type Resolver struct {
	backend provider.PRBackend
	coords  locator.Coordinates
}

// New creates a Resolver for the repository at coords.
func New(backend provider.PRBackend, coords locator.Coordinates) *Resolver {
	return &Resolver{backend: backend, coords: coords}
}

// Resolve returns the first pull request, in service order, whose commits
// include target. Commit ids are compared by exact string equality. It
// returns nil, nil when no pull request matches. Any backend error aborts the
// scan and is returned.
func (r *Resolver) Resolve(ctx context.Context, target string) (*provider.PullRequest, error) {
	prs, err := r.backend.ListPullRequests(ctx, r.coords)
	if err != nil {
		return nil, fmt.Errorf("listing pull requests for %s: %w", r.coords, err)
	}
	slog.Debug("scanning pull requests", "repo", r.coords.String(), "count", len(prs), "commit", target)

	for _, pr := range prs {
		commits, err := r.backend.ListPullRequestCommits(ctx, r.coords, pr)
		if err != nil {
			return nil, fmt.Errorf("listing commits of pull request %d: %w", pr.ID, err)
		}
		for _, commit := range commits {
			if commit == target {
				slog.Debug("commit found", "pr", pr.ID, "commit", target)
				return &pr, nil
			}
		}
	}
	return nil, nil
}

// FetchWorkItems returns the ids of the work items linked to pr in service
// order. A single id that is not a 32-bit integer fails the whole call.
func (r *Resolver) FetchWorkItems(ctx context.Context, pr provider.PullRequest) ([]int, error) {
	refs, err := r.backend.ListPullRequestWorkItems(ctx, r.coords, pr)
	if err != nil {
		return nil, fmt.Errorf("listing work items of pull request %d: %w", pr.ID, err)
	}

	ids := make([]int, 0, len(refs))
	for _, ref := range refs {
		id, err := strconv.ParseInt(ref, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing work item id %q of pull request %d: %w", ref, pr.ID, err)
		}
		ids = append(ids, int(id))
	}
	return ids, nil
}

// BuildReport resolves target and enriches the match with its work items.
// A nil report with a nil error means no pull request contains target.
// Work item failures do not fail the report; it is returned with no work
// items instead.
func (r *Resolver) BuildReport(ctx context.Context, target string) (*Report, error) {
	pr, err := r.Resolve(ctx, target)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, nil
	}

	workItems, err := r.FetchWorkItems(ctx, *pr)
	if err != nil {
		slog.Warn("could not fetch linked work items, reporting pull request only", "pr", pr.ID, "error", err)
		workItems = []int{}
	}

	return &Report{
		PullRequestID: pr.ID,
		WorkItemIDs:   workItems,
	}, nil
}
