package provider

import (
	"context"

	"github.com/kallberg/ach/internal/locator"
)

//go:generate mockgen -destination=mock_provider.go -package=provider . PRBackend

// PRBackend is the read-only view of a code hosting service needed to map a
// commit to the pull request that carries it. Every call is scoped by the
// repository coordinates parsed from the remote URL.
type PRBackend interface {
	// ListPullRequests returns the repository's pull requests in the order the
	// service returns them.
	ListPullRequests(ctx context.Context, coords locator.Coordinates) ([]PullRequest, error)

	// ListPullRequestCommits returns the commit ids of a pull request.
	ListPullRequestCommits(ctx context.Context, coords locator.Coordinates, pr PullRequest) ([]string, error)

	// ListPullRequestWorkItems returns the ids of the work item references
	// linked to a pull request, unparsed.
	ListPullRequestWorkItems(ctx context.Context, coords locator.Coordinates, pr PullRequest) ([]string, error)
}

// PullRequest is a pull request summary as returned by the list call.
// Its commits are not embedded; fetch them with ListPullRequestCommits.
type PullRequest struct {
	// ID is the numeric pull request identifier.
	ID int
	// RepositoryID is the service's opaque repository identifier, used to
	// route the commits call.
	RepositoryID string
}
