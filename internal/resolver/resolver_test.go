package resolver

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/kallberg/ach/internal/locator"
	"github.com/kallberg/ach/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var coords = locator.Coordinates{Organization: "MyOrg", Project: "MyProject", Repository: "MyRepo"}

func pr(id int) provider.PullRequest {
	return provider.PullRequest{ID: id, RepositoryID: "repo-guid"}
}

func newMock(t *testing.T) *provider.MockPRBackend {
	t.Helper()
	return provider.NewMockPRBackend(gomock.NewController(t))
}

func TestResolveFindsMatchAtAnyPosition(t *testing.T) {
	for matchAt := 0; matchAt < 3; matchAt++ {
		t.Run(strconv.Itoa(matchAt), func(t *testing.T) {
			backend := newMock(t)
			prs := []provider.PullRequest{pr(1), pr(2), pr(3)}

			calls := []any{backend.EXPECT().ListPullRequests(gomock.Any(), coords).Return(prs, nil)}
			for i := 0; i <= matchAt; i++ {
				commits := []string{"zzz"}
				if i == matchAt {
					commits = []string{"xxx", "abc123", "yyy"}
				}
				calls = append(calls, backend.EXPECT().ListPullRequestCommits(gomock.Any(), coords, prs[i]).Return(commits, nil))
			}
			gomock.InOrder(calls...)

			got, err := New(backend, coords).Resolve(context.Background(), "abc123")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, prs[matchAt], *got)
		})
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	backend := newMock(t)

	// The third pull request is never examined: gomock fails on unexpected calls.
	gomock.InOrder(
		backend.EXPECT().ListPullRequests(gomock.Any(), coords).Return([]provider.PullRequest{pr(10), pr(5), pr(20)}, nil),
		backend.EXPECT().ListPullRequestCommits(gomock.Any(), coords, pr(10)).Return([]string{"abc123"}, nil),
	)

	got, err := New(backend, coords).Resolve(context.Background(), "abc123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 10, got.ID)
}

func TestResolveExhaustion(t *testing.T) {
	backend := newMock(t)
	backend.EXPECT().ListPullRequests(gomock.Any(), coords).Return([]provider.PullRequest{pr(1), pr(2)}, nil)
	backend.EXPECT().ListPullRequestCommits(gomock.Any(), coords, pr(1)).Return([]string{"aaa"}, nil)
	backend.EXPECT().ListPullRequestCommits(gomock.Any(), coords, pr(2)).Return(nil, nil)

	got, err := New(backend, coords).Resolve(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveNoPullRequests(t *testing.T) {
	backend := newMock(t)
	backend.EXPECT().ListPullRequests(gomock.Any(), coords).Return(nil, nil)

	got, err := New(backend, coords).Resolve(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveExactComparison(t *testing.T) {
	backend := newMock(t)
	backend.EXPECT().ListPullRequests(gomock.Any(), coords).Return([]provider.PullRequest{pr(1)}, nil)
	backend.EXPECT().ListPullRequestCommits(gomock.Any(), coords, pr(1)).Return([]string{"ABC123", "abc123ff", "abc12"}, nil)

	got, err := New(backend, coords).Resolve(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveListError(t *testing.T) {
	backend := newMock(t)
	boom := errors.New("connection refused")
	backend.EXPECT().ListPullRequests(gomock.Any(), coords).Return(nil, boom)

	got, err := New(backend, coords).Resolve(context.Background(), "abc123")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "listing pull requests for MyOrg/MyProject/MyRepo")
	assert.Nil(t, got)
}

func TestResolveCommitErrorIsFatal(t *testing.T) {
	backend := newMock(t)
	boom := errors.New("status 500")

	// A later pull request that would match is never reached.
	gomock.InOrder(
		backend.EXPECT().ListPullRequests(gomock.Any(), coords).Return([]provider.PullRequest{pr(1), pr(2)}, nil),
		backend.EXPECT().ListPullRequestCommits(gomock.Any(), coords, pr(1)).Return(nil, boom),
	)

	got, err := New(backend, coords).Resolve(context.Background(), "abc123")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "listing commits of pull request 1")
	assert.Nil(t, got)
}

func TestFetchWorkItems(t *testing.T) {
	backend := newMock(t)
	backend.EXPECT().ListPullRequestWorkItems(gomock.Any(), coords, pr(42)).Return([]string{"102", "101", "102"}, nil)

	ids, err := New(backend, coords).FetchWorkItems(context.Background(), pr(42))
	require.NoError(t, err)
	assert.Equal(t, []int{102, 101, 102}, ids)
}

func TestFetchWorkItemsParseFailureFailsAll(t *testing.T) {
	backend := newMock(t)
	backend.EXPECT().ListPullRequestWorkItems(gomock.Any(), coords, pr(42)).Return([]string{"101", "not-a-number", "102"}, nil)

	ids, err := New(backend, coords).FetchWorkItems(context.Background(), pr(42))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parsing work item id "not-a-number"`)
	assert.Nil(t, ids)
}

func TestFetchWorkItemsRejectsOutOfRangeIDs(t *testing.T) {
	for _, ref := range []string{"2147483648", "-2147483649", "99999999999"} {
		t.Run(ref, func(t *testing.T) {
			backend := newMock(t)
			backend.EXPECT().ListPullRequestWorkItems(gomock.Any(), coords, pr(42)).Return([]string{"101", ref}, nil)

			ids, err := New(backend, coords).FetchWorkItems(context.Background(), pr(42))
			require.Error(t, err)
			assert.ErrorIs(t, err, strconv.ErrRange)
			assert.Nil(t, ids)
		})
	}

	backend := newMock(t)
	backend.EXPECT().ListPullRequestWorkItems(gomock.Any(), coords, pr(42)).Return([]string{"2147483647", "-2147483648"}, nil)
	ids, err := New(backend, coords).FetchWorkItems(context.Background(), pr(42))
	require.NoError(t, err)
	assert.Equal(t, []int{2147483647, -2147483648}, ids)
}

func TestBuildReport(t *testing.T) {
	backend := newMock(t)
	gomock.InOrder(
		backend.EXPECT().ListPullRequests(gomock.Any(), coords).Return([]provider.PullRequest{pr(7), pr(42)}, nil),
		backend.EXPECT().ListPullRequestCommits(gomock.Any(), coords, pr(7)).Return([]string{"fff"}, nil),
		backend.EXPECT().ListPullRequestCommits(gomock.Any(), coords, pr(42)).Return([]string{"abc123"}, nil),
		backend.EXPECT().ListPullRequestWorkItems(gomock.Any(), coords, pr(42)).Return([]string{"101", "102"}, nil),
	)

	report, err := New(backend, coords).BuildReport(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, &Report{PullRequestID: 42, WorkItemIDs: []int{101, 102}}, report)
}

func TestBuildReportNoMatch(t *testing.T) {
	backend := newMock(t)
	backend.EXPECT().ListPullRequests(gomock.Any(), coords).Return([]provider.PullRequest{pr(1)}, nil)
	backend.EXPECT().ListPullRequestCommits(gomock.Any(), coords, pr(1)).Return([]string{"fff"}, nil)

	report, err := New(backend, coords).BuildReport(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestBuildReportPartialSuccess(t *testing.T) {
	tests := []struct {
		name   string
		ids    []string
		fetchE error
	}{
		{name: "non-numeric id", ids: []string{"101", "abc"}},
		{name: "transport error", fetchE: errors.New("timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newMock(t)
			backend.EXPECT().ListPullRequests(gomock.Any(), coords).Return([]provider.PullRequest{pr(42)}, nil)
			backend.EXPECT().ListPullRequestCommits(gomock.Any(), coords, pr(42)).Return([]string{"abc123"}, nil)
			backend.EXPECT().ListPullRequestWorkItems(gomock.Any(), coords, pr(42)).Return(tt.ids, tt.fetchE)

			report, err := New(backend, coords).BuildReport(context.Background(), "abc123")
			require.NoError(t, err)
			require.NotNil(t, report)
			assert.Equal(t, 42, report.PullRequestID)
			assert.NotNil(t, report.WorkItemIDs)
			assert.Empty(t, report.WorkItemIDs)
		})
	}
}

func TestBuildReportPropagatesResolveError(t *testing.T) {
	backend := newMock(t)
	boom := errors.New("dns failure")
	backend.EXPECT().ListPullRequests(gomock.Any(), coords).Return(nil, boom)

	report, err := New(backend, coords).BuildReport(context.Background(), "abc123")
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, report)
}
