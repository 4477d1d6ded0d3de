package ado

// adoList is the envelope for ADO list API responses.
type adoList[T any] struct {
	Value []T `json:"value"`
}

// adoPullRequest maps the fields of the ADO pull request JSON we route on.
type adoPullRequest struct {
	PullRequestID int `json:"pullRequestId"`
	Repository    struct {
		ID string `json:"id"`
	} `json:"repository"`
}

// adoCommitRef is a commit entry from the pull request commits API.
type adoCommitRef struct {
	CommitID string `json:"commitId"`
}

// adoResourceRef is a work item reference linked to a pull request.
// ID is optional in the API schema.
type adoResourceRef struct {
	ID *string `json:"id,omitempty"`
}

// adoError represents an error response from the ADO API.
type adoError struct {
	Message string `json:"message"`
	TypeKey string `json:"typeKey"`
}
