package ado

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Scheme selects how the static token is presented to ADO.
type Scheme string

const (
	// SchemeBasic sends a personal access token as Basic auth with an empty user.
	SchemeBasic Scheme = "basic"
	// SchemeBearer sends the token as an OAuth2 bearer token.
	SchemeBearer Scheme = "bearer"
)

// ErrNoToken is returned when the AuthProvider has no token to present.
var ErrNoToken = errors.New("no ADO token configured")

// AuthProvider attaches a static token to ADO API requests.
// The token is read once at startup and never refreshed.
type AuthProvider struct {
	scheme Scheme
	pat    string
	tokens oauth2.TokenSource
}

// NewAuthProvider creates an AuthProvider for the given token and scheme.
// An empty scheme means SchemeBasic.
func NewAuthProvider(pat string, scheme Scheme) *AuthProvider {
	if scheme == "" {
		scheme = SchemeBasic
	}
	return &AuthProvider{
		scheme: scheme,
		pat:    pat,
		tokens: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: pat, TokenType: "Bearer"}),
	}
}

// Authorize sets the Authorization header on req.
func (a *AuthProvider) Authorize(req *http.Request) error {
	if a.pat == "" {
		return ErrNoToken
	}

	switch a.scheme {
	case SchemeBasic:
		encoded := base64.StdEncoding.EncodeToString([]byte(":" + a.pat))
		req.Header.Set("Authorization", "Basic "+encoded)
		return nil
	case SchemeBearer:
		tok, err := a.tokens.Token()
		if err != nil {
			return fmt.Errorf("getting bearer token: %w", err)
		}
		tok.SetAuthHeader(req)
		return nil
	default:
		return fmt.Errorf("unknown auth scheme %q", a.scheme)
	}
}
