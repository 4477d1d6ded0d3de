package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// DefaultRemote is the remote consulted when none is configured.
const DefaultRemote = "origin"

// Source supplies the two facts the resolver needs from the working tree.
type Source interface {
	// RemoteURL returns the URL of the upstream remote.
	RemoteURL(ctx context.Context) (string, error)
	// Head returns the commit id currently checked out.
	Head(ctx context.Context) (string, error)
}

// Git reads the remote URL and HEAD by running the git binary.
type Git struct {
	dir    string
	remote string
	// execCommand is a hook for testing; defaults to exec.CommandContext.
	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewGit creates a Git source for the repository at dir (the current
// directory when empty) using the given remote (DefaultRemote when empty).
func NewGit(dir, remote string) *Git {
	if remote == "" {
		remote = DefaultRemote
	}
	return &Git{
		dir:         dir,
		remote:      remote,
		execCommand: exec.CommandContext,
	}
}

// RemoteURL returns the URL of the configured remote.
func (g *Git) RemoteURL(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "remote", "get-url", g.remote, "--all")
	if err != nil {
		return "", fmt.Errorf("git remote get-url %s: %w", g.remote, err)
	}
	// --all prints one URL per line; the first is the fetch URL.
	url, _, _ := strings.Cut(out, "\n")
	url = strings.TrimSpace(url)
	if url == "" {
		return "", fmt.Errorf("git remote get-url %s: empty output", g.remote)
	}
	return url, nil
}

// Head returns the commit id of HEAD.
func (g *Git) Head(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse HEAD: %w", err)
	}
	if out == "" {
		return "", errors.New("git rev-parse HEAD: empty output")
	}
	return out, nil
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := g.execCommand(ctx, "git", args...)
	if g.dir != "" {
		cmd.Dir = g.dir
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	slog.Debug("running git", "args", args, "dir", g.dir)

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Static is a Source with fixed values.
type Static struct {
	URL    string
	Commit string
}

// RemoteURL returns s.URL.
func (s Static) RemoteURL(context.Context) (string, error) { return s.URL, nil }

// Head returns s.Commit.
func (s Static) Head(context.Context) (string, error) { return s.Commit, nil }

var (
	_ Source = (*Git)(nil)
	_ Source = Static{}
)
