package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kallberg/ach/internal/config"
	"github.com/kallberg/ach/internal/locator"
	"github.com/kallberg/ach/internal/provider"
	"github.com/kallberg/ach/internal/provider/ado"
	"github.com/kallberg/ach/internal/report"
	"github.com/kallberg/ach/internal/resolver"
	"github.com/kallberg/ach/internal/vcs"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrUnsupportedRemote is returned when the remote URL is not an Azure DevOps
// SSH or HTTPS repository URL.
var ErrUnsupportedRemote = errors.New("remote URL is not an Azure DevOps repository URL")

var resolveFlags struct {
	remote string
	commit string
	output string
	dir    string
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath, resolveFlags.dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if resolveFlags.remote != "" {
		cfg.Remote = resolveFlags.remote
	}
	if resolveFlags.output != "" {
		cfg.Output = resolveFlags.output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	src := vcs.NewGit(resolveFlags.dir, cfg.Remote)
	out := cmd.OutOrStdout()
	return resolve(cmd.Context(), out, cfg, src, newBackend(cfg), resolveFlags.commit, isTerminalWriter(out))
}

// newBackend builds the ADO backend described by cfg.
func newBackend(cfg *config.Config) *ado.Backend {
	auth := ado.NewAuthProvider(cfg.ADO.PAT, ado.Scheme(cfg.ADO.AuthScheme))
	b := ado.NewBackend(auth)
	b.SetBaseURL(cfg.ADO.BaseURL)
	b.SetAPIVersion(cfg.ADO.APIVersion)
	b.SetTimeout(cfg.ADO.ParseTimeout())
	return b
}

// resolve runs one lookup: read the remote and commit from src, parse the
// remote into coordinates, build the report and print it to w. A commit
// other than "" replaces HEAD.
func resolve(ctx context.Context, w io.Writer, cfg *config.Config, src vcs.Source, backend provider.PRBackend, commit string, styled bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := report.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	remoteURL, err := src.RemoteURL(ctx)
	if err != nil {
		return fmt.Errorf("reading remote URL: %w", err)
	}
	coords, ok := locator.Parse(remoteURL)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedRemote, remoteURL)
	}

	if commit == "" {
		commit, err = src.Head(ctx)
		if err != nil {
			return fmt.Errorf("reading HEAD: %w", err)
		}
	}

	slog.Debug("resolving pull request", "repo", coords.String(), "commit", commit, "backend", fmt.Sprint(backend))

	rep, err := resolver.New(backend, coords).BuildReport(ctx, commit)
	if err != nil {
		return err
	}
	return report.Write(w, rep, format, styled)
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
