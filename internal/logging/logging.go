package logging

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"golang.org/x/term"
)

// Setup installs the default slog logger, writing to stderr so that stdout
// carries only the report.
func Setup(verbose bool) {
	slog.SetDefault(New(os.Stderr, verbose, isTerminal(os.Stderr)))
}

// New returns a slog logger backed by charmbracelet/log. Terminals get the
// colored text format; anything else gets JSON.
func New(w io.Writer, verbose, tty bool) *slog.Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "ach",
	})

	if verbose {
		handler.SetLevel(charmlog.DebugLevel)
	} else {
		handler.SetLevel(charmlog.InfoLevel)
	}

	if !tty {
		handler.SetFormatter(charmlog.JSONFormatter)
	}

	return slog.New(handler)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
