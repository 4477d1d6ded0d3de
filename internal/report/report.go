package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/kallberg/ach/internal/resolver"
)

// Format selects how a report is printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// NoMatch is printed in text format when no pull request contains the commit.
const NoMatch = "no pr info found"

// ParseFormat validates a format name. The empty string means FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Write prints r to w. A nil r means no match. When styled is true the text
// labels are rendered bold; the words themselves do not change.
func Write(w io.Writer, r *resolver.Report, format Format, styled bool) error {
	switch format {
	case FormatText, "":
		return writeText(w, r, styled)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, r *resolver.Report, styled bool) error {
	if r == nil {
		_, err := fmt.Fprintln(w, NoMatch)
		return err
	}

	label := func(s string) string { return s }
	if styled {
		style := lipgloss.NewRenderer(w).NewStyle().Bold(true)
		label = func(s string) string { return style.Render(s) }
	}

	if _, err := fmt.Fprintf(w, "%s #%d\n", label("Pull-request"), r.PullRequestID); err != nil {
		return err
	}
	for _, id := range r.WorkItemIDs {
		if _, err := fmt.Fprintf(w, "%s #%d\n", label("Work-item"), id); err != nil {
			return err
		}
	}
	return nil
}
