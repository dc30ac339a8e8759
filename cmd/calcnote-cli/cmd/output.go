package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"calcnote/internal/application"
	"calcnote/internal/domain"
)

// readText joins args, or reads stdin when there are none or the only arg is "-"
func readText(args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func printLines(w io.Writer, lines []application.LineView) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l.Text)))
	}
	width = min(width, 48)

	for _, l := range lines {
		fmt.Fprintf(w, "%3d  %-*s", l.Line+1, width, l.Text)
		switch {
		case l.Result == domain.ErrorMarker:
			fmt.Fprintf(w, "  = %s (%s)", l.Result, l.Error)
		case l.Result != "":
			fmt.Fprintf(w, "  = %s", l.Result)
		}
		if l.Reference != "" {
			fmt.Fprintf(w, "  [%s]", l.Reference)
		}
		fmt.Fprintln(w)
	}
}

func printResults(w io.Writer, lines []application.LineView) {
	for _, l := range lines {
		if l.Result != "" {
			fmt.Fprintln(w, l.Result)
		}
	}
}
