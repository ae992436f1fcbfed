package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the bpmnflow banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _                            __ _               ", "#34d399"},
		{"| |__  _ __  _ __ ___  _ __  / _| | _____      __", "#2dd4bf"},
		{"| '_ \\| '_ \\| '_ ` _ \\| '_ \\| |_| |/ _ \\ \\ /\\ / /", "#22d3ee"},
		{"| |_) | |_) | | | | | | | | |  _| | (_) \\ V  V / ", "#38bdf8"},
		{"|_.__/| .__/|_| |_| |_|_| |_|_| |_|\\___/ \\_/\\_/  ", "#60a5fa"},
		{"      |_|                                        ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", termenv.String("v"+strings.TrimSpace(version)).Faint())
}
