package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the runeport banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  ___ _   _ _ __   ___ _ __   ___  _ __| |_ ", "#34d399"},
		{" | '__| | | | '_ \\ / _ \\ '_ \\ / _ \\| '__| __|", "#2dd4bf"},
		{" | |  | |_| | | | |  __/ |_) | (_) | |  | |_ ", "#22d3ee"},
		{" |_|   \\__,_|_| |_|\\___| .__/ \\___/|_|   \\__|", "#38bdf8"},
		{"                       |_|                  ", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
