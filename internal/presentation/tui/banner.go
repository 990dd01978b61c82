package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the navbind banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"                   _     _           _ ", "#38bdf8"},
		{"  _ __   __ ___   _| |__ (_)_ __   __| |", "#22d3ee"},
		{" | '_ \\ / _` \\ \\ / / '_ \\| | '_ \\ / _` |", "#2dd4bf"},
		{" | | | | (_| |\\ V /| |_) | | | | | (_| |", "#34d399"},
		{" |_| |_|\\__,_| \\_/ |_.__/|_|_| |_|\\__,_|", "#4ade80"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
